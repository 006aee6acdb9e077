package repositories

import (
	"errors"
	"strings"
	"time"

	"gigflow_backend/internal/models"

	"gorm.io/gorm"
)

var ErrGigNotFound = errors.New("gig not found")

// GigFilter narrows ListGigs. Zero values are no-ops.
type GigFilter struct {
	Search    string
	Status    models.GigStatus
	OwnerID   string
	MinBudget *float64
	MaxBudget *float64
}

// GigSort is a whitelisted column and direction.
type GigSort struct {
	Column string
	Desc   bool
}

type GigRepository interface {
	Create(db *gorm.DB, gig *models.Gig) error
	FindByID(db *gorm.DB, id string) (*models.Gig, error)
	FindByIDWithOwner(db *gorm.DB, id string) (*models.Gig, error)
	List(db *gorm.DB, filter GigFilter, sort GigSort, limit, offset int) ([]models.Gig, int64, error)

	// UpdateStatus moves the gig to status and clears assigned_to. Used for
	// open and cancelled.
	UpdateStatus(db *gorm.DB, id string, status models.GigStatus, now time.Time) (int64, error)
	// UpdateStatusIfAssigned moves an already-assigned gig to status,
	// keeping assigned_to. Returns 0 rows when the gig has no assignee.
	UpdateStatusIfAssigned(db *gorm.DB, id string, status models.GigStatus, now time.Time) (int64, error)
	// AssignIfOpen is the hire CAS: open -> assigned with assigned_to set.
	AssignIfOpen(db *gorm.DB, id, assigneeID string, now time.Time) (int64, error)
	// TouchIfOpen bumps updated_at only while the gig is open, taking the
	// row lock that orders bid creation against hires.
	TouchIfOpen(db *gorm.DB, id string, now time.Time) (int64, error)
}

type GigRepositoryImpl struct{}

func NewGigRepository() GigRepository {
	return &GigRepositoryImpl{}
}

func (r *GigRepositoryImpl) Create(db *gorm.DB, gig *models.Gig) error {
	return db.Create(gig).Error
}

func (r *GigRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Gig, error) {
	var gig models.Gig
	if err := db.First(&gig, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, err
	}
	return &gig, nil
}

func (r *GigRepositoryImpl) FindByIDWithOwner(db *gorm.DB, id string) (*models.Gig, error) {
	var gig models.Gig
	if err := db.Preload("Owner").First(&gig, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, err
	}
	return &gig, nil
}

func (r *GigRepositoryImpl) List(db *gorm.DB, filter GigFilter, sort GigSort, limit, offset int) ([]models.Gig, int64, error) {
	query := db.Model(&models.Gig{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where(
			"(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\')",
			pattern, pattern,
		)
	}

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if filter.OwnerID != "" {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}

	if filter.MinBudget != nil {
		query = query.Where("budget >= ?", *filter.MinBudget)
	}

	if filter.MaxBudget != nil {
		query = query.Where("budget <= ?", *filter.MaxBudget)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dir := "ASC"
	if sort.Desc {
		dir = "DESC"
	}

	var gigs []models.Gig
	err := query.
		Preload("Owner").
		Order(sort.Column + " " + dir).
		Order("id " + dir).
		Limit(limit).Offset(offset).
		Find(&gigs).Error

	return gigs, total, err
}

func (r *GigRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.GigStatus, now time.Time) (int64, error) {
	result := db.Model(&models.Gig{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      status,
		"assigned_to": nil,
		"updated_at":  now,
	})
	return result.RowsAffected, result.Error
}

func (r *GigRepositoryImpl) UpdateStatusIfAssigned(db *gorm.DB, id string, status models.GigStatus, now time.Time) (int64, error) {
	result := db.Model(&models.Gig{}).
		Where("id = ? AND assigned_to IS NOT NULL", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

func (r *GigRepositoryImpl) AssignIfOpen(db *gorm.DB, id, assigneeID string, now time.Time) (int64, error) {
	result := db.Model(&models.Gig{}).
		Where("id = ? AND status = ?", id, models.GigStatusOpen).
		Updates(map[string]interface{}{
			"status":      models.GigStatusAssigned,
			"assigned_to": assigneeID,
			"updated_at":  now,
		})
	return result.RowsAffected, result.Error
}

func (r *GigRepositoryImpl) TouchIfOpen(db *gorm.DB, id string, now time.Time) (int64, error) {
	result := db.Model(&models.Gig{}).
		Where("id = ? AND status = ?", id, models.GigStatusOpen).
		Update("updated_at", now)
	return result.RowsAffected, result.Error
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
