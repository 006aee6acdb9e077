package repositories

import (
	"errors"
	"time"

	"gigflow_backend/internal/models"

	"gorm.io/gorm"
)

var ErrBidNotFound = errors.New("bid not found")

type BidRepository interface {
	Create(db *gorm.DB, bid *models.Bid) error
	FindByID(db *gorm.DB, id string) (*models.Bid, error)
	FindByIDWithBidder(db *gorm.DB, id string) (*models.Bid, error)
	FindByGig(db *gorm.DB, gigID string) ([]models.Bid, error)
	FindByBidder(db *gorm.DB, bidderID string) ([]models.Bid, error)
	HasAccepted(db *gorm.DB, gigID string) (bool, error)

	// RejectOtherPending rejects every pending bid on the gig except keepID.
	RejectOtherPending(db *gorm.DB, gigID, keepID string, now time.Time) (int64, error)
	// AcceptIfPending accepts the bid only while it is still pending.
	AcceptIfPending(db *gorm.DB, id string, now time.Time) (int64, error)
}

type BidRepositoryImpl struct{}

func NewBidRepository() BidRepository {
	return &BidRepositoryImpl{}
}

func (r *BidRepositoryImpl) Create(db *gorm.DB, bid *models.Bid) error {
	return db.Create(bid).Error
}

func (r *BidRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Bid, error) {
	var bid models.Bid
	if err := db.First(&bid, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, err
	}
	return &bid, nil
}

func (r *BidRepositoryImpl) FindByIDWithBidder(db *gorm.DB, id string) (*models.Bid, error) {
	var bid models.Bid
	if err := db.Preload("Bidder").First(&bid, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, err
	}
	return &bid, nil
}

// FindByGig returns the gig's bids newest first with the bidder joined.
func (r *BidRepositoryImpl) FindByGig(db *gorm.DB, gigID string) ([]models.Bid, error) {
	var bids []models.Bid
	err := db.Preload("Bidder").
		Where("gig_id = ?", gigID).
		Order("created_at DESC").Order("id DESC").
		Find(&bids).Error
	return bids, err
}

func (r *BidRepositoryImpl) FindByBidder(db *gorm.DB, bidderID string) ([]models.Bid, error) {
	var bids []models.Bid
	err := db.Preload("Gig").
		Where("bidder_id = ?", bidderID).
		Order("created_at DESC").Order("id DESC").
		Find(&bids).Error
	return bids, err
}

func (r *BidRepositoryImpl) HasAccepted(db *gorm.DB, gigID string) (bool, error) {
	var count int64
	err := db.Model(&models.Bid{}).
		Where("gig_id = ? AND status = ?", gigID, models.BidStatusAccepted).
		Count(&count).Error
	return count > 0, err
}

func (r *BidRepositoryImpl) RejectOtherPending(db *gorm.DB, gigID, keepID string, now time.Time) (int64, error) {
	result := db.Model(&models.Bid{}).
		Where("gig_id = ? AND id <> ? AND status = ?", gigID, keepID, models.BidStatusPending).
		Updates(map[string]interface{}{
			"status":     models.BidStatusRejected,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

func (r *BidRepositoryImpl) AcceptIfPending(db *gorm.DB, id string, now time.Time) (int64, error) {
	result := db.Model(&models.Bid{}).
		Where("id = ? AND status = ?", id, models.BidStatusPending).
		Updates(map[string]interface{}{
			"status":     models.BidStatusAccepted,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}
