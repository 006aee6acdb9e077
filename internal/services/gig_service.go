package services

import (
	"context"
	"strings"

	"gigflow_backend/internal/logger"
	"gigflow_backend/internal/models"
	"gigflow_backend/internal/repositories"
	"gigflow_backend/internal/services/dto"
	"gigflow_backend/internal/validator"
	"gigflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type GigService interface {
	CreateGig(ctx context.Context, ownerID string, req *dto.CreateGigRequest) (*models.Gig, error)
	ListGigs(ctx context.Context, requesterID string, req *dto.ListGigsRequest) (*dto.GigListResponse, error)
	GetGig(ctx context.Context, gigID string) (*models.Gig, error)
	SetStatus(ctx context.Context, gigID string, status models.GigStatus, requesterID string) (*models.Gig, error)
}

type gigService struct {
	db        *gorm.DB
	gigRepo   repositories.GigRepository
	validator *validator.Validator
	now       Clock
}

func NewGigService(db *gorm.DB, gigRepo repositories.GigRepository, v *validator.Validator, now Clock) GigService {
	return &gigService{
		db:        db,
		gigRepo:   gigRepo,
		validator: v,
		now:       now,
	}
}

// sortColumns whitelists the sortable fields.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"budget":    "budget",
	"deadline":  "deadline",
	"updatedAt": "updated_at",
}

func (s *gigService) CreateGig(ctx context.Context, ownerID string, req *dto.CreateGigRequest) (*models.Gig, error) {
	if ownerID == "" {
		return nil, apperrors.ErrMissingToken
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	now := s.now()
	gig := &models.Gig{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Deadline:    req.Deadline.UTC(),
		Status:      models.GigStatusOpen,
	}
	gig.CreatedAt = now
	gig.UpdatedAt = now

	if err := s.gigRepo.Create(s.db.WithContext(ctx), gig); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	logger.CtxInfo(ctx, "gig created", "gig_id", gig.ID, "budget", gig.Budget)
	return gig, nil
}

func (s *gigService) ListGigs(ctx context.Context, requesterID string, req *dto.ListGigsRequest) (*dto.GigListResponse, error) {
	if req == nil {
		req = &dto.ListGigsRequest{}
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	filter := repositories.GigFilter{
		Search:    req.Search,
		Status:    models.GigStatus(req.Status),
		MinBudget: req.MinBudget,
		MaxBudget: req.MaxBudget,
	}
	if req.MineOnly() {
		if requesterID == "" {
			return nil, apperrors.NewUnauthorizedError("Sign in to list your own gigs")
		}
		filter.OwnerID = requesterID
	}

	column, ok := sortColumns[req.SortBy]
	if !ok {
		column = sortColumns["createdAt"]
	}
	sort := repositories.GigSort{
		Column: column,
		Desc:   !strings.EqualFold(req.SortOrder, "asc"),
	}

	page, limit := dto.ClampPage(req.Page, req.Limit)
	pagination := dto.NewPagination(0, page, limit)

	gigs, total, err := s.gigRepo.List(s.db.WithContext(ctx), filter, sort, limit, pagination.Offset())
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if gigs == nil {
		gigs = []models.Gig{}
	}

	return &dto.GigListResponse{
		Gigs:       gigs,
		Pagination: dto.NewPagination(total, page, limit),
	}, nil
}

func (s *gigService) GetGig(ctx context.Context, gigID string) (*models.Gig, error) {
	gig, err := s.gigRepo.FindByIDWithOwner(s.db.WithContext(ctx), gigID)
	if err != nil {
		return nil, handleGigError(err)
	}
	return gig, nil
}

// SetStatus lets the owner move the gig to any status. Moving to open or
// cancelled clears the assignee; moving to assigned or completed needs one.
func (s *gigService) SetStatus(ctx context.Context, gigID string, status models.GigStatus, requesterID string) (*models.Gig, error) {
	db := s.db.WithContext(ctx)

	gig, err := s.gigRepo.FindByID(db, gigID)
	if err != nil {
		return nil, handleGigError(err)
	}
	if gig.OwnerID != requesterID {
		return nil, apperrors.ErrNotGigOwner
	}
	if !status.Valid() {
		return nil, apperrors.ErrInvalidStatus("gig", "Unknown gig status: "+string(status))
	}

	now := s.now()
	var rows int64
	if status.RequiresAssignee() {
		rows, err = s.gigRepo.UpdateStatusIfAssigned(db, gigID, status, now)
		if err == nil && rows == 0 {
			return nil, apperrors.ErrNoAssignee
		}
	} else {
		rows, err = s.gigRepo.UpdateStatus(db, gigID, status, now)
		if err == nil && rows == 0 {
			return nil, apperrors.NotFound("gig", "Gig not found")
		}
	}
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	logger.CtxInfo(ctx, "gig status changed", "gig_id", gigID, "from", gig.Status, "to", status)

	updated, err := s.gigRepo.FindByID(db, gigID)
	if err != nil {
		return nil, handleGigError(err)
	}
	return updated, nil
}
