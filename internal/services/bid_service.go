package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gigflow_backend/internal/logger"
	"gigflow_backend/internal/models"
	"gigflow_backend/internal/repositories"
	"gigflow_backend/internal/services/dto"
	"gigflow_backend/internal/validator"
	"gigflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type BidService interface {
	CreateBid(ctx context.Context, bidderID string, req *dto.CreateBidRequest) (*models.Bid, error)
	ListBidsForGig(ctx context.Context, gigID, requesterID string) ([]models.Bid, error)
	ListMyBids(ctx context.Context, bidderID string) ([]models.Bid, error)
}

type bidService struct {
	db            *gorm.DB
	gigRepo       repositories.GigRepository
	bidRepo       repositories.BidRepository
	userRepo      repositories.UserRepository
	notifications NotificationService
	validator     *validator.Validator
	now           Clock
}

func NewBidService(
	db *gorm.DB,
	gigRepo repositories.GigRepository,
	bidRepo repositories.BidRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
	v *validator.Validator,
	now Clock,
) BidService {
	return &bidService{
		db:            db,
		gigRepo:       gigRepo,
		bidRepo:       bidRepo,
		userRepo:      userRepo,
		notifications: notifications,
		validator:     v,
		now:           now,
	}
}

// CreateBid places a pending bid and notifies the gig owner. The bid and
// its notification are written in one transaction guarded by a
// conditional touch of the gig row, so a bid can never land on a gig that
// a concurrent hire has just assigned. The transaction runs under the
// owner's notification lock so the owner's live feed follows commit order.
func (s *bidService) CreateBid(ctx context.Context, bidderID string, req *dto.CreateBidRequest) (*models.Bid, error) {
	if bidderID == "" {
		return nil, apperrors.ErrMissingToken
	}

	req.GigID = strings.TrimSpace(req.GigID)
	req.Message = strings.TrimSpace(req.Message)
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	gig, err := s.gigRepo.FindByID(db, req.GigID)
	if err != nil {
		return nil, handleGigError(err)
	}
	if gig.OwnerID == bidderID {
		return nil, apperrors.ErrSelfBid
	}
	if gig.Status != models.GigStatusOpen {
		return nil, apperrors.ErrGigNotOpen
	}

	bidderName := s.displayName(db, bidderID)

	bid := &models.Bid{
		GigID:    gig.ID,
		BidderID: bidderID,
		Price:    req.Price,
		Message:  req.Message,
		Status:   models.BidStatusPending,
	}

	err = s.notifications.CommitAndPublish(ctx, gig.OwnerID, func() (*models.Notification, error) {
		now := s.now()
		bid.CreatedAt = now
		bid.UpdatedAt = now

		tx := db.Begin()
		if tx.Error != nil {
			return nil, apperrors.DatabaseError(tx.Error)
		}
		defer tx.Rollback()

		rows, err := s.gigRepo.TouchIfOpen(tx, gig.ID, now)
		if err != nil {
			return nil, apperrors.DatabaseError(err)
		}
		if rows == 0 {
			return nil, apperrors.ErrGigNotOpen
		}

		// A reopened gig keeps its accepted bid and can never hire again.
		hasAccepted, err := s.bidRepo.HasAccepted(tx, gig.ID)
		if err != nil {
			return nil, apperrors.DatabaseError(err)
		}
		if hasAccepted {
			return nil, apperrors.ErrGigAlreadyHired
		}

		if err := s.bidRepo.Create(tx, bid); err != nil {
			return nil, handleBidError(err)
		}

		message := fmt.Sprintf("%s placed a bid of %s on \"%s\"", bidderName, formatPrice(bid.Price), gig.Title)
		n, err := s.notifications.AppendTx(ctx, tx, gig.OwnerID, models.NotificationTypeBidPlaced, message, dto.NotificationPayload{
			BidID:    bid.ID,
			GigID:    gig.ID,
			GigTitle: gig.Title,
			Price:    bid.Price,
		})
		if err != nil {
			return nil, err
		}

		if err := tx.Commit().Error; err != nil {
			return nil, apperrors.DatabaseError(err)
		}
		return n, nil
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "bid placed", "bid_id", bid.ID, "gig_id", gig.ID, "price", bid.Price)
	return bid, nil
}

func (s *bidService) ListBidsForGig(ctx context.Context, gigID, requesterID string) ([]models.Bid, error) {
	db := s.db.WithContext(ctx)

	gig, err := s.gigRepo.FindByID(db, gigID)
	if err != nil {
		return nil, handleGigError(err)
	}
	if gig.OwnerID != requesterID {
		return nil, apperrors.ErrNotGigOwner
	}

	bids, err := s.bidRepo.FindByGig(db, gigID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if bids == nil {
		bids = []models.Bid{}
	}
	return bids, nil
}

func (s *bidService) ListMyBids(ctx context.Context, bidderID string) ([]models.Bid, error) {
	bids, err := s.bidRepo.FindByBidder(s.db.WithContext(ctx), bidderID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if bids == nil {
		bids = []models.Bid{}
	}
	return bids, nil
}

// displayName falls back to a generic label when the identity mirror has
// no profile for the user yet.
func (s *bidService) displayName(db *gorm.DB, userID string) string {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil || strings.TrimSpace(user.Name) == "" {
		return "A freelancer"
	}
	return user.Name
}

func formatPrice(price float64) string {
	return "$" + strconv.FormatFloat(price, 'f', -1, 64)
}
