package services

import (
	"context"
	"fmt"

	"gigflow_backend/internal/logger"
	"gigflow_backend/internal/models"
	"gigflow_backend/internal/repositories"
	"gigflow_backend/internal/services/dto"
	"gigflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type HiringService interface {
	// Hire accepts the bid, assigns the gig to the bidder and rejects every
	// other pending bid on the gig, all or nothing. The hired notification
	// is published before the bidder's next notification can commit.
	Hire(ctx context.Context, bidID, requesterID string) (*models.Bid, error)
}

type hiringService struct {
	db            *gorm.DB
	gigRepo       repositories.GigRepository
	bidRepo       repositories.BidRepository
	notifications NotificationService
	now           Clock
}

func NewHiringService(
	db *gorm.DB,
	gigRepo repositories.GigRepository,
	bidRepo repositories.BidRepository,
	notifications NotificationService,
	now Clock,
) HiringService {
	return &hiringService{
		db:            db,
		gigRepo:       gigRepo,
		bidRepo:       bidRepo,
		notifications: notifications,
		now:           now,
	}
}

func (s *hiringService) Hire(ctx context.Context, bidID, requesterID string) (*models.Bid, error) {
	db := s.db.WithContext(ctx)

	bid, err := s.bidRepo.FindByID(db, bidID)
	if err != nil {
		return nil, handleBidError(err)
	}

	gig, err := s.gigRepo.FindByID(db, bid.GigID)
	if err != nil {
		return nil, handleGigError(err)
	}
	if gig.OwnerID != requesterID {
		return nil, apperrors.ErrNotGigOwner
	}
	if bid.Status != models.BidStatusPending {
		return nil, apperrors.ErrBidNotPending
	}
	if gig.Status != models.GigStatusOpen {
		return nil, apperrors.ErrGigNotOpen
	}

	var rejected int64
	err = s.notifications.CommitAndPublish(ctx, bid.BidderID, func() (*models.Notification, error) {
		now := s.now()

		tx := db.Begin()
		if tx.Error != nil {
			return nil, apperrors.DatabaseError(tx.Error)
		}
		defer tx.Rollback()

		// The CAS on the gig row decides the winner among concurrent hires.
		rows, err := s.gigRepo.AssignIfOpen(tx, gig.ID, bid.BidderID, now)
		if err != nil {
			return nil, apperrors.DatabaseError(err)
		}
		if rows == 0 {
			return nil, apperrors.ErrGigNotOpen
		}

		// A gig reopened by its owner keeps its accepted bid.
		hasAccepted, err := s.bidRepo.HasAccepted(tx, gig.ID)
		if err != nil {
			return nil, apperrors.DatabaseError(err)
		}
		if hasAccepted {
			return nil, apperrors.ErrGigAlreadyHired
		}

		rejected, err = s.bidRepo.RejectOtherPending(tx, gig.ID, bid.ID, now)
		if err != nil {
			return nil, apperrors.DatabaseError(err)
		}

		rows, err = s.bidRepo.AcceptIfPending(tx, bid.ID, now)
		if err != nil {
			return nil, handleBidError(err)
		}
		if rows != 1 {
			return nil, apperrors.ErrBidNotPending
		}

		n, err := s.notifications.AppendTx(ctx, tx, bid.BidderID, models.NotificationTypeHired,
			fmt.Sprintf("You have been hired for \"%s\"", gig.Title),
			dto.NotificationPayload{
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

	logger.CtxInfo(ctx, "bid hired",
		"bid_id", bid.ID,
		"gig_id", gig.ID,
		"bidder_id", bid.BidderID,
		"rejected_bids", rejected,
	)

	hired, err := s.bidRepo.FindByIDWithBidder(db, bid.ID)
	if err != nil {
		return nil, handleBidError(err)
	}
	return hired, nil
}
