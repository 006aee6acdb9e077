package services

import (
	"context"

	"gigflow_backend/internal/logger"
	"gigflow_backend/internal/models"
	"gigflow_backend/internal/services/dto"
	"gigflow_backend/ws"
)

// NotificationBus is the live-session side of notifications.
type NotificationBus interface {
	Publisher
	Connect(credential string) (*ws.Session, error)
	OnNotification(s *ws.Session, cb func(*models.Notification))
	Disconnect(s *ws.Session)
}

// GigBidFacade is the single entry point transports use. It adds no
// behaviour of its own beyond tagging the context with the acting user.
type GigBidFacade struct {
	gigs          GigService
	bids          BidService
	hiring        HiringService
	notifications NotificationService
	bus           NotificationBus
}

func NewGigBidFacade(c *ServiceContainer, bus NotificationBus) *GigBidFacade {
	return &GigBidFacade{
		gigs:          c.GigService,
		bids:          c.BidService,
		hiring:        c.HiringService,
		notifications: c.NotificationService,
		bus:           bus,
	}
}

func withUser(ctx context.Context, userID string) context.Context {
	if userID == "" || logger.GetUserID(ctx) != "" {
		return ctx
	}
	return logger.WithUserID(ctx, userID)
}

// --- Gigs ---

func (f *GigBidFacade) CreateGig(ctx context.Context, ownerID string, req *dto.CreateGigRequest) (*models.Gig, error) {
	return f.gigs.CreateGig(withUser(ctx, ownerID), ownerID, req)
}

func (f *GigBidFacade) ListGigs(ctx context.Context, requesterID string, req *dto.ListGigsRequest) (*dto.GigListResponse, error) {
	return f.gigs.ListGigs(withUser(ctx, requesterID), requesterID, req)
}

func (f *GigBidFacade) GetGig(ctx context.Context, gigID string) (*models.Gig, error) {
	return f.gigs.GetGig(ctx, gigID)
}

func (f *GigBidFacade) SetGigStatus(ctx context.Context, gigID string, status models.GigStatus, requesterID string) (*models.Gig, error) {
	return f.gigs.SetStatus(withUser(ctx, requesterID), gigID, status, requesterID)
}

// --- Bids ---

func (f *GigBidFacade) CreateBid(ctx context.Context, bidderID string, req *dto.CreateBidRequest) (*models.Bid, error) {
	return f.bids.CreateBid(withUser(ctx, bidderID), bidderID, req)
}

func (f *GigBidFacade) ListBidsForGig(ctx context.Context, gigID, requesterID string) ([]models.Bid, error) {
	return f.bids.ListBidsForGig(withUser(ctx, requesterID), gigID, requesterID)
}

func (f *GigBidFacade) ListMyBids(ctx context.Context, bidderID string) ([]models.Bid, error) {
	return f.bids.ListMyBids(withUser(ctx, bidderID), bidderID)
}

func (f *GigBidFacade) Hire(ctx context.Context, bidID, requesterID string) (*models.Bid, error) {
	return f.hiring.Hire(withUser(ctx, requesterID), bidID, requesterID)
}

// --- Notifications ---

func (f *GigBidFacade) ListNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	return f.notifications.ListForUser(withUser(ctx, userID), userID)
}

func (f *GigBidFacade) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return f.notifications.UnreadCount(withUser(ctx, userID), userID)
}

func (f *GigBidFacade) MarkRead(ctx context.Context, notificationID, userID string) (*models.Notification, error) {
	return f.notifications.MarkRead(withUser(ctx, userID), notificationID, userID)
}

func (f *GigBidFacade) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return f.notifications.MarkAllRead(withUser(ctx, userID), userID)
}

// --- Real-time ---

func (f *GigBidFacade) Connect(credential string) (*ws.Session, error) {
	return f.bus.Connect(credential)
}

func (f *GigBidFacade) OnNotification(s *ws.Session, cb func(*models.Notification)) {
	f.bus.OnNotification(s, cb)
}

func (f *GigBidFacade) Disconnect(s *ws.Session) {
	f.bus.Disconnect(s)
}
