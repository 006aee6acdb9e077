package handlers

import "gigflow_backend/internal/services"

// AppHandlers holds every HTTP handler of the API.
type AppHandlers struct {
	GigHandler          *GigHandler
	BidHandler          *BidHandler
	NotificationHandler *NotificationHandler
}

func NewAppHandlers(base *BaseHandler, facade *services.GigBidFacade) *AppHandlers {
	return &AppHandlers{
		GigHandler:          NewGigHandler(base, facade),
		BidHandler:          NewBidHandler(base, facade),
		NotificationHandler: NewNotificationHandler(base, facade),
	}
}
