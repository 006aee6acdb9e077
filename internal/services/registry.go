package services

import (
	"time"

	"gigflow_backend/internal/repositories"
	"gigflow_backend/internal/validator"

	"gorm.io/gorm"
)

// Clock returns the current time. Services never call time.Now directly.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC()
}

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	GigService          GigService
	BidService          BidService
	HiringService       HiringService
	NotificationService NotificationService
}

// NewServiceContainer wires the services over one database pool.
func NewServiceContainer(db *gorm.DB, publisher Publisher, v *validator.Validator, now Clock) *ServiceContainer {
	if now == nil {
		now = SystemClock
	}
	if v == nil {
		v = validator.NewWithClock(now)
	}

	gigRepo := repositories.NewGigRepository()
	bidRepo := repositories.NewBidRepository()
	userRepo := repositories.NewUserRepository()
	notificationRepo := repositories.NewNotificationRepository()

	notificationService := NewNotificationService(db, notificationRepo, publisher, now)

	return &ServiceContainer{
		GigService:          NewGigService(db, gigRepo, v, now),
		BidService:          NewBidService(db, gigRepo, bidRepo, userRepo, notificationService, v, now),
		HiringService:       NewHiringService(db, gigRepo, bidRepo, notificationService, now),
		NotificationService: notificationService,
	}
}
