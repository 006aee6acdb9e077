package services_test

import (
	"context"
	"testing"
	"time"

	"gigflow_backend/internal/auth"
	"gigflow_backend/internal/models"
	"gigflow_backend/internal/services"
	"gigflow_backend/internal/services/dto"
	"gigflow_backend/internal/validator"
	"gigflow_backend/test/helpers"
	"gigflow_backend/ws"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "services-test-secret"

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	ctx    context.Context
	db     *gorm.DB
	clock  *helpers.Clock
	bus    *ws.Manager
	svc    *services.ServiceContainer
	facade *services.GigBidFacade
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	helpers.QuietLogs()

	db := helpers.NewTestDB(t)
	clock := helpers.NewClock(epoch)
	bus := ws.NewManager(auth.NewTokenVerifier(testSecret), 64)
	t.Cleanup(bus.Shutdown)

	svc := services.NewServiceContainer(db, bus, validator.NewWithClock(clock.Now), clock.Now)

	return &testEnv{
		ctx:    context.Background(),
		db:     db,
		clock:  clock,
		bus:    bus,
		svc:    svc,
		facade: services.NewGigBidFacade(svc, bus),
	}
}

func (e *testEnv) user(t *testing.T, name string) *models.User {
	return helpers.CreateUser(t, e.db, name)
}

func (e *testEnv) token(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.IssueToken(testSecret, userID, time.Hour)
	require.NoError(t, err)
	return token
}

func (e *testEnv) gig(t *testing.T, ownerID, title string, budget float64) *models.Gig {
	t.Helper()
	gig, err := e.svc.GigService.CreateGig(e.ctx, ownerID, &dto.CreateGigRequest{
		Title:       title,
		Description: "A description long enough for " + title,
		Budget:      budget,
		Deadline:    dto.NewDate(epoch.AddDate(0, 1, 0)),
	})
	require.NoError(t, err)
	return gig
}

func (e *testEnv) bid(t *testing.T, bidderID, gigID string, price float64) *models.Bid {
	t.Helper()
	bid, err := e.svc.BidService.CreateBid(e.ctx, bidderID, &dto.CreateBidRequest{
		GigID:   gigID,
		Price:   price,
		Message: "I can do this",
	})
	require.NoError(t, err)
	return bid
}

func (e *testEnv) reloadGig(t *testing.T, id string) *models.Gig {
	t.Helper()
	var gig models.Gig
	require.NoError(t, e.db.First(&gig, "id = ?", id).Error)
	return &gig
}

func (e *testEnv) reloadBid(t *testing.T, id string) *models.Bid {
	t.Helper()
	var bid models.Bid
	require.NoError(t, e.db.First(&bid, "id = ?", id).Error)
	return &bid
}

func (e *testEnv) countBids(t *testing.T, gigID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&models.Bid{}).Where("gig_id = ?", gigID).Count(&n).Error)
	return n
}

func (e *testEnv) notificationsOf(t *testing.T, userID, notifType string) []models.Notification {
	t.Helper()
	var ns []models.Notification
	require.NoError(t, e.db.Where("user_id = ? AND type = ?", userID, notifType).Find(&ns).Error)
	return ns
}
