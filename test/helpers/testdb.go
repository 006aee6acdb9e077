package helpers

import (
	"fmt"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"gigflow_backend/database"
	"gigflow_backend/internal/logger"
	"gigflow_backend/internal/models"
	"gigflow_backend/internal/repositories"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with the full schema.
// A single connection serialises transactions the way row locks do in
// PostgreSQL, so concurrency tests see the same winner/loser outcomes.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)", uuid.NewString())

	cfg := database.Config(false)
	cfg.Logger = gormlogger.Discard

	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	require.NoError(t, err, "open sqlite test db")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// QuietLogs routes the application logger to nowhere for the test binary.
func QuietLogs() {
	logger.InitWithWriter("test", io.Discard)
}

// Clock is a deterministic clock that advances one second per reading so
// rows created in sequence get strictly increasing timestamps.
type Clock struct {
	ticks atomic.Int64
	start time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{start: start.UTC()}
}

func (c *Clock) Now() time.Time {
	n := c.ticks.Add(1)
	return c.start.Add(time.Duration(n) * time.Second)
}

// CreateUser inserts a user profile with a unique email.
func CreateUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := &models.User{
		Name:  name,
		Email: fmt.Sprintf("%s_%s@test.com", name, uuid.NewString()[:8]),
	}
	require.NoError(t, repositories.NewUserRepository().Upsert(db, user), "create user %s", name)
	return user
}

// CreateGig inserts an open gig directly, bypassing validation.
func CreateGig(t *testing.T, db *gorm.DB, ownerID, title string, budget float64, createdAt time.Time) *models.Gig {
	t.Helper()

	gig := &models.Gig{
		OwnerID:     ownerID,
		Title:       title,
		Description: "Description for " + title,
		Budget:      budget,
		Deadline:    createdAt.AddDate(0, 1, 0),
		Status:      models.GigStatusOpen,
	}
	gig.CreatedAt = createdAt
	gig.UpdatedAt = createdAt
	require.NoError(t, db.Create(gig).Error, "create gig %s", title)
	return gig
}
