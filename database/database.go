package database

import (
	"fmt"
	"time"

	"gigflow_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Models lists every table the service owns, in dependency order.
var Models = []interface{}{
	&models.User{},
	&models.Gig{},
	&models.Bid{},
	&models.Notification{},
}

// Config returns the gorm settings shared by the PostgreSQL connection and
// the SQLite test database. Duplicate-key errors are translated so the
// one-accepted-bid index surfaces as gorm.ErrDuplicatedKey.
func Config(debug bool) *gorm.Config {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// ConnectGorm opens the PostgreSQL pool and checks it is reachable.
func ConnectGorm(dsn string, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), Config(debug))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// AutoMigrate creates or updates the tables from the models. It is the
// development and test path; production schemas come from the goose
// migrations.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// Partial indexes are supported by both PostgreSQL and SQLite.
	err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_bids_one_accepted_per_gig
		ON bids (gig_id) WHERE status = 'accepted'`).Error
	if err != nil {
		return fmt.Errorf("create accepted bid index: %w", err)
	}
	return nil
}
