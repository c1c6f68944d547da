package db

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/zhotheone/nailapp/internal/config"
	"github.com/zhotheone/nailapp/internal/models"
)

// ActiveSlotIndex keeps two non-cancelled appointments off the same minute.
const ActiveSlotIndex = "idx_appointments_active_slot"

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := Connect(cfg.DBUrl, logger.Warn)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// Connect opens Postgres for postgres:// DSNs and SQLite (pure Go driver) for
// anything else.
func Connect(dsn string, level logger.LogLevel) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger:                                   logger.Default.LogMode(level),
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	if isPostgres(dsn) {
		gcfg.PrepareStmt = true
		db, err := gorm.Open(postgres.Open(dsn), gcfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
		return db, nil
	}

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		gcfg,
	)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	// SQLite serialises writers anyway; one connection avoids "database is locked".
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Procedure{},
		&models.Schedule{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// Partial unique index; both Postgres and SQLite support the syntax.
	return db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS ` + ActiveSlotIndex + `
        ON appointments (scheduled_at)
        WHERE status <> 'cancelled'
    `).Error
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
