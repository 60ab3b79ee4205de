package models

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"mediassist/internal/config"
)

// BaseModel contains the audit columns shared by every table. Identifiers are
// declared per model because each kind names its own.
type BaseModel struct {
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// InitDB opens the configured database and migrates every model.
func InitDB(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.StorageMySQL:
		dialector = mysql.Open(cfg.DSN)
	case config.StoragePostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", cfg.Driver, err)
	}

	start := time.Now()
	if err := db.AutoMigrate(All()...); err != nil {
		return nil, fmt.Errorf("auto-migrating models: %w", err)
	}
	log.Info("database ready",
		zap.String("driver", cfg.Driver),
		zap.String("host", cfg.Host),
		zap.Duration("migration", time.Since(start)),
	)
	return db, nil
}

// All lists every persisted model, in migration order.
func All() []any {
	return []any{
		&User{},
		&Patient{},
		&Doctor{},
		&Appointment{},
		&Billing{},
		&Prescription{},
		&MedicalRecord{},
	}
}
