package db

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rentwheels/fleet-api/internal/config"
	"github.com/rentwheels/fleet-api/internal/logger"
	"github.com/rentwheels/fleet-api/internal/models"
)

func NewDB(cfg *config.Config, log logger.ILogger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Error("failed to connect database", logger.Error(err))
		panic(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Error("failed to get sql.DB", logger.Error(err))
		panic(err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Error("failed to migrate", logger.Error(err))
		panic(err)
	}

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.CustomerProfile{},
		&models.Car{},
		&models.Booking{},
		&models.Package{},
		&models.Payment{},
		&models.Maintenance{},
		&models.AuditLog{},
	)
}
