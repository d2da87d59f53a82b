package database

import (
	"gogett/config"
	"gogett/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Courier{},
		&models.CourierProfile{},
		&models.CourierVehicle{},
		&models.CourierBank{},
		&models.BlacklistedToken{},
		&models.Order{},
		&models.OrderMobile{},
		&models.OrderPayment{},
		&models.OrderPaymentDetail{},
		&models.OrderReturn{},
		&models.DeliveryPayment{},
		&models.CashInHandEntry{},
		&models.Deposit{},
		&models.ArrearsEntry{},
		&models.WithdrawalRequest{},
		&models.Fine{},
		&models.RefSequence{},
		&models.Review{},
		&models.CustomerReview{},
		&models.SellerReview{},
		&models.Ticket{},
		&models.TicketMessage{},
	)
}
