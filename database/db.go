package database

import (
	"fmt"
	"os"

	"bluecollar/database/seeders"
	"bluecollar/logger"
	"bluecollar/models/artisan"
	"bluecollar/models/booking"
	"bluecollar/models/log"
	"bluecollar/models/review"
	"bluecollar/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	// Get database configuration from environment variables
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	// Set default sslmode if not provided
	if sslmode == "" {
		sslmode = "disable"
	}

	// Build PostgreSQL DSN string
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	// Create indexes for better performance
	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	// Seed the admin account if it does not exist yet
	if err := seeders.SeedAdmin(DB); err != nil {
		logger.Error("Failed to seed admin account", err)
		return nil, err
	}

	return DB, nil
}

// autoMigrate runs auto migration for all models
func autoMigrate() error {
	// First, migrate models without foreign key constraints in stages

	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&user.User{},
		&artisan.Artisan{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Models with dependencies on Stage 1
	stage2Models := []interface{}{
		&review.Review{},
		&booking.Order{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Remaining models
	remainingModels := []interface{}{
		// Logging
		&log.Log{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// User indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_public_id ON users(public_id)").Error; err != nil {
		return fmt.Errorf("failed to create user public_id index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)").Error; err != nil {
		return fmt.Errorf("failed to create user username index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)").Error; err != nil {
		return fmt.Errorf("failed to create user email index: %w", err)
	}

	// Artisan indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_artisans_username ON artisans(username)").Error; err != nil {
		return fmt.Errorf("failed to create artisan username index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_artisans_service ON artisans(service)").Error; err != nil {
		return fmt.Errorf("failed to create artisan service index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_artisans_location ON artisans(location)").Error; err != nil {
		return fmt.Errorf("failed to create artisan location index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_artisans_active_verified ON artisans(active, verified)").Error; err != nil {
		return fmt.Errorf("failed to create artisan active_verified index: %w", err)
	}

	// Order indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_orders_booked_by ON orders(booked_by)").Error; err != nil {
		return fmt.Errorf("failed to create order booked_by index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_orders_artisan_username ON orders(artisan_username)").Error; err != nil {
		return fmt.Errorf("failed to create order artisan_username index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_orders_state ON orders(state)").Error; err != nil {
		return fmt.Errorf("failed to create order state index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create order created_at index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_method ON logs(method)").Error; err != nil {
		return fmt.Errorf("failed to create log method index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
