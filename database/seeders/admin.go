package seeders

import (
	"errors"
	"log"
	"os"

	"bluecollar/models/role"
	"bluecollar/models/user"
	"bluecollar/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeedAdmin makes sure a single administrator account exists. The
// credentials come from ADMIN_EMAIL / ADMIN_PASSWORD; nothing is seeded
// when they are unset.
func SeedAdmin(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")

	if email == "" || password == "" {
		log.Printf("⚠️ ADMIN_EMAIL / ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	var existing user.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("✅ Admin account already present: %s", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := user.User{
		PublicID:  uuid.NewString(),
		Username:  "admin",
		FirstName: "Site",
		LastName:  "Administrator",
		Email:     email,
		Password:  hashed,
		Role:      role.Admin,
		Active:    true,
		Verified:  true,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Printf("❌ Failed to seed admin account: %v", err)
		return err
	}

	log.Printf("🌱 Seeded admin account: %s", email)
	return nil
}
