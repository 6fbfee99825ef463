package database

import (
	"time"

	"github.com/notemind/notemind/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoUser defines the development demo account
type DemoUser struct {
	Name     string
	Email    string
	Password string
}

// GetDemoUser returns the demo account seeded in development
func GetDemoUser() DemoUser {
	return DemoUser{
		Name:     "Demo User",
		Email:    "demo@notemind.local",
		Password: "demo12345",
	}
}

// Seed creates initial development data. Not called in production.
func Seed(db *gorm.DB, bcryptCost int) error {
	return SeedDemoUser(db, bcryptCost)
}

// SeedDemoUser creates the demo user if it does not exist yet
func SeedDemoUser(db *gorm.DB, bcryptCost int) error {
	demo := GetDemoUser()

	var existing model.User
	result := db.Where("email = ?", demo.Email).First(&existing)

	if result.Error == nil {
		// User already exists, skip seeding
		return nil
	}

	if result.Error != gorm.ErrRecordNotFound {
		return result.Error
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(demo.Password), bcryptCost)
	if err != nil {
		return err
	}

	user := model.User{
		Name:       demo.Name,
		Email:      demo.Email,
		Password:   string(hashedPassword),
		Avatar:     model.DefaultAvatar,
		LastActive: time.Now(),
	}

	return db.Create(&user).Error
}
