package seeders

import (
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/edura-learn/edura_api/model"
	"github.com/edura-learn/edura_api/shared"
)

// AdminSeeder handles seeding the admin account
type AdminSeeder struct {
	db *gorm.DB
}

// NewAdminSeeder creates a new admin seeder
func NewAdminSeeder(db *gorm.DB) *AdminSeeder {
	return &AdminSeeder{db: db}
}

// SeedAdmin creates the default admin user if none exists and returns it.
func (s *AdminSeeder) SeedAdmin() (*model.User, error) {
	var existing model.User
	if err := s.db.Where("role = ?", shared.RoleAdmin).First(&existing).Error; err == nil {
		log.Println("Admin user already exists, skipping admin seeding")
		return &existing, nil
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id, _ := uuid.NewV7()
	admin := model.User{
		ID:           id.String(),
		Email:        "admin@edura.com",
		Username:     "admin",
		PasswordHash: string(hashed),
		Role:         shared.RoleAdmin,
	}

	if err := s.db.Create(&admin).Error; err != nil {
		log.Printf("Error creating admin user: %v", err)
		return nil, err
	}

	log.Printf("Created admin user: %s", admin.Email)
	return &admin, nil
}
