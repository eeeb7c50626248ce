package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

// NewMainSeeder creates a new main seeder
func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders in the correct order
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	adminSeeder := NewAdminSeeder(s.db)
	admin, err := adminSeeder.SeedAdmin()
	if err != nil {
		log.Printf("Admin seeding failed: %v", err)
		return err
	}

	courseSeeder := NewCourseSeeder(s.db)
	if err := courseSeeder.SeedCourses(admin.ID); err != nil {
		log.Printf("Course seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedAdminOnly seeds only the admin account
func (s *MainSeeder) SeedAdminOnly() error {
	adminSeeder := NewAdminSeeder(s.db)
	_, err := adminSeeder.SeedAdmin()
	return err
}

// SeedCoursesOnly seeds the demo courses, creating the admin if needed
func (s *MainSeeder) SeedCoursesOnly() error {
	adminSeeder := NewAdminSeeder(s.db)
	admin, err := adminSeeder.SeedAdmin()
	if err != nil {
		return err
	}

	courseSeeder := NewCourseSeeder(s.db)
	return courseSeeder.SeedCourses(admin.ID)
}
