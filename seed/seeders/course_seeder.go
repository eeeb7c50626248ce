package seeders

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edura-learn/edura_api/model"
	"github.com/edura-learn/edura_api/shared"
)

// CourseSeeder seeds a demo course with lessons, quests and questions so a
// fresh install has content to click through.
type CourseSeeder struct {
	db *gorm.DB
}

// NewCourseSeeder creates a new course seeder
func NewCourseSeeder(db *gorm.DB) *CourseSeeder {
	return &CourseSeeder{db: db}
}

// SeedCourses inserts the demo course owned by the given creator. Skips
// seeding when any course already exists.
func (s *CourseSeeder) SeedCourses(creatorID string) error {
	var count int64
	if err := s.db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Courses already exist, skipping course seeding")
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		courseID := newID()
		course := model.Course{
			ID:              courseID,
			Title:           "Introduction to Go",
			Description:     "Build your first Go programs from variables to goroutines.",
			DifficultyLevel: shared.DifficultyBeginner,
			DurationHours:   6,
			CreatorID:       creatorID,
		}

		lessons := []model.Lesson{
			{
				ID:          newID(),
				CourseID:    courseID,
				Title:       "Getting Started",
				ContentHTML: "<h1>Getting Started</h1><p>Install the toolchain and write hello world.</p>",
				OrderNumber: 1,
				ExpReward:   50,
				CoinsReward: 10,
			},
			{
				ID:          newID(),
				CourseID:    courseID,
				Title:       "Types and Control Flow",
				ContentHTML: "<h1>Types and Control Flow</h1><p>Structs, slices, maps and loops.</p>",
				OrderNumber: 2,
				ExpReward:   75,
				CoinsReward: 15,
			},
			{
				ID:          newID(),
				CourseID:    courseID,
				Title:       "Concurrency Basics",
				ContentHTML: "<h1>Concurrency Basics</h1><p>Goroutines, channels and select.</p>",
				OrderNumber: 3,
				ExpReward:   100,
				CoinsReward: 20,
			},
		}

		for _, lesson := range lessons {
			course.TotalExp += lesson.ExpReward
			course.TotalCoins += lesson.CoinsReward
		}

		quest := model.Quest{
			ID:                  newID(),
			LessonID:            lessons[0].ID,
			CourseID:            courseID,
			Title:               "Getting Started Quiz",
			Description:         "Check your understanding of the basics.",
			TimeDurationMinutes: 10,
			ExpReward:           40,
		}
		course.TotalExp += quest.ExpReward

		questions := []model.QuestQuestion{
			{
				ID:            newID(),
				QuestID:       quest.ID,
				QuestionText:  "Which command compiles and runs a Go program in one step?",
				Option1:       "go run",
				Option2:       "go fmt",
				Option3:       "go mod",
				Option4:       "go doc",
				CorrectOption: 1,
			},
			{
				ID:            newID(),
				QuestID:       quest.ID,
				QuestionText:  "What is the entry point function of a Go executable?",
				Option1:       "start",
				Option2:       "init",
				Option3:       "main",
				Option4:       "run",
				CorrectOption: 3,
			},
			{
				ID:            newID(),
				QuestID:       quest.ID,
				QuestionText:  "Which keyword declares a new variable with inferred type?",
				Option1:       "let",
				Option2:       "var",
				Option3:       "def",
				Option4:       "make",
				CorrectOption: 2,
			},
		}

		if err := tx.Create(&course).Error; err != nil {
			return err
		}
		if err := tx.Create(&lessons).Error; err != nil {
			return err
		}
		if err := tx.Create(&quest).Error; err != nil {
			return err
		}
		if err := tx.Create(&questions).Error; err != nil {
			return err
		}

		log.Printf("Seeded course %q with %d lessons and %d quiz questions", course.Title, len(lessons), len(questions))
		return nil
	})
}

func newID() string {
	id, _ := uuid.NewV7()
	return id.String()
}
