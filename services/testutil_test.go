package services

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/edura-learn/edura_api/dto"
	"github.com/edura-learn/edura_api/model"
	"github.com/edura-learn/edura_api/shared"
)

// newTestDB opens a fresh in-memory database with the full schema applied.
// Each test gets its own database so parallel tests never share state.
func newTestDB(t *testing.T) *PostgresService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A shared-cache memory database disappears when its last connection
	// closes. Pin one open for the lifetime of the test.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	sql := (&PostgresService{}).WithDb(db)
	if err := sql.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return sql
}

func createTestUser(t *testing.T, sql *PostgresService, username string) *model.User {
	t.Helper()

	user, err := sql.CreateUser(&model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
		Role:         shared.RoleStudent,
		Rank:         "Bronze",
	})
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestCourse(t *testing.T, sql *PostgresService, creatorID string) *model.Course {
	t.Helper()

	course, err := sql.CreateCourse(&model.Course{
		Title:           "Test Course",
		Description:     "A course used in tests",
		DifficultyLevel: shared.DifficultyBeginner,
		CreatorID:       creatorID,
	})
	if err != nil {
		t.Fatalf("failed to create test course: %v", err)
	}
	return course
}

func createTestLesson(t *testing.T, sql *PostgresService, courseID string, order, exp, coins int) *model.Lesson {
	t.Helper()

	lesson, err := sql.CreateLesson(&model.Lesson{
		CourseID:    courseID,
		Title:       fmt.Sprintf("Lesson %d", order),
		ContentHTML: "<p>content</p>",
		OrderNumber: order,
		ExpReward:   exp,
		CoinsReward: coins,
	})
	if err != nil {
		t.Fatalf("failed to create test lesson: %v", err)
	}
	return lesson
}

func createTestQuest(t *testing.T, sql *PostgresService, lessonID, courseID string, exp int) *model.Quest {
	t.Helper()

	quest, err := sql.CreateQuest(&model.Quest{
		LessonID:            lessonID,
		CourseID:            courseID,
		Title:               "Test Quest",
		TimeDurationMinutes: 10,
		ExpReward:           exp,
	})
	if err != nil {
		t.Fatalf("failed to create test quest: %v", err)
	}
	return quest
}

func createTestQuestion(t *testing.T, sql *PostgresService, questID string, correct int) *model.QuestQuestion {
	t.Helper()

	question, err := sql.CreateQuestion(&model.QuestQuestion{
		QuestID:       questID,
		QuestionText:  "Pick the right answer",
		Option1:       "A",
		Option2:       "B",
		Option3:       "C",
		Option4:       "D",
		CorrectOption: correct,
	})
	if err != nil {
		t.Fatalf("failed to create test question: %v", err)
	}
	return question
}

func enrollTestUser(t *testing.T, sql *PostgresService, userID, courseID string) *model.Enrollment {
	t.Helper()

	enrollment, err := sql.CreateEnrollment(&model.Enrollment{
		UserID:   userID,
		CourseID: courseID,
	})
	if err != nil {
		t.Fatalf("failed to enroll test user: %v", err)
	}
	return enrollment
}

func assertStatusCode(t *testing.T, err error, want int) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with status %d, got nil", want)
	}
	appErr, ok := shared.GetAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.StatusCode != want {
		t.Fatalf("expected status %d, got %d (%v)", want, appErr.StatusCode, err)
	}
}

func answersFor(questions []*model.QuestQuestion, pick func(i int, q *model.QuestQuestion) int) []dto.QuestAnswer {
	out := make([]dto.QuestAnswer, 0, len(questions))
	for i, q := range questions {
		out = append(out, dto.QuestAnswer{
			QuestionID:     q.ID,
			SelectedOption: pick(i, q),
		})
	}
	return out
}
