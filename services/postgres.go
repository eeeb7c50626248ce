package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/edura-learn/edura_api/model"
	"github.com/edura-learn/edura_api/shared"
	"github.com/google/uuid"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PostgresService struct {
	context.DefaultService
	db *gorm.DB

	database string
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds PostgresService) Db() *gorm.DB {
	return ds.db
}

func (ds *PostgresService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		// Fallback to individual environment variables
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		password := os.Getenv("DB_PASSWORD")
		if password == "" {
			password = "postgres"
		}
		dbname := os.Getenv("DB_NAME")
		if dbname == "" {
			dbname = "edura_api"
		}
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}
		timezone := os.Getenv("DB_TIMEZONE")
		if timezone == "" {
			timezone = "UTC"
		}

		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			host, user, password, dbname, port, sslmode, timezone)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *PostgresService) Start() (err error) {
	// Retry connection with exponential backoff
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)

		ds.db, err = gorm.Open(postgres.Open(ds.database), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Error),
			TranslateError: true,
		})

		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					log.Println("Successfully connected to database")
					break
				}
				err = pingErr
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	if err := ds.Migrate(ds.db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

// Migrate runs AutoMigrate against the given connection. Split out so the
// test suite can apply the same schema to an in-memory database.
func (ds *PostgresService) Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Lesson{},
		&model.Quest{},
		&model.QuestQuestion{},
		&model.Enrollment{},
		&model.CompletedLesson{},
		&model.CompletedQuest{},
		&model.Note{},
	)
}

// WithDb swaps the underlying connection. Tests use this to point the
// service at an in-memory database.
func (ds *PostgresService) WithDb(db *gorm.DB) *PostgresService {
	ds.db = db
	return ds
}

func (ds *PostgresService) Shutdown() {
	if ds.db == nil {
		return
	}
	sqlDB, err := ds.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// HandleError maps storage errors onto status-coded application errors so
// the HTTP layer never inspects gorm internals.
func (ds *PostgresService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest
		errorType = "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError
		errorType = "TRANSACTION_ERROR"
	default:
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			statusCode = http.StatusConflict
			errorType = "UNIQUE_CONSTRAINT"
		} else if strings.Contains(err.Error(), "connection refused") {
			statusCode = http.StatusServiceUnavailable
			errorType = "DATABASE_CONNECTION_ERROR"
		} else {
			statusCode = http.StatusInternalServerError
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return shared.NewAppError(statusCode, err, errorType)
}

// ==================== USER METHODS ====================

func (ds *PostgresService) CreateUser(user *model.User) (*model.User, error) {
	if user.ID == "" {
		id, _ := uuid.NewV7()
		user.ID = id.String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	if err := ds.db.Create(user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return user, nil
}

func (ds *PostgresService) GetUser(userID string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &user, nil
}

func (ds *PostgresService) GetUserByEmailOrUsername(emailOrUsername string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("email = ? OR username = ?", emailOrUsername, emailOrUsername).First(&user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &user, nil
}

func (ds *PostgresService) UpdateUser(user *model.User) error {
	user.UpdatedAt = time.Now()
	if err := ds.db.Save(user).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *PostgresService) IsUsernameAvailable(username string) (bool, error) {
	var count int64
	err := ds.db.Model(&model.User{}).Where("LOWER(username) = LOWER(?)", username).Count(&count).Error
	if err != nil {
		return false, ds.HandleError(err)
	}
	return count == 0, nil
}

func (ds *PostgresService) IsEmailAvailable(email string) (bool, error) {
	var count int64
	err := ds.db.Model(&model.User{}).Where("LOWER(email) = LOWER(?)", email).Count(&count).Error
	if err != nil {
		return false, ds.HandleError(err)
	}
	return count == 0, nil
}

func (ds *PostgresService) ListUsersByRole(role string) ([]model.User, error) {
	var users []model.User
	if err := ds.db.Where("role = ?", role).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return users, nil
}

// AddUserRewardsTx credits exp/coins inside the caller's transaction. The
// increments are relative so two concurrent completions of different
// lessons both land.
func (ds *PostgresService) AddUserRewardsTx(tx *gorm.DB, userID string, exp, coins int) error {
	if exp == 0 && coins == 0 {
		return nil
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if exp != 0 {
		updates["exp"] = gorm.Expr("exp + ?", exp)
	}
	if coins != 0 {
		updates["coins"] = gorm.Expr("coins + ?", coins)
	}

	res := tx.Model(&model.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return ds.HandleError(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.NewNotFoundError(gorm.ErrRecordNotFound, "User not found")
	}
	return nil
}

// ==================== COURSE METHODS ====================

func (ds *PostgresService) CreateCourse(course *model.Course) (*model.Course, error) {
	if course.ID == "" {
		id, _ := uuid.NewV7()
		course.ID = id.String()
	}
	course.CreatedAt = time.Now()
	course.UpdatedAt = time.Now()

	if err := ds.db.Create(course).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return course, nil
}

func (ds *PostgresService) GetCourse(id string) (*model.Course, error) {
	var course model.Course
	if err := ds.db.Where("id = ?", id).First(&course).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &course, nil
}

func (ds *PostgresService) ListCourses(difficulty string, limit int) ([]model.Course, error) {
	var courses []model.Course
	query := ds.db.Model(&model.Course{}).Order("created_at DESC")

	if difficulty != "" {
		query = query.Where("difficulty_level = ?", difficulty)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&courses).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return courses, nil
}

func (ds *PostgresService) GetCoursesByCreator(creatorID string) ([]model.Course, error) {
	var courses []model.Course
	if err := ds.db.Where("creator_id = ?", creatorID).Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return courses, nil
}

func (ds *PostgresService) UpdateCourse(course *model.Course) error {
	course.UpdatedAt = time.Now()
	if err := ds.db.Save(course).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *PostgresService) DeleteCourse(id string) error {
	if err := ds.db.Where("id = ?", id).Delete(&model.Course{}).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

// AddCourseRewardTotals bumps the course's informational reward sums when
// a lesson or quest is added under it.
func (ds *PostgresService) AddCourseRewardTotals(courseID string, exp, coins int) error {
	if exp == 0 && coins == 0 {
		return nil
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if exp != 0 {
		updates["total_exp"] = gorm.Expr("total_exp + ?", exp)
	}
	if coins != 0 {
		updates["total_coins"] = gorm.Expr("total_coins + ?", coins)
	}

	if err := ds.db.Model(&model.Course{}).Where("id = ?", courseID).Updates(updates).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

// ==================== LESSON METHODS ====================

func (ds *PostgresService) CreateLesson(lesson *model.Lesson) (*model.Lesson, error) {
	if lesson.ID == "" {
		id, _ := uuid.NewV7()
		lesson.ID = id.String()
	}
	lesson.CreatedAt = time.Now()
	lesson.UpdatedAt = time.Now()

	if err := ds.db.Create(lesson).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return lesson, nil
}

func (ds *PostgresService) GetLesson(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := ds.db.Where("id = ?", id).First(&lesson).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &lesson, nil
}

func (ds *PostgresService) GetLessonsByCourse(courseID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	if err := ds.db.Where("course_id = ?", courseID).
		Order("order_number ASC").Find(&lessons).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return lessons, nil
}

// GetAdjacentLesson returns the nearest lesson before or after the given
// order number within the course, or nil when there is none.
func (ds *PostgresService) GetAdjacentLesson(courseID string, orderNumber int, next bool) (*model.Lesson, error) {
	var lesson model.Lesson
	query := ds.db.Where("course_id = ?", courseID)
	if next {
		query = query.Where("order_number > ?", orderNumber).Order("order_number ASC")
	} else {
		query = query.Where("order_number < ?", orderNumber).Order("order_number DESC")
	}

	if err := query.First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, ds.HandleError(err)
	}
	return &lesson, nil
}

func (ds *PostgresService) UpdateLesson(lesson *model.Lesson) error {
	lesson.UpdatedAt = time.Now()
	if err := ds.db.Save(lesson).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *PostgresService) DeleteLesson(id string) error {
	if err := ds.db.Where("id = ?", id).Delete(&model.Lesson{}).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *PostgresService) CountLessonsTx(tx *gorm.DB, courseID string) (int64, error) {
	var count int64
	if err := tx.Model(&model.Lesson{}).Where("course_id = ?", courseID).Count(&count).Error; err != nil {
		return 0, ds.HandleError(err)
	}
	return count, nil
}

// ==================== QUEST METHODS ====================

func (ds *PostgresService) CreateQuest(quest *model.Quest) (*model.Quest, error) {
	if quest.ID == "" {
		id, _ := uuid.NewV7()
		quest.ID = id.String()
	}
	quest.CreatedAt = time.Now()
	quest.UpdatedAt = time.Now()

	if err := ds.db.Create(quest).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return quest, nil
}

func (ds *PostgresService) GetQuest(id string) (*model.Quest, error) {
	var quest model.Quest
	if err := ds.db.Where("id = ?", id).First(&quest).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &quest, nil
}

func (ds *PostgresService) GetQuestsByLesson(lessonID string) ([]model.Quest, error) {
	var quests []model.Quest
	if err := ds.db.Where("lesson_id = ?", lessonID).
		Order("created_at ASC").Find(&quests).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return quests, nil
}

func (ds *PostgresService) GetQuestsByCourse(courseID string) ([]model.Quest, error) {
	var quests []model.Quest
	if err := ds.db.Where("course_id = ?", courseID).
		Order("created_at ASC").Find(&quests).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return quests, nil
}

func (ds *PostgresService) DeleteQuest(id string) error {
	if err := ds.db.Where("quest_id = ?", id).Delete(&model.QuestQuestion{}).Error; err != nil {
		return ds.HandleError(err)
	}
	if err := ds.db.Where("id = ?", id).Delete(&model.Quest{}).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

// ==================== QUESTION METHODS ====================

func (ds *PostgresService) CreateQuestion(question *model.QuestQuestion) (*model.QuestQuestion, error) {
	if question.ID == "" {
		id, _ := uuid.NewV7()
		question.ID = id.String()
	}
	question.CreatedAt = time.Now()
	question.UpdatedAt = time.Now()

	if err := ds.db.Create(question).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return question, nil
}

func (ds *PostgresService) GetQuestionsByQuest(questID string) ([]model.QuestQuestion, error) {
	var questions []model.QuestQuestion
	if err := ds.db.Where("quest_id = ?", questID).
		Order("created_at ASC").Find(&questions).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return questions, nil
}

func (ds *PostgresService) DeleteQuestion(id string) error {
	if err := ds.db.Where("id = ?", id).Delete(&model.QuestQuestion{}).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

// ==================== ENROLLMENT METHODS ====================

func (ds *PostgresService) CreateEnrollment(enrollment *model.Enrollment) (*model.Enrollment, error) {
	if enrollment.ID == "" {
		id, _ := uuid.NewV7()
		enrollment.ID = id.String()
	}
	now := time.Now()
	enrollment.EnrollmentDate = now
	enrollment.LastAccessedDate = now
	enrollment.CreatedAt = now
	enrollment.UpdatedAt = now

	if err := ds.db.Create(enrollment).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return enrollment, nil
}

func (ds *PostgresService) GetEnrollment(userID, courseID string) (*model.Enrollment, error) {
	return ds.GetEnrollmentTx(ds.db, userID, courseID)
}

func (ds *PostgresService) GetEnrollmentTx(tx *gorm.DB, userID, courseID string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	if err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &enrollment, nil
}

func (ds *PostgresService) GetUserEnrollments(userID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	if err := ds.db.Where("user_id = ?", userID).
		Order("enrollment_date DESC").Find(&enrollments).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return enrollments, nil
}

func (ds *PostgresService) GetCourseEnrollments(courseID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	if err := ds.db.Where("course_id = ?", courseID).
		Order("enrollment_date DESC").Find(&enrollments).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return enrollments, nil
}

func (ds *PostgresService) CountEnrollments(courseID string) (int64, error) {
	var count int64
	if err := ds.db.Model(&model.Enrollment{}).Where("course_id = ?", courseID).Count(&count).Error; err != nil {
		return 0, ds.HandleError(err)
	}
	return count, nil
}

func (ds *PostgresService) UpdateEnrollmentTx(tx *gorm.DB, enrollment *model.Enrollment) error {
	enrollment.UpdatedAt = time.Now()
	if err := tx.Save(enrollment).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

// ==================== COMPLETION METHODS ====================

func (ds *PostgresService) CreateCompletedLessonTx(tx *gorm.DB, completed *model.CompletedLesson) error {
	if completed.ID == "" {
		id, _ := uuid.NewV7()
		completed.ID = id.String()
	}
	now := time.Now()
	if completed.CompletionDate.IsZero() {
		completed.CompletionDate = now
	}
	completed.CreatedAt = now

	if err := tx.Create(completed).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *PostgresService) HasCompletedLessonTx(tx *gorm.DB, userID, lessonID string) (bool, error) {
	var count int64
	if err := tx.Model(&model.CompletedLesson{}).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Count(&count).Error; err != nil {
		return false, ds.HandleError(err)
	}
	return count > 0, nil
}

// CountCompletedLessonsTx counts the user's completed lessons that belong
// to the given course. The join keeps completions of since-deleted lessons
// from inflating the numerator.
func (ds *PostgresService) CountCompletedLessonsTx(tx *gorm.DB, userID, courseID string) (int64, error) {
	var count int64
	if err := tx.Model(&model.CompletedLesson{}).
		Joins("JOIN lessons ON lessons.id = completed_lessons.lesson_id").
		Where("completed_lessons.user_id = ? AND lessons.course_id = ?", userID, courseID).
		Count(&count).Error; err != nil {
		return 0, ds.HandleError(err)
	}
	return count, nil
}

func (ds *PostgresService) GetCompletedLessonIDs(userID, courseID string) ([]string, error) {
	var ids []string
	if err := ds.db.Model(&model.CompletedLesson{}).
		Joins("JOIN lessons ON lessons.id = completed_lessons.lesson_id").
		Where("completed_lessons.user_id = ? AND lessons.course_id = ?", userID, courseID).
		Pluck("completed_lessons.lesson_id", &ids).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return ids, nil
}

func (ds *PostgresService) CountUserCompletedLessons(userID string) (int64, error) {
	var count int64
	if err := ds.db.Model(&model.CompletedLesson{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, ds.HandleError(err)
	}
	return count, nil
}

func (ds *PostgresService) CreateCompletedQuestTx(tx *gorm.DB, completed *model.CompletedQuest) error {
	if completed.ID == "" {
		id, _ := uuid.NewV7()
		completed.ID = id.String()
	}
	now := time.Now()
	if completed.CompletionDate.IsZero() {
		completed.CompletionDate = now
	}
	completed.CreatedAt = now

	if err := tx.Create(completed).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *PostgresService) HasCompletedQuestTx(tx *gorm.DB, userID, questID string) (bool, error) {
	var count int64
	if err := tx.Model(&model.CompletedQuest{}).
		Where("user_id = ? AND quest_id = ?", userID, questID).
		Count(&count).Error; err != nil {
		return false, ds.HandleError(err)
	}
	return count > 0, nil
}

func (ds *PostgresService) GetCompletedQuestIDs(userID, courseID string) ([]string, error) {
	var ids []string
	if err := ds.db.Model(&model.CompletedQuest{}).
		Joins("JOIN quests ON quests.id = completed_quests.quest_id").
		Where("completed_quests.user_id = ? AND quests.course_id = ?", userID, courseID).
		Pluck("completed_quests.quest_id", &ids).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return ids, nil
}

func (ds *PostgresService) CountUserCompletedQuests(userID string) (int64, error) {
	var count int64
	if err := ds.db.Model(&model.CompletedQuest{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, ds.HandleError(err)
	}
	return count, nil
}

// ==================== NOTE METHODS ====================

func (ds *PostgresService) CreateNote(note *model.Note) (*model.Note, error) {
	if note.ID == "" {
		id, _ := uuid.NewV7()
		note.ID = id.String()
	}
	note.CreatedAt = time.Now()
	note.UpdatedAt = time.Now()

	if err := ds.db.Create(note).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return note, nil
}

func (ds *PostgresService) GetNote(id string) (*model.Note, error) {
	var note model.Note
	if err := ds.db.Preload("User").Where("id = ?", id).First(&note).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &note, nil
}

func (ds *PostgresService) ListNotes(userID string, limit int) ([]model.Note, error) {
	var notes []model.Note
	query := ds.db.Preload("User").Order("created_at DESC")

	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&notes).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return notes, nil
}

func (ds *PostgresService) VoteNote(id, voteType string) error {
	column := "upvote_count"
	if voteType == shared.VoteTypeDown {
		column = "downvote_count"
	}

	res := ds.db.Model(&model.Note{}).Where("id = ?", id).Updates(map[string]interface{}{
		column:       gorm.Expr(column + " + 1"),
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return ds.HandleError(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.NewNotFoundError(gorm.ErrRecordNotFound, "Note not found")
	}
	return nil
}

func (ds *PostgresService) DeleteNote(id string) error {
	if err := ds.db.Where("id = ?", id).Delete(&model.Note{}).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}
