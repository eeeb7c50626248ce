// model/enrollment.go
package model

import "time"

// Enrollment links a user to a course they are taking. At most one row per
// (user, course) pair. ProgressPercentage and IsCompleted are only written
// by the progress service; CompletionDate is set exactly once on the first
// transition to completed.
type Enrollment struct {
	ID                 string     `json:"id" gorm:"primaryKey"`
	UserID             string     `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollments_user_course,priority:1"`
	CourseID           string     `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollments_user_course,priority:2"`
	EnrollmentDate     time.Time  `json:"enrollment_date"`
	LastAccessedDate   time.Time  `json:"last_accessed_date"`
	ProgressPercentage float64    `json:"progress_percentage" gorm:"default:0"`
	IsCompleted        bool       `json:"is_completed" gorm:"default:false"`
	CompletionDate     *time.Time `json:"completion_date"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// CompletedLesson is an immutable fact: this user finished this lesson.
// The composite unique index is the idempotence guard: a concurrent
// duplicate insert fails the enclosing transaction instead of
// double-crediting the reward.
type CompletedLesson struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	UserID         string    `json:"user_id" gorm:"not null;uniqueIndex:idx_completed_lessons_user_lesson,priority:1"`
	LessonID       string    `json:"lesson_id" gorm:"not null;uniqueIndex:idx_completed_lessons_user_lesson,priority:2"`
	CompletionDate time.Time `json:"completion_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// CompletedQuest mirrors CompletedLesson for quests. Quest completions
// never feed progress_percentage; they only grant exp and record the fact.
type CompletedQuest struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	UserID           string    `json:"user_id" gorm:"not null;uniqueIndex:idx_completed_quests_user_quest,priority:1"`
	QuestID          string    `json:"quest_id" gorm:"not null;uniqueIndex:idx_completed_quests_user_quest,priority:2"`
	TimeTakenSeconds int       `json:"time_taken_seconds"`
	CompletionDate   time.Time `json:"completion_date"`
	CreatedAt        time.Time `json:"created_at"`
}
