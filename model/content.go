// model/content.go
package model

import "time"

// Course owns an ordered sequence of lessons and, through them, quests.
// TotalExp/TotalCoins are informational sums of child rewards maintained
// on lesson/quest creation; per-user progress never reads them.
type Course struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	Title           string    `json:"title" gorm:"not null"`
	Description     string    `json:"description" gorm:"type:text"`
	DifficultyLevel string    `json:"difficulty_level" gorm:"not null"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	DurationHours   int       `json:"duration_hours"`
	Prerequisites   string    `json:"prerequisites" gorm:"type:text"`
	CreatorID       string    `json:"creator_id" gorm:"not null;index"`
	TotalExp        int       `json:"total_exp" gorm:"default:0"`
	TotalCoins      int       `json:"total_coins" gorm:"default:0"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Lesson belongs to exactly one course. OrderNumber is unique within the
// course and drives next/previous navigation.
type Lesson struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	CourseID    string    `json:"course_id" gorm:"not null;uniqueIndex:idx_lessons_course_order,priority:1"`
	Title       string    `json:"title" gorm:"not null"`
	ContentHTML string    `json:"content_html" gorm:"type:text"`
	PDFNotesURL string    `json:"pdf_notes_url"`
	VideoURL    string    `json:"video_url"`
	OrderNumber int       `json:"order_number" gorm:"not null;uniqueIndex:idx_lessons_course_order,priority:2"`
	ExpReward   int       `json:"exp_reward" gorm:"default:0"`
	CoinsReward int       `json:"coins_reward" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Course Course `json:"-" gorm:"foreignKey:CourseID"`
}

// Quest belongs to one lesson. CourseID is denormalized so enrollment
// checks and completed-quest listings avoid a join through lessons.
type Quest struct {
	ID                  string    `json:"id" gorm:"primaryKey"`
	LessonID            string    `json:"lesson_id" gorm:"not null;index"`
	CourseID            string    `json:"course_id" gorm:"not null;index"`
	Title               string    `json:"title" gorm:"not null"`
	Description         string    `json:"description" gorm:"type:text"`
	TimeDurationMinutes int       `json:"time_duration_minutes" gorm:"not null"`
	ExpReward           int       `json:"exp_reward" gorm:"default:0"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	Lesson Lesson `json:"-" gorm:"foreignKey:LessonID"`
}

// QuestQuestion is a multiple-choice question with exactly one correct
// option out of four.
type QuestQuestion struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	QuestID       string    `json:"quest_id" gorm:"not null;index"`
	QuestionText  string    `json:"question_text" gorm:"type:text;not null"`
	Option1       string    `json:"option_1" gorm:"not null"`
	Option2       string    `json:"option_2" gorm:"not null"`
	Option3       string    `json:"option_3" gorm:"not null"`
	Option4       string    `json:"option_4" gorm:"not null"`
	CorrectOption int       `json:"correct_option" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
