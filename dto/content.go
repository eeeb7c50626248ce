package dto

import "time"

// Course DTOs

type CreateCourseRequest struct {
	Title           string `json:"title" validate:"required,min=3,max=200"`
	Description     string `json:"description" validate:"omitempty,max=5000"`
	DifficultyLevel string `json:"difficulty_level" validate:"required,oneof=Beginner Intermediate Advanced"`
	ThumbnailURL    string `json:"thumbnail_url" validate:"omitempty,url"`
	DurationHours   int    `json:"duration_hours" validate:"omitempty,min=0"`
	Prerequisites   string `json:"prerequisites" validate:"omitempty,max=2000"`
}

func (c CreateCourseRequest) Validate() error {
	return GetValidator().Struct(c)
}

type UpdateCourseRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	DifficultyLevel *string `json:"difficulty_level,omitempty" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	ThumbnailURL    *string `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
	DurationHours   *int    `json:"duration_hours,omitempty" validate:"omitempty,min=0"`
	Prerequisites   *string `json:"prerequisites,omitempty" validate:"omitempty,max=2000"`
}

func (u UpdateCourseRequest) Validate() error {
	return GetValidator().Struct(u)
}

type CourseResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DifficultyLevel string    `json:"difficulty_level"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	DurationHours   int       `json:"duration_hours"`
	Prerequisites   string    `json:"prerequisites"`
	CreatorID       string    `json:"creator_id"`
	TotalExp        int       `json:"total_exp"`
	TotalCoins      int       `json:"total_coins"`
	LessonCount     int       `json:"lesson_count"`
	QuestCount      int       `json:"quest_count"`
	EnrolledCount   int       `json:"enrolled_count"`
	CreatedAt       time.Time `json:"created_at"`
}

type CourseListResponse struct {
	Courses []CourseResponse `json:"courses"`
	Total   int              `json:"total"`
}

// Lesson DTOs

type CreateLessonRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	ContentHTML string `json:"content_html" validate:"omitempty"`
	PDFNotesURL string `json:"pdf_notes_url" validate:"omitempty,url"`
	VideoURL    string `json:"video_url" validate:"omitempty,url"`
	OrderNumber int    `json:"order_number" validate:"required,min=1"`
	ExpReward   int    `json:"exp_reward" validate:"omitempty,min=0"`
	CoinsReward int    `json:"coins_reward" validate:"omitempty,min=0"`
}

func (c CreateLessonRequest) Validate() error {
	return GetValidator().Struct(c)
}

type UpdateLessonRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	ContentHTML *string `json:"content_html,omitempty"`
	PDFNotesURL *string `json:"pdf_notes_url,omitempty" validate:"omitempty,url"`
	VideoURL    *string `json:"video_url,omitempty" validate:"omitempty,url"`
	ExpReward   *int    `json:"exp_reward,omitempty" validate:"omitempty,min=0"`
	CoinsReward *int    `json:"coins_reward,omitempty" validate:"omitempty,min=0"`
}

func (u UpdateLessonRequest) Validate() error {
	return GetValidator().Struct(u)
}

type LessonResponse struct {
	ID          string `json:"id"`
	CourseID    string `json:"course_id"`
	Title       string `json:"title"`
	ContentHTML string `json:"content_html,omitempty"`
	PDFNotesURL string `json:"pdf_notes_url,omitempty"`
	VideoURL    string `json:"video_url,omitempty"`
	OrderNumber int    `json:"order_number"`
	ExpReward   int    `json:"exp_reward"`
	CoinsReward int    `json:"coins_reward"`

	// Navigation within the course, by order number.
	PreviousLessonID string `json:"previous_lesson_id,omitempty"`
	NextLessonID     string `json:"next_lesson_id,omitempty"`

	IsCompleted bool `json:"is_completed"`
}

type LessonListResponse struct {
	Lessons []LessonResponse `json:"lessons"`
	Total   int              `json:"total"`
}

// Quest DTOs

type CreateQuestRequest struct {
	Title               string `json:"title" validate:"required,min=3,max=200"`
	Description         string `json:"description" validate:"omitempty,max=5000"`
	TimeDurationMinutes int    `json:"time_duration_minutes" validate:"required,min=1"`
	ExpReward           int    `json:"exp_reward" validate:"omitempty,min=0"`
}

func (c CreateQuestRequest) Validate() error {
	return GetValidator().Struct(c)
}

type QuestResponse struct {
	ID                  string `json:"id"`
	LessonID            string `json:"lesson_id"`
	CourseID            string `json:"course_id"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	TimeDurationMinutes int    `json:"time_duration_minutes"`
	ExpReward           int    `json:"exp_reward"`
	QuestionCount       int    `json:"question_count"`
	IsCompleted         bool   `json:"is_completed"`
}

type QuestListResponse struct {
	Quests []QuestResponse `json:"quests"`
	Total  int             `json:"total"`
}

// Question DTOs

type CreateQuestionRequest struct {
	QuestionText  string `json:"question_text" validate:"required,min=3"`
	Option1       string `json:"option_1" validate:"required"`
	Option2       string `json:"option_2" validate:"required"`
	Option3       string `json:"option_3" validate:"required"`
	Option4       string `json:"option_4" validate:"required"`
	CorrectOption int    `json:"correct_option" validate:"required,min=1,max=4"`
}

func (c CreateQuestionRequest) Validate() error {
	return GetValidator().Struct(c)
}

// QuestionResponse never carries the correct option. Students fetch these
// to take the quiz; grading happens server side.
type QuestionResponse struct {
	ID           string `json:"id"`
	QuestID      string `json:"quest_id"`
	QuestionText string `json:"question_text"`
	Option1      string `json:"option_1"`
	Option2      string `json:"option_2"`
	Option3      string `json:"option_3"`
	Option4      string `json:"option_4"`
}

type QuestionListResponse struct {
	Questions []QuestionResponse `json:"questions"`
	Total     int                `json:"total"`
}

// QuestionWithAnswerResponse is the admin view used to review a quest's
// question bank.
type QuestionWithAnswerResponse struct {
	QuestionResponse
	CorrectOption int `json:"correct_option"`
}

type QuestionWithAnswerListResponse struct {
	Questions []QuestionWithAnswerResponse `json:"questions"`
	Total     int                          `json:"total"`
}
