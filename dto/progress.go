package dto

import "time"

// Enrollment DTOs

type EnrollRequest struct {
	CourseID string `json:"course_id" validate:"required"`
}

func (e EnrollRequest) Validate() error {
	return GetValidator().Struct(e)
}

type EnrollmentResponse struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	CourseID           string     `json:"course_id"`
	CourseTitle        string     `json:"course_title,omitempty"`
	EnrollmentDate     time.Time  `json:"enrollment_date"`
	LastAccessedDate   time.Time  `json:"last_accessed_date"`
	ProgressPercentage float64    `json:"progress_percentage"`
	IsCompleted        bool       `json:"is_completed"`
	CompletionDate     *time.Time `json:"completion_date,omitempty"`
}

type EnrollmentListResponse struct {
	Enrollments []EnrollmentResponse `json:"enrollments"`
	Total       int                  `json:"total"`
}

// Completion DTOs

type CompleteLessonResponse struct {
	LessonID        string  `json:"lesson_id"`
	ExpGained       int     `json:"exp_gained"`
	CoinsGained     int     `json:"coins_gained"`
	CourseProgress  float64 `json:"course_progress"`
	CourseCompleted bool    `json:"course_completed"`
}

type CompleteQuestRequest struct {
	TimeTakenSeconds int `json:"time_taken_seconds" validate:"omitempty,min=0"`
}

func (c CompleteQuestRequest) Validate() error {
	return GetValidator().Struct(c)
}

type CompleteQuestResponse struct {
	QuestID        string  `json:"quest_id"`
	ExpGained      int     `json:"exp_gained"`
	CourseProgress float64 `json:"course_progress"`
}

// Quiz submission DTOs

type QuestAnswer struct {
	QuestionID     string `json:"question_id" validate:"required"`
	SelectedOption int    `json:"selected_option" validate:"required,min=1,max=4"`
}

type SubmitQuestRequest struct {
	Answers          []QuestAnswer `json:"answers" validate:"required,min=1,dive"`
	TimeTakenSeconds int           `json:"time_taken_seconds" validate:"omitempty,min=0"`
}

func (s SubmitQuestRequest) Validate() error {
	return GetValidator().Struct(s)
}

type QuestionResult struct {
	QuestionID     string `json:"question_id"`
	SelectedOption int    `json:"selected_option"`
	CorrectOption  int    `json:"correct_option"`
	Correct        bool   `json:"correct"`
}

type SubmitQuestResponse struct {
	QuestID        string           `json:"quest_id"`
	CorrectAnswers int              `json:"correct_answers"`
	TotalQuestions int              `json:"total_questions"`
	Percentage     float64          `json:"percentage"`
	Passed         bool             `json:"passed"`
	ExpGained      int              `json:"exp_gained"`
	Results        []QuestionResult `json:"results"`
}

// Aggregate progress DTOs

type UserProgressStatsResponse struct {
	TotalEnrollments int     `json:"total_enrollments"`
	CompletedCourses int     `json:"completed_courses"`
	CompletedLessons int     `json:"completed_lessons"`
	CompletedQuests  int     `json:"completed_quests"`
	TotalExp         int     `json:"total_exp"`
	TotalCoins       int     `json:"total_coins"`
	Rank             string  `json:"rank"`
	AverageProgress  float64 `json:"average_progress"`
}
