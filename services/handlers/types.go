package handlers

import (
	"mime/multipart"

	"github.com/edura-learn/edura_api/dto"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	GetProfile(userID string) (*dto.UserInfo, error)
	UpdateProfile(userID string, req dto.UpdateProfileRequest) (*dto.UserInfo, error)
	ChangePassword(userID string, req dto.ChangePasswordRequest) error
	ListStudents() (*dto.UserListResponse, error)
}

type ContentServiceInterface interface {
	CreateCourse(creatorID string, req dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetCourse(id string) (*dto.CourseResponse, error)
	ListCourses(difficulty string, limit int) (*dto.CourseListResponse, error)
	GetCreatedCourses(creatorID string) (*dto.CourseListResponse, error)
	UpdateCourse(id string, req dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	DeleteCourse(id string) error

	CreateLesson(courseID string, req dto.CreateLessonRequest) (*dto.LessonResponse, error)
	GetLesson(userID, lessonID string) (*dto.LessonResponse, error)
	GetCourseLessons(userID, courseID string) (*dto.LessonListResponse, error)
	UpdateLesson(lessonID string, req dto.UpdateLessonRequest) (*dto.LessonResponse, error)
	DeleteLesson(lessonID string) error

	CreateQuest(lessonID string, req dto.CreateQuestRequest) (*dto.QuestResponse, error)
	GetQuest(userID, questID string) (*dto.QuestResponse, error)
	GetLessonQuests(userID, lessonID string) (*dto.QuestListResponse, error)
	GetCourseQuests(userID, courseID string) (*dto.QuestListResponse, error)
	DeleteQuest(questID string) error

	CreateQuestion(questID string, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	GetQuestQuestions(questID string) (*dto.QuestionListResponse, error)
	GetQuestQuestionsWithAnswers(questID string) (*dto.QuestionWithAnswerListResponse, error)
	DeleteQuestion(id string) error
}

type EnrollmentServiceInterface interface {
	Enroll(userID, courseID string) (*dto.EnrollmentResponse, error)
	GetUserEnrollments(userID string) (*dto.EnrollmentListResponse, error)
	GetEnrollment(userID, courseID string) (*dto.EnrollmentResponse, error)
	GetCourseEnrollments(requesterID, role, courseID string) (*dto.EnrollmentListResponse, error)
	GetUserProgressStats(userID string) (*dto.UserProgressStatsResponse, error)
	GetCompletedContent(userID, courseID string) ([]string, []string, error)
}

type ProgressServiceInterface interface {
	CompleteLesson(userID, lessonID string) (*dto.CompleteLessonResponse, error)
	CompleteQuest(userID, questID string, timeTakenSeconds int) (*dto.CompleteQuestResponse, error)
	SubmitQuestAnswers(userID, questID string, req dto.SubmitQuestRequest) (*dto.SubmitQuestResponse, error)
}

type NoteServiceInterface interface {
	UploadNote(userID, title, description string, file *multipart.FileHeader) (*dto.UploadNoteResponse, error)
	ListNotes(userID string, limit int) (*dto.NoteListResponse, error)
	GetDownloadURL(noteID string) (string, error)
	VoteNote(noteID, voteType string) error
	DeleteNote(userID, role, noteID string) error
}
