package services

import (
	"github.com/edura-learn/edura_api/dto"
	"github.com/edura-learn/edura_api/model"
	"github.com/edura-learn/edura_api/shared"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
)

// ContentService manages the course catalog: courses, lessons, quests and
// their question banks.
type ContentService struct {
	context.DefaultService

	sql *PostgresService
}

const CONTENT_SVC = "content_svc"

func (svc ContentService) Id() string {
	return CONTENT_SVC
}

func (svc *ContentService) Configure(ctx *context.Context) error {
	svc.sql = ctx.Service(POSTGRES_SVC).(*PostgresService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *ContentService) Start() error {
	return nil
}

// WithDeps wires dependencies directly, bypassing the service container.
// Used by tests.
func (svc *ContentService) WithDeps(sql *PostgresService) *ContentService {
	svc.sql = sql
	return svc
}

// ==================== COURSES ====================

func (svc *ContentService) CreateCourse(creatorID string, req dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	course, err := svc.sql.CreateCourse(&model.Course{
		Title:           req.Title,
		Description:     req.Description,
		DifficultyLevel: req.DifficultyLevel,
		ThumbnailURL:    req.ThumbnailURL,
		DurationHours:   req.DurationHours,
		Prerequisites:   req.Prerequisites,
		CreatorID:       creatorID,
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"course_id": course.ID,
		"creator":   creatorID,
	}).Info("Course created")

	resp := svc.toCourseResponse(course)
	return &resp, nil
}

func (svc *ContentService) GetCourse(id string) (*dto.CourseResponse, error) {
	course, err := svc.sql.GetCourse(id)
	if err != nil {
		if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode == 404 {
			return nil, shared.NewNotFoundError(appErr.Err, "Course not found")
		}
		return nil, err
	}

	resp := svc.toCourseResponse(course)
	return &resp, nil
}

func (svc *ContentService) ListCourses(difficulty string, limit int) (*dto.CourseListResponse, error) {
	courses, err := svc.sql.ListCourses(difficulty, limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, svc.toCourseResponse(&courses[i]))
	}

	return &dto.CourseListResponse{Courses: out, Total: len(out)}, nil
}

// GetCreatedCourses lists the courses a user authored.
func (svc *ContentService) GetCreatedCourses(creatorID string) (*dto.CourseListResponse, error) {
	courses, err := svc.sql.GetCoursesByCreator(creatorID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, svc.toCourseResponse(&courses[i]))
	}

	return &dto.CourseListResponse{Courses: out, Total: len(out)}, nil
}

func (svc *ContentService) UpdateCourse(id string, req dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := svc.sql.GetCourse(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.DifficultyLevel != nil {
		course.DifficultyLevel = *req.DifficultyLevel
	}
	if req.ThumbnailURL != nil {
		course.ThumbnailURL = *req.ThumbnailURL
	}
	if req.DurationHours != nil {
		course.DurationHours = *req.DurationHours
	}
	if req.Prerequisites != nil {
		course.Prerequisites = *req.Prerequisites
	}

	if err := svc.sql.UpdateCourse(course); err != nil {
		return nil, err
	}

	resp := svc.toCourseResponse(course)
	return &resp, nil
}

func (svc *ContentService) DeleteCourse(id string) error {
	if _, err := svc.sql.GetCourse(id); err != nil {
		return err
	}
	return svc.sql.DeleteCourse(id)
}

// ==================== LESSONS ====================

func (svc *ContentService) CreateLesson(courseID string, req dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	if _, err := svc.sql.GetCourse(courseID); err != nil {
		if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode == 404 {
			return nil, shared.NewNotFoundError(appErr.Err, "Course not found")
		}
		return nil, err
	}

	lesson, err := svc.sql.CreateLesson(&model.Lesson{
		CourseID:    courseID,
		Title:       req.Title,
		ContentHTML: req.ContentHTML,
		PDFNotesURL: req.PDFNotesURL,
		VideoURL:    req.VideoURL,
		OrderNumber: req.OrderNumber,
		ExpReward:   req.ExpReward,
		CoinsReward: req.CoinsReward,
	})
	if err != nil {
		return nil, err
	}

	if err := svc.sql.AddCourseRewardTotals(courseID, req.ExpReward, req.CoinsReward); err != nil {
		log.WithError(err).WithField("course_id", courseID).Warn("Failed to bump course reward totals")
	}

	resp := toLessonResponse(lesson, false)
	return &resp, nil
}

// GetLesson returns the lesson with its neighbours resolved and, when a
// user is given, whether that user has completed it.
func (svc *ContentService) GetLesson(userID, lessonID string) (*dto.LessonResponse, error) {
	lesson, err := svc.sql.GetLesson(lessonID)
	if err != nil {
		if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode == 404 {
			return nil, shared.NewNotFoundError(appErr.Err, "Lesson not found")
		}
		return nil, err
	}

	completed := false
	if userID != "" {
		completed, err = svc.sql.HasCompletedLessonTx(svc.sql.Db(), userID, lessonID)
		if err != nil {
			return nil, err
		}
	}

	resp := toLessonResponse(lesson, completed)

	if prev, err := svc.sql.GetAdjacentLesson(lesson.CourseID, lesson.OrderNumber, false); err == nil && prev != nil {
		resp.PreviousLessonID = prev.ID
	}
	if next, err := svc.sql.GetAdjacentLesson(lesson.CourseID, lesson.OrderNumber, true); err == nil && next != nil {
		resp.NextLessonID = next.ID
	}

	return &resp, nil
}

func (svc *ContentService) GetCourseLessons(userID, courseID string) (*dto.LessonListResponse, error) {
	if _, err := svc.sql.GetCourse(courseID); err != nil {
		if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode == 404 {
			return nil, shared.NewNotFoundError(appErr.Err, "Course not found")
		}
		return nil, err
	}

	lessons, err := svc.sql.GetLessonsByCourse(courseID)
	if err != nil {
		return nil, err
	}

	completedSet := map[string]bool{}
	if userID != "" {
		ids, err := svc.sql.GetCompletedLessonIDs(userID, courseID)
		if err == nil {
			for _, id := range ids {
				completedSet[id] = true
			}
		}
	}

	out := make([]dto.LessonResponse, 0, len(lessons))
	for i := range lessons {
		lesson := toLessonResponse(&lessons[i], completedSet[lessons[i].ID])
		// Listings stay light; full content comes from the per-lesson fetch
		lesson.ContentHTML = ""
		out = append(out, lesson)
	}

	return &dto.LessonListResponse{Lessons: out, Total: len(out)}, nil
}

func (svc *ContentService) UpdateLesson(lessonID string, req dto.UpdateLessonRequest) (*dto.LessonResponse, error) {
	lesson, err := svc.sql.GetLesson(lessonID)
	if err != nil {
		return nil, err
	}

	oldExp, oldCoins := lesson.ExpReward, lesson.CoinsReward

	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.ContentHTML != nil {
		lesson.ContentHTML = *req.ContentHTML
	}
	if req.PDFNotesURL != nil {
		lesson.PDFNotesURL = *req.PDFNotesURL
	}
	if req.VideoURL != nil {
		lesson.VideoURL = *req.VideoURL
	}
	if req.ExpReward != nil {
		lesson.ExpReward = *req.ExpReward
	}
	if req.CoinsReward != nil {
		lesson.CoinsReward = *req.CoinsReward
	}

	if err := svc.sql.UpdateLesson(lesson); err != nil {
		return nil, err
	}

	if lesson.ExpReward != oldExp || lesson.CoinsReward != oldCoins {
		if err := svc.sql.AddCourseRewardTotals(lesson.CourseID, lesson.ExpReward-oldExp, lesson.CoinsReward-oldCoins); err != nil {
			log.WithError(err).WithField("course_id", lesson.CourseID).Warn("Failed to bump course reward totals")
		}
	}

	resp := toLessonResponse(lesson, false)
	return &resp, nil
}

func (svc *ContentService) DeleteLesson(lessonID string) error {
	lesson, err := svc.sql.GetLesson(lessonID)
	if err != nil {
		return err
	}

	if err := svc.sql.DeleteLesson(lessonID); err != nil {
		return err
	}

	if err := svc.sql.AddCourseRewardTotals(lesson.CourseID, -lesson.ExpReward, -lesson.CoinsReward); err != nil {
		log.WithError(err).WithField("course_id", lesson.CourseID).Warn("Failed to bump course reward totals")
	}
	return nil
}

// ==================== QUESTS ====================

func (svc *ContentService) CreateQuest(lessonID string, req dto.CreateQuestRequest) (*dto.QuestResponse, error) {
	lesson, err := svc.sql.GetLesson(lessonID)
	if err != nil {
		if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode == 404 {
			return nil, shared.NewNotFoundError(appErr.Err, "Lesson not found")
		}
		return nil, err
	}

	quest, err := svc.sql.CreateQuest(&model.Quest{
		LessonID:            lessonID,
		CourseID:            lesson.CourseID,
		Title:               req.Title,
		Description:         req.Description,
		TimeDurationMinutes: req.TimeDurationMinutes,
		ExpReward:           req.ExpReward,
	})
	if err != nil {
		return nil, err
	}

	if err := svc.sql.AddCourseRewardTotals(lesson.CourseID, req.ExpReward, 0); err != nil {
		log.WithError(err).WithField("course_id", lesson.CourseID).Warn("Failed to bump course reward totals")
	}

	resp := svc.toQuestResponse(quest, false)
	return &resp, nil
}

func (svc *ContentService) GetQuest(userID, questID string) (*dto.QuestResponse, error) {
	quest, err := svc.sql.GetQuest(questID)
	if err != nil {
		if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode == 404 {
			return nil, shared.NewNotFoundError(appErr.Err, "Quest not found")
		}
		return nil, err
	}

	completed := false
	if userID != "" {
		completed, err = svc.sql.HasCompletedQuestTx(svc.sql.Db(), userID, questID)
		if err != nil {
			return nil, err
		}
	}

	resp := svc.toQuestResponse(quest, completed)
	return &resp, nil
}

func (svc *ContentService) GetLessonQuests(userID, lessonID string) (*dto.QuestListResponse, error) {
	if _, err := svc.sql.GetLesson(lessonID); err != nil {
		if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode == 404 {
			return nil, shared.NewNotFoundError(appErr.Err, "Lesson not found")
		}
		return nil, err
	}

	quests, err := svc.sql.GetQuestsByLesson(lessonID)
	if err != nil {
		return nil, err
	}

	return svc.toQuestList(userID, quests)
}

func (svc *ContentService) GetCourseQuests(userID, courseID string) (*dto.QuestListResponse, error) {
	quests, err := svc.sql.GetQuestsByCourse(courseID)
	if err != nil {
		return nil, err
	}

	return svc.toQuestList(userID, quests)
}

func (svc *ContentService) DeleteQuest(questID string) error {
	quest, err := svc.sql.GetQuest(questID)
	if err != nil {
		return err
	}

	if err := svc.sql.DeleteQuest(questID); err != nil {
		return err
	}

	if err := svc.sql.AddCourseRewardTotals(quest.CourseID, -quest.ExpReward, 0); err != nil {
		log.WithError(err).WithField("course_id", quest.CourseID).Warn("Failed to bump course reward totals")
	}
	return nil
}

// ==================== QUESTIONS ====================

func (svc *ContentService) CreateQuestion(questID string, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	if _, err := svc.sql.GetQuest(questID); err != nil {
		if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode == 404 {
			return nil, shared.NewNotFoundError(appErr.Err, "Quest not found")
		}
		return nil, err
	}

	question, err := svc.sql.CreateQuestion(&model.QuestQuestion{
		QuestID:       questID,
		QuestionText:  req.QuestionText,
		Option1:       req.Option1,
		Option2:       req.Option2,
		Option3:       req.Option3,
		Option4:       req.Option4,
		CorrectOption: req.CorrectOption,
	})
	if err != nil {
		return nil, err
	}

	resp := toQuestionResponse(question)
	return &resp, nil
}

func (svc *ContentService) GetQuestQuestions(questID string) (*dto.QuestionListResponse, error) {
	if _, err := svc.sql.GetQuest(questID); err != nil {
		if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode == 404 {
			return nil, shared.NewNotFoundError(appErr.Err, "Quest not found")
		}
		return nil, err
	}

	questions, err := svc.sql.GetQuestionsByQuest(questID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		out = append(out, toQuestionResponse(&questions[i]))
	}

	return &dto.QuestionListResponse{Questions: out, Total: len(out)}, nil
}

// GetQuestQuestionsWithAnswers includes the correct options. Admin only;
// the route guard enforces the role.
func (svc *ContentService) GetQuestQuestionsWithAnswers(questID string) (*dto.QuestionWithAnswerListResponse, error) {
	if _, err := svc.sql.GetQuest(questID); err != nil {
		if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode == 404 {
			return nil, shared.NewNotFoundError(appErr.Err, "Quest not found")
		}
		return nil, err
	}

	questions, err := svc.sql.GetQuestionsByQuest(questID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.QuestionWithAnswerResponse, 0, len(questions))
	for i := range questions {
		out = append(out, dto.QuestionWithAnswerResponse{
			QuestionResponse: toQuestionResponse(&questions[i]),
			CorrectOption:    questions[i].CorrectOption,
		})
	}

	return &dto.QuestionWithAnswerListResponse{Questions: out, Total: len(out)}, nil
}

func (svc *ContentService) DeleteQuestion(id string) error {
	return svc.sql.DeleteQuestion(id)
}

// ==================== MAPPERS ====================

func (svc *ContentService) toCourseResponse(course *model.Course) dto.CourseResponse {
	resp := dto.CourseResponse{
		ID:              course.ID,
		Title:           course.Title,
		Description:     course.Description,
		DifficultyLevel: course.DifficultyLevel,
		ThumbnailURL:    course.ThumbnailURL,
		DurationHours:   course.DurationHours,
		Prerequisites:   course.Prerequisites,
		CreatorID:       course.CreatorID,
		TotalExp:        course.TotalExp,
		TotalCoins:      course.TotalCoins,
		CreatedAt:       course.CreatedAt,
	}

	if count, err := svc.sql.CountLessonsTx(svc.sql.Db(), course.ID); err == nil {
		resp.LessonCount = int(count)
	}
	if quests, err := svc.sql.GetQuestsByCourse(course.ID); err == nil {
		resp.QuestCount = len(quests)
	}
	if count, err := svc.sql.CountEnrollments(course.ID); err == nil {
		resp.EnrolledCount = int(count)
	}

	return resp
}

func toLessonResponse(lesson *model.Lesson, completed bool) dto.LessonResponse {
	return dto.LessonResponse{
		ID:          lesson.ID,
		CourseID:    lesson.CourseID,
		Title:       lesson.Title,
		ContentHTML: lesson.ContentHTML,
		PDFNotesURL: lesson.PDFNotesURL,
		VideoURL:    lesson.VideoURL,
		OrderNumber: lesson.OrderNumber,
		ExpReward:   lesson.ExpReward,
		CoinsReward: lesson.CoinsReward,
		IsCompleted: completed,
	}
}

func (svc *ContentService) toQuestResponse(quest *model.Quest, completed bool) dto.QuestResponse {
	resp := dto.QuestResponse{
		ID:                  quest.ID,
		LessonID:            quest.LessonID,
		CourseID:            quest.CourseID,
		Title:               quest.Title,
		Description:         quest.Description,
		TimeDurationMinutes: quest.TimeDurationMinutes,
		ExpReward:           quest.ExpReward,
		IsCompleted:         completed,
	}

	if questions, err := svc.sql.GetQuestionsByQuest(quest.ID); err == nil {
		resp.QuestionCount = len(questions)
	}

	return resp
}

func (svc *ContentService) toQuestList(userID string, quests []model.Quest) (*dto.QuestListResponse, error) {
	out := make([]dto.QuestResponse, 0, len(quests))
	for i := range quests {
		completed := false
		if userID != "" {
			done, err := svc.sql.HasCompletedQuestTx(svc.sql.Db(), userID, quests[i].ID)
			if err == nil {
				completed = done
			}
		}
		out = append(out, svc.toQuestResponse(&quests[i], completed))
	}

	return &dto.QuestListResponse{Quests: out, Total: len(out)}, nil
}

func toQuestionResponse(question *model.QuestQuestion) dto.QuestionResponse {
	return dto.QuestionResponse{
		ID:           question.ID,
		QuestID:      question.QuestID,
		QuestionText: question.QuestionText,
		Option1:      question.Option1,
		Option2:      question.Option2,
		Option3:      question.Option3,
		Option4:      question.Option4,
	}
}
