package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/edura-learn/edura_api/dto"
	"github.com/edura-learn/edura_api/shared"
)

type ContentHandler struct {
	contentSvc ContentServiceInterface
}

func NewContentHandler(contentSvc ContentServiceInterface) *ContentHandler {
	return &ContentHandler{
		contentSvc: contentSvc,
	}
}

// @Summary Create course
// @Description Create a new course (admin only)
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param createCourseRequest body dto.CreateCourseRequest true "Course details"
// @Success 201 {object} shared.Response{data=dto.CourseResponse}
// @Router /api/v1/courses [post]
func (h *ContentHandler) CreateCourse(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	course, err := h.contentSvc.CreateCourse(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Course created successfully", course)
}

// @Summary List courses
// @Description List courses with optional difficulty filter
// @Tags courses
// @Produce json
// @Param difficulty query string false "Filter by difficulty level"
// @Param limit query int false "Maximum number of results"
// @Success 200 {object} shared.Response{data=dto.CourseListResponse}
// @Router /api/v1/courses [get]
func (h *ContentHandler) ListCourses(c *fiber.Ctx) error {
	difficulty := c.Query("difficulty")
	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	courses, err := h.contentSvc.ListCourses(difficulty, limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", courses)
}

// @Summary Get course
// @Description Get a single course with its aggregate counts
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=dto.CourseResponse}
// @Router /api/v1/courses/{courseId} [get]
func (h *ContentHandler) GetCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	course, err := h.contentSvc.GetCourse(courseID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", course)
}

// @Summary List created courses
// @Description List the courses the authenticated user created
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=dto.CourseListResponse}
// @Router /api/v1/courses/created [get]
func (h *ContentHandler) GetCreatedCourses(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	courses, err := h.contentSvc.GetCreatedCourses(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", courses)
}

// @Summary Update course
// @Description Update course fields (admin only)
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param updateCourseRequest body dto.UpdateCourseRequest true "Course updates"
// @Success 200 {object} shared.Response{data=dto.CourseResponse}
// @Router /api/v1/courses/{courseId} [put]
func (h *ContentHandler) UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var req dto.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	course, err := h.contentSvc.UpdateCourse(courseID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Course updated successfully", course)
}

// @Summary Delete course
// @Description Delete a course (admin only)
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/courses/{courseId} [delete]
func (h *ContentHandler) DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	if err := h.contentSvc.DeleteCourse(courseID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Course deleted successfully", nil)
}

// @Summary Create lesson
// @Description Add a lesson to a course (admin only)
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param createLessonRequest body dto.CreateLessonRequest true "Lesson details"
// @Success 201 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/courses/{courseId}/lessons [post]
func (h *ContentHandler) CreateLesson(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	lesson, err := h.contentSvc.CreateLesson(courseID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Lesson created successfully", lesson)
}

// @Summary Get course lessons
// @Description List a course's lessons in order with the caller's completion flags
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=dto.LessonListResponse}
// @Router /api/v1/courses/{courseId}/lessons [get]
func (h *ContentHandler) GetCourseLessons(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	courseID := c.Params("courseId")

	lessons, err := h.contentSvc.GetCourseLessons(userID, courseID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", lessons)
}

// @Summary Get lesson
// @Description Get a lesson with its content and prev/next navigation
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/lessons/{lessonId} [get]
func (h *ContentHandler) GetLesson(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	lessonID := c.Params("lessonId")

	lesson, err := h.contentSvc.GetLesson(userID, lessonID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", lesson)
}

// @Summary Update lesson
// @Description Update lesson fields (admin only)
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lessonId path string true "Lesson ID"
// @Param updateLessonRequest body dto.UpdateLessonRequest true "Lesson updates"
// @Success 200 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/lessons/{lessonId} [put]
func (h *ContentHandler) UpdateLesson(c *fiber.Ctx) error {
	lessonID := c.Params("lessonId")

	var req dto.UpdateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	lesson, err := h.contentSvc.UpdateLesson(lessonID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Lesson updated successfully", lesson)
}

// @Summary Delete lesson
// @Description Delete a lesson (admin only)
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/lessons/{lessonId} [delete]
func (h *ContentHandler) DeleteLesson(c *fiber.Ctx) error {
	lessonID := c.Params("lessonId")

	if err := h.contentSvc.DeleteLesson(lessonID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Lesson deleted successfully", nil)
}

// @Summary Create quest
// @Description Add a quest to a lesson (admin only)
// @Tags quests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lessonId path string true "Lesson ID"
// @Param createQuestRequest body dto.CreateQuestRequest true "Quest details"
// @Success 201 {object} shared.Response{data=dto.QuestResponse}
// @Router /api/v1/lessons/{lessonId}/quests [post]
func (h *ContentHandler) CreateQuest(c *fiber.Ctx) error {
	lessonID := c.Params("lessonId")

	var req dto.CreateQuestRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	quest, err := h.contentSvc.CreateQuest(lessonID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Quest created successfully", quest)
}

// @Summary Get lesson quests
// @Description List a lesson's quests with the caller's completion flags
// @Tags quests
// @Produce json
// @Security BearerAuth
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.QuestListResponse}
// @Router /api/v1/lessons/{lessonId}/quests [get]
func (h *ContentHandler) GetLessonQuests(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	lessonID := c.Params("lessonId")

	quests, err := h.contentSvc.GetLessonQuests(userID, lessonID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", quests)
}

// @Summary Get course quests
// @Description List all quests across a course with the caller's completion flags
// @Tags quests
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=dto.QuestListResponse}
// @Router /api/v1/courses/{courseId}/quests [get]
func (h *ContentHandler) GetCourseQuests(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	courseID := c.Params("courseId")

	quests, err := h.contentSvc.GetCourseQuests(userID, courseID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", quests)
}

// @Summary Get quest
// @Description Get a single quest with its question count
// @Tags quests
// @Produce json
// @Security BearerAuth
// @Param questId path string true "Quest ID"
// @Success 200 {object} shared.Response{data=dto.QuestResponse}
// @Router /api/v1/quests/{questId} [get]
func (h *ContentHandler) GetQuest(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	questID := c.Params("questId")

	quest, err := h.contentSvc.GetQuest(userID, questID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", quest)
}

// @Summary Delete quest
// @Description Delete a quest and its questions (admin only)
// @Tags quests
// @Produce json
// @Security BearerAuth
// @Param questId path string true "Quest ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/quests/{questId} [delete]
func (h *ContentHandler) DeleteQuest(c *fiber.Ctx) error {
	questID := c.Params("questId")

	if err := h.contentSvc.DeleteQuest(questID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Quest deleted successfully", nil)
}

// @Summary Create question
// @Description Add a multiple choice question to a quest (admin only)
// @Tags quests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questId path string true "Quest ID"
// @Param createQuestionRequest body dto.CreateQuestionRequest true "Question details"
// @Success 201 {object} shared.Response{data=dto.QuestionResponse}
// @Router /api/v1/quests/{questId}/questions [post]
func (h *ContentHandler) CreateQuestion(c *fiber.Ctx) error {
	questID := c.Params("questId")

	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	question, err := h.contentSvc.CreateQuestion(questID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Question created successfully", question)
}

// @Summary Get quest questions
// @Description List a quest's questions without the correct options
// @Tags quests
// @Produce json
// @Security BearerAuth
// @Param questId path string true "Quest ID"
// @Success 200 {object} shared.Response{data=dto.QuestionListResponse}
// @Router /api/v1/quests/{questId}/questions [get]
func (h *ContentHandler) GetQuestQuestions(c *fiber.Ctx) error {
	questID := c.Params("questId")

	questions, err := h.contentSvc.GetQuestQuestions(questID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", questions)
}

// @Summary Get quest questions with answers
// @Description List a quest's questions including the correct options (admin only)
// @Tags quests
// @Produce json
// @Security BearerAuth
// @Param questId path string true "Quest ID"
// @Success 200 {object} shared.Response{data=dto.QuestionWithAnswerListResponse}
// @Router /api/v1/quests/{questId}/questions/answers [get]
func (h *ContentHandler) GetQuestQuestionsWithAnswers(c *fiber.Ctx) error {
	questID := c.Params("questId")

	questions, err := h.contentSvc.GetQuestQuestionsWithAnswers(questID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", questions)
}

// @Summary Delete question
// @Description Delete a question (admin only)
// @Tags quests
// @Produce json
// @Security BearerAuth
// @Param questionId path string true "Question ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/questions/{questionId} [delete]
func (h *ContentHandler) DeleteQuestion(c *fiber.Ctx) error {
	questionID := c.Params("questionId")

	if err := h.contentSvc.DeleteQuestion(questionID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Question deleted successfully", nil)
}
