package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edura-learn/edura_api/dto"
	"github.com/edura-learn/edura_api/shared"
)

type EnrollmentHandler struct {
	enrollmentSvc EnrollmentServiceInterface
}

func NewEnrollmentHandler(enrollmentSvc EnrollmentServiceInterface) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentSvc: enrollmentSvc,
	}
}

// @Summary Enroll in course
// @Description Enroll the authenticated user in a course
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param enrollRequest body dto.EnrollRequest true "Course to enroll in"
// @Success 201 {object} shared.Response{data=dto.EnrollmentResponse}
// @Router /api/v1/enrollments [post]
func (h *EnrollmentHandler) Enroll(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	enrollment, err := h.enrollmentSvc.Enroll(userID, req.CourseID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Enrolled successfully", enrollment)
}

// @Summary List enrollments
// @Description List the authenticated user's enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=dto.EnrollmentListResponse}
// @Router /api/v1/enrollments [get]
func (h *EnrollmentHandler) GetUserEnrollments(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	enrollments, err := h.enrollmentSvc.GetUserEnrollments(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", enrollments)
}

// @Summary Get enrollment
// @Description Get the authenticated user's enrollment in a course
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=dto.EnrollmentResponse}
// @Router /api/v1/enrollments/{courseId} [get]
func (h *EnrollmentHandler) GetEnrollment(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	courseID := c.Params("courseId")

	enrollment, err := h.enrollmentSvc.GetEnrollment(userID, courseID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", enrollment)
}

// @Summary List course enrollments
// @Description List everyone enrolled in a course. Course creator or admin only
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=dto.EnrollmentListResponse}
// @Router /api/v1/courses/{courseId}/enrollments [get]
func (h *EnrollmentHandler) GetCourseEnrollments(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	role, _ := c.Locals(shared.UserRole).(string)
	courseID := c.Params("courseId")

	enrollments, err := h.enrollmentSvc.GetCourseEnrollments(userID, role, courseID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", enrollments)
}

// @Summary Get progress stats
// @Description Get the authenticated user's aggregate learning stats
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=dto.UserProgressStatsResponse}
// @Router /api/v1/progress/stats [get]
func (h *EnrollmentHandler) GetProgressStats(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	stats, err := h.enrollmentSvc.GetUserProgressStats(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", stats)
}

// @Summary Get completed content
// @Description List the lesson and quest IDs the user has finished in a course
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/progress/courses/{courseId} [get]
func (h *EnrollmentHandler) GetCompletedContent(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	courseID := c.Params("courseId")

	lessonIDs, questIDs, err := h.enrollmentSvc.GetCompletedContent(userID, courseID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", fiber.Map{
		"completed_lesson_ids": lessonIDs,
		"completed_quest_ids":  questIDs,
	})
}
