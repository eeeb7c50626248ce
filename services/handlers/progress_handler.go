package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edura-learn/edura_api/dto"
	"github.com/edura-learn/edura_api/shared"
)

type ProgressHandler struct {
	progressSvc ProgressServiceInterface
}

func NewProgressHandler(progressSvc ProgressServiceInterface) *ProgressHandler {
	return &ProgressHandler{
		progressSvc: progressSvc,
	}
}

// @Summary Complete lesson
// @Description Mark a lesson complete, credit its rewards and update course progress
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.CompleteLessonResponse}
// @Router /api/v1/lessons/{lessonId}/complete [post]
func (h *ProgressHandler) CompleteLesson(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	lessonID := c.Params("lessonId")

	resp, err := h.progressSvc.CompleteLesson(userID, lessonID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Lesson completed", resp)
}

// @Summary Complete quest
// @Description Mark a quest complete and credit its exp
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questId path string true "Quest ID"
// @Param completeQuestRequest body dto.CompleteQuestRequest false "Time taken"
// @Success 200 {object} shared.Response{data=dto.CompleteQuestResponse}
// @Router /api/v1/quests/{questId}/complete [post]
func (h *ProgressHandler) CompleteQuest(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	questID := c.Params("questId")

	var req dto.CompleteQuestRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return err
		}
	}

	resp, err := h.progressSvc.CompleteQuest(userID, questID, req.TimeTakenSeconds)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Quest completed", resp)
}

// @Summary Submit quest answers
// @Description Grade a quiz submission; a passing score records the completion
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questId path string true "Quest ID"
// @Param submitQuestRequest body dto.SubmitQuestRequest true "Selected answers"
// @Success 200 {object} shared.Response{data=dto.SubmitQuestResponse}
// @Router /api/v1/quests/{questId}/submit [post]
func (h *ProgressHandler) SubmitQuestAnswers(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	questID := c.Params("questId")

	var req dto.SubmitQuestRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.progressSvc.SubmitQuestAnswers(userID, questID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Submission graded", resp)
}
