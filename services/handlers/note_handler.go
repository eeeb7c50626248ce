package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/edura-learn/edura_api/dto"
	"github.com/edura-learn/edura_api/shared"
)

type NoteHandler struct {
	noteSvc NoteServiceInterface
}

func NewNoteHandler(noteSvc NoteServiceInterface) *NoteHandler {
	return &NoteHandler{
		noteSvc: noteSvc,
	}
}

// @Summary Upload note
// @Description Upload a PDF study note and earn the sharing reward
// @Tags notes
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Note title"
// @Param description formData string false "Note description"
// @Param file formData file true "PDF file"
// @Success 201 {object} shared.Response{data=dto.UploadNoteResponse}
// @Router /api/v1/notes [post]
func (h *NoteHandler) UploadNote(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	title := c.FormValue("title")
	if title == "" {
		return shared.NewBadRequestError(nil, "Title is required")
	}
	description := c.FormValue("description")

	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "File is required")
	}

	resp, err := h.noteSvc.UploadNote(userID, title, description, file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Note uploaded successfully", resp)
}

// @Summary List notes
// @Description List shared notes, optionally filtered to one uploader
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param user_id query string false "Filter by uploader"
// @Param limit query int false "Maximum number of results"
// @Success 200 {object} shared.Response{data=dto.NoteListResponse}
// @Router /api/v1/notes [get]
func (h *NoteHandler) ListNotes(c *fiber.Ctx) error {
	filterUserID := c.Query("user_id")
	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	notes, err := h.noteSvc.ListNotes(filterUserID, limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", notes)
}

// @Summary Download note
// @Description Get a short-lived download link for a note's PDF
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param noteId path string true "Note ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/notes/{noteId}/download [get]
func (h *NoteHandler) DownloadNote(c *fiber.Ctx) error {
	noteID := c.Params("noteId")

	url, err := h.noteSvc.GetDownloadURL(noteID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", fiber.Map{
		"download_url": url,
	})
}

// @Summary Vote note
// @Description Upvote or downvote a note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param noteId path string true "Note ID"
// @Param voteRequest body dto.VoteNoteRequest true "Vote direction"
// @Success 200 {object} shared.Response
// @Router /api/v1/notes/{noteId}/vote [post]
func (h *NoteHandler) VoteNote(c *fiber.Ctx) error {
	noteID := c.Params("noteId")

	var req dto.VoteNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	if err := h.noteSvc.VoteNote(noteID, req.VoteType); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Vote recorded", nil)
}

// @Summary Delete note
// @Description Delete a note; owner or admin only
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param noteId path string true "Note ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/notes/{noteId} [delete]
func (h *NoteHandler) DeleteNote(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	role, _ := c.Locals(shared.UserRole).(string)
	noteID := c.Params("noteId")

	if err := h.noteSvc.DeleteNote(userID, role, noteID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Note deleted successfully", nil)
}
