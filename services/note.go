package services

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/edura-learn/edura_api/dto"
	"github.com/edura-learn/edura_api/model"
	"github.com/edura-learn/edura_api/shared"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// NoteService handles shared study notes: PDF upload to object storage,
// community voting, and the upload reward.
type NoteService struct {
	context.DefaultService

	sql   *PostgresService
	minio *MinIOService
}

const NOTE_SVC = "note_svc"

const (
	// NoteUploadExpReward is the flat exp credit for sharing a note.
	NoteUploadExpReward = 100

	maxNoteSizeBytes = 20 << 20
	downloadExpiry   = 15 * time.Minute
)

func (svc NoteService) Id() string {
	return NOTE_SVC
}

func (svc *NoteService) Configure(ctx *context.Context) error {
	svc.sql = ctx.Service(POSTGRES_SVC).(*PostgresService)
	svc.minio = ctx.Service(MINIO_SVC).(*MinIOService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *NoteService) Start() error {
	return nil
}

func (svc *NoteService) UploadNote(userID, title, description string, file *multipart.FileHeader) (*dto.UploadNoteResponse, error) {
	if file == nil {
		return nil, shared.NewBadRequestError(nil, "File is required")
	}
	if file.Size > maxNoteSizeBytes {
		return nil, shared.NewBadRequestError(nil, "File exceeds 20MB limit")
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		return nil, shared.NewBadRequestError(nil, "Only PDF files are accepted")
	}

	user, err := svc.sql.GetUser(userID)
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to read upload")
	}
	defer src.Close()

	id, _ := uuid.NewV7()
	objectKey := fmt.Sprintf("notes/%s/%s.pdf", userID, id.String())

	if _, err := svc.minio.UploadFile(objectKey, src, file.Size, "application/pdf"); err != nil {
		return nil, shared.NewInternalError(err, "Failed to store note")
	}

	note, err := svc.sql.CreateNote(&model.Note{
		UserID:      userID,
		Title:       title,
		Description: description,
		ObjectKey:   objectKey,
		FileSize:    file.Size,
	})
	if err != nil {
		// Orphaned object, best effort cleanup
		if delErr := svc.minio.DeleteFile(objectKey); delErr != nil {
			log.WithError(delErr).WithField("object_key", objectKey).Warn("Failed to clean up orphaned note object")
		}
		return nil, err
	}

	if err := svc.sql.AddUserRewardsTx(svc.sql.Db(), userID, NoteUploadExpReward, 0); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Failed to credit note upload reward")
	}

	log.WithFields(log.Fields{
		"note_id": note.ID,
		"user_id": userID,
	}).Info("Note uploaded")

	resp := toNoteResponse(note)
	resp.Username = user.Username
	return &dto.UploadNoteResponse{Note: resp, ExpGained: NoteUploadExpReward}, nil
}

func (svc *NoteService) ListNotes(userID string, limit int) (*dto.NoteListResponse, error) {
	notes, err := svc.sql.ListNotes(userID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.NoteResponse, 0, len(notes))
	for i := range notes {
		resp := toNoteResponse(&notes[i])
		resp.Username = notes[i].User.Username
		out = append(out, resp)
	}

	return &dto.NoteListResponse{Notes: out, Total: len(out)}, nil
}

// GetDownloadURL returns a short-lived presigned link to the note's PDF.
func (svc *NoteService) GetDownloadURL(noteID string) (string, error) {
	note, err := svc.sql.GetNote(noteID)
	if err != nil {
		if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode == 404 {
			return "", shared.NewNotFoundError(appErr.Err, "Note not found")
		}
		return "", err
	}

	url, err := svc.minio.GetFileURL(note.ObjectKey, downloadExpiry)
	if err != nil {
		return "", shared.NewInternalError(err, "Failed to generate download link")
	}
	return url, nil
}

func (svc *NoteService) VoteNote(noteID, voteType string) error {
	return svc.sql.VoteNote(noteID, voteType)
}

// DeleteNote removes the note row and its stored object. Only the owner
// or an admin may delete.
func (svc *NoteService) DeleteNote(userID, role, noteID string) error {
	note, err := svc.sql.GetNote(noteID)
	if err != nil {
		if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode == 404 {
			return shared.NewNotFoundError(appErr.Err, "Note not found")
		}
		return err
	}

	if note.UserID != userID && role != shared.RoleAdmin {
		return shared.NewForbiddenError(nil, "Not allowed to delete this note")
	}

	if err := svc.minio.DeleteFile(note.ObjectKey); err != nil {
		log.WithError(err).WithField("note_id", noteID).Warn("Failed to delete note object")
	}

	return svc.sql.DeleteNote(noteID)
}

func toNoteResponse(note *model.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:            note.ID,
		UserID:        note.UserID,
		Title:         note.Title,
		Description:   note.Description,
		FileSize:      note.FileSize,
		UpvoteCount:   note.UpvoteCount,
		DownvoteCount: note.DownvoteCount,
		CreatedAt:     note.CreatedAt,
	}
}
