package dto

import "time"

type NoteResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Username      string    `json:"username,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	FileSize      int64     `json:"file_size"`
	UpvoteCount   int       `json:"upvote_count"`
	DownvoteCount int       `json:"downvote_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type NoteListResponse struct {
	Notes []NoteResponse `json:"notes"`
	Total int            `json:"total"`
}

type UploadNoteResponse struct {
	Note      NoteResponse `json:"note"`
	ExpGained int          `json:"exp_gained"`
}

type VoteNoteRequest struct {
	VoteType string `json:"vote_type" validate:"required,oneof=up down"`
}

func (v VoteNoteRequest) Validate() error {
	return GetValidator().Struct(v)
}
