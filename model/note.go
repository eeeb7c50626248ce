package model

import "time"

// Note is a user-uploaded PDF. The document itself lives in object
// storage under ObjectKey; the row only carries metadata and vote
// counters.
type Note struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"not null;index"`
	Title         string    `json:"title" gorm:"not null"`
	Description   string    `json:"description" gorm:"type:text"`
	ObjectKey     string    `json:"-" gorm:"not null"`
	FileSize      int64     `json:"file_size"`
	UpvoteCount   int       `json:"upvote_count" gorm:"default:0"`
	DownvoteCount int       `json:"downvote_count" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
