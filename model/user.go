package model

import "time"

type User struct {
	ID               string `json:"id" gorm:"primaryKey"`
	Username         string `json:"username" gorm:"unique;not null"`
	Email            string `json:"email" gorm:"unique;not null"`
	PasswordHash     string `json:"-"`
	Role             string `json:"role" gorm:"default:student"`
	Qualification    string `json:"qualification"`
	InstituteCompany string `json:"institute_company"`

	// Cumulative reward totals. Only ever incremented by the reward
	// ledger; never decremented.
	Exp   int    `json:"exp" gorm:"default:0"`
	Coins int    `json:"coins" gorm:"default:0"`
	Rank  string `json:"rank" gorm:"default:Bronze"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
