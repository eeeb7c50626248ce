package dto

import "time"

type RegisterRequest struct {
	Email            string `json:"email" validate:"required,email" example:"user@example.com"`
	Username         string `json:"username" validate:"required,min=3,max=30,alphanum" example:"johndoe"`
	Password         string `json:"password" validate:"required,strong_password" example:"SecurePass123!"`
	Qualification    string `json:"qualification,omitempty" validate:"omitempty,max=120" example:"BSc Computer Science"`
	InstituteCompany string `json:"institute_company,omitempty" validate:"omitempty,max=120" example:"MIT"`
}

func (r RegisterRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LoginRequest struct {
	EmailOrUsername string `json:"email_or_username" validate:"required" example:"user@example.com"`
	Password        string `json:"password" validate:"required" example:"SecurePass123!"`
}

func (l LoginRequest) Validate() error {
	return GetValidator().Struct(l)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required" example:"OldPass123!"`
	NewPassword     string `json:"new_password" validate:"required,strong_password" example:"NewPass123!"`
}

func (c ChangePasswordRequest) Validate() error {
	return GetValidator().Struct(c)
}

type UpdateProfileRequest struct {
	Username         *string `json:"username,omitempty" validate:"omitempty,min=3,max=30,alphanum" example:"newusername"`
	Qualification    *string `json:"qualification,omitempty" validate:"omitempty,max=120" example:"MSc Data Science"`
	InstituteCompany *string `json:"institute_company,omitempty" validate:"omitempty,max=120" example:"Stanford"`
}

func (u UpdateProfileRequest) Validate() error {
	return GetValidator().Struct(u)
}

type RegisterResponse struct {
	UserID  string `json:"user_id" example:"0190a2b4-..."`
	Message string `json:"message" example:"Registration successful"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresIn   int64    `json:"expires_in" example:"86400"`
	User        UserInfo `json:"user"`
}

type UserListResponse struct {
	Users []UserInfo `json:"users"`
	Total int        `json:"total"`
}

type UserInfo struct {
	ID               string    `json:"id"`
	Username         string    `json:"username" example:"johndoe"`
	Email            string    `json:"email" example:"user@example.com"`
	Role             string    `json:"role" example:"student"`
	Qualification    string    `json:"qualification,omitempty"`
	InstituteCompany string    `json:"institute_company,omitempty"`
	Exp              int       `json:"exp" example:"250"`
	Coins            int       `json:"coins" example:"120"`
	Rank             string    `json:"rank" example:"Bronze"`
	CreatedAt        time.Time `json:"created_at"`
}
