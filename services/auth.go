package services

import (
	"errors"

	"github.com/edura-learn/edura_api/dto"
	"github.com/edura-learn/edura_api/model"
	"github.com/edura-learn/edura_api/shared"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns registration, login and profile management. Password
// hashes never leave this service.
type AuthService struct {
	context.DefaultService

	sql *PostgresService
	jwt *JWTService
}

const AUTH_SVC = "auth_svc"

const bcryptCost = 12

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	svc.sql = ctx.Service(POSTGRES_SVC).(*PostgresService)
	svc.jwt = ctx.Service(JWT_SVC).(*JWTService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	return nil
}

// WithDeps wires dependencies directly, bypassing the service container.
// Used by tests.
func (svc *AuthService) WithDeps(sql *PostgresService, jwt *JWTService) *AuthService {
	svc.sql = sql
	svc.jwt = jwt
	return svc
}

func (svc *AuthService) Register(req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if available, err := svc.sql.IsEmailAvailable(req.Email); err != nil {
		return nil, err
	} else if !available {
		return nil, shared.NewConflictError(nil, "Email already registered")
	}

	if available, err := svc.sql.IsUsernameAvailable(req.Username); err != nil {
		return nil, err
	} else if !available {
		return nil, shared.NewConflictError(nil, "Username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to hash password")
	}

	user, err := svc.sql.CreateUser(&model.User{
		Username:         req.Username,
		Email:            req.Email,
		PasswordHash:     string(hash),
		Role:             shared.RoleStudent,
		Qualification:    req.Qualification,
		InstituteCompany: req.InstituteCompany,
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User registered")

	return &dto.RegisterResponse{
		UserID:  user.ID,
		Message: "Registration successful",
	}, nil
}

func (svc *AuthService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := svc.sql.GetUserByEmailOrUsername(req.EmailOrUsername)
	if err != nil {
		// Do not leak whether the account exists
		return nil, shared.NewUnauthorizedError(nil, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, shared.NewUnauthorizedError(nil, "Invalid credentials")
	}

	token, err := svc.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to generate token")
	}

	return &dto.LoginResponse{
		AccessToken: token.AccessToken,
		ExpiresIn:   token.ExpiresIn,
		User:        toUserInfo(user),
	}, nil
}

func (svc *AuthService) GetProfile(userID string) (*dto.UserInfo, error) {
	user, err := svc.sql.GetUser(userID)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(user)
	return &info, nil
}

func (svc *AuthService) UpdateProfile(userID string, req dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	user, err := svc.sql.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		available, err := svc.sql.IsUsernameAvailable(*req.Username)
		if err != nil {
			return nil, err
		}
		if !available {
			return nil, shared.NewConflictError(nil, "Username already taken")
		}
		user.Username = *req.Username
	}
	if req.Qualification != nil {
		user.Qualification = *req.Qualification
	}
	if req.InstituteCompany != nil {
		user.InstituteCompany = *req.InstituteCompany
	}

	if err := svc.sql.UpdateUser(user); err != nil {
		return nil, err
	}

	info := toUserInfo(user)
	return &info, nil
}

// ListStudents returns every student account. Admin only; the route
// guard enforces the role.
func (svc *AuthService) ListStudents() (*dto.UserListResponse, error) {
	users, err := svc.sql.ListUsersByRole(shared.RoleStudent)
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserInfo, 0, len(users))
	for i := range users {
		out = append(out, toUserInfo(&users[i]))
	}
	return &dto.UserListResponse{Users: out, Total: len(out)}, nil
}

func (svc *AuthService) ChangePassword(userID string, req dto.ChangePasswordRequest) error {
	user, err := svc.sql.GetUser(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return shared.NewUnauthorizedError(errors.New("password mismatch"), "Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return shared.NewInternalError(err, "Failed to hash password")
	}

	user.PasswordHash = string(hash)
	return svc.sql.UpdateUser(user)
}

func toUserInfo(user *model.User) dto.UserInfo {
	return dto.UserInfo{
		ID:               user.ID,
		Username:         user.Username,
		Email:            user.Email,
		Role:             user.Role,
		Qualification:    user.Qualification,
		InstituteCompany: user.InstituteCompany,
		Exp:              user.Exp,
		Coins:            user.Coins,
		Rank:             user.Rank,
		CreatedAt:        user.CreatedAt,
	}
}
