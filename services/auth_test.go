package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/edura-learn/edura_api/dto"
	"github.com/edura-learn/edura_api/model"
	"github.com/edura-learn/edura_api/shared"
)

func newTestJWT() *JWTService {
	return &JWTService{
		AccessTokenDuration: time.Hour,
		jwtSecretKey:        "test-secret",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	sql := newTestDB(t)
	svc := (&AuthService{}).WithDeps(sql, newTestJWT())

	reg, err := svc.Register(dto.RegisterRequest{
		Email:    "jane@example.com",
		Username: "jane",
		Password: "SecurePass123!",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if reg.UserID == "" {
		t.Fatal("expected a user ID")
	}

	user, err := sql.GetUser(reg.UserID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.Role != shared.RoleStudent {
		t.Errorf("new accounts must be students, got %q", user.Role)
	}
	if user.PasswordHash == "SecurePass123!" {
		t.Error("password stored in plaintext")
	}

	for _, identifier := range []string{"jane", "jane@example.com"} {
		resp, err := svc.Login(dto.LoginRequest{
			EmailOrUsername: identifier,
			Password:        "SecurePass123!",
		})
		if err != nil {
			t.Fatalf("Login with %q failed: %v", identifier, err)
		}
		if resp.AccessToken == "" {
			t.Errorf("login with %q returned no token", identifier)
		}
		if resp.User.ID != reg.UserID {
			t.Errorf("login with %q returned wrong user", identifier)
		}
	}
}

func TestRegisterDuplicate(t *testing.T) {
	sql := newTestDB(t)
	svc := (&AuthService{}).WithDeps(sql, newTestJWT())

	req := dto.RegisterRequest{
		Email:    "jane@example.com",
		Username: "jane",
		Password: "SecurePass123!",
	}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := svc.Register(req)
	assertStatusCode(t, err, http.StatusConflict)

	// Same email, different username still conflicts
	req.Username = "janedoe"
	_, err = svc.Register(req)
	assertStatusCode(t, err, http.StatusConflict)
}

func TestLoginWrongPassword(t *testing.T) {
	sql := newTestDB(t)
	svc := (&AuthService{}).WithDeps(sql, newTestJWT())

	if _, err := svc.Register(dto.RegisterRequest{
		Email:    "jane@example.com",
		Username: "jane",
		Password: "SecurePass123!",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := svc.Login(dto.LoginRequest{
		EmailOrUsername: "jane",
		Password:        "wrong",
	})
	assertStatusCode(t, err, http.StatusUnauthorized)

	// Unknown accounts produce the same status as bad passwords
	_, err = svc.Login(dto.LoginRequest{
		EmailOrUsername: "nobody",
		Password:        "whatever",
	})
	assertStatusCode(t, err, http.StatusUnauthorized)
}

func TestChangePassword(t *testing.T) {
	sql := newTestDB(t)
	svc := (&AuthService{}).WithDeps(sql, newTestJWT())

	reg, err := svc.Register(dto.RegisterRequest{
		Email:    "jane@example.com",
		Username: "jane",
		Password: "SecurePass123!",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	err = svc.ChangePassword(reg.UserID, dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "NewSecure456!",
	})
	assertStatusCode(t, err, http.StatusUnauthorized)

	if err := svc.ChangePassword(reg.UserID, dto.ChangePasswordRequest{
		CurrentPassword: "SecurePass123!",
		NewPassword:     "NewSecure456!",
	}); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	if _, err := svc.Login(dto.LoginRequest{
		EmailOrUsername: "jane",
		Password:        "NewSecure456!",
	}); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	sql := newTestDB(t)
	svc := (&AuthService{}).WithDeps(sql, newTestJWT())

	reg, err := svc.Register(dto.RegisterRequest{
		Email:    "jane@example.com",
		Username: "jane",
		Password: "SecurePass123!",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	qualification := "BSc Computer Science"
	info, err := svc.UpdateProfile(reg.UserID, dto.UpdateProfileRequest{
		Qualification: &qualification,
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if info.Qualification != qualification {
		t.Errorf("expected qualification %q, got %q", qualification, info.Qualification)
	}
	if info.Username != "jane" {
		t.Errorf("username must be untouched, got %q", info.Username)
	}

	// Taken usernames are rejected
	if _, err := svc.Register(dto.RegisterRequest{
		Email:    "john@example.com",
		Username: "john",
		Password: "SecurePass123!",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	taken := "john"
	_, err = svc.UpdateProfile(reg.UserID, dto.UpdateProfileRequest{Username: &taken})
	assertStatusCode(t, err, http.StatusConflict)
}

func TestJWTRoundTrip(t *testing.T) {
	jwtSvc := newTestJWT()

	token, err := jwtSvc.GenerateToken("user-1", shared.RoleStudent)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if token.ExpiresIn != 3600 {
		t.Errorf("expected expiry 3600s, got %d", token.ExpiresIn)
	}

	claims, err := jwtSvc.VerifyJWTToken(token.AccessToken)
	if err != nil {
		t.Fatalf("VerifyJWTToken failed: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != shared.RoleStudent {
		t.Errorf("unexpected claims: %+v", claims)
	}

	if _, err := jwtSvc.VerifyJWTToken(token.AccessToken + "tampered"); err == nil {
		t.Error("tampered token must not verify")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	jwtSvc := newTestJWT()

	cases := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"missing", "", "", true},
		{"wrong scheme", "Basic abc", "", true},
		{"bare token", "abc.def.ghi", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := jwtSvc.ExtractTokenFromHeader(tc.header)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for header %q", tc.header)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestListStudents(t *testing.T) {
	sql := newTestDB(t)
	svc := (&AuthService{}).WithDeps(sql, newTestJWT())

	createTestUser(t, sql, "student1")
	createTestUser(t, sql, "student2")
	if _, err := sql.CreateUser(&model.User{
		Username:     "boss",
		Email:        "boss@example.com",
		PasswordHash: "not-a-real-hash",
		Role:         shared.RoleAdmin,
	}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	list, err := svc.ListStudents()
	if err != nil {
		t.Fatalf("ListStudents failed: %v", err)
	}
	if list.Total != 2 {
		t.Fatalf("expected 2 students, got %d", list.Total)
	}
	for _, user := range list.Users {
		if user.Role != shared.RoleStudent {
			t.Errorf("expected students only, found role %q", user.Role)
		}
	}
}
