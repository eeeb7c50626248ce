package dto

import "testing"

func TestRegisterRequestValidate(t *testing.T) {
	cases := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{
			name: "valid",
			req: RegisterRequest{
				Email:    "jane@example.com",
				Username: "jane123",
				Password: "SecurePass123!",
			},
		},
		{
			name: "bad email",
			req: RegisterRequest{
				Email:    "not-an-email",
				Username: "jane123",
				Password: "SecurePass123!",
			},
			wantErr: true,
		},
		{
			name: "weak password",
			req: RegisterRequest{
				Email:    "jane@example.com",
				Username: "jane123",
				Password: "password",
			},
			wantErr: true,
		},
		{
			name: "short username",
			req: RegisterRequest{
				Email:    "jane@example.com",
				Username: "ab",
				Password: "SecurePass123!",
			},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestStrongPasswordRules(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{"SecurePass123!", true},
		{"short1!A", true},
		{"alllowercase1!", false},
		{"ALLUPPERCASE1!", false},
		{"NoNumbers!", false},
		{"NoSpecial123", false},
		{"Ab1!", false},
	}

	for _, tc := range cases {
		req := RegisterRequest{
			Email:    "jane@example.com",
			Username: "jane123",
			Password: tc.password,
		}
		err := req.Validate()
		if tc.ok && err != nil {
			t.Errorf("password %q should be accepted: %v", tc.password, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("password %q should be rejected", tc.password)
		}
	}
}

func TestSubmitQuestRequestValidate(t *testing.T) {
	valid := SubmitQuestRequest{
		Answers: []QuestAnswer{{QuestionID: "q1", SelectedOption: 2}},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	empty := SubmitQuestRequest{}
	if err := empty.Validate(); err == nil {
		t.Fatal("empty answer list must be rejected")
	}

	outOfRange := SubmitQuestRequest{
		Answers: []QuestAnswer{{QuestionID: "q1", SelectedOption: 5}},
	}
	if err := outOfRange.Validate(); err == nil {
		t.Fatal("selected option above 4 must be rejected")
	}
}

func TestCreateValidationErrorResponse(t *testing.T) {
	req := RegisterRequest{Email: "bad", Username: "x", Password: "weak"}
	err := req.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}

	resp := CreateValidationErrorResponse(err)
	if resp.Code != 400 {
		t.Errorf("expected code 400, got %d", resp.Code)
	}
	if len(resp.Errors) == 0 {
		t.Error("expected field errors")
	}
	for _, fieldErr := range resp.Errors {
		if fieldErr.Field == "" || fieldErr.Message == "" {
			t.Errorf("incomplete field error: %+v", fieldErr)
		}
	}
}
