package shared

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestGetAppError(t *testing.T) {
	base := errors.New("row missing")
	appErr := NewNotFoundError(base, "Course not found")

	got, ok := GetAppError(appErr)
	if !ok {
		t.Fatal("expected AppError to be recognised")
	}
	if got.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", got.StatusCode)
	}
	if !errors.Is(appErr, base) {
		t.Error("AppError must unwrap to its cause")
	}

	// Wrapped AppErrors are still found
	wrapped := fmt.Errorf("handler: %w", appErr)
	if _, ok := GetAppError(wrapped); !ok {
		t.Error("wrapped AppError not recognised")
	}

	if _, ok := GetAppError(errors.New("plain")); ok {
		t.Error("plain error must not be an AppError")
	}
}

func TestAppErrorStatusCodes(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{NewBadRequestError(nil, "bad"), http.StatusBadRequest},
		{NewUnauthorizedError(nil, "no"), http.StatusUnauthorized},
		{NewForbiddenError(nil, "denied"), http.StatusForbidden},
		{NewNotFoundError(nil, "gone"), http.StatusNotFound},
		{NewConflictError(nil, "dup"), http.StatusConflict},
		{NewInternalError(nil, "boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if tc.err.StatusCode != tc.want {
			t.Errorf("expected %d, got %d for %q", tc.want, tc.err.StatusCode, tc.err.Message)
		}
	}
}
