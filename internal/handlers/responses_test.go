package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rabermudezg13/coffee-cupping-app/internal/scoring"
	"github.com/rabermudezg13/coffee-cupping-app/internal/service"
	"github.com/rabermudezg13/coffee-cupping-app/internal/validation"
)

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation error", validation.ValidateEmail("not-an-email"), http.StatusBadRequest},
		{"range error", &scoring.RangeError{Name: "aroma", Value: 11}, http.StatusBadRequest},
		{"invalid response", service.ErrInvalidResponse, http.StatusBadRequest},
		{"no invitees", service.ErrNoInviteesResolved, http.StatusBadRequest},
		{"email taken", service.ErrEmailTaken, http.StatusConflict},
		{"username taken", service.ErrUsernameTaken, http.StatusConflict},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invitation missing", service.ErrInvitationNotFound, http.StatusNotFound},
		{"cupping missing", service.ErrCuppingNotFound, http.StatusNotFound},
		{"wrapped sentinel", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondServiceError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not valid JSON: %v", err)
			}
			if body["error"] == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestRespondServiceErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	respondServiceError(rec, errors.New("pq: connection refused on 10.0.0.5"))

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body["error"] != "internal server error" {
		t.Errorf("error = %q, internal detail should not leak", body["error"])
	}
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusCreated, map[string]int{"n": 1})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	var body map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body["n"] != 1 {
		t.Errorf("body = %v", body)
	}
}
