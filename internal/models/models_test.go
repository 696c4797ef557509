package models

import (
	"testing"
	"time"
)

func TestSessionIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{
			name:      "future expiration",
			expiresAt: time.Now().Add(1 * time.Hour),
			want:      false,
		},
		{
			name:      "just expired",
			expiresAt: time.Now().Add(-1 * time.Second),
			want:      true,
		},
		{
			name:      "expired yesterday",
			expiresAt: time.Now().Add(-24 * time.Hour),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := Session{
				ID:        "test-session",
				UserID:    "user-1",
				ExpiresAt: tt.expiresAt,
				CreatedAt: time.Now().Add(-1 * time.Hour),
			}
			if got := session.IsExpired(); got != tt.want {
				t.Errorf("Session.IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInvitationIsExpiredAt(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	inv := Invitation{
		InvitationID: "inv-1",
		CreatedAt:    created,
		ExpiresAt:    created.Add(7 * 24 * time.Hour),
	}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"at creation", created, false},
		{"day six", created.Add(6 * 24 * time.Hour), false},
		{"exactly at expiry", inv.ExpiresAt, false},
		{"one second after expiry", inv.ExpiresAt.Add(time.Second), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inv.IsExpiredAt(tt.now); got != tt.want {
				t.Errorf("IsExpiredAt(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestInvitationHasInvitee(t *testing.T) {
	inv := Invitation{
		InviteeUsers: []InviteeUser{
			{UserID: "u1", Username: "alice", Email: "alice@example.com"},
			{UserID: "u2", Username: "bob", Email: "bob@example.com"},
		},
	}

	if !inv.HasInvitee("u1") {
		t.Error("HasInvitee(u1) = false, want true")
	}
	if inv.HasInvitee("u3") {
		t.Error("HasInvitee(u3) = true, want false")
	}
}

func TestInvitationSessionMetadata(t *testing.T) {
	tests := []struct {
		name        string
		sessionData map[string]interface{}
		wantCoffee  string
		wantType    string
	}{
		{
			name: "both present",
			sessionData: map[string]interface{}{
				"coffee_name":  "Ethiopia Yirgacheffe",
				"session_type": "Professional Cupping",
			},
			wantCoffee: "Ethiopia Yirgacheffe",
			wantType:   "Professional Cupping",
		},
		{
			name:        "missing fields fall back",
			sessionData: map[string]interface{}{},
			wantCoffee:  "Unknown Coffee",
			wantType:    "Quick Cupping",
		},
		{
			name: "wrong type falls back",
			sessionData: map[string]interface{}{
				"coffee_name": 42,
			},
			wantCoffee: "Unknown Coffee",
			wantType:   "Quick Cupping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := Invitation{SessionData: tt.sessionData}
			if got := inv.CoffeeName(); got != tt.wantCoffee {
				t.Errorf("CoffeeName() = %q, want %q", got, tt.wantCoffee)
			}
			if got := inv.SessionType(); got != tt.wantType {
				t.Errorf("SessionType() = %q, want %q", got, tt.wantType)
			}
		})
	}
}

func TestEvaluationPayloadNumber(t *testing.T) {
	eval := EvaluationPayload{
		"overall_score": 88.0,
		"aroma":         8,
		"flavor":        int64(9),
		"flavor_notes":  "floral, bergamot",
	}

	tests := []struct {
		key    string
		want   float64
		wantOK bool
	}{
		{"overall_score", 88.0, true},
		{"aroma", 8.0, true},
		{"flavor", 9.0, true},
		{"flavor_notes", 0, false},
		{"acidity", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := eval.Number(tt.key)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Number(%q) = (%v, %v), want (%v, %v)", tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestUserDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		want     string
	}{
		{
			name: "show name enabled",
			user: User{Username: "coffeelover", ShowName: true},
			want: "coffeelover",
		},
		{
			name: "show name disabled",
			user: User{Username: "coffeelover", ShowName: false},
			want: "Anonymous",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}
