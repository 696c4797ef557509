package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid email", "cupper@example.com", false},
		{"valid with plus", "cupper+tags@example.co.uk", false},
		{"surrounding whitespace trimmed", "  cupper@example.com  ", false},
		{"empty", "", true},
		{"missing at", "cupper.example.com", true},
		{"missing domain", "cupper@", true},
		{"missing tld", "cupper@example", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid", "coffee_lover", false},
		{"minimum length", "abc", false},
		{"maximum length", "a2345678901234567890", false},
		{"empty", "", true},
		{"too short", "ab", true},
		{"too long", "a23456789012345678901", true},
		{"spaces", "coffee lover", true},
		{"special characters", "coffee-lover!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUsername(%q) error = %v, wantErr %v", tt.username, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "espresso", false},
		{"minimum length", "6chars", false},
		{"empty", "", true},
		{"too short", "5char", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError{Field: "email", Message: "invalid email format"}
	want := "email: invalid email format"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
