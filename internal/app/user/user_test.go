package user

import (
	"slices"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestDirectory(t *testing.T) {
	dir, err := NewDirectory(map[string]string{"mark": "pass123", "luke": "pass456"}, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewDirectory error: %v", err)
	}

	t.Run("Verify", func(t *testing.T) {
		tests := []struct {
			name     string
			username string
			password string
			want     bool
		}{
			{"mark ok", "mark", "pass123", true},
			{"luke ok", "luke", "pass456", true},
			{"wrong password", "mark", "wrong", false},
			{"swapped password", "mark", "pass456", false},
			{"unknown user", "ghost", "pass123", false},
			{"empty", "", "", false},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if got := dir.Verify(tt.username, tt.password); got != tt.want {
					t.Errorf("Verify(%q, %q) = %v, want %v", tt.username, tt.password, got, tt.want)
				}
			})
		}
	})

	t.Run("Usernames is sorted", func(t *testing.T) {
		if got := dir.Usernames(); !slices.Equal(got, []string{"luke", "mark"}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("passwords are not stored in plaintext", func(t *testing.T) {
		if string(dir.accounts["mark"].PasswordHash) == "pass123" {
			t.Error("password stored verbatim")
		}
	})

	t.Run("empty username is rejected", func(t *testing.T) {
		if _, err := NewDirectory(map[string]string{"": "x"}, bcrypt.MinCost); err == nil {
			t.Error("expected error")
		}
	})
}
