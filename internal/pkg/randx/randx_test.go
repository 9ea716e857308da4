package randx

import (
	"testing"

	"github.com/google/uuid"
)

func TestAlphanumeric(t *testing.T) {
	for _, n := range []int{0, 1, 10, 64} {
		s, err := Alphanumeric(n)
		if err != nil {
			t.Fatalf("Alphanumeric(%d) error: %v", n, err)
		}
		if len(s) != n {
			t.Errorf("Alphanumeric(%d) returned length %d", n, len(s))
		}
		if n > 0 && !IsAlphanumeric(s) {
			t.Errorf("Alphanumeric(%d) = %q contains foreign characters", n, s)
		}
	}
}

func TestGeneratedPost(t *testing.T) {
	seen := make(map[string]struct{})
	for range 20 {
		p, err := GeneratedPost()
		if err != nil {
			t.Fatalf("GeneratedPost error: %v", err)
		}
		if len(p) != GeneratedPostLength {
			t.Errorf("expected length %d, got %q", GeneratedPostLength, p)
		}
		seen[p] = struct{}{}
	}
	if len(seen) < 2 {
		t.Error("generated posts are not random")
	}
}

func TestSessionID(t *testing.T) {
	id := SessionID()
	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("SessionID %q is not a UUID: %v", id, err)
	}
	if parsed.Version() != 4 {
		t.Errorf("expected version 4, got %d", parsed.Version())
	}
	if SessionID() == id {
		t.Error("session ids repeat")
	}
}

func TestIsAlphanumeric(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"abcXYZ019", true},
		{"", false},
		{"with space", false},
		{"dash-", false},
		{"ümlaut", false},
	}

	for _, tt := range tests {
		if got := IsAlphanumeric(tt.in); got != tt.want {
			t.Errorf("IsAlphanumeric(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
