/*
Package randx generates random identifiers from a cryptographically secure source.

It produces the alphanumeric filler posts of the generate burst and the UUID session
identifiers assigned to a homepage.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62Chars is the alphanumeric alphabet (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the size of the alphabet.
	Base62Len = int64(len(Base62Chars))

	// GeneratedPostLength is the length of a generated post.
	GeneratedPostLength = 10
)

// Alphanumeric returns a random string of length n drawn uniformly from Base62Chars.
func Alphanumeric(n int) (string, error) {
	result := make([]byte, n)

	for i := range n {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}

		result[i] = Base62Chars[num.Int64()]
	}

	return string(result), nil
}

// GeneratedPost returns a random post body of GeneratedPostLength characters.
func GeneratedPost() (string, error) {
	return Alphanumeric(GeneratedPostLength)
}

// SessionID returns a new UUID v4 string.
func SessionID() string {
	return uuid.New().String()
}

// IsAlphanumeric reports whether s is non-empty and made only of Base62Chars.
func IsAlphanumeric(s string) bool {
	if s == "" {
		return false
	}

	for _, char := range s {
		if !strings.ContainsRune(Base62Chars, char) {
			return false
		}
	}

	return true
}
