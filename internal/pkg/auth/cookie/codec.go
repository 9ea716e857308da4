/*
Package cookie implements the auth_token cookie: encoding a username into the cookie
value, decoding it back, and the middleware that exposes the decoded username to handlers.

Two codecs exist. PlainCodec is the historical scheme, base64("<username>:authenticated"),
kept byte-compatible with existing clients; it is not a credential and anyone can forge
it. SignedCodec wraps an HS256 token and is selected with AUTH_TOKEN_MODE=signed.
*/
package cookie

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"livefeed/internal/pkg/auth/jwt"
)

// ErrMalformedToken is returned for any cookie value that cannot be decoded to a username.
var ErrMalformedToken = errors.New("malformed auth token")

const authenticatedSuffix = "authenticated"

// Codec converts between a username and an auth cookie value.
type Codec interface {
	Encode(username string) (string, error)
	Decode(token string) (string, error)
}

// PlainCodec is the unsigned base64 scheme.
type PlainCodec struct{}

// Encode returns base64("<username>:authenticated").
func (PlainCodec) Encode(username string) (string, error) {
	if username == "" {
		return "", fmt.Errorf("%w: empty username", ErrMalformedToken)
	}
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + authenticatedSuffix)), nil
}

// Decode returns the text before the first ':' of the decoded value.
// A value without ':' decodes to itself.
func (PlainCodec) Decode(token string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: not valid UTF-8", ErrMalformedToken)
	}

	username, _, _ := strings.Cut(string(raw), ":")
	if username == "" {
		return "", fmt.Errorf("%w: empty username", ErrMalformedToken)
	}

	return username, nil
}

// SignedCodec issues HS256 tokens that expire after TTL.
type SignedCodec struct {
	Secret string
	TTL    time.Duration
}

// Encode signs a token for username.
func (c SignedCodec) Encode(username string) (string, error) {
	if username == "" {
		return "", fmt.Errorf("%w: empty username", ErrMalformedToken)
	}
	return jwt.GenerateToken(username, c.Secret, c.TTL)
}

// Decode verifies the token and returns its username.
func (c SignedCodec) Decode(token string) (string, error) {
	payload, err := jwt.ParseToken(token, c.Secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return payload.Username, nil
}
