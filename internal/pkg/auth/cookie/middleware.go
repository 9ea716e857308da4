package cookie

import (
	"context"
	"net/http"
	"time"

	"livefeed/internal/pkg/logx"
)

const (
	// Name is the auth cookie name.
	Name = "auth_token"

	// MaxAge is the auth cookie lifetime.
	MaxAge = 1800 * time.Second
)

type contextKey string

// ContextUsernameKey stores the decoded cookie username in the request context.
const ContextUsernameKey contextKey = "auth_username"

// IdentityExtractorMiddleware decodes the auth cookie and stores the username in the
// request context. It never rejects a request: a missing or malformed cookie leaves the
// request anonymous and each handler decides how to answer.
func IdentityExtractorMiddleware(codec Codec) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(Name)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			username, err := codec.Decode(c.Value)
			if err != nil {
				logx.Warn("Malformed auth cookie, treating request as anonymous", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextUsernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UsernameFromContext returns the username decoded by IdentityExtractorMiddleware.
func UsernameFromContext(r *http.Request) (string, bool) {
	username, ok := r.Context().Value(ContextUsernameKey).(string)
	return username, ok && username != ""
}

// SetAuthCookie writes the auth cookie: HttpOnly, SameSite=Lax, MaxAge 1800s.
func SetAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(MaxAge / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearAuthCookie expires the auth cookie in the browser.
func ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
