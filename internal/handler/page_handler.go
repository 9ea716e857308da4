/*
Package handler provides the HTTP handlers and routing for the homepage service.

This file holds the browser-facing pages: the homepage, the login form and logout.
Unauthenticated page requests are redirected to the login form rather than answered
with an error body.
*/
package handler

import (
	"net/http"

	"livefeed/internal/pkg/auth/cookie"
	"livefeed/internal/pkg/errs"
	"livefeed/internal/pkg/logx"
	"livefeed/internal/pkg/randx"
	"livefeed/internal/pkg/req"
	"livefeed/internal/pkg/resp"
)

// HandleHome renders the authenticated user's homepage. The first render of a homepage
// assigns its session id; later renders keep it.
func HandleHome(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hp, ok := deps.currentHomepage(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
			return
		}

		if hp.SetSessionIDOnce(randx.SessionID()) {
			logx.Info("Session established", "username", hp.Username, "session_id", hp.SessionID())
		}

		deps.Views.RenderHome(w, HomeView{
			Username:      hp.Username,
			SessionID:     hp.SessionID(),
			Posts:         hp.Posts(),
			ButtonToggled: hp.ButtonToggled(),
		})
	}
}

// HandleLoginPage renders the empty login form.
func HandleLoginPage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps.Views.RenderLogin(w, http.StatusOK, LoginView{})
	}
}

// HandleLogin verifies the submitted credentials. On success it registers (or reuses)
// the user's homepage, sets the auth cookie and redirects to "/". On failure it
// re-renders the form with an error and sets no cookie.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if customErr := req.ParseForm(w, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		username, customErr := req.RequiredField(r, "username")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		password, customErr := req.RequiredField(r, "password")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if !deps.Directory.Verify(username, password) {
			deps.Views.RenderLogin(w, http.StatusOK, LoginView{
				Username: username,
				Error:    errs.NewError(errs.ErrInvalidCredentials).Message,
			})
			return
		}

		token, err := deps.Tokens.Encode(username)
		if err != nil {
			logx.Error(err, "login: token encoding failed", "username", username)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		deps.Registry.GetOrCreate(username)

		cookie.SetAuthCookie(w, token)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// HandleLogout drops the user's homepage, which also ends any open stream for it,
// clears the auth cookie and redirects to the login form.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if username, ok := cookie.UsernameFromContext(r); ok {
			deps.Registry.Remove(username)
		}

		cookie.ClearAuthCookie(w)
		http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
	}
}
