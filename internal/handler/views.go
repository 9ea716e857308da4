package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"livefeed/internal/pkg/logx"
)

//go:embed templates/*.html
var templateFS embed.FS

// LoginView is the data rendered by login.html.
type LoginView struct {
	Username string
	Error    string
}

// HomeView is the data rendered by home.html.
type HomeView struct {
	Username      string
	SessionID     string
	Posts         []string
	ButtonToggled bool
}

// Views holds the parsed page templates.
type Views struct {
	login *template.Template
	home  *template.Template
}

// NewViews parses the embedded templates.
func NewViews() (*Views, error) {
	login, err := template.ParseFS(templateFS, "templates/login.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse login template: %w", err)
	}

	home, err := template.ParseFS(templateFS, "templates/home.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse home template: %w", err)
	}

	return &Views{login: login, home: home}, nil
}

// RenderLogin writes the login page with the given status.
func (v *Views) RenderLogin(w http.ResponseWriter, status int, data LoginView) {
	render(w, v.login, status, data)
}

// RenderHome writes the homepage.
func (v *Views) RenderHome(w http.ResponseWriter, data HomeView) {
	render(w, v.home, http.StatusOK, data)
}

// render executes into a buffer first so a template failure never leaves a half-written page.
func render(w http.ResponseWriter, tmpl *template.Template, status int, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		logx.Error(err, "Failed to render template", "template", tmpl.Name())
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
