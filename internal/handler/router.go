/*
Package handler provides the HTTP handlers and routing for the homepage service.

This file defines the main Router, applying the shared middleware (CORS, request ids,
logging, panic recovery, identity extraction) before delegating to the page, API and
stream handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"livefeed/internal/pkg/auth/cookie"
	"livefeed/internal/pkg/limiter"
	"livefeed/internal/pkg/logx"
	"livefeed/internal/pkg/resp"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

// Router sets up the HTTP routing table for the application.
// loginLimiter throttles POST /login per client address; nil disables throttling.
func Router(deps *AppDeps, loginLimiter *limiter.IPRateLimiter) http.Handler {
	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.IsDevelopment() {
				return true
			}

			origin := r.Header.Get("Origin")
			if origin == "" || origin == "http://"+r.Host || origin == "https://"+r.Host {
				return true
			}

			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Last-Event-ID"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(cookie.IdentityExtractorMiddleware(deps.Tokens))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondJSON(w, r, http.StatusOK, HealthResponse{
			Status:   "ok",
			Sessions: deps.Registry.Len(),
		})
	})

	r.Get("/", HandleHome(deps))
	r.Get("/login", HandleLoginPage(deps))

	var login http.Handler = HandleLogin(deps)
	if loginLimiter != nil {
		login = loginLimiter.Middleware(login)
	}
	r.Method(http.MethodPost, "/login", login)

	r.Get("/logout", HandleLogout(deps))

	r.Post("/add_post", HandleAddPost(deps))
	r.Get("/generate_post", HandleGeneratePost(deps))

	r.Get("/stream/{username}", HandleStream(deps))
	r.Get("/ws/{username}", HandleWebSocket(deps, wsUpgrader))

	return r
}
