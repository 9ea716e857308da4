package handler

import (
	"context"
	"net/http"

	"golang.org/x/time/rate"

	"livefeed/internal/app/feed"
	"livefeed/internal/app/user"
	"livefeed/internal/configs"
	"livefeed/internal/pkg/auth/cookie"
	"livefeed/internal/pkg/limiter"
)

// AppDeps carries everything the HTTP handlers share. It is built once at startup and
// passed explicitly to every handler constructor.
type AppDeps struct {
	Registry  *feed.Registry
	Config    *configs.AppConfig
	Directory *user.Directory
	Tokens    cookie.Codec
	Burst     feed.Burst
	Views     *Views
}

// NewAppDeps wires the dependencies derived from cfg.
func NewAppDeps(cfg *configs.AppConfig, registry *feed.Registry, directory *user.Directory) (*AppDeps, error) {
	views, err := NewViews()
	if err != nil {
		return nil, err
	}

	var tokens cookie.Codec = cookie.PlainCodec{}
	if cfg.AuthTokenMode == configs.TokenModeSigned {
		tokens = cookie.SignedCodec{Secret: cfg.JWTSecret, TTL: cookie.MaxAge}
	}

	return &AppDeps{
		Registry:  registry,
		Config:    cfg,
		Directory: directory,
		Tokens:    tokens,
		Burst:     feed.NewBurst(cfg.GenerateInterval),
		Views:     views,
	}, nil
}

// NewLoginLimiter returns the per-address limiter for POST /login, or nil when
// cfg leaves login unthrottled. The limiter's sweep stops with ctx.
func NewLoginLimiter(ctx context.Context, cfg *configs.AppConfig) *limiter.IPRateLimiter {
	if !cfg.LoginRateLimited() {
		return nil
	}
	return limiter.NewIPRateLimiter(ctx, rate.Limit(cfg.LoginRate), cfg.LoginBurst)
}

// currentHomepage resolves the homepage of the cookie-authenticated user. It fails for
// anonymous requests and for cookies naming a user without a registered homepage.
func (deps *AppDeps) currentHomepage(r *http.Request) (*feed.Homepage, bool) {
	username, ok := cookie.UsernameFromContext(r)
	if !ok {
		return nil, false
	}
	return deps.Registry.Get(username)
}

// streamHomepage resolves the homepage a stream should consume. A homepage whose queue
// is already closed is being logged out and counts as absent.
func (deps *AppDeps) streamHomepage(username string) (*feed.Homepage, bool) {
	hp, ok := deps.Registry.Get(username)
	if !ok || hp.Queue().Closed() {
		return nil, false
	}
	return hp, true
}
