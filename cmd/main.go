/*
Package main is the entry point for the livefeed homepage server.

It loads configuration, initializes the global logging system, builds the session
registry and HTTP router, and shuts the server down gracefully on SIGINT or SIGTERM.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/crypto/bcrypt"

	"livefeed/internal/app/feed"
	"livefeed/internal/app/user"
	"livefeed/internal/configs"
	"livefeed/internal/handler"
	"livefeed/internal/pkg/logx"
)

func main() {
	app := &cli.Command{
		Name:     "livefeed",
		Usage:    "Serve per-user homepages with live updates",
		Flags:    serveFlags(),
		Action:   serve,
		Commands: []*cli.Command{serveCommand()},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Start the HTTP server",
		Flags:  serveFlags(),
		Action: serve,
	}
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "env-file",
			Aliases: []string{"e"},
			Usage:   "Path to a .env file loaded before reading the environment",
			Value:   ".env",
		},
		&cli.StringFlag{
			Name:    "users",
			Aliases: []string{"u"},
			Usage:   "Path to a TOML accounts file (overrides USERS_FILE)",
		},
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	if err := configs.LoadEnvFile(cmd.String("env-file")); err != nil {
		return err
	}

	cfg, err := configs.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if path := cmd.String("users"); path != "" {
		users, err := configs.LoadUsers(path)
		if err != nil {
			return err
		}
		cfg.UsersFile = path
		cfg.Users = users
	}

	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("auth_token_mode", cfg.AuthTokenMode).
		Int("accounts", len(cfg.Users)).
		Dur("generate_interval", cfg.GenerateInterval).
		Bool("login_rate_limited", cfg.LoginRateLimited()).
		Msg("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	directory, err := user.NewDirectory(cfg.Users, bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to build account directory: %w", err)
	}

	logx.Info("Account directory ready", "usernames", directory.Usernames())

	registry := feed.NewRegistry()

	deps, err := handler.NewAppDeps(cfg, registry, directory)
	if err != nil {
		return fmt.Errorf("failed to initialize handlers: %w", err)
	}

	loginLimiter := handler.NewLoginLimiter(ctx, cfg)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler.Router(deps, loginLimiter),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logx.Info("Livefeed server starting", "address", "http://localhost"+serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
	case <-ctx.Done():
	}
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	// Streams only end when their queues close, so close them before waiting on the server.
	registry.Shutdown()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
		return err
	}

	logx.Info("Server gracefully stopped.")
	return nil
}
