package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/use-agent/threadster/api"
	"github.com/use-agent/threadster/api/handler"
	"github.com/use-agent/threadster/config"
	"github.com/use-agent/threadster/engine"
	"github.com/use-agent/threadster/models"
	"github.com/use-agent/threadster/scraper"
)

func main() {
	app := &cli.App{
		Name:           "threadster",
		Usage:          "Threads post download-link API",
		Version:        handler.Version,
		DefaultCommand: "serve",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "log-format", Usage: "json or text"},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "host", Usage: "listen address"},
					&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "listen port"},
					&cli.BoolFlag{Name: "debug", Usage: "run gin in debug mode"},
				},
				Action: serveAction,
			},
			{
				Name:      "fetch",
				Usage:     "look up one post and print the API response",
				ArgsUsage: "<post ID or URL>",
				Action:    fetchAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies global flag overrides.
func loadConfig(c *cli.Context) *config.Config {
	cfg := config.Load()
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}
	initLogger(cfg.Log)
	return cfg
}

func newScraper(cfg *config.Config) *scraper.Scraper {
	return scraper.NewScraper(engine.NewHTTPEngine(cfg.Upstream), cfg.Upstream)
}

func serveAction(c *cli.Context) error {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := loadConfig(c)
	if c.IsSet("host") {
		cfg.Server.Host = c.String("host")
	}
	if c.IsSet("port") {
		cfg.Server.Port = c.Int("port")
	}
	if c.Bool("debug") {
		cfg.Server.Mode = "debug"
	}

	slog.Info("threadster starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"upstream", cfg.Upstream.BaseURL,
		"timeout", cfg.Upstream.Timeout,
		"corsOrigin", cfg.CORS.AllowOrigin,
	)

	// ── 2. Setup router ─────────────────────────────────────────────
	router := api.NewRouter(newScraper(cfg), cfg, time.Now())

	// ── 3. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// ── 4. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("threadster stopped")
	return nil
}

// fetchAction runs one lookup without the HTTP server and prints the same
// JSON body the API would return.
func fetchAction(c *cli.Context) error {
	cfg := loadConfig(c)

	resp, err := handler.LookupThread(c.Context, newScraper(cfg), c.Args().First())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err != nil {
		var threadErr *models.ThreadError
		if !errors.As(err, &threadErr) {
			threadErr = models.NewUnexpectedFault(err)
		}
		_ = enc.Encode(threadErr.ToResponse())
		return cli.Exit("", 1)
	}
	return enc.Encode(resp)
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if cfg.Format == "text" {
		h = slog.NewTextHandler(os.Stderr, opts)
	} else {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(h))
}
