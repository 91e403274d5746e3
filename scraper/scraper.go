package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/use-agent/threadster/config"
	"github.com/use-agent/threadster/engine"
	"github.com/use-agent/threadster/extractor"
	"github.com/use-agent/threadster/models"
)

const defaultTimeout = 20 * time.Second

// Scraper fetches a post's mirror page and extracts it.
// It holds no per-request state and is safe for concurrent use.
type Scraper struct {
	engine  engine.Engine
	baseURL string
	timeout time.Duration
}

// NewScraper wires an engine to the configured mirror site.
func NewScraper(eng engine.Engine, cfg config.UpstreamConfig) *Scraper {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Scraper{
		engine:  eng,
		baseURL: cfg.BaseURL,
		timeout: timeout,
	}
}

// TargetURL returns the mirror page address for a post ID.
func (s *Scraper) TargetURL(id string) string {
	return s.baseURL + url.PathEscape(id)
}

// DoScrape fetches and extracts the mirror page for id.
//
// The upstream call is detached from ctx cancellation, so a client hanging
// up does not abort it; it is bounded by the configured timeout instead.
func (s *Scraper) DoScrape(ctx context.Context, id string) (*models.Thread, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	target := s.TargetURL(id)
	start := time.Now()

	res, err := s.engine.Fetch(ctx, &engine.FetchRequest{URL: target})
	if err != nil {
		slog.Debug("upstream fetch failed", "url", target, "elapsed", time.Since(start))
		return nil, models.NewUnexpectedFault(err)
	}

	slog.Debug("upstream fetched",
		"url", target,
		"status", res.StatusCode,
		"bytes", len(res.Body),
		"engine", res.EngineName,
		"elapsed", time.Since(start),
	)

	if res.StatusCode != http.StatusOK {
		return nil, models.NewThreadError(
			models.ErrCodeUpstreamFetchFailed,
			models.MsgUpstreamFetchFailed,
			fmt.Errorf("upstream returned HTTP %d for %s", res.StatusCode, target),
		)
	}

	thread, err := extractor.Extract(res.Body)
	if err != nil {
		return nil, err
	}

	slog.Debug("thread extracted", "id", id, "links", len(thread.Links))
	return thread, nil
}
