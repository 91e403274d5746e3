package engine

import (
	"context"
)

// Engine is the interface that all fetch engines must implement.
type Engine interface {
	// Name returns the engine identifier (e.g. "http").
	Name() string

	// Fetch retrieves the page for the given request. A non-2xx upstream
	// status is not an error; callers inspect FetchResult.StatusCode.
	Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error)
}

// FetchRequest contains everything an engine needs to fetch a page.
type FetchRequest struct {
	URL     string
	Headers map[string]string
}

// FetchResult is the output of a completed upstream round trip.
type FetchResult struct {
	Body       []byte
	StatusCode int
	FinalURL   string
	EngineName string
}
