package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/threadster/models"
	"github.com/use-agent/threadster/resolver"
)

// ThreadScraper fetches and extracts one post by its resolved ID.
type ThreadScraper interface {
	DoScrape(ctx context.Context, id string) (*models.Thread, error)
}

// Thread returns a handler for GET /api/threadster.
//
// Orchestration flow:
//  1. Bind the id query parameter.
//  2. LookupThread → resolver → scraper.
//  3. Map any error to status + {ok:false, message}, or return 200.
func Thread(sc ThreadScraper) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ThreadRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			respondError(c, err)
			return
		}

		resp, err := LookupThread(c.Request.Context(), sc, req.ID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// LookupThread resolves rawID and scrapes the post it names.
func LookupThread(ctx context.Context, sc ThreadScraper, rawID string) (*models.ThreadResponse, error) {
	id, err := resolver.Resolve(rawID)
	if err != nil {
		return nil, err
	}

	thread, err := sc.DoScrape(ctx, id)
	if err != nil {
		return nil, err
	}

	return models.NewThreadResponse(thread), nil
}

// respondError maps an error to the correct HTTP status code and writes the
// {ok:false, message} body. Errors that are not ThreadErrors become
// UNEXPECTED_FAULT.
func respondError(c *gin.Context, err error) {
	var threadErr *models.ThreadError
	if !errors.As(err, &threadErr) {
		threadErr = models.NewUnexpectedFault(err)
	}

	status := mapErrorToStatus(threadErr)
	if status >= http.StatusInternalServerError {
		slog.Warn("thread lookup failed",
			"code", threadErr.Code,
			"error", err,
		)
	}

	c.JSON(status, threadErr.ToResponse())
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.ThreadError) int {
	switch e.Code {
	case models.ErrCodeMissingParameter, models.ErrCodeInvalidLink:
		return http.StatusBadRequest // 400
	case models.ErrCodeNoContentFound, models.ErrCodeNoDownloadItems:
		return http.StatusNotFound // 404
	default:
		return http.StatusInternalServerError // 500
	}
}
