package models

// ThreadRequest is the query string of GET /api/threadster.
type ThreadRequest struct {
	// ID is either a bare post identifier or a full post URL.
	ID string `form:"id"`
}
