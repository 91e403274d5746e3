package models

// SuccessMessage is returned in every successful ThreadResponse.
const SuccessMessage = "Hope you guys love my hard work :3"

// Thread holds everything scraped from one mirror page.
type Thread struct {
	// Username is the creator handle shown next to the profile picture.
	Username string

	// Avatar is the profile picture address. Empty when the page omits it.
	Avatar string

	// Caption is the post text.
	Caption string

	// Links are the unique download addresses across all download items.
	Links []string
}

// ThreadResponse is the response for GET /api/threadster.
type ThreadResponse struct {
	OK       bool     `json:"ok"`
	Creator  string   `json:"creator"`
	Message  string   `json:"message"`
	Avatar   string   `json:"avatar"`
	Caption  string   `json:"caption"`
	URL      []string `json:"url"`
	Username string   `json:"username"`
}

// NewThreadResponse builds the success body for a scraped thread.
func NewThreadResponse(t *Thread) *ThreadResponse {
	links := t.Links
	if links == nil {
		links = []string{}
	}
	return &ThreadResponse{
		OK:       true,
		Creator:  t.Username,
		Message:  SuccessMessage,
		Avatar:   t.Avatar,
		Caption:  t.Caption,
		URL:      links,
		Username: t.Username,
	}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// HealthResponse is the response for GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
