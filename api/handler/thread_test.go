package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/threadster/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeScraper struct {
	gotID  string
	thread *models.Thread
	err    error
}

func (f *fakeScraper) DoScrape(_ context.Context, id string) (*models.Thread, error) {
	f.gotID = id
	return f.thread, f.err
}

func serveThread(sc ThreadScraper, target string) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/api/threadster", Thread(sc))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestLookupThread_ResolvesBeforeScraping(t *testing.T) {
	sc := &fakeScraper{thread: &models.Thread{Username: "alice"}}

	resp, err := LookupThread(context.Background(), sc, "https://www.threads.net/@alice/post/ABC123?x=1")
	require.NoError(t, err)

	assert.Equal(t, "ABC123", sc.gotID)
	assert.True(t, resp.OK)
	assert.Equal(t, "alice", resp.Creator)
	assert.Equal(t, []string{}, resp.URL)
}

func TestLookupThread_ResolverErrorSkipsScraper(t *testing.T) {
	sc := &fakeScraper{}

	_, err := LookupThread(context.Background(), sc, "https://example.com/nope")
	require.Error(t, err)
	assert.Empty(t, sc.gotID)
}

func TestThread_PlainErrorBecomesUnexpectedFault(t *testing.T) {
	sc := &fakeScraper{err: errors.New("boom")}

	w := serveThread(sc, "/api/threadster?id=ABC")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	assert.Equal(t, "Error occurred: boom", resp.Message)
}

func TestThread_WrappedThreadErrorKeepsCode(t *testing.T) {
	inner := models.NewThreadError(models.ErrCodeNoDownloadItems, models.MsgNoDownloadItems, nil)
	sc := &fakeScraper{err: errors.Join(errors.New("context"), inner)}

	w := serveThread(sc, "/api/threadster?id=ABC")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"ok":false,"message":"No download items found"}`, w.Body.String())
}

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{models.ErrCodeMissingParameter, http.StatusBadRequest},
		{models.ErrCodeInvalidLink, http.StatusBadRequest},
		{models.ErrCodeNoContentFound, http.StatusNotFound},
		{models.ErrCodeNoDownloadItems, http.StatusNotFound},
		{models.ErrCodeUpstreamFetchFailed, http.StatusInternalServerError},
		{models.ErrCodeUnexpectedFault, http.StatusInternalServerError},
		{"SOMETHING_NEW", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := mapErrorToStatus(models.NewThreadError(tt.code, "", nil))
			assert.Equal(t, tt.want, got)
		})
	}
}
