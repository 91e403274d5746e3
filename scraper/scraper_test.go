package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/threadster/config"
	"github.com/use-agent/threadster/engine"
	"github.com/use-agent/threadster/models"
)

const onePostPage = `<html><body>
<div class="download__wrapper">
  <div class="download_item">
    <div class="download__item__profile_pic"><img src="https://cdn/alice.jpg"><span> alice </span></div>
    <div class="download__item__caption__text">hello</div>
    <table><tr><td><a class="btn download__item__info__actions__button" href="https://cdn/video.mp4">Download</a></td></tr></table>
  </div>
</div>
</body></html>`

func newTestScraper(t *testing.T, handler http.HandlerFunc) (*Scraper, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.UpstreamConfig{
		BaseURL:   srv.URL + "/download/",
		UserAgent: config.DefaultUserAgent,
		Timeout:   2 * time.Second,
	}
	return NewScraper(engine.NewHTTPEngine(cfg), cfg), srv
}

func TestDoScrape_Success(t *testing.T) {
	var gotPath, gotUA string
	sc, _ := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.UserAgent()
		w.Write([]byte(onePostPage))
	})

	thread, err := sc.DoScrape(context.Background(), "ABC123")
	require.NoError(t, err)

	assert.Equal(t, "/download/ABC123", gotPath)
	assert.Equal(t, config.DefaultUserAgent, gotUA)
	assert.Equal(t, "alice", thread.Username)
	assert.Equal(t, "https://cdn/alice.jpg", thread.Avatar)
	assert.Equal(t, "hello", thread.Caption)
	assert.Equal(t, []string{"https://cdn/video.mp4"}, thread.Links)
}

func TestDoScrape_UpstreamStatus(t *testing.T) {
	sc, _ := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(onePostPage))
	})

	_, err := sc.DoScrape(context.Background(), "ABC123")
	var te *models.ThreadError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, models.ErrCodeUpstreamFetchFailed, te.Code)
	assert.Equal(t, models.MsgUpstreamFetchFailed, te.Message)
}

func TestDoScrape_NetworkErrorIsUnexpectedFault(t *testing.T) {
	sc, srv := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := sc.DoScrape(context.Background(), "ABC123")
	var te *models.ThreadError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, models.ErrCodeUnexpectedFault, te.Code)
	assert.Contains(t, te.Message, "Error occurred: ")
}

func TestDoScrape_IgnoresCallerCancellation(t *testing.T) {
	sc, _ := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.Write([]byte(onePostPage))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	thread, err := sc.DoScrape(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, "alice", thread.Username)
}

func TestTargetURL_EscapesPathSeparators(t *testing.T) {
	sc := NewScraper(nil, config.UpstreamConfig{BaseURL: "https://threadster.app/download/"})

	assert.Equal(t, "https://threadster.app/download/ABC_1-2", sc.TargetURL("ABC_1-2"))
	assert.Equal(t, "https://threadster.app/download/..%2Fadmin", sc.TargetURL("../admin"))
	assert.Equal(t, "https://threadster.app/download/a%3Fb=c", sc.TargetURL("a?b=c"))
}
