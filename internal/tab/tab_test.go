package tab

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chxlky/trello-bookmark/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func devTools(t *testing.T, status int, body string) *DevToolsResolver {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json/list", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewDevToolsResolver(srv.URL+"/", time.Second)
}

func TestDevToolsResolver_FirstPage(t *testing.T) {
	r := devTools(t, http.StatusOK, `[
		{"type":"service_worker","title":"sw","url":"chrome-extension://x/sw.js"},
		{"type":"page","title":"My & Page #1","url":"https://example.com?a=1&b=2"},
		{"type":"page","title":"Older","url":"https://older.example.com"}
	]`)

	snap, err := r.ActiveTab(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.TabSnapshot{Title: "My & Page #1", URL: "https://example.com?a=1&b=2"}, snap)
}

func TestDevToolsResolver_NoActiveTab(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"empty list", http.StatusOK, `[]`},
		{"no pages", http.StatusOK, `[{"type":"background_page","title":"bg","url":"x"}]`},
		{"bad status", http.StatusInternalServerError, `oops`},
		{"bad json", http.StatusOK, `not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := devTools(t, tt.status, tt.body).ActiveTab(context.Background())
			assert.ErrorIs(t, err, ErrNoActiveTab)
		})
	}
}

func TestDevToolsResolver_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewDevToolsResolver(url, time.Second).ActiveTab(context.Background())
	assert.ErrorIs(t, err, ErrNoActiveTab)
}

func TestResolverFunc(t *testing.T) {
	want := models.TabSnapshot{Title: "t", URL: "u"}
	var r Resolver = ResolverFunc(func(context.Context) (models.TabSnapshot, error) { return want, nil })

	got, err := r.ActiveTab(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDevToolsResolver_SlowBrowserTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	start := time.Now()
	_, err := NewDevToolsResolver(srv.URL, 50*time.Millisecond).ActiveTab(context.Background())
	assert.ErrorIs(t, err, ErrNoActiveTab)
	assert.Less(t, time.Since(start), 2*time.Second)
}
