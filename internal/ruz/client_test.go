package ruz

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, searchCalls *int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(searchCalls, 1)
		switch r.URL.Query().Get("type") {
		case "group":
			w.Write([]byte(`[{"id": 101, "label": "БИ25-6"}, {"id": 102, "label": "БИ25-7"}]`))
		case "person":
			w.Write([]byte(`[{"id": 7, "lecturer_title": "Неизвестный Н.Н."}]`))
		default:
			w.Write([]byte(`[]`))
		}
	})
	mux.HandleFunc("/api/schedule/group/101", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("start") != "2025.11.03" || r.URL.Query().Get("finish") != "2025.11.09" {
			http.Error(w, "bad range", http.StatusBadRequest)
			return
		}
		w.Write([]byte(`[{"date": "2025.11.03", "beginLesson": "08:30", "endLesson": "10:00", "discipline": "Математика", "lecturer": "Иванов"}]`))
	})
	mux.HandleFunc("/api/schedule/person/7", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	})
	mux.HandleFunc("/api/schedule/group/500", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/api/schedule/group/502", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html><body>" + strings.Repeat("Шлюз недоступен. ", 500) + "</body></html>"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient(t *testing.T) {
	var calls int32
	srv := newTestServer(t, &calls)
	ctx := context.Background()

	c, err := New(Options{BaseURL: srv.URL + "/api/", Timeout: 5 * time.Second, CacheTTL: time.Minute}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	t.Run("search group uses cache", func(t *testing.T) {
		hits, err := c.SearchGroup(ctx, "БИ25")
		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, "101", hits[0].ID)
		assert.Equal(t, "БИ25-6", hits[0].Name)

		_, err = c.SearchGroup(ctx, "би25")
		require.NoError(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("search teacher", func(t *testing.T) {
		hits, err := c.SearchTeacher(ctx, "Неизвестный")
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, "Неизвестный Н.Н.", hits[0].Name)
	})

	t.Run("group timetable", func(t *testing.T) {
		start := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
		lessons, err := c.GroupTimetable(ctx, "101", start, start.AddDate(0, 0, 6))
		require.NoError(t, err)
		require.Len(t, lessons, 1)
		assert.Equal(t, "2025-11-03", lessons[0].Date)
		assert.Equal(t, []string{"Иванов"}, lessons[0].Teachers)
	})

	t.Run("null body is empty", func(t *testing.T) {
		day := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
		lessons, err := c.TeacherTimetable(ctx, "7", day, day)
		require.NoError(t, err)
		assert.Empty(t, lessons)
	})

	t.Run("http error", func(t *testing.T) {
		day := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
		_, err := c.GroupTimetable(ctx, "500", day, day)
		require.Error(t, err)

		var httpErr *HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
	})

	t.Run("long error page is cut", func(t *testing.T) {
		day := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
		_, err := c.GroupTimetable(ctx, "502", day, day)
		require.Error(t, err)

		var httpErr *HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusBadGateway, httpErr.Code)
		assert.LessOrEqual(t, len(httpErr.Message), maxErrorBody+len("…"))
		assert.True(t, utf8.ValidString(httpErr.Message))
		assert.Less(t, len(err.Error()), 1000)
	})
}

func TestShortBody(t *testing.T) {
	assert.Equal(t, "boom", shortBody([]byte("  boom\n")))

	long := shortBody([]byte(strings.Repeat("я", 300)))
	assert.True(t, utf8.ValidString(long))
	assert.True(t, strings.HasSuffix(long, "…"))
	assert.Equal(t, strings.Repeat("я", maxErrorBody/2)+"…", long)
}
