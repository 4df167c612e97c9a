package musicbrainz_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/handiism/hitster-cards/internal/musicbrainz"
)

func newServer(t *testing.T, body string, status int, check func(*http.Request)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestEarliestYear(t *testing.T) {
	body := `{"count":3,"recordings":[
		{"id":"low","score":40,"releases":[{"date":"1950"}]},
		{"id":"undated","score":100,"releases":[{"title":"No date"}]},
		{"id":"best","score":90,"releases":[{"date":"1991-02-04"},{"date":"1975-10-31"},{"date":"bad"},{"date":"2011-09"}]}
	]}`

	var gotQuery, gotUA, gotFmt, gotPath string
	server := newServer(t, body, http.StatusOK, func(r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		gotFmt = r.URL.Query().Get("fmt")
		gotUA = r.Header.Get("User-Agent")
	})

	client := musicbrainz.New(
		musicbrainz.WithBaseURL(server.URL),
		musicbrainz.WithHTTPClient(server.Client()),
		musicbrainz.WithDelay(0),
		musicbrainz.WithUserAgent("test/1.0"),
	)

	y, found, err := client.EarliestYear(context.Background(), "Queen", "Bohemian Rhapsody (Remastered 2011)")
	if err != nil {
		t.Fatalf("EarliestYear returned error: %v", err)
	}
	if !found || y != 1975 {
		t.Errorf("got %d, %v, want 1975, true", y, found)
	}
	if gotPath != "/ws/2/recording/" || gotFmt != "json" {
		t.Errorf("request path %q fmt %q", gotPath, gotFmt)
	}
	if want := `recording:"Bohemian Rhapsody" AND artist:"Queen"`; gotQuery != want {
		t.Errorf("query = %q, want %q", gotQuery, want)
	}
	if gotUA != "test/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestEarliestYearNotFound(t *testing.T) {
	server := newServer(t, `{"count":0,"recordings":[]}`, http.StatusOK, nil)
	client := musicbrainz.New(musicbrainz.WithBaseURL(server.URL), musicbrainz.WithHTTPClient(server.Client()), musicbrainz.WithDelay(0))

	_, found, err := client.EarliestYear(context.Background(), "Nobody", "Nothing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected no year")
	}
}

func TestEarliestYearHTTPError(t *testing.T) {
	server := newServer(t, `{"error":"rate limited"}`, http.StatusServiceUnavailable, nil)
	client := musicbrainz.New(musicbrainz.WithBaseURL(server.URL), musicbrainz.WithHTTPClient(server.Client()), musicbrainz.WithDelay(0))

	if _, _, err := client.EarliestYear(context.Background(), "Queen", "Innuendo"); err == nil {
		t.Fatal("expected error when MusicBrainz returns non-200")
	}
}

func TestEarliestYearWaitsAfterCall(t *testing.T) {
	server := newServer(t, `{"recordings":[]}`, http.StatusOK, nil)
	client := musicbrainz.New(
		musicbrainz.WithBaseURL(server.URL),
		musicbrainz.WithHTTPClient(server.Client()),
		musicbrainz.WithDelay(50*time.Millisecond),
	)

	start := time.Now()
	if _, _, err := client.EarliestYear(context.Background(), "Queen", "Innuendo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("returned after %v, want at least 50ms", elapsed)
	}
}
