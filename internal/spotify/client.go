package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	xhttp "github.com/handiism/hitster-cards/internal/http"
	"github.com/handiism/hitster-cards/internal/model"
	"github.com/handiism/hitster-cards/internal/spotify/dto"
)

// Default endpoints.
const (
	DefaultAPIURL   = "https://api.spotify.com/v1"
	DefaultTokenURL = "https://accounts.spotify.com/api/token"
)

const (
	pageSize       = 100
	searchLimit    = 5
	requestTimeout = 30 * time.Second
)

// ErrInvalidPlaylistReference is returned when a playlist reference cannot be
// parsed or the catalog does not know it.
var ErrInvalidPlaylistReference = errors.New("invalid playlist reference")

// Credentials are the application's client credentials.
type Credentials struct {
	ClientID     string
	ClientSecret string

	// TokenURL defaults to DefaultTokenURL.
	TokenURL string
}

// Client reads playlists and searches tracks.
type Client struct {
	http    *xhttp.Client
	baseURL string
	now     func() time.Time
}

type options struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	now        func() time.Time
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL overrides DefaultAPIURL. An empty u is ignored.
func WithBaseURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient sets the client used for token requests. API requests go
// through an oauth2 client layered on top of it.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// WithClock sets the time source used to judge release years.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New creates a Client authenticated with the client credentials flow.
// Tokens are fetched lazily and refreshed with ctx, so ctx should outlive the
// Client.
func New(ctx context.Context, creds Credentials, opts ...Option) (*Client, error) {
	if strings.TrimSpace(creds.ClientID) == "" || strings.TrimSpace(creds.ClientSecret) == "" {
		return nil, errors.New("spotify client id and secret required")
	}
	if creds.TokenURL == "" {
		creds.TokenURL = DefaultTokenURL
	}

	o := options{baseURL: DefaultAPIURL, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     creds.TokenURL,
	}
	if o.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, o.httpClient)
	}

	return &Client{
		http: xhttp.NewClient(
			xhttp.WithHTTPClient(cfg.Client(ctx)),
			xhttp.WithUserAgent(o.userAgent),
			xhttp.WithTimeout(requestTimeout),
		),
		baseURL: o.baseURL,
		now:     o.now,
	}, nil
}

// Playlist fetches the playlist metadata and every playable track, following
// the paging links until the last page. Unavailable and local entries are
// skipped.
func (c *Client) Playlist(ctx context.Context, ref string) (*model.Playlist, error) {
	id, err := ParsePlaylistID(ref)
	if err != nil {
		return nil, err
	}

	var meta dto.JSONPlaylist
	err = c.http.GetJSON(ctx, c.baseURL+"/playlists/"+url.PathEscape(id), url.Values{
		"fields": {"id,name,owner(display_name)"},
	}, &meta)
	if err != nil {
		return nil, c.wrap(id, err)
	}

	playlist := &model.Playlist{Name: meta.Name, Owner: meta.Owner.DisplayName}
	currentYear := c.now().Year()

	next := c.baseURL + "/playlists/" + url.PathEscape(id) + "/tracks"
	query := url.Values{"limit": {strconv.Itoa(pageSize)}}
	for next != "" {
		var page dto.JSONPlaylistTracks
		if err := c.http.GetJSON(ctx, next, query, &page); err != nil {
			return nil, c.wrap(id, err)
		}
		for _, item := range page.Items {
			if !item.Track.Playable() {
				continue
			}
			playlist.Tracks = append(playlist.Tracks, item.Track.ToTrack(currentYear))
		}
		// next already carries offset and limit
		next, query = page.Next, nil
	}

	return playlist, nil
}

// CandidateYears searches for other releases of a track and returns the
// release years of results credited to the same artist. Results by other
// artists are dropped so that a cover or a namesake cannot pull the year
// back.
func (c *Client) CandidateYears(ctx context.Context, artist, title string) ([]int, error) {
	q := strings.TrimSpace(artist + " " + title)
	if q == "" {
		return nil, errors.New("empty search query")
	}

	var res dto.JSONSearch
	err := c.http.GetJSON(ctx, c.baseURL+"/search", url.Values{
		"q":     {q},
		"type":  {"track"},
		"limit": {strconv.Itoa(searchLimit)},
	}, &res)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", q, err)
	}

	var years []int
	for _, item := range res.Tracks.Items {
		if !creditsArtist(item, artist) {
			continue
		}
		if y, ok := releaseYear(item.Album.ReleaseDate); ok {
			years = append(years, y)
		}
	}
	return years, nil
}

func (c *Client) wrap(id string, err error) error {
	if xhttp.IsStatus(err, http.StatusNotFound) || xhttp.IsStatus(err, http.StatusBadRequest) {
		return fmt.Errorf("%w: %s", ErrInvalidPlaylistReference, id)
	}
	return fmt.Errorf("playlist %s: %w", id, err)
}

func creditsArtist(t dto.JSONTrack, artist string) bool {
	for _, a := range t.Artists {
		if strings.EqualFold(strings.TrimSpace(a.Name), strings.TrimSpace(artist)) {
			return true
		}
	}
	return false
}

func releaseYear(date string) (int, bool) {
	if len(date) < 4 {
		return 0, false
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0, false
	}
	return y, true
}
