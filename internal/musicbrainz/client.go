package musicbrainz

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	xhttp "github.com/handiism/hitster-cards/internal/http"
	"github.com/handiism/hitster-cards/internal/musicbrainz/dto"
)

// Defaults for the public MusicBrainz service.
const (
	DefaultBaseURL   = "https://musicbrainz.org"
	DefaultUserAgent = "HitsterCardGenerator/1.0 ( https://github.com/handiism/hitster-cards )"
	DefaultDelay     = time.Second
)

// Client looks up original release years.
type Client struct {
	http    *xhttp.Client
	baseURL string
	delay   time.Duration
}

type options struct {
	baseURL    string
	userAgent  string
	delay      time.Duration
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithUserAgent overrides DefaultUserAgent. MusicBrainz rejects anonymous
// clients.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// WithDelay sets the pause after every request.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.delay = d
		}
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// New creates a Client.
func New(opts ...Option) *Client {
	o := options{baseURL: DefaultBaseURL, userAgent: DefaultUserAgent, delay: DefaultDelay}
	for _, opt := range opts {
		opt(&o)
	}
	return &Client{
		http:    xhttp.NewClient(xhttp.WithHTTPClient(o.httpClient), xhttp.WithUserAgent(o.userAgent)),
		baseURL: o.baseURL,
		delay:   o.delay,
	}
}

// EarliestYear implements year.Lookup. The title is cut at the first
// parenthesis or bracket before searching. Every call, successful or not,
// is followed by the configured delay.
func (c *Client) EarliestYear(ctx context.Context, artist, title string) (int, bool, error) {
	query := fmt.Sprintf("recording:%q AND artist:%q", searchTitle(title), strings.TrimSpace(artist))

	var res dto.JSONRecordingSearch
	err := c.http.GetJSON(ctx, c.baseURL+"/ws/2/recording/", url.Values{
		"query": {query},
		"fmt":   {"json"},
	}, &res)
	c.wait(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("musicbrainz lookup %q: %w", query, err)
	}

	y, ok := res.EarliestYear()
	return y, ok, nil
}

func (c *Client) wait(ctx context.Context) {
	if c.delay <= 0 {
		return
	}
	t := time.NewTimer(c.delay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func searchTitle(title string) string {
	if i := strings.IndexAny(title, "(["); i >= 0 {
		title = title[:i]
	}
	return strings.TrimSpace(title)
}
