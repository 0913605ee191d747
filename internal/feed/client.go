package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Echoviax/emmolb/pkg/models"
)

const DefaultBaseURL = "https://mmolb.com/api"

// ErrNegativeLimit is returned for a negative limit argument. It is a caller
// error and must never be retried.
var ErrNegativeLimit = errors.New("feed: limit must be a non-negative integer")

// StatusError carries an upstream non-2xx response verbatim.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("feed API error: status=%d, body=%s", e.StatusCode, e.Body)
}

// Client fetches pages of play-by-play events from the upstream feed. It
// owns no game semantics.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a feed client for the given base URL. An empty base URL
// selects the production feed.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		userAgent: "Mozilla/5.0 (compatible; EmmolbSpectator/1.0)",
	}
}

// FetchEvents fetches the events for a game strictly after the given index.
// A limit of zero means unbounded; a positive limit keeps only the most
// recent limit entries (the tail); a negative limit is a caller error.
func (c *Client) FetchEvents(ctx context.Context, gameID string, after, limit int) ([]models.PlayEvent, error) {
	if limit < 0 {
		return nil, ErrNegativeLimit
	}

	q := url.Values{}
	q.Set("after", strconv.Itoa(after))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	endpoint := fmt.Sprintf("%s/games/%s/events?%s", c.baseURL, url.PathEscape(gameID), q.Encode())

	page, err := c.fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return page.Entries, nil
}

// fetch makes an HTTP GET request and decodes the event page.
func (c *Client) fetch(ctx context.Context, endpoint string) (*models.EventPage, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var page models.EventPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &page, nil
}
