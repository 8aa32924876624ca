package apps

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

	"github.com/pders01/featured/internal/config"
	"github.com/pders01/featured/internal/debuglog"
)

const (
	userAgent = "featured/1.0 (featured apps carousel; github.com/pders01/featured)"
	timeout   = 30 * time.Second

	actionGetApps = "getApps"

	// maxBodySize bounds the JSON envelope read from the endpoint.
	maxBodySize = 32 << 20
)

// ErrFetchFailed marks every failure of a fetch: transport, HTTP status,
// decoding, or a payload with success=false.
var ErrFetchFailed = errors.New("fetching apps failed")

type Client struct {
	client    *http.Client
	endpoint  string
	userAgent string
	now       func() time.Time
}

func NewClient(cfg *config.Config) *Client {
	to := timeout
	ua := userAgent
	endpoint := ""
	if cfg != nil {
		if cfg.Source.HTTPTimeout > 0 {
			to = cfg.Source.HTTPTimeout
		}
		if cfg.Source.UserAgent != "" {
			ua = cfg.Source.UserAgent
		}
		endpoint = cfg.Source.Endpoint
	}
	return &Client{
		client:    &http.Client{Timeout: to},
		endpoint:  endpoint,
		userAgent: ua,
		now:       time.Now,
	}
}

// SetClock overrides the clock used for the cache-busting parameter.
func (c *Client) SetClock(now func() time.Time) {
	c.now = now
}

func (c *Client) Endpoint() string { return c.endpoint }

// RequestURL builds the getApps URL, keeping any query the endpoint
// already carries.
func (c *Client) RequestURL() (string, error) {
	if c.endpoint == "" {
		return "", fmt.Errorf("no endpoint configured")
	}
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint: %w", err)
	}
	q := u.Query()
	q.Set("action", actionGetApps)
	q.Set("t", strconv.FormatInt(c.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchApps issues a single GET for the full app list and returns the
// normalized records.
func (c *Client) FetchApps(ctx context.Context) ([]App, error) {
	reqURL, err := c.RequestURL()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	debuglog.WithFields(map[string]interface{}{"url": reqURL}).Debugf("fetching apps")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP error: %d", ErrFetchFailed, resp.StatusCode)
	}

	apps, err := Decode(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, err
	}

	debuglog.Infof("fetched %d apps", len(apps))
	return apps, nil
}

// Decode parses a getApps envelope. A payload with success=false is a
// failure even when it decodes cleanly.
func Decode(r io.Reader) ([]App, error) {
	var result Response
	if err := json.NewDecoder(r).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", ErrFetchFailed, err)
	}
	if !result.Success {
		if result.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrFetchFailed, result.Error)
		}
		return nil, fmt.Errorf("%w: endpoint reported failure", ErrFetchFailed)
	}
	if result.Data == nil {
		result.Data = []App{}
	}
	return Normalize(result.Data), nil
}
