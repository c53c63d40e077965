package spectator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/replaysync/replaysync/constant"
	"github.com/replaysync/replaysync/util"
	"github.com/samber/lo"
)

// maxBodySize bounds how much of a response is read; the status document is tiny.
const maxBodySize = 64 << 10

// Client polls a single replay playback endpoint. It keeps no state between calls.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a client for endpoint using the given HTTP client.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	return &Client{
		endpoint: endpoint,
		http:     httpClient,
	}
}

// Endpoint returns the polled URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// wireStatus mirrors Status with pointer fields so absent keys are detectable.
type wireStatus struct {
	Paused  *bool    `json:"paused"`
	Seeking *bool    `json:"seeking"`
	Time    *float64 `json:"time"`
	Length  *float64 `json:"length"`
	Speed   *float64 `json:"speed"`
}

// FetchStatus performs one round trip and returns the decoded status.
// It does not retry.
func (c *Client) FetchStatus(ctx context.Context) (Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return Status{}, fmt.Errorf("%w: build request: %v", ErrUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return Status{}, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return Status{}, fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Status{}, fmt.Errorf("%w: read body: %v", ErrUnreachable, err)
	}

	return Decode(body)
}

// Decode parses a status document. Every field must be present with the right type.
func Decode(body []byte) (Status, error) {
	var wire wireStatus
	if err := json.Unmarshal(body, &wire); err != nil {
		return Status{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	missing := lo.Compact([]string{
		lo.Ternary(wire.Paused == nil, "paused", ""),
		lo.Ternary(wire.Seeking == nil, "seeking", ""),
		lo.Ternary(wire.Time == nil, "time", ""),
		lo.Ternary(wire.Length == nil, "length", ""),
		lo.Ternary(wire.Speed == nil, "speed", ""),
	})
	if len(missing) > 0 {
		return Status{}, fmt.Errorf("%w: missing %s", ErrMalformedResponse, strings.Join(missing, ", "))
	}

	return Status{
		Paused:  *wire.Paused,
		Seeking: *wire.Seeking,
		Time:    *wire.Time,
		Length:  *wire.Length,
		Speed:   *wire.Speed,
	}, nil
}
