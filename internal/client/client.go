// Package client looks lane, ball and shoe records up on their owning
// services.  Every call goes to the network; nothing is cached and nothing
// is retried.
//
// A downstream 404 becomes apperr.NotFound and a 422 becomes
// apperr.InvalidInput, both carrying the downstream message.  Any other
// non-2xx answer is returned as a *StatusError for the caller to treat as
// unexpected.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/iliyamo/bowling-center/internal/apperr"
	"github.com/iliyamo/bowling-center/internal/model"
)

// Config is the immutable configuration of one remote client.
type Config struct {
	BaseURL     string // scheme://host:port of the owning service
	LogRequests bool   // log every downstream URL
}

// StatusError is an unclassified non-2xx answer from a downstream service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("downstream returned %d: %s", e.StatusCode, e.Body)
}

type resource struct {
	cfg  Config
	hc   *http.Client
	path string
}

func newResource(cfg Config, hc *http.Client, path string) resource {
	if hc == nil {
		hc = http.DefaultClient
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return resource{cfg: cfg, hc: hc, path: path}
}

// fetch issues GET {base}/{path}/{id} and decodes a 2xx body into a T.
func fetch[T any](ctx context.Context, r resource, id string) (*T, error) {
	u := r.cfg.BaseURL + "/" + r.path + "/" + url.PathEscape(id)
	if r.cfg.LogRequests {
		log.Printf("client: GET %s", u)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		out := new(T)
		if err := json.Unmarshal(body, out); err != nil {
			return nil, fmt.Errorf("client: decode %s: %w", r.path, err)
		}
		return out, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperr.NotFound(Message(resp.StatusCode, body))
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, apperr.InvalidInput(Message(resp.StatusCode, body))
	}
	log.Printf("client: unexpected status %d from %s: %s", resp.StatusCode, u, strings.TrimSpace(string(body)))
	return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
}

// Message extracts a human message from an error body: the JSON
// "message" field, else the trimmed raw body, else the status text.
func Message(status int, body []byte) string {
	var eb struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &eb); err == nil && eb.Message != "" {
		return eb.Message
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return s
	}
	return http.StatusText(status)
}

// LaneClient fetches lanes from lane-service.
type LaneClient struct{ r resource }

func NewLaneClient(cfg Config, hc *http.Client) *LaneClient {
	return &LaneClient{r: newResource(cfg, hc, "lanes")}
}

func (c *LaneClient) FetchByID(ctx context.Context, id string) (*model.LaneSnapshot, error) {
	return fetch[model.LaneSnapshot](ctx, c.r, id)
}

// BallClient fetches bowling balls from ball-service.
type BallClient struct{ r resource }

func NewBallClient(cfg Config, hc *http.Client) *BallClient {
	return &BallClient{r: newResource(cfg, hc, "bowlingballs")}
}

func (c *BallClient) FetchByID(ctx context.Context, id string) (*model.BallSnapshot, error) {
	return fetch[model.BallSnapshot](ctx, c.r, id)
}

// ShoeClient fetches rental shoes from shoe-service.
type ShoeClient struct{ r resource }

func NewShoeClient(cfg Config, hc *http.Client) *ShoeClient {
	return &ShoeClient{r: newResource(cfg, hc, "shoes")}
}

func (c *ShoeClient) FetchByID(ctx context.Context, id string) (*model.ShoeSnapshot, error) {
	return fetch[model.ShoeSnapshot](ctx, c.r, id)
}
