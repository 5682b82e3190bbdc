// Package gateway forwards public API calls to the resource and
// transaction services and translates their answers.  Each resource gets a
// Client configured by a Resource descriptor; the translation rules are
// the same for all of them.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/iliyamo/bowling-center/internal/apperr"
	"github.com/iliyamo/bowling-center/internal/client"
	"github.com/iliyamo/bowling-center/internal/config"
)

// Keyed is implemented by every response type; Key is the id used in
// hypermedia links.
type Keyed interface {
	Key() string
}

// Resource describes one downstream collection and how its errors read.
type Resource struct {
	Path     string          // downstream collection path, e.g. "/lanes"
	Public   string          // gateway collection path, e.g. "/api/lanes"
	Rel      string          // relation name under _embedded
	Label    string          // prefix of downstream 4xx messages; empty means body only
	NotFound string          // prefix of 404 messages, id appended
	BadID    string          // prefix of id-format messages, id appended
	IDFormat config.IDFormat // policy checked before any call
}

// Client is a typed CRUD client for one Resource.
type Client[Req any, Resp Keyed] struct {
	base        string
	hc          *http.Client
	res         Resource
	logRequests bool
}

// NewClient builds a client against baseURL.  A nil hc means
// http.DefaultClient.
func NewClient[Req any, Resp Keyed](cfg client.Config, hc *http.Client, res Resource) *Client[Req, Resp] {
	if hc == nil {
		hc = http.DefaultClient
	}
	if res.IDFormat == "" {
		res.IDFormat = config.IDFormatUUID
	}
	return &Client[Req, Resp]{
		base:        strings.TrimRight(cfg.BaseURL, "/"),
		hc:          hc,
		res:         res,
		logRequests: cfg.LogRequests,
	}
}

// Resource returns the descriptor the client was built with.
func (c *Client[Req, Resp]) Resource() Resource { return c.res }

// List returns the whole downstream collection.  Any failure is
// unclassified.
func (c *Client[Req, Resp]) List(ctx context.Context) ([]Resp, error) {
	status, body, err := c.do(ctx, http.MethodGet, c.res.Path, nil)
	if err != nil {
		return nil, err
	}
	if !ok(status) {
		return nil, &client.StatusError{StatusCode: status, Body: string(body)}
	}
	out := []Resp{}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("gateway: decode %s list: %w", c.res.Rel, err)
	}
	return out, nil
}

// Get fetches one entity.  404 becomes NotFound; any other failure answer
// becomes InvalidInput with the downstream body.
func (c *Client[Req, Resp]) Get(ctx context.Context, id string) (*Resp, error) {
	if err := c.checkID(id); err != nil {
		return nil, err
	}
	status, body, err := c.do(ctx, http.MethodGet, c.item(id), nil)
	if err != nil {
		return nil, err
	}
	switch {
	case ok(status):
		return decode[Resp](body)
	case status == http.StatusNotFound:
		return nil, apperr.NotFound(c.res.NotFound + id)
	}
	return nil, downstream(body)
}

// Create posts req.  A 4xx answer becomes InvalidInput prefixed with the
// resource label; anything else non-2xx is a downstream error.
func (c *Client[Req, Resp]) Create(ctx context.Context, req Req) (*Resp, error) {
	status, body, err := c.do(ctx, http.MethodPost, c.res.Path, req)
	if err != nil {
		return nil, err
	}
	if ok(status) {
		return decode[Resp](body)
	}
	return nil, c.writeError(status, body)
}

// Update puts req.  A 404 becomes NotFound; other 4xx answers read like
// Create's.
func (c *Client[Req, Resp]) Update(ctx context.Context, id string, req Req) (*Resp, error) {
	if err := c.checkID(id); err != nil {
		return nil, err
	}
	status, body, err := c.do(ctx, http.MethodPut, c.item(id), req)
	if err != nil {
		return nil, err
	}
	switch {
	case ok(status):
		return decode[Resp](body)
	case status == http.StatusNotFound:
		return nil, apperr.NotFound(c.res.NotFound + id)
	}
	return nil, c.writeError(status, body)
}

// Delete removes one entity.  Only 404 is classified.
func (c *Client[Req, Resp]) Delete(ctx context.Context, id string) error {
	if err := c.checkID(id); err != nil {
		return err
	}
	status, body, err := c.do(ctx, http.MethodDelete, c.item(id), nil)
	if err != nil {
		return err
	}
	switch {
	case ok(status):
		return nil
	case status == http.StatusNotFound:
		return apperr.NotFound(c.res.NotFound + id)
	}
	return &client.StatusError{StatusCode: status, Body: string(body)}
}

func (c *Client[Req, Resp]) checkID(id string) error {
	if !c.res.IDFormat.Accepts(id) {
		return apperr.InvalidInput(c.res.BadID + id)
	}
	return nil
}

func (c *Client[Req, Resp]) item(id string) string {
	return c.res.Path + "/" + url.PathEscape(id)
}

func (c *Client[Req, Resp]) writeError(status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if status >= 400 && status < 500 {
		if c.res.Label != "" {
			msg = c.res.Label + ": " + msg
		}
		return apperr.InvalidInput(msg)
	}
	return downstream(body)
}

func (c *Client[Req, Resp]) do(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var rdr io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		rdr = bytes.NewReader(b)
	}
	u := c.base + path
	if c.logRequests {
		log.Printf("gateway: %s %s", method, u)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

func ok(status int) bool { return status >= 200 && status < 300 }

func decode[T any](body []byte) (*T, error) {
	out := new(T)
	if err := json.Unmarshal(body, out); err != nil {
		return nil, fmt.Errorf("gateway: decode: %w", err)
	}
	return out, nil
}

func downstream(body []byte) error {
	return apperr.InvalidInput("Downstream error: " + strings.TrimSpace(string(body)))
}
