// Package adminclient calls the admin action API and hands back its
// {success, message, data} envelope.
package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hotel_portal/internal/adapters/observability"
	"hotel_portal/internal/domain"
)

// Result is the answer of one admin action. Success false with a message is
// an expected business failure and is not an error.
type Result struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Decode unmarshals the action payload into dst.
func (r Result) Decode(dst any) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("adminclient: empty data")
	}
	return json.Unmarshal(r.Data, dst)
}

// ServerError is an unexpected failure on the server side. Its message is
// the generic one the server chose.
type ServerError struct {
	Code    int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("admin api: status %d: %s", e.Code, e.Message)
}

type Client struct {
	base string
	hc   *http.Client
}

func New(base string, timeout time.Duration) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("admin API base URL is required")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base: strings.TrimRight(base, "/") + "/admin/api",
		hc:   &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) List(ctx context.Context, resource string, q url.Values) (Result, error) {
	path := "/" + resource
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return c.Do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Get(ctx context.Context, resource string, id int64) (Result, error) {
	return c.Do(ctx, http.MethodGet, fmt.Sprintf("/%s/%d", resource, id), nil)
}

func (c *Client) Create(ctx context.Context, resource string, fields any) (Result, error) {
	return c.Do(ctx, http.MethodPost, "/"+resource, fields)
}

func (c *Client) Update(ctx context.Context, resource string, id int64, fields any) (Result, error) {
	return c.Do(ctx, http.MethodPut, fmt.Sprintf("/%s/%d", resource, id), fields)
}

func (c *Client) Delete(ctx context.Context, resource string, id int64) (Result, error) {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/%s/%d", resource, id), nil)
}

func (c *Client) Toggle(ctx context.Context, resource string, id int64, flag domain.Flag) (Result, error) {
	return c.Action(ctx, resource, id, "toggle-"+string(flag), nil)
}

// Action runs a named action on one record, e.g. reservations/7/confirm.
func (c *Client) Action(ctx context.Context, resource string, id int64, action string, body any) (Result, error) {
	return c.Do(ctx, http.MethodPost, fmt.Sprintf("/%s/%d/%s", resource, id, action), body)
}

func (c *Client) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	res, err := c.Do(ctx, http.MethodGet, "/dashboard", nil)
	if err != nil {
		return domain.Dashboard{}, err
	}
	if !res.Success {
		return domain.Dashboard{}, fmt.Errorf("dashboard: %s", res.Message)
	}
	var d domain.Dashboard
	return d, res.Decode(&d)
}

// Do sends one request. Business failures (4xx with an envelope) come back
// as a Result; transport problems and 5xx answers come back as errors.
func (c *Client) Do(ctx context.Context, method, path string, body any) (Result, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return Result{}, fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	op := method + " " + resourceOf(path)
	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("admin_api", op, 0, time.Since(start))
		return Result{}, err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("admin_api", op, resp.StatusCode, time.Since(start))

	var res Result
	decErr := json.NewDecoder(io.LimitReader(resp.Body, 8<<20)).Decode(&res)
	if resp.StatusCode >= 500 {
		return Result{}, &ServerError{Code: resp.StatusCode, Message: res.Message}
	}
	if decErr != nil {
		return Result{}, fmt.Errorf("admin api: status %d: decode envelope: %w", resp.StatusCode, decErr)
	}
	return res, nil
}

// resourceOf keeps metric labels bounded: "/offers/12/toggle-active" -> "offers".
func resourceOf(path string) string {
	p := strings.TrimPrefix(path, "/")
	if i := strings.IndexAny(p, "/?"); i >= 0 {
		p = p[:i]
	}
	return p
}
