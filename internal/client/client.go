// Package client is the typed HTTP client the admin CLI and other Go
// consumers use against a sawtlib server. Every call returns either a
// decoded payload or an error value; nothing panics on a failed
// request.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"
)

// DefaultTimeout bounds every request; the remote side may hang.
const DefaultTimeout = 30 * time.Second

// APIError is a non-2xx response decoded into the server's error
// envelope.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// Client talks to one sawtlib server. The cookie jar carries session
// cookies from SignIn; Token, when set, is sent as a bearer token and
// is how the function endpoints authenticate.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &Client{
		baseURL: trimSlash(baseURL),
		http:    &http.Client{Timeout: DefaultTimeout, Jar: jar},
	}, nil
}

// SetToken installs an admin bearer token for subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// List fetches a collection endpoint and decodes the array found under
// envelopeKey ("books", "categories", ...) into out.
func (c *Client) List(ctx context.Context, path, envelopeKey string, out any) error {
	var envelope map[string]json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return err
	}
	raw, ok := envelope[envelopeKey]
	if !ok {
		return fmt.Errorf("response has no %q field", envelopeKey)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", envelopeKey, err)
	}
	return nil
}

// Get fetches a single row.
func (c *Client) Get(ctx context.Context, path string, id uint, out any) error {
	return c.do(ctx, http.MethodGet, path+"/"+formatID(id), nil, out)
}

// Insert creates a row and decodes the created record into out.
func (c *Client) Insert(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Update patches exactly the fields present in patch.
func (c *Client) Update(ctx context.Context, path string, id uint, patch, out any) error {
	return c.do(ctx, http.MethodPatch, path+"/"+formatID(id), patch, out)
}

// Delete removes a row.
func (c *Client) Delete(ctx context.Context, path string, id uint) error {
	return c.do(ctx, http.MethodDelete, path+"/"+formatID(id), nil, nil)
}

// Invoke calls a function endpoint ("create-user",
// "get-admin-dashboard-data", ...) with optional query parameters and
// JSON body.
func (c *Client) Invoke(ctx context.Context, method, fn string, params url.Values, body, out any) error {
	path := "/api/functions/" + fn
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	return c.do(ctx, method, path, body, out)
}

// SignIn opens a listener session; the cookie jar keeps it for
// subsequent calls.
func (c *Client) SignIn(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/sign-in", body, nil)
}

// AdminSignIn opens an admin session and obtains a bearer token for
// the function endpoints.
func (c *Client) AdminSignIn(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/admin-sign-in", body, nil); err != nil {
		return err
	}

	var tokenResp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/admin/token", nil, &tokenResp); err != nil {
		return err
	}
	c.token = tokenResp.Token
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && len(raw) > 0 {
		json.Unmarshal(raw, apiErr)
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func decodeJSON(r io.Reader, out any) error {
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
