package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TokenSource yields the bearer token for the current caller, or "" when
// anonymous.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-token source, mostly for per-request binding.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Client wraps all outbound calls to the Dormir Là-Haut backend. Every call
// resolves to a typed payload or one of the gateway error types; callers
// never see raw HTTP details.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
}

// Get issues a public or authenticated GET. Pass a nil TokenSource for
// anonymous endpoints such as the POI listing.
func (c *Client) Get(ctx context.Context, path string, query url.Values, tok TokenSource, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, tok, out)
}

func (c *Client) Post(ctx context.Context, path string, tok TokenSource, body, out any) error {
	return c.send(ctx, http.MethodPost, path, tok, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, tok TokenSource, body, out any) error {
	return c.send(ctx, http.MethodPatch, path, tok, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, tok TokenSource, out any) error {
	return c.send(ctx, http.MethodDelete, path, tok, nil, out)
}

// PostMultipart uploads a single file under the given form field.
func (c *Client) PostMultipart(ctx context.Context, path string, tok TokenSource, field, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, tok, out)
}

func (c *Client) send(ctx context.Context, method, path string, tok TokenSource, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, tok, out)
}

func (c *Client) do(req *http.Request, tok TokenSource, out any) error {
	if tok != nil {
		if t := tok.Token(); t != "" {
			req.Header.Set("Authorization", "Bearer "+t)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend unreachable", zap.String("path", req.URL.Path), zap.Error(err))
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return ErrEmptyResponse
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ErrMalformedResponse
	}

	if resp.StatusCode == http.StatusUnauthorized && isExpiryCode(env.Code) {
		return &AuthExpiredError{Code: env.Code, Message: env.Error}
	}

	if !env.Success || resp.StatusCode >= 400 {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		return &APIError{Message: msg, Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return ErrMalformedResponse
		}
		return nil
	}
	// A handful of auth endpoints answer flat ({token, user, ...}) instead of
	// wrapping under data.
	if err := json.Unmarshal(raw, out); err != nil {
		return ErrMalformedResponse
	}
	return nil
}
