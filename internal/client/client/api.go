package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/dmitrijs2005/bankclient/internal/logging"
)

// APIClient sends JSON requests to the backend through an interceptor chain
// and unwraps the {data: ...} envelope of the responses.
type APIClient struct {
	base   *url.URL
	invoke Invoker
	log    logging.Logger
}

func NewAPIClient(baseURL string, invoke Invoker, log logging.Logger) (*APIClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse base url: unsupported scheme %q", u.Scheme)
	}
	return &APIClient{base: u, invoke: invoke, log: log.With("component", "api_client")}, nil
}

// URL resolves an API path against the base URL.
func (c *APIClient) URL(path string) string {
	return c.base.String() + path
}

// Do sends body (JSON-encoded when non-nil) and decodes the envelope data of
// the response into out (skipped when out is nil).
func (c *APIClient) Do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), rd)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// Upload posts a single file as multipart/form-data under field.
func (c *APIClient) Upload(ctx context.Context, path, field, filename string, content io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(fw, content); err != nil {
		return fmt.Errorf("read upload content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(path), &buf)
	if err != nil {
		return fmt.Errorf("build POST %s: %w", path, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	return c.send(req, out)
}

// Download returns the raw body of a GET request.
func (c *APIClient) Download(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path), nil)
	if err != nil {
		return nil, fmt.Errorf("build GET %s: %w", path, err)
	}
	resp, err := c.invoke(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}

func (c *APIClient) send(req *http.Request, out any) error {
	resp, err := c.invoke(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	env := models.Envelope[json.RawMessage]{}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.log.Warn(req.Context(), "undecodable response", "path", req.URL.Path, "err", err)
		return fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s %s data: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// Get, Post, Put, Patch and Delete are typed shorthands for Do.

func Get[T any](ctx context.Context, c *APIClient, path string) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func Post[T any](ctx context.Context, c *APIClient, path string, body any) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodPost, path, body, &out)
	return out, err
}

func Put[T any](ctx context.Context, c *APIClient, path string, body any) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodPut, path, body, &out)
	return out, err
}

func Patch[T any](ctx context.Context, c *APIClient, path string, body any) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodPatch, path, body, &out)
	return out, err
}

func Delete(ctx context.Context, c *APIClient, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}
