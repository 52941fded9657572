package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/dmitrijs2005/bankclient/internal/logging"
	"github.com/google/uuid"
)

const (
	HeaderRequestID     = "X-Request-ID"
	HeaderAuthorization = "Authorization"

	// DefaultAuthPathPrefix marks the endpoints that never carry a credential.
	DefaultAuthPathPrefix = "/auth/"
)

// Invoker sends a request and returns its response.
type Invoker func(req *http.Request) (*http.Response, error)

// Interceptor wraps an Invoker. It may alter the request before calling next
// and inspect or replace the outcome afterwards.
type Interceptor func(req *http.Request, next Invoker) (*http.Response, error)

// Chain builds an Invoker that runs interceptors in order, the first one
// outermost, and ends with base.
func Chain(base Invoker, interceptors ...Interceptor) Invoker {
	next := base
	for i := len(interceptors) - 1; i >= 0; i-- {
		ic, inner := interceptors[i], next
		next = func(req *http.Request) (*http.Response, error) {
			return ic(req, inner)
		}
	}
	return next
}

// Transport adapts an http.Client to an Invoker.
func Transport(c *http.Client) Invoker {
	return c.Do
}

// Pipeline is the standard chain: request id, bearer credential, error
// normalization, then hc.
func Pipeline(hc *http.Client, src TokenSource, authPrefix string, r Reactions, log logging.Logger, rec Recorder) Invoker {
	return Chain(Transport(hc),
		RequestIDInterceptor(),
		BearerInterceptor(src, authPrefix),
		ErrorInterceptor(authPrefix, r, log, rec),
	)
}

// TokenSource yields the raw credential, or "" when none is stored.
type TokenSource interface {
	Token(ctx context.Context) string
}

// RequestIDInterceptor tags requests that carry no X-Request-ID yet.
func RequestIDInterceptor() Interceptor {
	return func(req *http.Request, next Invoker) (*http.Response, error) {
		if req.Header.Get(HeaderRequestID) == "" {
			req = req.Clone(req.Context())
			req.Header.Set(HeaderRequestID, uuid.NewString())
		}
		return next(req)
	}
}

// BearerInterceptor attaches the stored credential to every request whose
// path does not contain authPrefix. The credential is sent as stored; the
// backend decides whether it is still good.
func BearerInterceptor(src TokenSource, authPrefix string) Interceptor {
	if authPrefix == "" {
		authPrefix = DefaultAuthPathPrefix
	}
	return func(req *http.Request, next Invoker) (*http.Response, error) {
		if strings.Contains(req.URL.Path, authPrefix) {
			return next(req)
		}
		tok := src.Token(req.Context())
		if tok == "" {
			return next(req)
		}
		req = req.Clone(req.Context())
		req.Header.Set(HeaderAuthorization, "Bearer "+tok)
		return next(req)
	}
}

// Reactions are the session side effects of specific failures.
type Reactions struct {
	// Unauthorized runs on a 401 from any path outside the auth prefix. A
	// rejected login or registration is not a revoked session.
	Unauthorized func(ctx context.Context)
	// Forbidden runs on every 403.
	Forbidden func(ctx context.Context)
}

// Recorder receives request outcomes.
type Recorder interface {
	ObserveRequest(method string, status int, d time.Duration)
	RequestFailed(status int, kind string)
}

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// ErrorInterceptor normalizes failures into *APIError. Responses below 400
// pass through untouched. rec may be nil.
func ErrorInterceptor(authPrefix string, r Reactions, log logging.Logger, rec Recorder) Interceptor {
	if authPrefix == "" {
		authPrefix = DefaultAuthPathPrefix
	}
	return func(req *http.Request, next Invoker) (*http.Response, error) {
		ctx := req.Context()
		start := time.Now()
		resp, err := next(req)

		status := 0
		if err == nil {
			status = resp.StatusCode
		}
		if rec != nil {
			rec.ObserveRequest(req.Method, status, time.Since(start))
		}
		if err == nil && status < http.StatusBadRequest {
			return resp, nil
		}

		apiErr := &APIError{Status: status, URL: req.URL.String(), Err: err}
		if err != nil {
			apiErr.Message = message(0, "", "")
		} else {
			backend := backendMessage(resp)
			apiErr.Message = message(status, http.StatusText(status), backend)
			if backend != "" {
				apiErr.Err = &BackendError{Message: backend}
			}
		}

		log.Error(ctx, "HTTP error",
			"status", apiErr.Status,
			"message", apiErr.Message,
			"url", apiErr.URL,
			"request_id", req.Header.Get(HeaderRequestID),
			"err", err,
		)
		if rec != nil {
			rec.RequestFailed(status, kindLabel(status))
		}

		switch status {
		case http.StatusUnauthorized:
			if r.Unauthorized != nil && !strings.Contains(req.URL.Path, authPrefix) {
				r.Unauthorized(ctx)
			}
		case http.StatusForbidden:
			if r.Forbidden != nil {
				r.Forbidden(ctx)
			}
		}
		return nil, apiErr
	}
}

// BackendError carries the message the backend put in a failed response.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string { return "backend: " + e.Message }

func backendMessage(resp *http.Response) string {
	defer resp.Body.Close()
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(b) == 0 {
		return ""
	}
	var body models.ErrorBody
	if err := json.Unmarshal(b, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Message)
}

func kindLabel(status int) string {
	switch Kind(status) {
	case ErrUnreachable:
		return "unreachable"
	case ErrBadRequest:
		return "bad_request"
	case ErrUnauthorized:
		return "unauthorized"
	case ErrForbidden:
		return "forbidden"
	case ErrNotFound:
		return "not_found"
	case ErrServerError:
		return "server_error"
	case ErrServiceUnavailable:
		return "service_unavailable"
	default:
		return "other"
	}
}
