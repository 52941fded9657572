// Package client talks to the banking backend over HTTP.
//
// # Pipeline
//
// Every request goes through a chain of interceptors before it reaches the
// transport, in this order:
//
//  1. RequestIDInterceptor tags the request with an X-Request-ID.
//  2. BearerInterceptor attaches the stored credential, except on the
//     authentication endpoints.
//  3. ErrorInterceptor turns transport errors and non-2xx responses into
//     *APIError and reacts to 401 (terminate the session) and 403 (back to
//     the login screen).
//
// Callers of APIClient therefore only ever see *APIError values, matched
// with errors.Is against ErrUnreachable, ErrUnauthorized and the other kinds.
//
// # Local storage
//
// InitDatabase opens the SQLite file backing the credential store and
// applies the embedded goose migrations.
package client
