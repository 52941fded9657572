package models

// Envelope is the wrapper every backend response uses. Only Data is handed
// to callers.
type Envelope[T any] struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// ErrorBody is the subset of an error response the client reads.
type ErrorBody struct {
	Message string `json:"message"`
}
