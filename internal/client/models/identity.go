// Package models defines the data exchanged between the banking client, its
// local storage and the backend API.
package models

// Identity is the denormalized profile returned by login and registration.
// It is cached next to the credential so callers can read it without
// decoding the token again.
type Identity struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	FullName      string `json:"fullName"`
	Role          Role   `json:"role"`
	Token         string `json:"token"`
	AccountNumber string `json:"accountNumber,omitempty"`
}

// Claims is the decoded payload segment of a credential.
// Timestamps are seconds since the Unix epoch.
type Claims struct {
	Subject   string `json:"sub"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}
