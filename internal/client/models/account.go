package models

type Account struct {
	ID            int64   `json:"id"`
	AccountNumber string  `json:"accountNumber"`
	Balance       float64 `json:"balance"`
	OwnerEmail    string  `json:"ownerEmail"`
	OwnerFullName string  `json:"ownerFullName"`
	CreatedAt     string  `json:"createdAt"`
}

// User is an account holder or staff member as seen by administrators.
type User struct {
	ID             int64    `json:"id"`
	Email          string   `json:"email"`
	FullName       string   `json:"fullName"`
	Role           Role     `json:"role"`
	Active         bool     `json:"active"`
	CreatedAt      string   `json:"createdAt"`
	AccountNumbers []string `json:"accountNumbers,omitempty"`
}

// UserRequest is the body of admin create/update user calls.
type UserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required,min=3"`
	Role     Role   `json:"role" validate:"required"`
	Active   *bool  `json:"active,omitempty"`
}
