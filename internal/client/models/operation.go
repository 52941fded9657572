package models

// OperationType classifies a banking operation.
type OperationType string

const (
	OperationDeposit    OperationType = "DEPOSIT"
	OperationWithdrawal OperationType = "WITHDRAWAL"
	OperationTransfer   OperationType = "TRANSFER"
)

// OperationStatus is the lifecycle state of an operation.
type OperationStatus string

const (
	StatusPending   OperationStatus = "PENDING"
	StatusApproved  OperationStatus = "APPROVED"
	StatusRejected  OperationStatus = "REJECTED"
	StatusCompleted OperationStatus = "COMPLETED"
)

// DocumentThreshold is the amount above which an operation needs a
// supporting document before an agent can validate it.
const DocumentThreshold = 10000

type Operation struct {
	ID                       int64           `json:"id"`
	Type                     OperationType   `json:"type"`
	Amount                   float64         `json:"amount"`
	Status                   OperationStatus `json:"status"`
	CreatedAt                string          `json:"createdAt"`
	ValidatedAt              string          `json:"validatedAt,omitempty"`
	ExecutedAt               string          `json:"executedAt,omitempty"`
	SourceAccountNumber      string          `json:"sourceAccountNumber"`
	DestinationAccountNumber string          `json:"destinationAccountNumber,omitempty"`
	Message                  string          `json:"message,omitempty"`
	RequiresDocument         bool            `json:"requiresDocument"`
	HasDocument              bool            `json:"hasDocument"`
}

// OperationRequest is the body of POST /api/client/operations.
type OperationRequest struct {
	Type                     OperationType `json:"type" validate:"required,oneof=DEPOSIT WITHDRAWAL TRANSFER"`
	Amount                   float64       `json:"amount" validate:"gt=0"`
	DestinationAccountNumber string        `json:"destinationAccountNumber,omitempty" validate:"required_if=Type TRANSFER"`
}

// RequiresDocument reports whether an operation of this amount must carry a
// supporting document.
func RequiresDocument(amount float64) bool {
	return amount > DocumentThreshold
}

// ValidationComment is the optional body of approve/reject calls.
type ValidationComment struct {
	Comment string `json:"comment,omitempty"`
}
