package models

import "encoding/json"

// RegisterRequest is the POST /register body.
type RegisterRequest struct {
	LastName  string `json:"lastName"`
	FirstName string `json:"firstName"`
	Age       int    `json:"age"`
	Phone     string `json:"phone"`
	Telegram  string `json:"telegram"`
	Photo     []byte `json:"photo"`
}

// TestResultRequest is the POST /test-result body. TestData is kept raw so
// the payload is stored exactly as submitted.
type TestResultRequest struct {
	RegistrationID string          `json:"registrationId"`
	Level          string          `json:"level"`
	Score          int             `json:"score"`
	TestType       string          `json:"testType"`
	TestData       json.RawMessage `json:"testData"`
}

// RegisterResponse acknowledges a stored registration.
type RegisterResponse struct {
	Success        bool   `json:"success"`
	RegistrationID string `json:"registrationId"`
	Message        string `json:"message"`
}

// StatusResponse is the generic success envelope.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the generic failure envelope. Error carries a short
// human-readable string, never internal details.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ArchiveResponse wraps the joined export.
type ArchiveResponse struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Records []ArchiveRecord `json:"records"`
}
