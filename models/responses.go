package models

// TokenResponse is the body returned by register and login on success.
// The field name matches the API contract consumed by existing clients.
type TokenResponse struct {
	AuthToken string `json:"authtoken"`
}

// ErrorResponse is the structured body returned on every API failure.
// Error is a stable machine-readable kind; Message is human-readable.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// DeleteNoteResponse confirms a successful note deletion.
type DeleteNoteResponse struct {
	Success string `json:"success"`
}
