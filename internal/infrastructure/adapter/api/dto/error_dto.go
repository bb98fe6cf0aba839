package dto

// ErrorResponse represents a standardized error response for protocol-level
// failures (bad request, unauthorized, internal errors)
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// BusinessErrorResponse carries a user-facing failure message. Business
// outcomes ride HTTP 200; only the two approved messages appear here.
type BusinessErrorResponse struct {
	Error string `json:"error"`
}
