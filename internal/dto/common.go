package dto

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse is returned with 422 and lists messages per field.
type ValidationErrorResponse struct {
	Error  string              `json:"error"`
	Errors map[string][]string `json:"errors"`
}

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
