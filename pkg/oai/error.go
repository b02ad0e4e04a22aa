package oai

// ErrorResponse is the error envelope returned for every non-2xx response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the human-readable message and a machine-readable type.
type ErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Error type discriminators.
const (
	ErrTypeInvalidRequest   = "invalid_request"
	ErrTypeUnauthorized     = "unauthorized"
	ErrTypeNotFound         = "not_found"
	ErrTypeMethodNotAllowed = "method_not_allowed"
	ErrTypeInternal         = "internal_server_error"
)

// NewError builds an error envelope.
func NewError(typ, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Message: message, Type: typ}}
}
