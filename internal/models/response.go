package models

// APIResponse wraps every successful response body.
type APIResponse[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// NewAPIResponse builds a successful envelope around data.
func NewAPIResponse[T any](data T) APIResponse[T] {
	return APIResponse[T]{Success: true, Data: data}
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewErrorResponse builds a failure envelope.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}
