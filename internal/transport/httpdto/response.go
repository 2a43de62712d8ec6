package httpdto

// ErrorResponse is the body of every 4xx/5xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// MessageResponse carries a short human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

func NewErrorResponse(err string, code string) ErrorResponse {
	return ErrorResponse{
		Error: err,
		Code:  code,
	}
}

func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}
