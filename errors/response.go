package errors

// ErrorResponse is the JSON error envelope of the chat-service API:
//
//	{"error": {"type": "validation", "message": "..."}}
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Type    string         `json:"type"`
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ToResponse renders e in the API error envelope.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: ErrorBody{
		Type:    APIType(e.Code),
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	}}
}
