package dto

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	ErrorCodeUnauthorized     ErrorCode = "AUTH_001"
	ErrorCodeForbidden        ErrorCode = "AUTH_002"
	ErrorCodeResourceNotFound ErrorCode = "RES_001"
	ErrorCodeConflict         ErrorCode = "RES_002"
	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeInternalServer   ErrorCode = "SRV_001"
)

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field" example:"startTime"`
	Message string `json:"message" example:"startTime is required"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string       `json:"message" example:"This room is already booked"`
	Code    ErrorCode    `json:"code,omitempty" example:"RES_002"`
	Details []FieldError `json:"details,omitempty"`
}

// MessageResponse carries a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message" example:"Session deleted"`
}
