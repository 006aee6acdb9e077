package apperrors

// ErrorCode is the machine-readable error kind sent to clients.
type ErrorCode string

const (
	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"

	// Business logic
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"

	// Auth
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeInvalidToken ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
)

// family maps fine-grained codes onto the five kinds callers branch on.
var family = map[ErrorCode]ErrorCode{
	CodeInvalidStatus: CodeValidationFailed,
	CodeInvalidToken:  CodeUnauthorized,
	CodeTokenExpired:  CodeUnauthorized,
	CodeDatabaseError: CodeInternalError,
}

func (c ErrorCode) kind() ErrorCode {
	if k, ok := family[c]; ok {
		return k
	}
	return c
}
