package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is the parsed form of a lower-layer error
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError maps gorm/postgres errors onto user-facing codes and messages.
// Sensitive driver detail stays out of the response; the caller-facing text
// distinguishes "nothing happened" from "try again".
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong on our side",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// Postgres unique constraint violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}

	// Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStrLower)
	}

	// Not null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// Connectivity problems with the database or downstream services
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "A downstream service is unreachable. Please try again shortly",
		}
	}

	return ErrorInfo{
		Code:    InternalDatabaseError,
		Message: "Your action did not take effect. Please try again",
	}
}

// ParseAndRespond parses an error and writes the mapped response. Controller
// convenience helper.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "registration_number") {
		// Badge mint retried by the caller; surfacing as conflict is enough.
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "Badge registration number collision, please retry",
		}
	}

	if strings.Contains(errLower, "idx_badge_store_type") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "This badge has already been issued for the store",
		}
	}

	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "This email address is already registered",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "This record already exists",
	}
}

func parseForeignKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "user_id") || strings.Contains(errLower, "reporter_id") || strings.Contains(errLower, "fk_users") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "The referenced user does not exist",
		}
	}
	if strings.Contains(errLower, "store_id") || strings.Contains(errLower, "fk_stores") {
		return ErrorInfo{
			Code:    StoreNotFound,
			Message: "The referenced store does not exist",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "A referenced record does not exist",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "store"):
		return "Store not found"
	case strings.Contains(contextLower, "document"):
		return "Document not found"
	case strings.Contains(contextLower, "badge"):
		return "Badge not found"
	case strings.Contains(contextLower, "report"):
		return "Report not found"
	case strings.Contains(contextLower, "user"):
		return "User not found"
	case strings.Contains(contextLower, "notification"):
		return "Notification not found"
	}

	return "The requested record was not found"
}
