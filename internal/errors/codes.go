package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The frontend maps these codes to localized messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED" // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationInvalidEmail = "VALIDATION_INVALID_EMAIL"
	ValidationTooShort     = "VALIDATION_TOO_SHORT"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Store / verification (STORE_) ====================
	StoreNotFound             = "STORE_NOT_FOUND"
	StoreNotVerified          = "STORE_NOT_VERIFIED"          // badge issuance against non-verified store
	StoreVerificationReviewed = "STORE_VERIFICATION_REVIEWED" // transition out of a terminal state
	StoreVerificationConflict = "STORE_VERIFICATION_CONFLICT" // concurrent review decided first
	StoreInvalidTargetStatus  = "STORE_INVALID_TARGET_STATUS" // target outside {verified, rejected}
	DocumentNotFound          = "DOCUMENT_NOT_FOUND"
	DocumentInvalidType       = "DOCUMENT_INVALID_TYPE"

	// ==================== Badge (BADGE_) ====================
	BadgeNotFound    = "BADGE_NOT_FOUND"
	BadgeInvalidType = "BADGE_INVALID_TYPE"

	// ==================== Scam report (REPORT_) ====================
	ReportNotFound         = "REPORT_NOT_FOUND"
	ReportEvidenceRequired = "REPORT_EVIDENCE_REQUIRED"
	ReportInvalidStatus    = "REPORT_INVALID_STATUS"

	// ==================== Notification (NOTIFY_) ====================
	NotificationNotFound = "NOTIFY_NOT_FOUND"
	NotifyDeliveryFailed = "NOTIFY_DELIVERY_FAILED" // per-recipient; logged, never fatal

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
