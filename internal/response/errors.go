package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrEmailTaken         ErrCode = "EMAIL_TAKEN"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden ErrCode = "FORBIDDEN"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Generation ────────────────────────────────────────────────────
	ErrMissingContent      ErrCode = "MISSING_CONTENT"
	ErrContentUnavailable  ErrCode = "CONTENT_UNAVAILABLE"
	ErrNoMistakes          ErrCode = "NO_MISTAKES_FOUND"
	ErrMistakeDataBroken   ErrCode = "MISTAKE_DATA_INCOMPLETE"
	ErrGenerationFailed    ErrCode = "GENERATION_FAILED"
	ErrProviderRateLimit   ErrCode = "PROVIDER_RATE_LIMITED"
	ErrProviderTimeout     ErrCode = "PROVIDER_TIMEOUT"
	ErrProviderUnavailable ErrCode = "PROVIDER_UNAVAILABLE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid or expired."
	case ErrEmailTaken:
		return "An account with this email already exists."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "Request payload is invalid."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."

	// ─── Generation ────────────────────────────────────────────────────
	case ErrMissingContent:
		return "The requested source requires content or a URL."
	case ErrContentUnavailable:
		return "No usable content could be fetched from the source."
	case ErrNoMistakes:
		return "No past wrong answers were found to build a practice quiz from."
	case ErrMistakeDataBroken:
		return "Your past wrong answers could not be matched to their quizzes."
	case ErrGenerationFailed:
		return "The model produced no usable output. Please try again."
	case ErrProviderRateLimit:
		return "The model provider is rate limiting requests. Please try again shortly."
	case ErrProviderTimeout:
		return "Generation timed out. Please try again."
	case ErrProviderUnavailable:
		return "The model provider is currently unavailable. Please try again later."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
