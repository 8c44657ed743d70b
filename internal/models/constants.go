package models

// ============================================================================
// FIELD LIMITS
// ============================================================================

const (
	// MaxTaskTitleLength is the maximum task title length in characters
	MaxTaskTitleLength = 200

	// MaxLabelNameLength is the maximum label name length in characters
	MaxLabelNameLength = 50

	// MinPasswordLength is the minimum accepted password length
	MinPasswordLength = 8
)

// ============================================================================
// TOKENS
// ============================================================================

// TokenTypeBearer is the token_type reported alongside issued access tokens
const TokenTypeBearer = "bearer"
