package domain

import "errors"

// Common errors used throughout the application.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrPeerUnreachable     = errors.New("peer unreachable")
	ErrInvalidPeerResponse = errors.New("invalid peer response")
	ErrSelfFriend          = errors.New("cannot friend yourself")
	ErrDuplicateFriend     = errors.New("friend already exists")
	ErrDirectoryFull       = errors.New("friend directory is full")
	ErrUntrustedDomain     = errors.New("untrusted domain")
)

// Error codes for standardized API error responses.
const (
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodePeerUnreachable     = "PEER_UNREACHABLE"
	ErrCodeInvalidPeerResponse = "INVALID_PEER_RESPONSE"
	ErrCodeSelfFriend          = "SELF_FRIEND_REJECTED"
	ErrCodeDuplicateFriend     = "DUPLICATE_FRIEND"
	ErrCodeDirectoryFull       = "DIRECTORY_FULL"
	ErrCodeUntrustedDomain     = "UNTRUSTED_DOMAIN"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// APIError represents an error response from the API.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}
