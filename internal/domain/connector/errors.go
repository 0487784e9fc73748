package connector

import "errors"

var (
	// Request errors
	ErrInvalidProvider = errors.New("connector: unsupported provider")
	ErrRateLimited     = errors.New("connector: rate limit exceeded")

	// Provider call errors. Transport-level failures never surface here:
	// clients degrade to sample data instead. These cover the cases where
	// a client deliberately raises.
	ErrUnauthorized  = errors.New("connector: provider rejected credentials")
	ErrProviderError = errors.New("connector: provider request failed")

	// Job errors
	ErrJobNotFound          = errors.New("connector: sync job not found")
	ErrJobForbidden         = errors.New("connector: sync job belongs to another user")
	ErrJobMissingError      = errors.New("connector: failed job requires an error message")
	ErrJobInvalidTransition = errors.New("connector: invalid job status transition")

	// Token errors
	ErrTokenNotFound = errors.New("connector: provider token not found")
)

// ClassifyStatus maps a provider HTTP status code to a typed error.
// Used by the search path when a client chooses to raise instead of
// degrading to sample data.
func ClassifyStatus(status int) error {
	switch {
	case status == 401 || status == 403:
		return ErrUnauthorized
	case status == 429:
		return ErrRateLimited
	default:
		return ErrProviderError
	}
}
