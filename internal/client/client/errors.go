package client

import "errors"

var (
	// ErrUnavailable covers transport failures, timeouts and responses
	// that carry no readable envelope. It is the only error that makes
	// the services fall back to the local store.
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRejected wraps any other success:false answer.
	ErrRejected = errors.New("request rejected")
)

// IsUnavailable reports whether err means the remote API could not be
// reached and the caller should use the local store instead.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
