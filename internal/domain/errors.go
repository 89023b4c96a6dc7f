package domain

import "errors"

// ErrType classifies errors for the watch coordinators and the TUI.
type ErrType int

const (
	ErrUnknown       ErrType = iota
	ErrNoKubeconfig          // kubeconfig file not found
	ErrBadKubeconfig         // kubeconfig is malformed
	ErrNoContext             // no current context set
	ErrUnreachable           // cluster not reachable (timeout/DNS/refused)
	ErrTokenExpired          // 401 Unauthorized
	ErrForbidden             // 403 Forbidden
	ErrNotFound              // 404 Not Found
	ErrConflict              // 409 Conflict
	ErrRateLimited           // 429 Too Many Requests
	ErrServerError           // 500+
	ErrTLS                   // TLS/cert error
)

// APIError wraps a K8s API error with classification.
type APIError struct {
	Type    ErrType
	Message string
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsAuthExpired reports whether err is an expired-credential failure,
// recoverable by a token refresh and a silent retry on the next tick.
func IsAuthExpired(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == ErrTokenExpired
}

// IsConnectionLost reports whether err means the transport itself is
// unreachable, as opposed to an application-level rejection.
func IsConnectionLost(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Type {
	case ErrUnreachable, ErrTLS, ErrNoKubeconfig, ErrBadKubeconfig, ErrNoContext:
		return true
	}
	return false
}
