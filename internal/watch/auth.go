package watch

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jclamy/kubedeck/internal/domain"
)

// RefreshFunc re-acquires the expired credential and swaps it into the
// shared client. Supplied by the connection-management layer.
type RefreshFunc func() error

// AuthCoordinator dedupes credential refreshes. At most one refresh is
// in flight; sessions failing with an expired credential while it runs
// are told "handled" and simply retry on their next tick, picking up
// the swapped credential through the shared client.
type AuthCoordinator struct {
	mu       sync.Mutex
	inFlight bool

	refresh RefreshFunc
	conn    *ConnCoordinator
	log     *zap.Logger
}

// NewAuthCoordinator builds the process-wide coordinator. conn receives
// the degraded failure when the refresh itself fails. A nil logger is
// replaced by a no-op one.
func NewAuthCoordinator(refresh RefreshFunc, conn *ConnCoordinator, log *zap.Logger) *AuthCoordinator {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthCoordinator{refresh: refresh, conn: conn, log: log}
}

// HandleError reports whether err is an expired-credential failure that
// is being handled. The first caller starts the single refresh; callers
// arriving while it is in flight start nothing. Either way the caller
// must end its tick silently and retry on the next one.
func (a *AuthCoordinator) HandleError(err error) bool {
	if !domain.IsAuthExpired(err) {
		return false
	}

	a.mu.Lock()
	if a.inFlight {
		a.mu.Unlock()
		return true
	}
	a.inFlight = true
	a.mu.Unlock()

	a.log.Info("credential expired, refreshing")
	go a.runRefresh()
	return true
}

// Refreshing reports whether a refresh is currently in flight.
func (a *AuthCoordinator) Refreshing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inFlight
}

func (a *AuthCoordinator) runRefresh() {
	err := a.refresh()

	a.mu.Lock()
	a.inFlight = false
	a.mu.Unlock()

	if err == nil {
		a.log.Info("credential refreshed")
		return
	}

	// Re-authentication impossible: degrade to a connection-level
	// failure so the user gets exactly one prompt.
	a.log.Warn("credential refresh failed", zap.Error(err))
	if !domain.IsConnectionLost(err) {
		err = &domain.APIError{
			Type:    domain.ErrUnreachable,
			Message: fmt.Sprintf("Reconnexion impossible : %v", err),
			Err:     err,
		}
	}
	a.conn.HandleError(err)
}
