package watch

import (
	"sync"

	"go.uber.org/zap"

	"github.com/jclamy/kubedeck/internal/domain"
)

// Stopper is the handle a session registers with the coordinator so it
// can be halted by a failure it did not observe itself.
type Stopper interface {
	Stop()
}

// Handle identifies one registration with the ConnCoordinator.
type Handle uint64

// ConnCoordinator dedupes connection-level failures across all running
// sessions. Without it, one severed connection would make every session
// independently detect the failure on its next tick and raise as many
// redundant error prompts.
//
// State machine: Idle -> (connection failure) -> Showing -> (Retry or
// Clear) -> Idle. While Showing, further connection failures are
// dropped: first error wins.
type ConnCoordinator struct {
	mu       sync.Mutex
	current  error
	showing  bool
	sessions map[Handle]Stopper
	next     Handle

	onRetry func() error
	log     *zap.Logger
}

// NewConnCoordinator builds the process-wide coordinator. onRetry is
// the reconnection hook (rebuild the backend client); the coordinator
// itself holds no reconnection logic. A nil logger is replaced by a
// no-op one.
func NewConnCoordinator(onRetry func() error, log *zap.Logger) *ConnCoordinator {
	if log == nil {
		log = zap.NewNop()
	}
	return &ConnCoordinator{
		sessions: make(map[Handle]Stopper),
		onRetry:  onRetry,
		log:      log,
	}
}

// handleSetter receives its handle from Register inside the
// coordinator's critical section, before the registration is visible to
// a broadcast. A broadcast Stop therefore never races the handle write.
type handleSetter interface {
	setHandle(Handle)
}

// Register adds a session to the cancellation registry and returns its
// handle. Every session that begins watching must register; this is how
// the coordinator halts sessions it has no direct reference to.
func (c *ConnCoordinator) Register(s Stopper) Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	if hs, ok := s.(handleSetter); ok {
		hs.setHandle(c.next)
	}
	c.sessions[c.next] = s
	return c.next
}

// Unregister removes a registration. Unknown handles are ignored: the
// broadcast clears the registry before sessions get to unregister
// themselves.
func (c *ConnCoordinator) Unregister(h Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, h)
}

// HandleError reports whether err is a connection-level failure. On the
// first such failure it records the error, transitions to Showing and
// stops every registered session exactly once. While already Showing it
// still returns true, so the caller halts itself, but the stored error
// and the registry are untouched.
func (c *ConnCoordinator) HandleError(err error) bool {
	if !domain.IsConnectionLost(err) {
		return false
	}

	c.mu.Lock()
	if c.showing {
		c.mu.Unlock()
		return true
	}
	c.showing = true
	c.current = err
	stopped := make([]Stopper, 0, len(c.sessions))
	for _, s := range c.sessions {
		stopped = append(stopped, s)
	}
	c.sessions = make(map[Handle]Stopper)
	c.mu.Unlock()

	c.log.Warn("connection lost, stopping all sessions",
		zap.Int("sessions", len(stopped)), zap.Error(err))
	for _, s := range stopped {
		s.Stop()
	}
	return true
}

// Current returns the classified error being shown, or nil when Idle.
func (c *ConnCoordinator) Current() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Showing reports whether an error prompt is active.
func (c *ConnCoordinator) Showing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.showing
}

// Retry clears the error state back to Idle and invokes the retry hook.
// Sessions are not resumed: the caller rebuilds its subscriptions from
// scratch after a successful retry.
func (c *ConnCoordinator) Retry() error {
	c.mu.Lock()
	c.current = nil
	c.showing = false
	c.mu.Unlock()

	c.log.Info("retrying connection")
	if c.onRetry == nil {
		return nil
	}
	return c.onRetry()
}
