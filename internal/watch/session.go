// Package watch turns the request/response cluster API into a stream of
// change events. Each Session owns one polling loop for one
// (kind, scope) pair; the two coordinators dedupe connection failures
// and credential refreshes across all running sessions.
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jclamy/kubedeck/internal/domain"
)

// Event is what a session delivers to its subscriber: a fresh snapshot,
// or a transient error the subscriber may surface. Exactly one of the
// two fields is set.
type Event[T any] struct {
	Records []T
	Err     error
}

// FetchFunc retrieves the full current collection for one tick. The
// scope is bound into the closure by the caller.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Session polls one resource collection on a fixed cadence and emits a
// snapshot whenever the kind's policy reports a material change.
// Ticks are strictly sequential within a session: the loop runs each
// fetch-detect-emit cycle to completion before the next timer fire is
// honored.
type Session[T any] struct {
	id      string
	kind    domain.ResourceKind
	scope   domain.Scope
	cadence time.Duration
	fetch   FetchFunc[T]
	policy  Policy[T]
	auth    *AuthCoordinator
	conn    *ConnCoordinator
	log     *zap.Logger

	// alwaysEmit disables suppression: detail views re-render on every
	// successful fetch so the user sees every field update.
	alwaysEmit bool

	ctx      context.Context
	cancel   context.CancelFunc
	events   chan Event[T]
	stopOnce sync.Once
	handle   Handle

	last   []T
	primed bool
}

// Compile-time checks that sessions can register with the coordinator
// and receive their handle during registration.
var (
	_ Stopper      = (*Session[domain.PodRecord])(nil)
	_ handleSetter = (*Session[domain.PodRecord])(nil)
)

// Option configures a Session at construction.
type Option[T any] func(*Session[T])

// AlwaysEmit makes the session emit on every successful fetch, skipping
// change detection. Used by single-object detail sessions.
func AlwaysEmit[T any]() Option[T] {
	return func(s *Session[T]) { s.alwaysEmit = true }
}

// WithLogger attaches a logger; sessions are silent by default.
func WithLogger[T any](log *zap.Logger) Option[T] {
	return func(s *Session[T]) { s.log = log }
}

// NewSession builds a session. It does not poll until Start is called.
// Both coordinators are required: every session shares the single
// process-wide pair.
func NewSession[T any](kind domain.ResourceKind, scope domain.Scope, cadence time.Duration,
	fetch FetchFunc[T], policy Policy[T], auth *AuthCoordinator, conn *ConnCoordinator,
	opts ...Option[T]) *Session[T] {

	s := &Session[T]{
		id:      uuid.NewString(),
		kind:    kind,
		scope:   scope,
		cadence: cadence,
		fetch:   fetch,
		policy:  policy,
		auth:    auth,
		conn:    conn,
		log:     zap.NewNop(),
		events:  make(chan Event[T], 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(
		zap.String("session", s.id),
		zap.Stringer("kind", s.kind),
		zap.Stringer("scope", s.scope),
	)
	return s
}

// setHandle runs inside Register's critical section, before the session
// is reachable through the registry. Writing the handle any later would
// race a broadcast Stop triggered by another session's tick.
func (s *Session[T]) setHandle(h Handle) { s.handle = h }

// Start registers the session with the connection coordinator and
// launches the polling loop. The first tick runs immediately; the
// returned channel is closed when the session stops.
func (s *Session[T]) Start(ctx context.Context) <-chan Event[T] {
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.conn.Register(s)
	go s.run()
	return s.events
}

// Stop halts the timer and closes the event channel. Idempotent; safe
// to call from the coordinator's broadcast as well as from the owner.
func (s *Session[T]) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		s.conn.Unregister(s.handle)
		s.log.Debug("session stopped")
	})
}

func (s *Session[T]) run() {
	defer close(s.events)
	s.log.Debug("session started", zap.Duration("cadence", s.cadence))

	if !s.tick() {
		return
	}
	ticker := time.NewTicker(s.cadence)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if !s.tick() {
				return
			}
		}
	}
}

// tick runs one fetch-detect-emit cycle. It returns false when the loop
// must stop (cancellation, or a coordinator-level connection failure).
func (s *Session[T]) tick() bool {
	records, err := s.fetch(s.ctx)

	// A cancelled session's in-flight fetch is allowed to finish, but
	// nothing may be emitted afterwards.
	if s.ctx.Err() != nil {
		return false
	}

	if err != nil {
		if s.auth.HandleError(err) {
			// Expired credential, refresh in progress. Stay silent: the
			// next tick retries the same fetch against the swapped
			// credential.
			s.log.Debug("auth refresh in progress, tick skipped")
			return true
		}
		if s.conn.HandleError(err) {
			// Connection-level failure. The coordinator broadcast stops
			// every registered session; stop this one directly rather
			// than waiting for our own callback.
			s.Stop()
			return false
		}
		// Transient or unknown: surface to the subscriber, keep polling.
		s.log.Warn("tick failed", zap.Error(err))
		return s.emit(Event[T]{Err: err})
	}

	if s.alwaysEmit || !s.primed || s.policy.Changed(s.last, records) {
		if !s.emit(Event[T]{Records: records}) {
			return false
		}
	}
	s.last = records
	s.primed = true
	return true
}

func (s *Session[T]) emit(evt Event[T]) bool {
	select {
	case s.events <- evt:
		return true
	case <-s.ctx.Done():
		return false
	}
}
