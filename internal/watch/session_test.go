package watch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/jclamy/kubedeck/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestCoordinators() (*AuthCoordinator, *ConnCoordinator) {
	conn := NewConnCoordinator(nil, nil)
	auth := NewAuthCoordinator(func() error { return nil }, conn, nil)
	return auth, conn
}

// recv reads one event or fails the test after a generous timeout.
func recv[T any](t *testing.T, ch <-chan Event[T]) Event[T] {
	t.Helper()
	select {
	case evt, ok := <-ch:
		if !ok {
			t.Fatal("event channel closed unexpectedly")
		}
		return evt
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
		return Event[T]{}
	}
}

// drain collects whatever is left on a stopping session's channel.
func drain[T any](t *testing.T, ch <-chan Event[T]) []Event[T] {
	t.Helper()
	var evts []Event[T]
	for {
		select {
		case evt, ok := <-ch:
			if !ok {
				return evts
			}
			evts = append(evts, evt)
		case <-time.After(2 * time.Second):
			t.Fatal("timeout draining event channel")
		}
	}
}

func TestFirstEventArrivesImmediately(t *testing.T) {
	auth, conn := newTestCoordinators()
	// A cadence of one hour: the only way the test passes is the
	// immediate first tick.
	s := NewSession(domain.KindPod, domain.ScopeOf("default"), time.Hour,
		func(ctx context.Context) ([]domain.PodRecord, error) {
			return pods(pod("a", "Running", 0)), nil
		},
		PodPolicy(), auth, conn)
	defer s.Stop()

	events := s.Start(context.Background())
	evt := recv(t, events)

	if evt.Err != nil {
		t.Fatalf("first event is an error: %v", evt.Err)
	}
	if len(evt.Records) != 1 || evt.Records[0].Name != "a" {
		t.Errorf("first event records = %+v", evt.Records)
	}
}

func TestUnchangedSnapshotsAreSuppressed(t *testing.T) {
	auth, conn := newTestCoordinators()
	var calls atomic.Int32
	s := NewSession(domain.KindPod, domain.ScopeOf("default"), 10*time.Millisecond,
		func(ctx context.Context) ([]domain.PodRecord, error) {
			calls.Add(1)
			return pods(pod("a", "Running", 0)), nil
		},
		PodPolicy(), auth, conn)

	events := s.Start(context.Background())
	recv(t, events) // first fetch always emits

	// Let several identical ticks run, then stop and count.
	waitFor(t, func() bool { return calls.Load() >= 5 }, "five ticks")
	s.Stop()

	if extra := drain(t, events); len(extra) != 0 {
		t.Errorf("got %d events for identical snapshots, want 0 (no heartbeat)", len(extra))
	}
}

func TestDetailSessionAlwaysEmits(t *testing.T) {
	auth, conn := newTestCoordinators()
	s := NewSession(domain.KindPodDetail, domain.ScopeOf("default"), 10*time.Millisecond,
		func(ctx context.Context) ([]domain.PodRecord, error) {
			return pods(pod("a", "Running", 0)), nil
		},
		PodPolicy(), auth, conn, AlwaysEmit[domain.PodRecord]())
	defer s.Stop()

	events := s.Start(context.Background())
	for i := 0; i < 3; i++ {
		evt := recv(t, events)
		if evt.Err != nil || len(evt.Records) != 1 {
			t.Fatalf("event %d = %+v, want the unchanged snapshot", i, evt)
		}
	}
}

func TestTransientErrorSurfacedAndLoopContinues(t *testing.T) {
	auth, conn := newTestCoordinators()
	var calls atomic.Int32
	boom := errors.New("etcdserver: leader changed")
	s := NewSession(domain.KindPod, domain.ScopeOf("default"), 10*time.Millisecond,
		func(ctx context.Context) ([]domain.PodRecord, error) {
			if calls.Add(1) == 1 {
				return nil, boom
			}
			return pods(pod("a", "Running", 0)), nil
		},
		PodPolicy(), auth, conn)
	defer s.Stop()

	events := s.Start(context.Background())

	evt := recv(t, events)
	if !errors.Is(evt.Err, boom) {
		t.Fatalf("first event = %+v, want the transient error", evt)
	}
	evt = recv(t, events)
	if evt.Err != nil || len(evt.Records) != 1 {
		t.Fatalf("second event = %+v, want the snapshot after recovery", evt)
	}
	if conn.Showing() {
		t.Error("transient error must not reach the connection coordinator")
	}
}

func TestConnectionFailureStopsAllSessions(t *testing.T) {
	auth, conn := newTestCoordinators()

	healthy := NewSession(domain.KindDeployment, domain.ScopeAll(), 10*time.Millisecond,
		func(ctx context.Context) ([]domain.DeploymentRecord, error) {
			return []domain.DeploymentRecord{{Name: "api", Namespace: "prod"}}, nil
		},
		DeploymentPolicy(), auth, conn)
	failing := NewSession(domain.KindPod, domain.ScopeAll(), 10*time.Millisecond,
		func(ctx context.Context) ([]domain.PodRecord, error) {
			return nil, connErr()
		},
		PodPolicy(), auth, conn)

	healthyEvents := healthy.Start(context.Background())
	recv(t, healthyEvents)
	failingEvents := failing.Start(context.Background())

	// The failing session never emits; both channels close once the
	// coordinator broadcasts.
	if evts := drain(t, failingEvents); len(evts) != 0 {
		t.Errorf("failing session emitted %d events, want 0", len(evts))
	}
	drain(t, healthyEvents)

	if !conn.Showing() {
		t.Error("coordinator should be Showing")
	}
	if !domain.IsConnectionLost(conn.Current()) {
		t.Errorf("stored error = %v", conn.Current())
	}
}

func TestBroadcastRacesConcurrentStarts(t *testing.T) {
	auth, conn := newTestCoordinators()

	release := make(chan struct{})
	failing := NewSession(domain.KindPod, domain.ScopeAll(), time.Hour,
		func(ctx context.Context) ([]domain.PodRecord, error) {
			<-release
			return nil, connErr()
		},
		PodPolicy(), auth, conn)
	failingEvents := failing.Start(context.Background())

	// Start more sessions while the broadcast fires. The handle is
	// delivered inside Register's critical section, so a broadcast Stop
	// never observes a half-registered session.
	close(release)
	sessions := make([]*Session[domain.SecretRecord], 8)
	channels := make([]<-chan Event[domain.SecretRecord], len(sessions))
	var wg sync.WaitGroup
	for i := range sessions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := NewSession(domain.KindSecret, domain.ScopeAll(), time.Hour,
				func(ctx context.Context) ([]domain.SecretRecord, error) {
					return nil, nil
				},
				SecretPolicy(), auth, conn)
			sessions[i] = s
			channels[i] = s.Start(context.Background())
		}(i)
	}
	wg.Wait()

	if evts := drain(t, failingEvents); len(evts) != 0 {
		t.Errorf("failing session emitted %d events, want 0", len(evts))
	}
	if !conn.Showing() {
		t.Error("coordinator should be Showing")
	}

	// Sessions registered after the broadcast cleared the registry are
	// still running; stopping them, twice, must stay safe.
	for _, s := range sessions {
		s.Stop()
		s.Stop()
	}
	for _, ch := range channels {
		drain(t, ch)
	}
}

func TestAuthExpiryIsSilentAndRecovers(t *testing.T) {
	conn := NewConnCoordinator(nil, nil)
	var refreshes atomic.Int32
	auth := NewAuthCoordinator(func() error {
		refreshes.Add(1)
		return nil
	}, conn, nil)

	var calls atomic.Int32
	s := NewSession(domain.KindSecret, domain.ScopeOf("default"), 10*time.Millisecond,
		func(ctx context.Context) ([]domain.SecretRecord, error) {
			if calls.Add(1) == 1 {
				return nil, authErr()
			}
			return []domain.SecretRecord{{Name: "tls", Namespace: "default", Keys: 2}}, nil
		},
		SecretPolicy(), auth, conn)
	defer s.Stop()

	events := s.Start(context.Background())

	// The 401 tick is invisible: the first delivered event is the
	// post-refresh snapshot.
	evt := recv(t, events)
	if evt.Err != nil {
		t.Fatalf("auth expiry leaked to the subscriber: %v", evt.Err)
	}
	if len(evt.Records) != 1 || evt.Records[0].Name != "tls" {
		t.Errorf("records = %+v", evt.Records)
	}
	waitFor(t, func() bool { return refreshes.Load() == 1 }, "single refresh")
	if conn.Showing() {
		t.Error("auth expiry must not reach the connection coordinator")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	auth, conn := newTestCoordinators()
	s := NewSession(domain.KindPod, domain.ScopeOf("default"), time.Hour,
		func(ctx context.Context) ([]domain.PodRecord, error) {
			return nil, nil
		},
		PodPolicy(), auth, conn)

	events := s.Start(context.Background())
	recv(t, events)

	s.Stop()
	s.Stop() // second call is a no-op

	drain(t, events)
}

func TestParentContextCancellationStopsSession(t *testing.T) {
	auth, conn := newTestCoordinators()
	ctx, cancel := context.WithCancel(context.Background())
	s := NewSession(domain.KindPod, domain.ScopeOf("default"), 10*time.Millisecond,
		func(ctx context.Context) ([]domain.PodRecord, error) {
			return pods(pod("a", "Running", 0)), nil
		},
		PodPolicy(), auth, conn)
	defer s.Stop()

	events := s.Start(ctx)
	recv(t, events)
	cancel()
	drain(t, events) // channel closes without further snapshots
}

func TestCancelledSessionNeverEmitsInFlightTick(t *testing.T) {
	auth, conn := newTestCoordinators()
	fetching := make(chan struct{})
	release := make(chan struct{})
	var first atomic.Bool
	first.Store(true)

	s := NewSession(domain.KindPod, domain.ScopeOf("default"), time.Hour,
		func(ctx context.Context) ([]domain.PodRecord, error) {
			if !first.Swap(false) {
				return nil, nil
			}
			close(fetching)
			<-release
			return pods(pod("a", "Running", 0)), nil
		},
		PodPolicy(), auth, conn)

	events := s.Start(context.Background())
	<-fetching
	s.Stop() // cancel while the first fetch is in flight
	close(release)

	if evts := drain(t, events); len(evts) != 0 {
		t.Errorf("cancelled session emitted %d events, want 0", len(evts))
	}
}
