package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jclamy/kubedeck/internal/domain"
	"github.com/jclamy/kubedeck/internal/watch"
)

// podDetail bundles everything the detail view shows for one pod. It is
// fetched as a unit so a single session keeps the whole panel fresh.
type podDetail struct {
	Pod    domain.PodRecord
	Events []domain.EventRecord
	Env    []domain.EnvVarRecord
}

// --- Stream messages ---
//
// Each message carries the channel it was read from; a message from a
// channel the model no longer listens to is stale and must not re-arm
// the listener.

type podsStreamMsg struct {
	ch  <-chan watch.Event[domain.PodRecord]
	evt watch.Event[domain.PodRecord]
	ok  bool
}

type secretsStreamMsg struct {
	ch  <-chan watch.Event[domain.SecretRecord]
	evt watch.Event[domain.SecretRecord]
	ok  bool
}

type deploymentsStreamMsg struct {
	ch  <-chan watch.Event[domain.DeploymentRecord]
	evt watch.Event[domain.DeploymentRecord]
	ok  bool
}

type customResourcesStreamMsg struct {
	ch  <-chan watch.Event[domain.CustomResourceRecord]
	evt watch.Event[domain.CustomResourceRecord]
	ok  bool
}

type detailStreamMsg struct {
	ch  <-chan watch.Event[podDetail]
	evt watch.Event[podDetail]
	ok  bool
}

type metricsStreamMsg struct {
	ch  <-chan watch.Event[domain.PodMetricsRecord]
	evt watch.Event[domain.PodMetricsRecord]
	ok  bool
}

func listenPods(ch <-chan watch.Event[domain.PodRecord]) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		return podsStreamMsg{ch: ch, evt: evt, ok: ok}
	}
}

func listenSecrets(ch <-chan watch.Event[domain.SecretRecord]) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		return secretsStreamMsg{ch: ch, evt: evt, ok: ok}
	}
}

func listenDeployments(ch <-chan watch.Event[domain.DeploymentRecord]) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		return deploymentsStreamMsg{ch: ch, evt: evt, ok: ok}
	}
}

func listenCustomResources(ch <-chan watch.Event[domain.CustomResourceRecord]) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		return customResourcesStreamMsg{ch: ch, evt: evt, ok: ok}
	}
}

func listenDetail(ch <-chan watch.Event[podDetail]) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		return detailStreamMsg{ch: ch, evt: evt, ok: ok}
	}
}

func listenMetrics(ch <-chan watch.Event[domain.PodMetricsRecord]) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		return metricsStreamMsg{ch: ch, evt: evt, ok: ok}
	}
}

// --- Session lifecycle ---

// stopSessions halts every running session and forgets the channels.
// The closed channels deliver a final ok=false message which the update
// loop drops as stale.
func (m *Model) stopSessions() {
	for _, s := range m.stoppers {
		s.Stop()
	}
	m.stoppers = nil
	m.podsCh = nil
	m.secretsCh = nil
	m.deploymentsCh = nil
	m.customResourcesCh = nil
	m.detailCh = nil
	m.metricsCh = nil
}

// startSessions launches the watch sessions the current view needs and
// returns the listener commands. List views run one session; the detail
// view runs a detail session plus a slower metrics session.
func (m *Model) startSessions() tea.Cmd {
	m.stopSessions()
	if m.client == nil || m.disconnected {
		return nil
	}

	switch m.view {
	case ViewPods:
		s := watch.NewSession(domain.KindPod, m.scope, m.cfg.Watch.Workloads,
			m.fetchPods(), watch.PodPolicy(), m.auth, m.conn,
			watch.WithLogger[domain.PodRecord](m.log))
		m.stoppers = append(m.stoppers, s)
		m.podsCh = s.Start(context.Background())
		return listenPods(m.podsCh)

	case ViewSecrets:
		s := watch.NewSession(domain.KindSecret, m.scope, m.cfg.Watch.Workloads,
			m.fetchSecrets(), watch.SecretPolicy(), m.auth, m.conn,
			watch.WithLogger[domain.SecretRecord](m.log))
		m.stoppers = append(m.stoppers, s)
		m.secretsCh = s.Start(context.Background())
		return listenSecrets(m.secretsCh)

	case ViewDeployments:
		s := watch.NewSession(domain.KindDeployment, m.scope, m.cfg.Watch.Workloads,
			m.fetchDeployments(), watch.DeploymentPolicy(), m.auth, m.conn,
			watch.WithLogger[domain.DeploymentRecord](m.log))
		m.stoppers = append(m.stoppers, s)
		m.deploymentsCh = s.Start(context.Background())
		return listenDeployments(m.deploymentsCh)

	case ViewCustomResources:
		if len(m.cfg.CustomResources) == 0 {
			return nil
		}
		s := watch.NewSession(domain.KindCustomResource, m.scope, m.cfg.Watch.CustomResources,
			m.fetchCustomResources(), watch.CustomResourcePolicy(), m.auth, m.conn,
			watch.WithLogger[domain.CustomResourceRecord](m.log))
		m.stoppers = append(m.stoppers, s)
		m.customResourcesCh = s.Start(context.Background())
		return listenCustomResources(m.customResourcesCh)

	case ViewDetail:
		ns, name := m.detail.Pod.Namespace, m.detail.Pod.Name
		ds := watch.NewSession(domain.KindPodDetail, domain.ScopeOf(ns), m.cfg.Watch.Workloads,
			m.fetchDetail(ns, name), detailPolicy(), m.auth, m.conn,
			watch.AlwaysEmit[podDetail](),
			watch.WithLogger[podDetail](m.log))
		ms := watch.NewSession(domain.KindPodMetrics, domain.ScopeOf(ns), m.cfg.Watch.Metrics,
			m.fetchMetrics(ns, name), metricsPolicy(), m.auth, m.conn,
			watch.AlwaysEmit[domain.PodMetricsRecord](),
			watch.WithLogger[domain.PodMetricsRecord](m.log))
		m.stoppers = append(m.stoppers, ds, ms)
		m.detailCh = ds.Start(context.Background())
		m.metricsCh = ms.Start(context.Background())
		return tea.Batch(listenDetail(m.detailCh), listenMetrics(m.metricsCh))
	}
	return nil
}

// --- Fetch closures ---

func (m *Model) fetchPods() watch.FetchFunc[domain.PodRecord] {
	scope := m.scope
	return func(ctx context.Context) ([]domain.PodRecord, error) {
		return m.client.ListPods(ctx, scope)
	}
}

func (m *Model) fetchSecrets() watch.FetchFunc[domain.SecretRecord] {
	scope := m.scope
	return func(ctx context.Context) ([]domain.SecretRecord, error) {
		return m.client.ListSecrets(ctx, scope)
	}
}

func (m *Model) fetchDeployments() watch.FetchFunc[domain.DeploymentRecord] {
	scope := m.scope
	return func(ctx context.Context) ([]domain.DeploymentRecord, error) {
		return m.client.ListDeployments(ctx, scope)
	}
}

// fetchCustomResources lists every configured custom resource type and
// concatenates the results into one collection for change detection.
func (m *Model) fetchCustomResources() watch.FetchFunc[domain.CustomResourceRecord] {
	scope := m.scope
	refs := make([]domain.ResourceRef, 0, len(m.cfg.CustomResources))
	for _, cr := range m.cfg.CustomResources {
		refs = append(refs, cr.Ref())
	}
	client := m.client
	return func(ctx context.Context) ([]domain.CustomResourceRecord, error) {
		var all []domain.CustomResourceRecord
		for _, ref := range refs {
			records, err := client.ListCustomResources(ctx, ref, scope)
			if err != nil {
				return nil, err
			}
			all = append(all, records...)
		}
		return all, nil
	}
}

func (m *Model) fetchDetail(namespace, name string) watch.FetchFunc[podDetail] {
	client := m.client
	return func(ctx context.Context) ([]podDetail, error) {
		pod, err := client.GetPod(ctx, namespace, name)
		if err != nil {
			return nil, err
		}
		events, err := client.ListPodEvents(ctx, namespace, name)
		if err != nil {
			return nil, err
		}
		env, err := client.ListContainerEnv(ctx, namespace, name)
		if err != nil {
			return nil, err
		}
		return []podDetail{{Pod: pod, Events: events, Env: env}}, nil
	}
}

func (m *Model) fetchMetrics(namespace, name string) watch.FetchFunc[domain.PodMetricsRecord] {
	client := m.client
	return func(ctx context.Context) ([]domain.PodMetricsRecord, error) {
		rec, err := client.GetPodMetrics(ctx, namespace, name)
		if err != nil {
			return nil, err
		}
		return []domain.PodMetricsRecord{rec}, nil
	}
}

// alwaysChanged satisfies the policy parameter for sessions that run
// with AlwaysEmit and never consult change detection.
type alwaysChanged[T any] struct{}

func (alwaysChanged[T]) Changed(old, cur []T) bool { return true }

func detailPolicy() watch.Policy[podDetail] { return alwaysChanged[podDetail]{} }

func metricsPolicy() watch.Policy[domain.PodMetricsRecord] {
	return alwaysChanged[domain.PodMetricsRecord]{}
}
