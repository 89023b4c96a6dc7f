package tui

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jclamy/kubedeck/internal/config"
	"github.com/jclamy/kubedeck/internal/domain"
	"github.com/jclamy/kubedeck/internal/watch"
)

// ClientFactory creates a new Gateway (used for reconnection from the
// startup error screen).
type ClientFactory func() (domain.Gateway, error)

// --- Views ---

type View int

const (
	ViewNamespaces View = iota
	ViewPods
	ViewSecrets
	ViewDeployments
	ViewCustomResources
	ViewDetail
	ViewLogs
	ViewYAML
	ViewError // startup error screen
)

func (v View) String() string {
	switch v {
	case ViewNamespaces:
		return "NAMESPACES"
	case ViewPods:
		return "PODS"
	case ViewSecrets:
		return "SECRETS"
	case ViewDeployments:
		return "DEPLOYS"
	case ViewCustomResources:
		return "RESOURCES"
	case ViewDetail:
		return "DETAIL"
	case ViewLogs:
		return "LOGS"
	case ViewYAML:
		return "YAML"
	default:
		return ""
	}
}

// tabViews are the views reachable through the number keys and tab.
var tabViews = []View{ViewNamespaces, ViewPods, ViewSecrets, ViewDeployments, ViewCustomResources}

// --- Messages ---

type namespacesLoadedMsg struct{ items []domain.NamespaceRecord }
type logsLoadedMsg struct{ content string }
type yamlLoadedMsg struct{ content string }
type actionDoneMsg struct{ message string }
type apiErrMsg struct{ err error }
type retryDoneMsg struct{ err error }

// --- Model ---

type Model struct {
	client        domain.Gateway
	clientFactory ClientFactory
	cfg           *config.AppConfig
	log           *zap.Logger

	auth *watch.AuthCoordinator
	conn *watch.ConnCoordinator

	// Views
	view     View
	prevView View

	// Watch scope: which namespaces the list sessions cover.
	scope domain.Scope

	// Data
	namespaces      []domain.NamespaceRecord
	pods            []domain.PodRecord
	secrets         []domain.SecretRecord
	deployments     []domain.DeploymentRecord
	customResources []domain.CustomResourceRecord
	detail          podDetail
	metrics         domain.PodMetricsRecord
	hasMetrics      bool
	logState        logState
	yamlState       yamlViewState

	// Active sessions and their event channels
	stoppers          []watch.Stopper
	podsCh            <-chan watch.Event[domain.PodRecord]
	secretsCh         <-chan watch.Event[domain.SecretRecord]
	deploymentsCh     <-chan watch.Event[domain.DeploymentRecord]
	customResourcesCh <-chan watch.Event[domain.CustomResourceRecord]
	detailCh          <-chan watch.Event[podDetail]
	metricsCh         <-chan watch.Event[domain.PodMetricsRecord]

	// UI state
	cursor     int
	width      int
	height     int
	loading    bool
	toast      toast
	confirm    confirmState
	startupErr error // non-nil if launched with NewModelWithError

	// Connection-lost overlay
	disconnected bool
	connErr      error

	// Filter
	filter    textinput.Model
	filtering bool

	// Scale input
	scaleInput  textinput.Model
	scalingDep  string
	scalingNS   string
	scaleActive bool

	// Container selector (multi-container pods, logs)
	containerSelector bool
	containerChoices  []string
	containerCursor   int
	containerPod      domain.PodRecord

	// Sort
	sortState map[View]SortState
}

func NewModel(client domain.Gateway, factory ClientFactory, cfg *config.AppConfig, log *zap.Logger) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}

	conn := watch.NewConnCoordinator(client.Reconnect, log)
	auth := watch.NewAuthCoordinator(client.RefreshCredentials, conn, log)

	fi := textinput.New()
	fi.Placeholder = "filtre..."
	fi.CharLimit = 64
	fi.Width = 30

	si := textinput.New()
	si.Placeholder = "nombre de replicas"
	si.CharLimit = 4
	si.Width = 20

	return Model{
		client:        client,
		clientFactory: factory,
		cfg:           cfg,
		log:           log,
		auth:          auth,
		conn:          conn,
		view:          ViewPods,
		scope:         domain.ScopeAll(),
		filter:        fi,
		scaleInput:    si,
		confirm:       newConfirmState(),
		sortState:     make(map[View]SortState),
	}
}

func NewModelWithError(err error, factory ClientFactory) Model {
	return Model{
		view:          ViewError,
		startupErr:    err,
		clientFactory: factory,
		confirm:       newConfirmState(),
	}
}

// bootMsg kicks off the first sessions from Update, where the model
// returned to the runtime keeps the channels the sessions were started
// with.
type bootMsg struct{}

func (m Model) Init() tea.Cmd {
	if m.view == ViewError {
		return nil
	}
	return func() tea.Msg { return bootMsg{} }
}

// --- Update ---

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case bootMsg:
		m.loading = true
		cmd := m.startSessions()
		return m, cmd

	case podsStreamMsg:
		if msg.ch != m.podsCh {
			return m, nil // stale stream
		}
		if !msg.ok {
			return m.handleStreamClosed()
		}
		if msg.evt.Err != nil {
			return m.handleTickError(msg.evt.Err, listenPods(msg.ch))
		}
		m.pods = msg.evt.Records
		m.loading = false
		m.clampCursor()
		return m, listenPods(msg.ch)

	case secretsStreamMsg:
		if msg.ch != m.secretsCh {
			return m, nil
		}
		if !msg.ok {
			return m.handleStreamClosed()
		}
		if msg.evt.Err != nil {
			return m.handleTickError(msg.evt.Err, listenSecrets(msg.ch))
		}
		m.secrets = msg.evt.Records
		m.loading = false
		m.clampCursor()
		return m, listenSecrets(msg.ch)

	case deploymentsStreamMsg:
		if msg.ch != m.deploymentsCh {
			return m, nil
		}
		if !msg.ok {
			return m.handleStreamClosed()
		}
		if msg.evt.Err != nil {
			return m.handleTickError(msg.evt.Err, listenDeployments(msg.ch))
		}
		m.deployments = msg.evt.Records
		m.loading = false
		m.clampCursor()
		return m, listenDeployments(msg.ch)

	case customResourcesStreamMsg:
		if msg.ch != m.customResourcesCh {
			return m, nil
		}
		if !msg.ok {
			return m.handleStreamClosed()
		}
		if msg.evt.Err != nil {
			return m.handleTickError(msg.evt.Err, listenCustomResources(msg.ch))
		}
		m.customResources = msg.evt.Records
		m.loading = false
		m.clampCursor()
		return m, listenCustomResources(msg.ch)

	case detailStreamMsg:
		if msg.ch != m.detailCh {
			return m, nil
		}
		if !msg.ok {
			return m.handleStreamClosed()
		}
		if msg.evt.Err != nil {
			return m.handleTickError(msg.evt.Err, listenDetail(msg.ch))
		}
		if len(msg.evt.Records) > 0 {
			m.detail = msg.evt.Records[0]
		}
		m.loading = false
		return m, listenDetail(msg.ch)

	case metricsStreamMsg:
		if msg.ch != m.metricsCh {
			return m, nil
		}
		if !msg.ok {
			return m.handleStreamClosed()
		}
		if msg.evt.Err != nil {
			// The metrics API is frequently absent; show the panel
			// without usage rather than toasting every ten seconds.
			m.hasMetrics = false
			return m, listenMetrics(msg.ch)
		}
		if len(msg.evt.Records) > 0 {
			m.metrics = msg.evt.Records[0]
			m.hasMetrics = true
		}
		return m, listenMetrics(msg.ch)

	case namespacesLoadedMsg:
		m.namespaces = msg.items
		m.loading = false
		m.cursor = 0
		return m, nil

	case logsLoadedMsg:
		m.logState.setContent(msg.content)
		m.loading = false
		return m, nil

	case yamlLoadedMsg:
		m.yamlState.setContent(msg.content)
		m.loading = false
		return m, nil

	case actionDoneMsg:
		m.toast = newToast(msg.message, toastSuccess)
		m.loading = false
		return m, scheduleToastClear()

	case apiErrMsg:
		return m.handleAPIError(msg.err)

	case retryDoneMsg:
		if msg.err != nil {
			m.connErr = msg.err
			m.disconnected = true
			m.loading = false
			return m, nil
		}
		m.disconnected = false
		m.connErr = nil
		m.loading = true
		cmd := m.startSessions()
		if m.view == ViewNamespaces {
			return m, tea.Batch(cmd, m.loadNamespaces())
		}
		return m, cmd

	case toastExpiredMsg:
		m.toast = toast{}
		return m, nil
	}

	return m, nil
}

// handleStreamClosed fires when a session channel closes underneath the
// model. If the connection coordinator is showing an error, every
// session was just mass-cancelled: switch to the disconnected overlay.
// Otherwise the model stopped the session itself and nothing happens.
func (m Model) handleStreamClosed() (tea.Model, tea.Cmd) {
	if m.conn.Showing() {
		m.stopSessions()
		m.disconnected = true
		m.connErr = m.conn.Current()
		m.loading = false
	}
	return m, nil
}

// handleTickError surfaces a transient error without stopping the
// stream; the session keeps polling.
func (m Model) handleTickError(err error, rearm tea.Cmd) (tea.Model, tea.Cmd) {
	m.toast = newToast(errorMessage(err), toastError)
	m.loading = false
	return m, tea.Batch(rearm, scheduleToastClear())
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Startup error screen: only q/r
	if m.view == ViewError {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			if m.clientFactory == nil {
				return m, nil
			}
			newClient, err := m.clientFactory()
			if err != nil {
				m.startupErr = err
				return m, nil
			}
			fresh := NewModel(newClient, m.clientFactory, m.cfg, m.log)
			fresh.width = m.width
			fresh.height = m.height
			fresh.loading = true
			cmd := fresh.startSessions()
			return fresh, cmd
		}
		return m, nil
	}

	// Disconnected overlay: r retries, q quits, everything else is absorbed.
	if m.disconnected {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.loading = true
			conn := m.conn
			return m, func() tea.Msg {
				return retryDoneMsg{err: conn.Retry()}
			}
		}
		return m, nil
	}

	// Confirm dialog captures all input
	if m.confirm.isActive() {
		cmd, handled := m.confirm.update(msg)
		if handled {
			return m, cmd
		}
		return m, nil
	}

	// Container selector captures all input
	if m.containerSelector {
		return m.handleContainerSelector(msg)
	}

	// Scale input captures all input
	if m.scaleActive {
		return m.handleScaleInput(msg)
	}

	// Filter mode
	if m.filtering {
		return m.handleFilterInput(msg)
	}

	// Global keys
	switch {
	case key.Matches(msg, keys.Quit):
		if m.view == ViewLogs || m.view == ViewYAML || m.view == ViewDetail {
			return m.popView()
		}
		m.stopSessions()
		return m, tea.Quit

	case key.Matches(msg, keys.Escape):
		if m.view == ViewLogs || m.view == ViewYAML || m.view == ViewDetail {
			return m.popView()
		}
		m.toast = toast{}
		return m, nil

	// Tab switching
	case key.Matches(msg, keys.Tab1):
		return m.switchView(ViewNamespaces)
	case key.Matches(msg, keys.Tab2):
		return m.switchView(ViewPods)
	case key.Matches(msg, keys.Tab3):
		return m.switchView(ViewSecrets)
	case key.Matches(msg, keys.Tab4):
		return m.switchView(ViewDeployments)
	case key.Matches(msg, keys.Tab5):
		return m.switchView(ViewCustomResources)
	case key.Matches(msg, keys.TabNext):
		for i, v := range tabViews {
			if v == m.view {
				return m.switchView(tabViews[(i+1)%len(tabViews)])
			}
		}
		return m.switchView(ViewPods)

	// Filter
	case key.Matches(msg, keys.Filter):
		if m.view != ViewLogs && m.view != ViewYAML && m.view != ViewDetail {
			m.filtering = true
			m.filter.SetValue("")
			m.filter.Focus()
			return m, textinput.Blink
		}

	// Refresh: restart the sessions of the current view
	case key.Matches(msg, keys.Refresh):
		m.loading = true
		cmd := m.startSessions()
		if m.view == ViewNamespaces {
			return m, tea.Batch(cmd, m.loadNamespaces())
		}
		return m, cmd

	// Navigation
	case key.Matches(msg, keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, keys.Top):
		if m.view == ViewLogs {
			m.logState.offset = 0
		} else if m.view == ViewYAML {
			m.yamlState.offset = 0
		} else {
			m.cursor = 0
		}
	case key.Matches(msg, keys.Bottom):
		if m.view == ViewLogs {
			m.logState.jumpToBottom(m.contentHeight())
		} else if m.view == ViewYAML {
			m.yamlState.jumpToBottom(m.contentHeight())
		} else {
			m.cursor = max(m.listLen()-1, 0)
		}
	case key.Matches(msg, keys.PageDown):
		m.moveCursor(20)
	case key.Matches(msg, keys.PageUp):
		m.moveCursor(-20)

	// Enter
	case key.Matches(msg, keys.Enter):
		return m.handleEnter()

	// Actions
	case key.Matches(msg, keys.Logs):
		if m.view == ViewPods {
			return m.handleOpenLogs()
		}
		if m.view == ViewDetail {
			return m.openLogsForContainer(m.detail.Pod, "")
		}
	case key.Matches(msg, keys.Delete):
		if m.view == ViewPods {
			return m.handleDeletePod()
		}
		if m.view == ViewDetail {
			return m.confirmDeletePod(m.detail.Pod)
		}
	case key.Matches(msg, keys.ScaleUp):
		if m.view == ViewDeployments {
			return m.handleScaleDelta(1)
		}
	case key.Matches(msg, keys.ScaleDn):
		if m.view == ViewDeployments {
			return m.handleScaleDelta(-1)
		}
	case key.Matches(msg, keys.ScaleSet):
		if m.view == ViewDeployments {
			return m.activateScaleInput()
		}
	case key.Matches(msg, keys.Previous):
		if m.view == ViewLogs {
			return m.togglePreviousLogs()
		}
	case key.Matches(msg, keys.Wrap):
		if m.view == ViewLogs {
			m.logState.wrap = !m.logState.wrap
			return m, nil
		}
	case key.Matches(msg, keys.YAML):
		if m.view == ViewPods {
			return m.handleYAML()
		}
		if m.view == ViewDetail {
			return m.openYAML(m.detail.Pod)
		}
	case key.Matches(msg, keys.Sort):
		if m.view == ViewPods || m.view == ViewDeployments || m.view == ViewSecrets {
			return m.cycleSort()
		}
	case key.Matches(msg, keys.Copy):
		if m.view == ViewPods {
			return m.copyPodName()
		}
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	switch m.view {
	case ViewLogs:
		if delta > 0 {
			m.logState.scrollDown(delta, m.contentHeight())
		} else {
			m.logState.scrollUp(-delta)
		}
	case ViewYAML:
		if delta > 0 {
			m.yamlState.scrollDown(delta, m.contentHeight())
		} else {
			m.yamlState.scrollUp(-delta)
		}
	default:
		m.cursor += delta
		m.clampCursor()
	}
}

func (m *Model) clampCursor() {
	maxIdx := m.listLen() - 1
	if maxIdx < 0 {
		maxIdx = 0
	}
	if m.cursor > maxIdx {
		m.cursor = maxIdx
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// --- Key Handlers ---

func (m Model) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.filtering = false
		m.filter.Blur()
		if msg.String() == "esc" {
			m.filter.SetValue("")
		}
		m.cursor = 0
		return m, nil
	default:
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.cursor = 0
		return m, cmd
	}
}

func (m Model) handleScaleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.scaleActive = false
		m.scaleInput.Blur()
		m.scaleInput.SetValue("")
		return m, nil
	case "enter":
		val := strings.TrimSpace(m.scaleInput.Value())
		replicas, err := strconv.Atoi(val)
		if err != nil || replicas < 0 {
			m.toast = newToast("Nombre invalide", toastError)
			m.scaleActive = false
			m.scaleInput.Blur()
			return m, scheduleToastClear()
		}
		m.scaleActive = false
		m.scaleInput.Blur()
		depName := m.scalingDep
		depNS := m.scalingNS
		r := int32(replicas)
		client := m.client

		if r > 10 {
			isProd := config.IsProdNamespace(depNS, m.cfg.ProdPatterns)
			m.confirm.activate(
				fmt.Sprintf("Scale %s à %d replicas", depName, r),
				depName, depNS, isProd,
				func() tea.Msg {
					if err := client.ScaleDeployment(context.Background(), depNS, depName, r); err != nil {
						return apiErrMsg{err}
					}
					return actionDoneMsg{fmt.Sprintf("Scaled %s à %d", depName, r)}
				},
			)
			return m, nil
		}

		m.loading = true
		return m, func() tea.Msg {
			if err := client.ScaleDeployment(context.Background(), depNS, depName, r); err != nil {
				return apiErrMsg{err}
			}
			return actionDoneMsg{fmt.Sprintf("Scaled %s à %d", depName, r)}
		}
	default:
		var cmd tea.Cmd
		m.scaleInput, cmd = m.scaleInput.Update(msg)
		return m, cmd
	}
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewNamespaces:
		items := m.filteredNamespaces()
		if m.cursor < len(items) {
			m.scope = domain.ScopeOf(items[m.cursor].Name)
			m.filter.SetValue("")
			return m.switchView(ViewPods)
		}
	case ViewPods:
		items := m.filteredPods()
		if m.cursor < len(items) {
			return m.openDetail(items[m.cursor])
		}
	}
	return m, nil
}

func (m Model) openDetail(pod domain.PodRecord) (tea.Model, tea.Cmd) {
	m.stopSessions()
	m.prevView = m.view
	m.view = ViewDetail
	m.detail = podDetail{Pod: pod}
	m.metrics = domain.PodMetricsRecord{}
	m.hasMetrics = false
	m.loading = true
	cmd := m.startSessions()
	return m, cmd
}

func (m Model) popView() (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewLogs:
		m.view = m.prevViewOr(ViewPods)
		m.logState = logState{wrap: m.logState.wrap}
	case ViewYAML:
		m.view = m.prevViewOr(ViewPods)
		m.yamlState = yamlViewState{}
	case ViewDetail:
		m.view = ViewPods
	default:
		return m, nil
	}
	m.stopSessions()
	m.loading = true
	cmd := m.startSessions()
	return m, cmd
}

func (m Model) prevViewOr(fallback View) View {
	if m.prevView == ViewLogs || m.prevView == ViewYAML {
		return fallback
	}
	return m.prevView
}

func (m Model) handleDeletePod() (tea.Model, tea.Cmd) {
	items := m.filteredPods()
	if m.cursor >= len(items) {
		return m, nil
	}
	return m.confirmDeletePod(items[m.cursor])
}

func (m Model) confirmDeletePod(pod domain.PodRecord) (tea.Model, tea.Cmd) {
	if config.IsReadonlyNamespace(pod.Namespace, m.cfg.ReadonlyNamespaces) {
		m.toast = newToast("Namespace en lecture seule — suppression interdite", toastError)
		return m, scheduleToastClear()
	}
	isProd := config.IsProdNamespace(pod.Namespace, m.cfg.ProdPatterns)
	client := m.client
	ns, name := pod.Namespace, pod.Name

	m.confirm.activate("Supprimer pod", name, ns, isProd, func() tea.Msg {
		if err := client.DeletePod(context.Background(), ns, name); err != nil {
			return apiErrMsg{err}
		}
		return actionDoneMsg{fmt.Sprintf("Pod '%s' supprimé", name)}
	})
	return m, nil
}

func (m Model) handleScaleDelta(delta int32) (tea.Model, tea.Cmd) {
	items := m.filteredDeployments()
	if m.cursor >= len(items) {
		return m, nil
	}
	dep := items[m.cursor]
	if config.IsReadonlyNamespace(dep.Namespace, m.cfg.ReadonlyNamespaces) {
		m.toast = newToast("Namespace en lecture seule — scale interdit", toastError)
		return m, scheduleToastClear()
	}
	newReplicas := dep.Replicas + delta
	if newReplicas < 0 {
		newReplicas = 0
	}
	client := m.client
	ns, name := dep.Namespace, dep.Name
	m.loading = true
	return m, func() tea.Msg {
		if err := client.ScaleDeployment(context.Background(), ns, name, newReplicas); err != nil {
			return apiErrMsg{err}
		}
		return actionDoneMsg{fmt.Sprintf("Scaled %s à %d", name, newReplicas)}
	}
}

func (m Model) activateScaleInput() (tea.Model, tea.Cmd) {
	items := m.filteredDeployments()
	if m.cursor >= len(items) {
		return m, nil
	}
	m.scalingDep = items[m.cursor].Name
	m.scalingNS = items[m.cursor].Namespace
	m.scaleActive = true
	m.scaleInput.SetValue("")
	m.scaleInput.Focus()
	return m, textinput.Blink
}

func (m Model) handleOpenLogs() (tea.Model, tea.Cmd) {
	items := m.filteredPods()
	if m.cursor >= len(items) {
		return m, nil
	}
	pod := items[m.cursor]
	if len(pod.Containers) > 1 {
		m.containerPod = pod
		m.containerChoices = make([]string, len(pod.Containers))
		for i, c := range pod.Containers {
			m.containerChoices[i] = c.Name
		}
		m.containerCursor = 0
		m.containerSelector = true
		return m, nil
	}
	return m.openLogsForContainer(pod, "")
}

func (m Model) openLogsForContainer(pod domain.PodRecord, container string) (Model, tea.Cmd) {
	m.stopSessions()
	m.prevView = m.view
	m.view = ViewLogs
	m.loading = true
	m.logState = logState{podName: pod.Name, namespace: pod.Namespace, containerName: container, wrap: m.logState.wrap}
	client := m.client
	return m, func() tea.Msg {
		content, err := client.GetPodLogs(context.Background(), pod.Namespace, pod.Name, container, 200, false)
		if err != nil {
			return apiErrMsg{err}
		}
		return logsLoadedMsg{content}
	}
}

func (m Model) handleContainerSelector(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.containerSelector = false
		return m, nil
	case key.Matches(msg, keys.Down):
		m.containerCursor = min(m.containerCursor+1, len(m.containerChoices)-1)
		return m, nil
	case key.Matches(msg, keys.Up):
		m.containerCursor = max(m.containerCursor-1, 0)
		return m, nil
	case key.Matches(msg, keys.Enter):
		container := m.containerChoices[m.containerCursor]
		m.containerSelector = false
		return m.openLogsForContainer(m.containerPod, container)
	}
	return m, nil
}

func (m Model) togglePreviousLogs() (tea.Model, tea.Cmd) {
	newPrevious := !m.logState.previous
	ns := m.logState.namespace
	podName := m.logState.podName
	container := m.logState.containerName
	m.loading = true
	m.logState.previous = newPrevious
	client := m.client
	return m, func() tea.Msg {
		content, err := client.GetPodLogs(context.Background(), ns, podName, container, 200, newPrevious)
		if err != nil {
			return apiErrMsg{err}
		}
		return logsLoadedMsg{content}
	}
}

func (m Model) handleYAML() (tea.Model, tea.Cmd) {
	items := m.filteredPods()
	if m.cursor >= len(items) {
		return m, nil
	}
	return m.openYAML(items[m.cursor])
}

func (m Model) openYAML(pod domain.PodRecord) (tea.Model, tea.Cmd) {
	m.stopSessions()
	m.prevView = m.view
	m.view = ViewYAML
	m.loading = true
	m.yamlState = yamlViewState{resourceName: pod.Name, resourceType: "pod"}
	client := m.client
	return m, func() tea.Msg {
		content, err := client.GetPodYAML(context.Background(), pod.Namespace, pod.Name)
		if err != nil {
			return apiErrMsg{err}
		}
		return yamlLoadedMsg{content}
	}
}

func (m Model) cycleSort() (tea.Model, tea.Cmd) {
	state := m.sortState[m.view]
	switch m.view {
	case ViewPods:
		state.Column = NextPodSort(state.Column)
	case ViewDeployments:
		state.Column = NextDeploymentSort(state.Column)
	case ViewSecrets:
		state.Column = NextSecretSort(state.Column)
	}
	state.Ascending = true
	if m.sortState == nil {
		m.sortState = make(map[View]SortState)
	}
	m.sortState[m.view] = state
	m.cursor = 0
	return m, nil
}

func (m Model) copyPodName() (tea.Model, tea.Cmd) {
	items := m.filteredPods()
	if m.cursor >= len(items) {
		return m, nil
	}
	// Copy to clipboard via OSC52 escape sequence (works in most modern terminals)
	podName := items[m.cursor].Name
	m.toast = newToast(fmt.Sprintf("Copié: %s", podName), toastSuccess)
	return m, tea.Batch(
		scheduleToastClear(),
		tea.Printf("\033]52;c;%s\a", encodeBase64(podName)),
	)
}

func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	m.stopSessions()
	m.view = v
	m.cursor = 0
	m.filter.SetValue("")
	m.loading = true
	cmd := m.startSessions()
	if v == ViewNamespaces {
		return m, tea.Batch(cmd, m.loadNamespaces())
	}
	return m, cmd
}

// --- Error handling ---

func errorMessage(err error) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func (m Model) handleAPIError(err error) (tea.Model, tea.Cmd) {
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		m.toast = newToast(err.Error(), toastError)
		m.loading = false
		return m, scheduleToastClear()
	}

	switch apiErr.Type {
	case domain.ErrForbidden:
		m.toast = newToast("Accès refusé : "+apiErr.Message, toastError)
		m.loading = false
		return m, scheduleToastClear()

	case domain.ErrConflict:
		m.toast = newToast("Conflit : la ressource a été modifiée. Réessayez.", toastError)
		m.loading = false
		return m, scheduleToastClear()

	case domain.ErrRateLimited:
		m.toast = newToast("Trop de requêtes. Pause 2s...", toastError)
		m.loading = false
		return m, scheduleToastClear()

	default:
		if domain.IsConnectionLost(err) {
			m.stopSessions()
			m.disconnected = true
			m.connErr = err
			m.loading = false
			return m, nil
		}
		m.toast = newToast(apiErr.Message, toastError)
		m.loading = false
		return m, scheduleToastClear()
	}
}

// --- Data loading (one-shot, outside the watch engine) ---

// loadNamespaces is a plain fetch: the namespace list is a navigation
// step for scope selection, not a live view.
func (m Model) loadNamespaces() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		items, err := client.ListNamespaces(context.Background())
		if err != nil {
			return apiErrMsg{err}
		}
		return namespacesLoadedMsg{items}
	}
}

// --- Filtering ---

func (m Model) filterText() string {
	return strings.ToLower(m.filter.Value())
}

func (m Model) filteredNamespaces() []domain.NamespaceRecord {
	f := m.filterText()
	if f == "" {
		return m.namespaces
	}
	var result []domain.NamespaceRecord
	for _, ns := range m.namespaces {
		if strings.Contains(strings.ToLower(ns.Name), f) {
			result = append(result, ns)
		}
	}
	return result
}

func (m Model) filteredPods() []domain.PodRecord {
	f := m.filterText()
	var result []domain.PodRecord
	if f == "" {
		result = m.pods
	} else {
		for _, p := range m.pods {
			if strings.Contains(strings.ToLower(p.Name), f) ||
				strings.Contains(strings.ToLower(p.Status), f) {
				result = append(result, p)
			}
		}
	}
	return SortPods(result, m.sortState[ViewPods])
}

func (m Model) filteredSecrets() []domain.SecretRecord {
	f := m.filterText()
	var result []domain.SecretRecord
	if f == "" {
		result = m.secrets
	} else {
		for _, s := range m.secrets {
			if strings.Contains(strings.ToLower(s.Name), f) ||
				strings.Contains(strings.ToLower(s.Type), f) {
				result = append(result, s)
			}
		}
	}
	return SortSecrets(result, m.sortState[ViewSecrets])
}

func (m Model) filteredDeployments() []domain.DeploymentRecord {
	f := m.filterText()
	var result []domain.DeploymentRecord
	if f == "" {
		result = m.deployments
	} else {
		for _, d := range m.deployments {
			if strings.Contains(strings.ToLower(d.Name), f) {
				result = append(result, d)
			}
		}
	}
	return SortDeployments(result, m.sortState[ViewDeployments])
}

func (m Model) filteredCustomResources() []domain.CustomResourceRecord {
	f := m.filterText()
	if f == "" {
		return m.customResources
	}
	var result []domain.CustomResourceRecord
	for _, c := range m.customResources {
		if strings.Contains(strings.ToLower(c.Name), f) ||
			strings.Contains(strings.ToLower(c.Kind), f) {
			result = append(result, c)
		}
	}
	return result
}

func (m Model) listLen() int {
	switch m.view {
	case ViewNamespaces:
		return len(m.filteredNamespaces())
	case ViewPods:
		return len(m.filteredPods())
	case ViewSecrets:
		return len(m.filteredSecrets())
	case ViewDeployments:
		return len(m.filteredDeployments())
	case ViewCustomResources:
		return len(m.filteredCustomResources())
	default:
		return 0
	}
}

func (m Model) contentHeight() int {
	// header(1) + tabs(1) + blank(1) + col_header(1) + status_bar(1) = 5 lines overhead
	ch := m.height - 6
	if ch < 1 {
		return 1
	}
	return ch
}

// --- View ---

func (m Model) View() string {
	if m.width == 0 {
		return "Chargement..."
	}

	// Startup error screen
	if m.view == ViewError {
		return m.renderErrorScreen()
	}

	var b strings.Builder

	// Context bar
	b.WriteString(m.renderContextBar())
	b.WriteString("\n")

	// Tabs
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	// Disconnected overlay replaces the content area
	if m.disconnected {
		b.WriteString(m.renderDisconnected())
	} else if m.confirm.isActive() {
		b.WriteString(m.confirm.view(m.width))
	} else if m.containerSelector {
		b.WriteString(renderContainerSelector(m.containerPod, m.containerChoices, m.containerCursor))
	} else if m.scaleActive {
		b.WriteString(fmt.Sprintf("\n  Scale %s - Replicas: %s\n", m.scalingDep, m.scaleInput.View()))
	} else if m.loading {
		b.WriteString("\n  Chargement...\n")
	} else {
		b.WriteString(m.renderContent())
	}

	// Filter bar
	if m.filtering {
		b.WriteString(fmt.Sprintf("  /%s", m.filter.View()))
		b.WriteString("\n")
	}

	// Fill remaining space
	lines := strings.Count(b.String(), "\n")
	for i := lines; i < m.height-2; i++ {
		b.WriteString("\n")
	}

	// Toast
	if m.toast.isActive() {
		b.WriteString(m.toast.render())
		b.WriteString("\n")
	}

	// Status bar
	b.WriteString(m.renderStatusBar())

	return b.String()
}

func (m Model) scopeLabel() string {
	if m.scope.All {
		return "tous"
	}
	return m.scope.String()
}

func (m Model) renderContextBar() string {
	title := titleStyle.Render("KUBEDECK")
	if m.client == nil {
		return title
	}
	ctx := contextStyle.Render(m.client.GetContext())
	ns := namespaceStyle.Render(m.scopeLabel())
	return fmt.Sprintf(" %s  ctx:%s  ns:%s", title, ctx, ns)
}

func (m Model) renderTabs() string {
	tabs := []struct {
		view  View
		key   string
		label string
	}{
		{ViewNamespaces, "1", "Namespaces"},
		{ViewPods, "2", "Pods"},
		{ViewSecrets, "3", "Secrets"},
		{ViewDeployments, "4", "Deploys"},
		{ViewCustomResources, "5", "Resources"},
	}

	var parts []string
	for _, t := range tabs {
		label := fmt.Sprintf("[%s] %s", t.key, t.label)
		active := m.view == t.view ||
			((m.view == ViewLogs || m.view == ViewYAML || m.view == ViewDetail) && m.prevView == t.view)
		if active {
			parts = append(parts, tabActiveStyle.Render(label))
		} else {
			parts = append(parts, tabInactiveStyle.Render(label))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderContent() string {
	ch := m.contentHeight()
	switch m.view {
	case ViewNamespaces:
		isProd := func(ns string) bool { return config.IsProdNamespace(ns, m.cfg.ProdPatterns) }
		return renderNamespaceList(m.filteredNamespaces(), m.cursor, m.width, ch, m.scopeLabel(), isProd)
	case ViewPods:
		return renderPodList(m.filteredPods(), m.cursor, m.width, ch, m.sortState[ViewPods])
	case ViewSecrets:
		return renderSecretList(m.filteredSecrets(), m.cursor, m.width, ch, m.sortState[ViewSecrets])
	case ViewDeployments:
		return renderDeploymentList(m.filteredDeployments(), m.cursor, m.width, ch, m.sortState[ViewDeployments])
	case ViewCustomResources:
		return renderCustomResourceList(m.filteredCustomResources(), m.cursor, m.width, ch, len(m.cfg.CustomResources))
	case ViewDetail:
		return renderDetail(m.detail, m.metrics, m.hasMetrics, m.width, ch)
	case ViewLogs:
		return renderLogs(&m.logState, m.width, ch)
	case ViewYAML:
		return renderYAMLView(&m.yamlState, m.width, ch)
	default:
		return ""
	}
}

func (m Model) renderDisconnected() string {
	msg := "Connexion au cluster perdue"
	if m.connErr != nil {
		msg = errorMessage(m.connErr)
	}
	box := fmt.Sprintf("Connexion perdue\n\n%s\n\n[r] Reconnecter  [q] Quitter", msg)
	return "\n" + errorBoxStyle.Width(min(m.width-4, 70)).Render(box) + "\n"
}

func (m Model) renderStatusBar() string {
	var helpText string
	switch m.view {
	case ViewNamespaces:
		helpText = namespaceHelpKeys()
	case ViewPods:
		helpText = podHelpKeys()
	case ViewSecrets:
		helpText = secretHelpKeys()
	case ViewDeployments:
		helpText = deploymentHelpKeys()
	case ViewCustomResources:
		helpText = customResourceHelpKeys()
	case ViewDetail:
		helpText = detailHelpKeys()
	case ViewLogs:
		helpText = logHelpKeys(m.logState.previous, m.logState.wrap)
	case ViewYAML:
		helpText = yamlHelpKeys()
	}

	liveIndicator := ""
	if len(m.stoppers) > 0 && !m.disconnected {
		liveIndicator = liveStyle.Render(" ● LIVE")
	}
	var itemInfo string
	switch m.view {
	case ViewLogs:
		itemInfo = fmt.Sprintf("%d lignes", len(m.logState.lines))
	case ViewYAML:
		itemInfo = fmt.Sprintf("%d lignes", len(m.yamlState.lines))
	case ViewDetail:
		itemInfo = m.detail.Pod.Name
	default:
		itemInfo = fmt.Sprintf("%d items", m.listLen())
	}
	left := fmt.Sprintf(" %s | %s | %s%s", m.view.String(), m.scopeLabel(), itemInfo, liveIndicator)
	return statusBarStyle.Width(m.width).Render(left + "  " + helpText)
}

func (m Model) renderErrorScreen() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(errorScreenStyle.Render("KUBEDECK - Erreur de connexion"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s\n", m.startupErr.Error()))
	b.WriteString("\n")
	b.WriteString("  [r] Réessayer  [q] Quitter\n")

	lines := strings.Count(b.String(), "\n")
	for i := lines; i < m.height; i++ {
		b.WriteString("\n")
	}
	return b.String()
}

// --- Helpers ---

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return string(runes[:1])
	}
	return string(runes[:maxLen-1]) + "…"
}

func encodeBase64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}
