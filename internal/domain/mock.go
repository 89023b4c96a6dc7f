package domain

import "context"

// MockGateway implements Gateway for testing.
type MockGateway struct {
	ContextVal   string
	ServerURLVal string

	Pods            []PodRecord
	Secrets         []SecretRecord
	Deployments     []DeploymentRecord
	CustomResources []CustomResourceRecord
	Events          []EventRecord
	EnvVars         []EnvVarRecord
	Metrics         PodMetricsRecord
	Namespaces      []NamespaceRecord
	LogContent      string
	YAMLContent     string

	// Error injection
	ListPodsErr            error
	GetPodErr              error
	ListSecretsErr         error
	ListDeploymentsErr     error
	ListCustomResourcesErr error
	ListPodEventsErr       error
	ListContainerEnvErr    error
	GetPodMetricsErr       error
	ListNamespacesErr      error
	GetPodLogsErr          error
	DeletePodErr           error
	ScaleErr               error
	ReconnectErr           error
	RefreshErr             error

	// Call tracking
	DeletedPod     string
	ScaledDep      string
	ScaledTo       int32
	ReconnectCalls int
	RefreshCalls   int

	ListPodsCalls        int
	ListSecretsCalls     int
	ListDeploymentsCalls int
	ListNamespacesCalls  int
}

// Compile-time check.
var _ Gateway = (*MockGateway)(nil)

func (m *MockGateway) GetContext() string   { return m.ContextVal }
func (m *MockGateway) GetServerURL() string { return m.ServerURLVal }

func (m *MockGateway) Reconnect() error {
	m.ReconnectCalls++
	return m.ReconnectErr
}

func (m *MockGateway) RefreshCredentials() error {
	m.RefreshCalls++
	return m.RefreshErr
}

func (m *MockGateway) ListPods(_ context.Context, _ Scope) ([]PodRecord, error) {
	m.ListPodsCalls++
	if m.ListPodsErr != nil {
		return nil, m.ListPodsErr
	}
	return m.Pods, nil
}

func (m *MockGateway) GetPod(_ context.Context, _, name string) (PodRecord, error) {
	if m.GetPodErr != nil {
		return PodRecord{}, m.GetPodErr
	}
	for _, p := range m.Pods {
		if p.Name == name {
			return p, nil
		}
	}
	return PodRecord{}, &APIError{Type: ErrNotFound, Message: "pod introuvable: " + name}
}

func (m *MockGateway) GetPodLogs(_ context.Context, _, _, _ string, _ int64, _ bool) (string, error) {
	if m.GetPodLogsErr != nil {
		return "", m.GetPodLogsErr
	}
	return m.LogContent, nil
}

func (m *MockGateway) GetPodYAML(_ context.Context, _, _ string) (string, error) {
	return m.YAMLContent, nil
}

func (m *MockGateway) DeletePod(_ context.Context, _, name string) error {
	m.DeletedPod = name
	return m.DeletePodErr
}

func (m *MockGateway) ListPodEvents(_ context.Context, _, _ string) ([]EventRecord, error) {
	if m.ListPodEventsErr != nil {
		return nil, m.ListPodEventsErr
	}
	return m.Events, nil
}

func (m *MockGateway) ListContainerEnv(_ context.Context, _, _ string) ([]EnvVarRecord, error) {
	if m.ListContainerEnvErr != nil {
		return nil, m.ListContainerEnvErr
	}
	return m.EnvVars, nil
}

func (m *MockGateway) ListSecrets(_ context.Context, _ Scope) ([]SecretRecord, error) {
	m.ListSecretsCalls++
	if m.ListSecretsErr != nil {
		return nil, m.ListSecretsErr
	}
	return m.Secrets, nil
}

func (m *MockGateway) ListDeployments(_ context.Context, _ Scope) ([]DeploymentRecord, error) {
	m.ListDeploymentsCalls++
	if m.ListDeploymentsErr != nil {
		return nil, m.ListDeploymentsErr
	}
	return m.Deployments, nil
}

func (m *MockGateway) ScaleDeployment(_ context.Context, _, name string, replicas int32) error {
	m.ScaledDep = name
	m.ScaledTo = replicas
	return m.ScaleErr
}

func (m *MockGateway) ListCustomResources(_ context.Context, _ ResourceRef, _ Scope) ([]CustomResourceRecord, error) {
	if m.ListCustomResourcesErr != nil {
		return nil, m.ListCustomResourcesErr
	}
	return m.CustomResources, nil
}

func (m *MockGateway) GetPodMetrics(_ context.Context, _, _ string) (PodMetricsRecord, error) {
	if m.GetPodMetricsErr != nil {
		return PodMetricsRecord{}, m.GetPodMetricsErr
	}
	return m.Metrics, nil
}

func (m *MockGateway) ListNamespaces(_ context.Context) ([]NamespaceRecord, error) {
	m.ListNamespacesCalls++
	if m.ListNamespacesErr != nil {
		return nil, m.ListNamespacesErr
	}
	return m.Namespaces, nil
}
