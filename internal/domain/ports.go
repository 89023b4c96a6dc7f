package domain

import "context"

// ClusterInfo provides metadata about the current cluster connection.
type ClusterInfo interface {
	GetContext() string
	GetServerURL() string
	Reconnect() error
	// RefreshCredentials re-reads the kubeconfig and swaps the credential
	// used by all fetchers. Called by the auth refresh coordinator only.
	RefreshCredentials() error
}

// PodRepository provides access to pod operations.
type PodRepository interface {
	ListPods(ctx context.Context, scope Scope) ([]PodRecord, error)
	GetPod(ctx context.Context, namespace, name string) (PodRecord, error)
	GetPodLogs(ctx context.Context, namespace, name, container string, tailLines int64, previous bool) (string, error)
	GetPodYAML(ctx context.Context, namespace, name string) (string, error)
	DeletePod(ctx context.Context, namespace, name string) error
	ListPodEvents(ctx context.Context, namespace, name string) ([]EventRecord, error)
	ListContainerEnv(ctx context.Context, namespace, name string) ([]EnvVarRecord, error)
}

// SecretRepository provides access to secret operations.
type SecretRepository interface {
	ListSecrets(ctx context.Context, scope Scope) ([]SecretRecord, error)
}

// DeploymentRepository provides access to deployment operations.
type DeploymentRepository interface {
	ListDeployments(ctx context.Context, scope Scope) ([]DeploymentRecord, error)
	ScaleDeployment(ctx context.Context, namespace, name string, replicas int32) error
}

// CustomResourceRepository lists instances of configured custom resources.
type CustomResourceRepository interface {
	ListCustomResources(ctx context.Context, ref ResourceRef, scope Scope) ([]CustomResourceRecord, error)
}

// MetricsRepository reads pod usage from the metrics API.
type MetricsRepository interface {
	GetPodMetrics(ctx context.Context, namespace, name string) (PodMetricsRecord, error)
}

// NamespaceRepository provides access to namespace operations.
type NamespaceRepository interface {
	ListNamespaces(ctx context.Context) ([]NamespaceRecord, error)
}

// Gateway is the primary port combining all cluster operations.
// The watch engine and the TUI depend on this interface, not on
// concrete implementations.
type Gateway interface {
	ClusterInfo
	PodRepository
	SecretRepository
	DeploymentRepository
	CustomResourceRepository
	MetricsRepository
	NamespaceRepository
}
