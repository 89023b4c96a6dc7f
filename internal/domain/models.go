package domain

import "time"

// PodRecord represents a Kubernetes pod for display in the TUI.
type PodRecord struct {
	Name       string
	Namespace  string
	Status     string
	Ready      string
	Restarts   int32
	Age        string
	Node       string
	Containers []ContainerRecord
	CreatedAt  time.Time
}

// Key returns the namespace/name composite key used by change detection.
func (p PodRecord) Key() string { return p.Namespace + "/" + p.Name }

// ContainerRecord describes one container inside a pod.
type ContainerRecord struct {
	Name  string
	Ready bool
	State string
}

// SecretRecord represents a Kubernetes secret for display in the TUI.
// Values are never fetched; only the key count is shown.
type SecretRecord struct {
	Name      string
	Namespace string
	Type      string
	Keys      int
	Age       string
	CreatedAt time.Time
}

func (s SecretRecord) Key() string { return s.Namespace + "/" + s.Name }

// DeploymentRecord represents a Kubernetes deployment for display in the TUI.
type DeploymentRecord struct {
	Name      string
	Namespace string
	Ready     string
	Replicas  int32
	Available int32
	Age       string
	Image     string
	CreatedAt time.Time
}

func (d DeploymentRecord) Key() string { return d.Namespace + "/" + d.Name }

// CustomResourceRecord represents an instance of a watched custom resource.
type CustomResourceRecord struct {
	Name       string
	Namespace  string
	Kind       string
	APIVersion string
	Status     string
	Age        string
	CreatedAt  time.Time
}

// Key returns namespace/name, or the bare name for cluster-scoped resources.
func (c CustomResourceRecord) Key() string {
	if c.Namespace == "" {
		return c.Name
	}
	return c.Namespace + "/" + c.Name
}

// EventRecord represents a Kubernetes event scoped to one object.
type EventRecord struct {
	Type      string
	Reason    string
	Message   string
	Object    string
	Namespace string
	Age       string
	Count     int32
	CreatedAt time.Time
}

func (e EventRecord) Key() string { return e.Namespace + "/" + e.Object + "/" + e.Reason }

// EnvVarRecord represents one environment variable of one container.
// Value holds the literal value, or Source names the reference
// (configMapKeyRef, secretKeyRef, fieldRef) when the value is indirect.
type EnvVarRecord struct {
	Container string
	Name      string
	Value     string
	Source    string
}

func (e EnvVarRecord) Key() string { return e.Container + "/" + e.Name }

// PodMetricsRecord represents CPU/memory usage of one pod as reported
// by the metrics API.
type PodMetricsRecord struct {
	Name       string
	Namespace  string
	CPU        string
	Memory     string
	Containers int
	Window     string
}

func (m PodMetricsRecord) Key() string { return m.Namespace + "/" + m.Name }

// NamespaceRecord represents a Kubernetes namespace for scope selection.
type NamespaceRecord struct {
	Name      string
	Status    string
	Age       string
	CreatedAt time.Time
}

func (n NamespaceRecord) Key() string { return n.Name }
