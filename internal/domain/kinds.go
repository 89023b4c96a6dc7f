package domain

import "strings"

// ResourceKind identifies which fetcher/detector pair a watch session uses.
type ResourceKind int

const (
	KindPod ResourceKind = iota
	KindSecret
	KindDeployment
	KindCustomResource
	KindPodEvent
	KindContainerEnv
	KindPodMetrics
	KindPodDetail
)

func (k ResourceKind) String() string {
	switch k {
	case KindPod:
		return "pod"
	case KindSecret:
		return "secret"
	case KindDeployment:
		return "deployment"
	case KindCustomResource:
		return "customresource"
	case KindPodEvent:
		return "podevent"
	case KindContainerEnv:
		return "containerenv"
	case KindPodMetrics:
		return "podmetrics"
	case KindPodDetail:
		return "poddetail"
	default:
		return "unknown"
	}
}

// Scope selects the namespaces a session watches. Immutable for the
// lifetime of the session.
type Scope struct {
	Namespaces []string
	All        bool
}

// ScopeAll watches every namespace the credential can see.
func ScopeAll() Scope {
	return Scope{All: true}
}

// ScopeOf watches an explicit set of namespaces.
func ScopeOf(namespaces ...string) Scope {
	return Scope{Namespaces: namespaces}
}

func (s Scope) String() string {
	if s.All {
		return "all"
	}
	return strings.Join(s.Namespaces, ",")
}

// ResourceRef names a custom resource type to watch (group/version/resource
// as served by the API, plus the display kind).
type ResourceRef struct {
	Group      string
	Version    string
	Resource   string
	Kind       string
	Namespaced bool
}

func (r ResourceRef) String() string {
	if r.Group == "" {
		return r.Version + "/" + r.Resource
	}
	return r.Group + "/" + r.Version + "/" + r.Resource
}
