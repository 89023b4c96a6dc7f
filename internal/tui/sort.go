package tui

import (
	"sort"
	"strings"

	"github.com/jclamy/kubedeck/internal/domain"
)

// SortColumn identifies a column for sorting.
type SortColumn int

const (
	SortNone SortColumn = iota
	// Pods
	SortPodName
	SortPodStatus
	SortPodRestarts
	SortPodAge
	// Deployments
	SortDepName
	SortDepReady
	SortDepAge
	// Secrets
	SortSecretName
	SortSecretType
	SortSecretAge
)

var sortLabels = map[SortColumn]string{
	SortPodName:     "NAME",
	SortDepName:     "NAME",
	SortSecretName:  "NAME",
	SortPodStatus:   "STATUS",
	SortPodRestarts: "RESTARTS",
	SortPodAge:      "AGE",
	SortDepAge:      "AGE",
	SortSecretAge:   "AGE",
	SortDepReady:    "READY",
	SortSecretType:  "TYPE",
}

// Column cycle per view, in the order `t` steps through them. SortNone
// closes each cycle.
var (
	podSortCycle    = []SortColumn{SortNone, SortPodName, SortPodStatus, SortPodRestarts, SortPodAge}
	depSortCycle    = []SortColumn{SortNone, SortDepName, SortDepReady, SortDepAge}
	secretSortCycle = []SortColumn{SortNone, SortSecretName, SortSecretType, SortSecretAge}
)

// SortState holds the current sort configuration for a view.
type SortState struct {
	Column    SortColumn
	Ascending bool
}

// Label returns a display label for the sort column.
func (s SortState) Label() string {
	return sortLabels[s.Column]
}

// SortIndicator returns ▲ or ▼ for the active sort column header.
func SortIndicator(header string, state SortState) string {
	label := state.Label()
	if label == "" || !strings.EqualFold(header, label) {
		return header
	}
	if state.Ascending {
		return header + " ▲"
	}
	return header + " ▼"
}

// sortedCopy returns the records ordered by less, leaving the input slice
// untouched. The direction flips when the state is descending.
func sortedCopy[T any](recs []T, asc bool, less func(a, b T) bool) []T {
	out := make([]T, len(recs))
	copy(out, recs)
	sort.SliceStable(out, func(i, j int) bool {
		if asc {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}

func nameLess(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

func SortPods(pods []domain.PodRecord, state SortState) []domain.PodRecord {
	if state.Column == SortNone || len(pods) == 0 {
		return pods
	}
	var less func(a, b domain.PodRecord) bool
	switch state.Column {
	case SortPodName:
		less = func(a, b domain.PodRecord) bool { return nameLess(a.Name, b.Name) }
	case SortPodStatus:
		less = func(a, b domain.PodRecord) bool { return nameLess(a.Status, b.Status) }
	case SortPodRestarts:
		less = func(a, b domain.PodRecord) bool { return a.Restarts < b.Restarts }
	case SortPodAge:
		// Newest first for ascending.
		less = func(a, b domain.PodRecord) bool { return a.CreatedAt.After(b.CreatedAt) }
	default:
		return pods
	}
	return sortedCopy(pods, state.Ascending, less)
}

func SortDeployments(deps []domain.DeploymentRecord, state SortState) []domain.DeploymentRecord {
	if state.Column == SortNone || len(deps) == 0 {
		return deps
	}
	var less func(a, b domain.DeploymentRecord) bool
	switch state.Column {
	case SortDepName:
		less = func(a, b domain.DeploymentRecord) bool { return nameLess(a.Name, b.Name) }
	case SortDepReady:
		less = func(a, b domain.DeploymentRecord) bool { return a.Available < b.Available }
	case SortDepAge:
		less = func(a, b domain.DeploymentRecord) bool { return a.CreatedAt.After(b.CreatedAt) }
	default:
		return deps
	}
	return sortedCopy(deps, state.Ascending, less)
}

func SortSecrets(secrets []domain.SecretRecord, state SortState) []domain.SecretRecord {
	if state.Column == SortNone || len(secrets) == 0 {
		return secrets
	}
	var less func(a, b domain.SecretRecord) bool
	switch state.Column {
	case SortSecretName:
		less = func(a, b domain.SecretRecord) bool { return nameLess(a.Name, b.Name) }
	case SortSecretType:
		less = func(a, b domain.SecretRecord) bool { return a.Type < b.Type }
	case SortSecretAge:
		less = func(a, b domain.SecretRecord) bool { return a.CreatedAt.After(b.CreatedAt) }
	default:
		return secrets
	}
	return sortedCopy(secrets, state.Ascending, less)
}

func nextInCycle(cycle []SortColumn, current SortColumn) SortColumn {
	for i, c := range cycle {
		if c == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return SortNone
}

func NextPodSort(current SortColumn) SortColumn {
	return nextInCycle(podSortCycle, current)
}

func NextDeploymentSort(current SortColumn) SortColumn {
	return nextInCycle(depSortCycle, current)
}

func NextSecretSort(current SortColumn) SortColumn {
	return nextInCycle(secretSortCycle, current)
}
