package watch

import "github.com/jclamy/kubedeck/internal/domain"

// Policy decides whether a freshly fetched snapshot is materially
// different from the last emitted one. Consumers always re-render the
// whole snapshot, so the result is a plain boolean, never a diff.
type Policy[T any] interface {
	Changed(old, cur []T) bool
}

// Keyed compares two collections through a composite key and a
// per-kind significant-field subset. Fields outside the subset are
// invisible to change detection on purpose: cosmetic backend noise
// must not cause UI churn.
type Keyed[T any] struct {
	Key  func(T) string
	Same func(old, cur T) bool
}

func (k Keyed[T]) Changed(old, cur []T) bool {
	if len(old) != len(cur) {
		return true
	}
	prev := make(map[string]T, len(old))
	for _, r := range old {
		prev[k.Key(r)] = r
	}
	for _, r := range cur {
		key := k.Key(r)
		p, ok := prev[key]
		if !ok {
			return true // addition
		}
		if !k.Same(p, r) {
			return true
		}
		delete(prev, key)
	}
	// Leftover old keys mean a simultaneous removal and addition kept
	// the counts equal; that is still a change.
	return len(prev) > 0
}

// PodPolicy: status, readiness, restart count and age are significant.
func PodPolicy() Policy[domain.PodRecord] {
	return Keyed[domain.PodRecord]{
		Key: domain.PodRecord.Key,
		Same: func(old, cur domain.PodRecord) bool {
			return old.Status == cur.Status &&
				old.Ready == cur.Ready &&
				old.Restarts == cur.Restarts &&
				old.Age == cur.Age
		},
	}
}

// SecretPolicy: type, key count and age are significant.
func SecretPolicy() Policy[domain.SecretRecord] {
	return Keyed[domain.SecretRecord]{
		Key: domain.SecretRecord.Key,
		Same: func(old, cur domain.SecretRecord) bool {
			return old.Type == cur.Type &&
				old.Keys == cur.Keys &&
				old.Age == cur.Age
		},
	}
}

// DeploymentPolicy: replica counters and age are significant.
func DeploymentPolicy() Policy[domain.DeploymentRecord] {
	return Keyed[domain.DeploymentRecord]{
		Key: domain.DeploymentRecord.Key,
		Same: func(old, cur domain.DeploymentRecord) bool {
			return old.Ready == cur.Ready &&
				old.Replicas == cur.Replicas &&
				old.Available == cur.Available &&
				old.Age == cur.Age
		},
	}
}

// CustomResourcePolicy: kind, status and age are significant.
func CustomResourcePolicy() Policy[domain.CustomResourceRecord] {
	return Keyed[domain.CustomResourceRecord]{
		Key: domain.CustomResourceRecord.Key,
		Same: func(old, cur domain.CustomResourceRecord) bool {
			return old.Kind == cur.Kind &&
				old.Status == cur.Status &&
				old.Age == cur.Age
		},
	}
}

// EventPolicy: count, message and age are significant.
func EventPolicy() Policy[domain.EventRecord] {
	return Keyed[domain.EventRecord]{
		Key: domain.EventRecord.Key,
		Same: func(old, cur domain.EventRecord) bool {
			return old.Count == cur.Count &&
				old.Message == cur.Message &&
				old.Age == cur.Age
		},
	}
}

// EnvPolicy: value and source are significant. Only used when an env
// session runs without AlwaysEmit.
func EnvPolicy() Policy[domain.EnvVarRecord] {
	return Keyed[domain.EnvVarRecord]{
		Key: domain.EnvVarRecord.Key,
		Same: func(old, cur domain.EnvVarRecord) bool {
			return old.Value == cur.Value && old.Source == cur.Source
		},
	}
}
