package watch

import (
	"testing"

	"github.com/jclamy/kubedeck/internal/domain"
)

func pods(ps ...domain.PodRecord) []domain.PodRecord { return ps }

func pod(name, status string, restarts int32) domain.PodRecord {
	return domain.PodRecord{Name: name, Namespace: "default", Status: status, Ready: "1/1", Restarts: restarts, Age: "5m"}
}

func TestPodPolicyChanged(t *testing.T) {
	policy := PodPolicy()

	tests := []struct {
		name string
		old  []domain.PodRecord
		cur  []domain.PodRecord
		want bool
	}{
		{
			"identical",
			pods(pod("a", "Running", 0)),
			pods(pod("a", "Running", 0)),
			false,
		},
		{
			"status changed",
			pods(pod("a", "Running", 0)),
			pods(pod("a", "CrashLoopBackOff", 0)),
			true,
		},
		{
			"restarts changed",
			pods(pod("a", "Running", 0)),
			pods(pod("a", "Running", 1)),
			true,
		},
		{
			"addition",
			pods(pod("a", "Running", 0)),
			pods(pod("a", "Running", 0), pod("b", "Pending", 0)),
			true,
		},
		{
			"removal",
			pods(pod("a", "Running", 0), pod("b", "Running", 0)),
			pods(pod("a", "Running", 0)),
			true,
		},
		{
			"simultaneous removal and addition, same count",
			pods(pod("a", "Running", 0), pod("b", "Running", 0)),
			pods(pod("a", "Running", 0), pod("c", "Running", 0)),
			true,
		},
		{
			"node changed only (not significant)",
			pods(domain.PodRecord{Name: "a", Namespace: "default", Status: "Running", Node: "node-1"}),
			pods(domain.PodRecord{Name: "a", Namespace: "default", Status: "Running", Node: "node-2"}),
			false,
		},
		{
			"both empty",
			nil,
			nil,
			false,
		},
		{
			"empty to one",
			nil,
			pods(pod("a", "Pending", 0)),
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.Changed(tt.old, tt.cur); got != tt.want {
				t.Errorf("Changed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSecretPolicyChanged(t *testing.T) {
	policy := SecretPolicy()

	old := []domain.SecretRecord{{Name: "tls", Namespace: "default", Type: "kubernetes.io/tls", Keys: 2, Age: "1h"}}

	same := []domain.SecretRecord{{Name: "tls", Namespace: "default", Type: "kubernetes.io/tls", Keys: 2, Age: "1h"}}
	if policy.Changed(old, same) {
		t.Error("identical secrets should not be a change")
	}

	moreKeys := []domain.SecretRecord{{Name: "tls", Namespace: "default", Type: "kubernetes.io/tls", Keys: 3, Age: "1h"}}
	if !policy.Changed(old, moreKeys) {
		t.Error("key count change should be detected")
	}
}

func TestDeploymentPolicyChanged(t *testing.T) {
	policy := DeploymentPolicy()

	old := []domain.DeploymentRecord{{Name: "api", Namespace: "prod", Ready: "2/3", Replicas: 3, Available: 2, Age: "2d"}}

	scaled := []domain.DeploymentRecord{{Name: "api", Namespace: "prod", Ready: "3/3", Replicas: 3, Available: 3, Age: "2d"}}
	if !policy.Changed(old, scaled) {
		t.Error("availability change should be detected")
	}

	imageOnly := []domain.DeploymentRecord{{Name: "api", Namespace: "prod", Ready: "2/3", Replicas: 3, Available: 2, Age: "2d", Image: "api:v2"}}
	if policy.Changed(old, imageOnly) {
		t.Error("image is not a significant field for the list view")
	}
}

func TestCustomResourcePolicyClusterScopedKeys(t *testing.T) {
	policy := CustomResourcePolicy()

	// Cluster-scoped resources diff on bare name.
	old := []domain.CustomResourceRecord{{Name: "quota-a", Kind: "ClusterQuota", Status: "Active", Age: "1h"}}
	cur := []domain.CustomResourceRecord{{Name: "quota-a", Kind: "ClusterQuota", Status: "Exhausted", Age: "1h"}}
	if !policy.Changed(old, cur) {
		t.Error("status change on cluster-scoped resource should be detected")
	}
}
