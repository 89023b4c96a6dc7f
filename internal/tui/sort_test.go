package tui

import (
	"testing"
	"time"

	"github.com/jclamy/kubedeck/internal/domain"
)

func TestSortPodsByName(t *testing.T) {
	pods := []domain.PodRecord{
		{Name: "zeta"}, {Name: "Alpha"}, {Name: "beta"},
	}
	got := SortPods(pods, SortState{Column: SortPodName, Ascending: true})

	want := []string{"Alpha", "beta", "zeta"}
	for i, w := range want {
		if got[i].Name != w {
			t.Errorf("got[%d] = %s, want %s", i, got[i].Name, w)
		}
	}
	// Original slice untouched
	if pods[0].Name != "zeta" {
		t.Error("SortPods must not mutate its input")
	}
}

func TestSortPodsByRestartsDescending(t *testing.T) {
	pods := []domain.PodRecord{
		{Name: "a", Restarts: 1}, {Name: "b", Restarts: 9}, {Name: "c", Restarts: 4},
	}
	got := SortPods(pods, SortState{Column: SortPodRestarts, Ascending: false})

	if got[0].Restarts != 9 || got[2].Restarts != 1 {
		t.Errorf("descending restarts wrong: %v", got)
	}
}

func TestSortPodsByAgeNewestFirst(t *testing.T) {
	now := time.Now()
	pods := []domain.PodRecord{
		{Name: "old", CreatedAt: now.Add(-2 * time.Hour)},
		{Name: "new", CreatedAt: now},
	}
	got := SortPods(pods, SortState{Column: SortPodAge, Ascending: true})

	if got[0].Name != "new" {
		t.Errorf("ascending age should put newest first, got %s", got[0].Name)
	}
}

func TestSortNoneReturnsInput(t *testing.T) {
	pods := []domain.PodRecord{{Name: "b"}, {Name: "a"}}
	got := SortPods(pods, SortState{})
	if got[0].Name != "b" {
		t.Error("SortNone should leave order untouched")
	}
}

func TestNextPodSortCycles(t *testing.T) {
	order := []SortColumn{SortNone, SortPodName, SortPodStatus, SortPodRestarts, SortPodAge, SortNone}
	for i := 0; i < len(order)-1; i++ {
		if got := NextPodSort(order[i]); got != order[i+1] {
			t.Errorf("NextPodSort(%v) = %v, want %v", order[i], got, order[i+1])
		}
	}
}

func TestSortDeploymentsByReady(t *testing.T) {
	deps := []domain.DeploymentRecord{
		{Name: "a", Available: 3}, {Name: "b", Available: 0}, {Name: "c", Available: 1},
	}
	got := SortDeployments(deps, SortState{Column: SortDepReady, Ascending: true})

	if got[0].Available != 0 || got[2].Available != 3 {
		t.Errorf("ready sort wrong: %v", got)
	}
}

func TestSortSecretsByType(t *testing.T) {
	secrets := []domain.SecretRecord{
		{Name: "a", Type: "kubernetes.io/tls"},
		{Name: "b", Type: "Opaque"},
	}
	got := SortSecrets(secrets, SortState{Column: SortSecretType, Ascending: true})

	if got[0].Type != "Opaque" {
		t.Errorf("type sort wrong: %v", got)
	}
}

func TestNextSecretSortCycles(t *testing.T) {
	order := []SortColumn{SortNone, SortSecretName, SortSecretType, SortSecretAge, SortNone}
	for i := 0; i < len(order)-1; i++ {
		if got := NextSecretSort(order[i]); got != order[i+1] {
			t.Errorf("NextSecretSort(%v) = %v, want %v", order[i], got, order[i+1])
		}
	}
}

func TestSortIndicator(t *testing.T) {
	state := SortState{Column: SortPodName, Ascending: true}
	if got := SortIndicator("NAME", state); got != "NAME ▲" {
		t.Errorf("SortIndicator = %q", got)
	}
	if got := SortIndicator("STATUS", state); got != "STATUS" {
		t.Errorf("inactive column should be unchanged, got %q", got)
	}
	state.Ascending = false
	if got := SortIndicator("NAME", state); got != "NAME ▼" {
		t.Errorf("SortIndicator = %q", got)
	}
}
