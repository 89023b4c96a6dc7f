package cache

import (
	"context"
	"testing"
	"time"

	"github.com/jclamy/kubedeck/internal/config"
	"github.com/jclamy/kubedeck/internal/domain"
)

func newTestCache() (*CachedGateway, *domain.MockGateway) {
	mock := &domain.MockGateway{
		ContextVal:   "test",
		ServerURLVal: "https://test:6443",
		Pods:         []domain.PodRecord{{Name: "web-1", Namespace: "default"}},
		Secrets:      []domain.SecretRecord{{Name: "tls", Namespace: "default"}},
		Deployments:  []domain.DeploymentRecord{{Name: "api", Namespace: "default"}},
		Namespaces:   []domain.NamespaceRecord{{Name: "default"}},
	}
	cfg := config.CacheConfig{
		PodsTTL:        100 * time.Millisecond,
		SecretsTTL:     100 * time.Millisecond,
		DeploymentsTTL: 100 * time.Millisecond,
		NamespacesTTL:  100 * time.Millisecond,
	}
	return NewCachedGateway(mock, cfg), mock
}

func TestCachedGateway_CachesListPods(t *testing.T) {
	c, mock := newTestCache()
	ctx := context.Background()
	scope := domain.ScopeOf("default")

	_, _ = c.ListPods(ctx, scope)
	_, _ = c.ListPods(ctx, scope)

	if mock.ListPodsCalls != 1 {
		t.Errorf("ListPodsCalls = %d, want 1 (should cache)", mock.ListPodsCalls)
	}
}

func TestCachedGateway_DifferentScopesCacheSeparately(t *testing.T) {
	c, mock := newTestCache()
	ctx := context.Background()

	_, _ = c.ListPods(ctx, domain.ScopeOf("default"))
	_, _ = c.ListPods(ctx, domain.ScopeOf("kube-system"))
	_, _ = c.ListPods(ctx, domain.ScopeOf("default"))

	if mock.ListPodsCalls != 2 {
		t.Errorf("ListPodsCalls = %d, want 2 (one per scope)", mock.ListPodsCalls)
	}
}

func TestCachedGateway_ExpiresAfterTTL(t *testing.T) {
	c, mock := newTestCache()
	ctx := context.Background()
	scope := domain.ScopeOf("default")

	_, _ = c.ListPods(ctx, scope)
	time.Sleep(150 * time.Millisecond)
	_, _ = c.ListPods(ctx, scope)

	if mock.ListPodsCalls != 2 {
		t.Errorf("ListPodsCalls = %d, want 2 (TTL expired)", mock.ListPodsCalls)
	}
}

func TestCachedGateway_DeletePod_InvalidatesPodCache(t *testing.T) {
	c, mock := newTestCache()
	ctx := context.Background()
	scope := domain.ScopeOf("default")

	_, _ = c.ListPods(ctx, scope)
	_ = c.DeletePod(ctx, "default", "web-1")
	_, _ = c.ListPods(ctx, scope)

	if mock.ListPodsCalls != 2 {
		t.Errorf("ListPodsCalls = %d, want 2 (cache invalidated by delete)", mock.ListPodsCalls)
	}
}

func TestCachedGateway_ScaleDeployment_InvalidatesCache(t *testing.T) {
	c, mock := newTestCache()
	ctx := context.Background()
	scope := domain.ScopeOf("default")

	_, _ = c.ListDeployments(ctx, scope)
	_ = c.ScaleDeployment(ctx, "default", "api", 3)
	_, _ = c.ListDeployments(ctx, scope)

	if mock.ListDeploymentsCalls != 2 {
		t.Errorf("ListDeploymentsCalls = %d, want 2", mock.ListDeploymentsCalls)
	}
}

func TestCachedGateway_Reconnect_InvalidatesAll(t *testing.T) {
	c, mock := newTestCache()
	ctx := context.Background()
	scope := domain.ScopeOf("default")

	_, _ = c.ListPods(ctx, scope)
	_, _ = c.ListSecrets(ctx, scope)
	_ = c.Reconnect()
	_, _ = c.ListPods(ctx, scope)
	_, _ = c.ListSecrets(ctx, scope)

	if mock.ListPodsCalls != 2 {
		t.Errorf("ListPodsCalls = %d, want 2", mock.ListPodsCalls)
	}
	if mock.ListSecretsCalls != 2 {
		t.Errorf("ListSecretsCalls = %d, want 2", mock.ListSecretsCalls)
	}
	if mock.ReconnectCalls != 1 {
		t.Errorf("ReconnectCalls = %d, want 1", mock.ReconnectCalls)
	}
}

func TestCachedGateway_RefreshCredentials_InvalidatesAll(t *testing.T) {
	c, mock := newTestCache()
	ctx := context.Background()

	_, _ = c.ListNamespaces(ctx)
	_ = c.RefreshCredentials()
	_, _ = c.ListNamespaces(ctx)

	if mock.ListNamespacesCalls != 2 {
		t.Errorf("ListNamespacesCalls = %d, want 2", mock.ListNamespacesCalls)
	}
	if mock.RefreshCalls != 1 {
		t.Errorf("RefreshCalls = %d, want 1", mock.RefreshCalls)
	}
}

func TestCachedGateway_CachesNamespaces(t *testing.T) {
	c, mock := newTestCache()
	ctx := context.Background()

	_, _ = c.ListNamespaces(ctx)
	_, _ = c.ListNamespaces(ctx)

	if mock.ListNamespacesCalls != 1 {
		t.Errorf("ListNamespacesCalls = %d, want 1", mock.ListNamespacesCalls)
	}
}

func TestCachedGateway_ErrorsAreNotCached(t *testing.T) {
	c, mock := newTestCache()
	ctx := context.Background()
	scope := domain.ScopeOf("default")

	mock.ListPodsErr = &domain.APIError{Type: domain.ErrUnreachable, Message: "down"}
	if _, err := c.ListPods(ctx, scope); err == nil {
		t.Fatal("expected error from delegate")
	}

	mock.ListPodsErr = nil
	pods, err := c.ListPods(ctx, scope)
	if err != nil {
		t.Fatalf("second call should succeed: %v", err)
	}
	if len(pods) != 1 {
		t.Errorf("pods = %v, want 1 entry", pods)
	}
	if mock.ListPodsCalls != 2 {
		t.Errorf("ListPodsCalls = %d, want 2 (errors must not be cached)", mock.ListPodsCalls)
	}
}

func TestCachedGateway_DetailPassesThrough(t *testing.T) {
	c, _ := newTestCache()
	ctx := context.Background()

	_, _ = c.GetPod(ctx, "default", "web-1")
	got, err := c.GetPod(ctx, "default", "web-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "web-1" {
		t.Errorf("GetPod should pass through, got %+v", got)
	}
}
