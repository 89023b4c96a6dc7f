package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jclamy/kubedeck/internal/config"
	"github.com/jclamy/kubedeck/internal/domain"
)

type cacheEntry[T any] struct {
	data      T
	expiresAt time.Time
}

func (e *cacheEntry[T]) valid() bool {
	return time.Now().Before(e.expiresAt)
}

// scopedCache holds one entry per scope so that lists for different
// namespace selections never serve each other's data.
type scopedCache[T any] struct {
	entries map[string]*cacheEntry[T]
}

func (s *scopedCache[T]) get(scope domain.Scope) (T, bool) {
	var zero T
	if s.entries == nil {
		return zero, false
	}
	e, ok := s.entries[scope.String()]
	if !ok || !e.valid() {
		return zero, false
	}
	return e.data, true
}

func (s *scopedCache[T]) put(scope domain.Scope, data T, ttl time.Duration) {
	if s.entries == nil {
		s.entries = make(map[string]*cacheEntry[T])
	}
	s.entries[scope.String()] = &cacheEntry[T]{
		data:      data,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *scopedCache[T]) clear() {
	s.entries = nil
}

// CachedGateway decorates a Gateway with TTL-based caching for list
// operations. Detail fetches, metrics and custom resources pass through:
// those are driven by the watch engine at their own cadence and caching
// them would only delay change detection.
type CachedGateway struct {
	delegate domain.Gateway
	cfg      config.CacheConfig
	mu       sync.RWMutex

	pods        scopedCache[[]domain.PodRecord]
	secrets     scopedCache[[]domain.SecretRecord]
	deployments scopedCache[[]domain.DeploymentRecord]
	namespaces  *cacheEntry[[]domain.NamespaceRecord]
}

var _ domain.Gateway = (*CachedGateway)(nil)

func NewCachedGateway(delegate domain.Gateway, cfg config.CacheConfig) *CachedGateway {
	return &CachedGateway{
		delegate: delegate,
		cfg:      cfg,
	}
}

func (c *CachedGateway) invalidateAll() {
	c.pods.clear()
	c.secrets.clear()
	c.deployments.clear()
	c.namespaces = nil
}

// --- ClusterInfo ---

func (c *CachedGateway) GetContext() string   { return c.delegate.GetContext() }
func (c *CachedGateway) GetServerURL() string { return c.delegate.GetServerURL() }

func (c *CachedGateway) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.delegate.Reconnect()
	c.invalidateAll()
	return err
}

func (c *CachedGateway) RefreshCredentials() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.delegate.RefreshCredentials()
	c.invalidateAll()
	return err
}

// --- Cached list operations ---

func (c *CachedGateway) ListPods(ctx context.Context, scope domain.Scope) ([]domain.PodRecord, error) {
	c.mu.RLock()
	if data, ok := c.pods.get(scope); ok {
		c.mu.RUnlock()
		return data, nil
	}
	c.mu.RUnlock()

	result, err := c.delegate.ListPods(ctx, scope)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.pods.put(scope, result, c.cfg.PodsTTL)
	c.mu.Unlock()
	return result, nil
}

func (c *CachedGateway) ListSecrets(ctx context.Context, scope domain.Scope) ([]domain.SecretRecord, error) {
	c.mu.RLock()
	if data, ok := c.secrets.get(scope); ok {
		c.mu.RUnlock()
		return data, nil
	}
	c.mu.RUnlock()

	result, err := c.delegate.ListSecrets(ctx, scope)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.secrets.put(scope, result, c.cfg.SecretsTTL)
	c.mu.Unlock()
	return result, nil
}

func (c *CachedGateway) ListDeployments(ctx context.Context, scope domain.Scope) ([]domain.DeploymentRecord, error) {
	c.mu.RLock()
	if data, ok := c.deployments.get(scope); ok {
		c.mu.RUnlock()
		return data, nil
	}
	c.mu.RUnlock()

	result, err := c.delegate.ListDeployments(ctx, scope)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.deployments.put(scope, result, c.cfg.DeploymentsTTL)
	c.mu.Unlock()
	return result, nil
}

func (c *CachedGateway) ListNamespaces(ctx context.Context) ([]domain.NamespaceRecord, error) {
	c.mu.RLock()
	if c.namespaces != nil && c.namespaces.valid() {
		data := c.namespaces.data
		c.mu.RUnlock()
		return data, nil
	}
	c.mu.RUnlock()

	result, err := c.delegate.ListNamespaces(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.namespaces = &cacheEntry[[]domain.NamespaceRecord]{
		data:      result,
		expiresAt: time.Now().Add(c.cfg.NamespacesTTL),
	}
	c.mu.Unlock()
	return result, nil
}

// --- Mutations (pass-through + invalidate) ---

func (c *CachedGateway) DeletePod(ctx context.Context, namespace, name string) error {
	err := c.delegate.DeletePod(ctx, namespace, name)
	if err == nil {
		c.mu.Lock()
		c.pods.clear()
		c.mu.Unlock()
	}
	return err
}

func (c *CachedGateway) ScaleDeployment(ctx context.Context, namespace, name string, replicas int32) error {
	err := c.delegate.ScaleDeployment(ctx, namespace, name, replicas)
	if err == nil {
		c.mu.Lock()
		c.deployments.clear()
		c.mu.Unlock()
	}
	return err
}

// --- Pass-through (no caching) ---

func (c *CachedGateway) GetPod(ctx context.Context, namespace, name string) (domain.PodRecord, error) {
	return c.delegate.GetPod(ctx, namespace, name)
}

func (c *CachedGateway) GetPodLogs(ctx context.Context, namespace, name, container string, tailLines int64, previous bool) (string, error) {
	return c.delegate.GetPodLogs(ctx, namespace, name, container, tailLines, previous)
}

func (c *CachedGateway) GetPodYAML(ctx context.Context, namespace, name string) (string, error) {
	return c.delegate.GetPodYAML(ctx, namespace, name)
}

func (c *CachedGateway) ListPodEvents(ctx context.Context, namespace, name string) ([]domain.EventRecord, error) {
	return c.delegate.ListPodEvents(ctx, namespace, name)
}

func (c *CachedGateway) ListContainerEnv(ctx context.Context, namespace, name string) ([]domain.EnvVarRecord, error) {
	return c.delegate.ListContainerEnv(ctx, namespace, name)
}

func (c *CachedGateway) ListCustomResources(ctx context.Context, ref domain.ResourceRef, scope domain.Scope) ([]domain.CustomResourceRecord, error) {
	return c.delegate.ListCustomResources(ctx, ref, scope)
}

func (c *CachedGateway) GetPodMetrics(ctx context.Context, namespace, name string) (domain.PodMetricsRecord, error) {
	return c.delegate.GetPodMetrics(ctx, namespace, name)
}
