package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jclamy/kubedeck/internal/domain"
)

var DefaultProdPatterns = []string{"prod", "production", "prd", "live"}

// AppConfig holds all configuration for kubedeck.
type AppConfig struct {
	ProdPatterns       []string               `yaml:"prod_patterns"`
	ReadonlyNamespaces []string               `yaml:"readonly_namespaces"`
	Watch              WatchConfig            `yaml:"watch"`
	CustomResources    []CustomResourceConfig `yaml:"custom_resources"`
	Cache              CacheConfig            `yaml:"cache"`
	Log                LogConfig              `yaml:"log"`
}

// WatchConfig holds the polling cadences of the watch sessions.
type WatchConfig struct {
	// Workloads covers pods, secrets, deployments and detail views.
	Workloads       time.Duration `yaml:"workloads"`
	CustomResources time.Duration `yaml:"custom_resources"`
	Metrics         time.Duration `yaml:"metrics"`
}

// CustomResourceConfig names one custom resource type to watch.
type CustomResourceConfig struct {
	Group      string `yaml:"group"`
	Version    string `yaml:"version"`
	Resource   string `yaml:"resource"`
	Kind       string `yaml:"kind"`
	Namespaced *bool  `yaml:"namespaced"` // default true
}

// Ref converts the config entry into the domain reference used by the
// dynamic fetcher.
func (c CustomResourceConfig) Ref() domain.ResourceRef {
	namespaced := true
	if c.Namespaced != nil {
		namespaced = *c.Namespaced
	}
	return domain.ResourceRef{
		Group:      c.Group,
		Version:    c.Version,
		Resource:   c.Resource,
		Kind:       c.Kind,
		Namespaced: namespaced,
	}
}

// CacheConfig holds TTL settings for the gateway cache. Watch sessions
// fetch through it: each TTL bounds how stale a tick's snapshot can be,
// and a session restarted on a tab switch reuses the cached list
// instead of showing a loading frame.
type CacheConfig struct {
	PodsTTL        time.Duration `yaml:"pods"`
	NamespacesTTL  time.Duration `yaml:"namespaces"`
	DeploymentsTTL time.Duration `yaml:"deployments"`
	SecretsTTL     time.Duration `yaml:"secrets"`
}

// LogConfig holds file logging settings. The TUI owns the terminal, so
// logs only ever go to a file.
type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		ProdPatterns:       DefaultProdPatterns,
		ReadonlyNamespaces: nil,
		Watch: WatchConfig{
			Workloads:       3 * time.Second,
			CustomResources: 5 * time.Second,
			Metrics:         10 * time.Second,
		},
		Cache: CacheConfig{
			PodsTTL:        5 * time.Second,
			NamespacesTTL:  30 * time.Second,
			DeploymentsTTL: 10 * time.Second,
			SecretsTTL:     10 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig loads from the default path ~/.config/kubedeck/config.yaml.
func LoadConfig() (*AppConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadConfigFrom(filepath.Join(home, ".config", "kubedeck", "config.yaml"))
}

// LoadConfigFrom loads config from a specific file path.
// Returns defaults if the file does not exist.
func LoadConfigFrom(path string) (*AppConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Apply defaults for zero values
	if len(cfg.ProdPatterns) == 0 {
		cfg.ProdPatterns = DefaultProdPatterns
	}
	if cfg.Watch.Workloads == 0 {
		cfg.Watch.Workloads = 3 * time.Second
	}
	if cfg.Watch.CustomResources == 0 {
		cfg.Watch.CustomResources = 5 * time.Second
	}
	if cfg.Watch.Metrics == 0 {
		cfg.Watch.Metrics = 10 * time.Second
	}
	if cfg.Cache.PodsTTL == 0 {
		cfg.Cache.PodsTTL = 5 * time.Second
	}
	if cfg.Cache.NamespacesTTL == 0 {
		cfg.Cache.NamespacesTTL = 30 * time.Second
	}
	if cfg.Cache.DeploymentsTTL == 0 {
		cfg.Cache.DeploymentsTTL = 10 * time.Second
	}
	if cfg.Cache.SecretsTTL == 0 {
		cfg.Cache.SecretsTTL = 10 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// IsReadonlyNamespace checks if a namespace matches any readonly pattern.
// Supports glob matching (e.g. "openshift-*").
func IsReadonlyNamespace(namespace string, patterns []string) bool {
	if namespace == "" || len(patterns) == 0 {
		return false
	}
	for _, p := range patterns {
		matched, err := filepath.Match(p, namespace)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// IsProdNamespace checks if a namespace name matches production patterns.
// Matching is done by segment (split on -._) to avoid false positives
// like "product-api" matching "prod".
func IsProdNamespace(namespace string, patterns []string) bool {
	if len(patterns) == 0 {
		patterns = DefaultProdPatterns
	}
	ns := strings.ToLower(namespace)
	segments := splitSegments(ns)

	for _, p := range patterns {
		p = strings.ToLower(p)
		// Check if any segment matches the pattern exactly
		for _, seg := range segments {
			if seg == p {
				return true
			}
		}
	}
	return false
}

// splitSegments splits a namespace name on common separators.
func splitSegments(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '.' || r == '_'
	})
}
