package k8s

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	k8serrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	metricsclient "k8s.io/metrics/pkg/client/clientset/versioned"

	"github.com/jclamy/kubedeck/internal/domain"
)

// clients bundles everything derived from one rest.Config. The bundle
// is swapped atomically on reconnect and credential refresh: fetchers
// read through Client.bundle() on every call, so the tick after a
// refresh observes the new credential without any extra coordination.
type clients struct {
	clientset kubernetes.Interface
	dynamic   dynamic.Interface
	metrics   metricsclient.Interface
	config    *rest.Config
	context   string
	serverURL string
}

// Client wraps the Kubernetes clientsets and connection metadata.
// It implements domain.Gateway.
type Client struct {
	current        atomic.Pointer[clients]
	kubeconfigPath string
	log            *zap.Logger
}

// Compile-time check that Client implements domain.Gateway.
var _ domain.Gateway = (*Client)(nil)

// NewClient creates a cluster client from kubeconfig.
func NewClient(log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	kubeconfigPath := os.Getenv("KUBECONFIG")
	if kubeconfigPath == "" {
		home, _ := os.UserHomeDir()
		kubeconfigPath = filepath.Join(home, ".kube", "config")
	}

	c := &Client{kubeconfigPath: kubeconfigPath, log: log}
	bundle, err := loadClients(kubeconfigPath)
	if err != nil {
		return nil, err
	}
	c.current.Store(bundle)
	log.Info("cluster client ready",
		zap.String("context", bundle.context),
		zap.String("server", bundle.serverURL))
	return c, nil
}

func loadClients(kubeconfigPath string) (*clients, error) {
	if _, err := os.Stat(kubeconfigPath); os.IsNotExist(err) {
		return nil, &domain.APIError{
			Type:    domain.ErrNoKubeconfig,
			Message: fmt.Sprintf("Aucun kubeconfig trouvé.\nConfigurez votre accès avec : oc login <cluster-url>\n\nCherché dans : %s", kubeconfigPath),
			Err:     err,
		}
	}

	loadingRules := &clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfigPath}
	kubeConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, &clientcmd.ConfigOverrides{})

	rawConfig, err := kubeConfig.RawConfig()
	if err != nil {
		return nil, &domain.APIError{
			Type:    domain.ErrBadKubeconfig,
			Message: fmt.Sprintf("Kubeconfig invalide : %v", err),
			Err:     err,
		}
	}

	if rawConfig.CurrentContext == "" {
		return nil, &domain.APIError{
			Type:    domain.ErrNoContext,
			Message: "Aucun contexte actif dans le kubeconfig.\nUtilisez : kubectl config use-context <ctx>",
		}
	}

	restConfig, err := kubeConfig.ClientConfig()
	if err != nil {
		return nil, &domain.APIError{
			Type:    domain.ErrBadKubeconfig,
			Message: fmt.Sprintf("Impossible de créer la config client : %v", err),
			Err:     err,
		}
	}

	// Optimize for snappy polling
	restConfig.QPS = 50
	restConfig.Burst = 100
	restConfig.Timeout = 10 * time.Second

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, &domain.APIError{
			Type:    domain.ErrUnknown,
			Message: fmt.Sprintf("Impossible de créer le client K8s : %v", err),
			Err:     err,
		}
	}
	dynClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, &domain.APIError{
			Type:    domain.ErrUnknown,
			Message: fmt.Sprintf("Impossible de créer le client dynamique : %v", err),
			Err:     err,
		}
	}
	metricsClient, err := metricsclient.NewForConfig(restConfig)
	if err != nil {
		return nil, &domain.APIError{
			Type:    domain.ErrUnknown,
			Message: fmt.Sprintf("Impossible de créer le client metrics : %v", err),
			Err:     err,
		}
	}

	serverURL := ""
	if clusterInfo, ok := rawConfig.Clusters[rawConfig.Contexts[rawConfig.CurrentContext].Cluster]; ok {
		serverURL = clusterInfo.Server
	}

	return &clients{
		clientset: clientset,
		dynamic:   dynClient,
		metrics:   metricsClient,
		config:    restConfig,
		context:   rawConfig.CurrentContext,
		serverURL: serverURL,
	}, nil
}

func (c *Client) bundle() *clients { return c.current.Load() }

// --- ClusterInfo implementation ---

func (c *Client) GetContext() string   { return c.bundle().context }
func (c *Client) GetServerURL() string { return c.bundle().serverURL }

// Reconnect reloads the kubeconfig from disk and swaps in fresh
// clientsets. Used as the connection coordinator's retry hook.
func (c *Client) Reconnect() error {
	bundle, err := loadClients(c.kubeconfigPath)
	if err != nil {
		return err
	}
	c.current.Store(bundle)
	c.log.Info("reconnected", zap.String("server", bundle.serverURL))
	return nil
}

// RefreshCredentials re-reads the kubeconfig, picking up a token
// renewed on disk by an external `oc login` / `kubectl` flow, and swaps
// the credential cell. Used as the auth coordinator's refresh hook.
// Fetchers read through the cell on every call, so no session has to be
// told anything: the next tick simply uses the new token.
func (c *Client) RefreshCredentials() error {
	bundle, err := loadClients(c.kubeconfigPath)
	if err != nil {
		return err
	}
	c.current.Store(bundle)
	c.log.Info("credentials swapped")
	return nil
}

// TestConnection makes a lightweight API call to verify connectivity.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.bundle().clientset.Discovery().ServerVersion()
	return c.classify(err)
}

// namespacesFor expands a scope into the namespace arguments for the
// typed clients. An empty scope means all namespaces.
func namespacesFor(scope domain.Scope) []string {
	if scope.All || len(scope.Namespaces) == 0 {
		return []string{metav1.NamespaceAll}
	}
	return scope.Namespaces
}

func (c *Client) classify(err error) error {
	return classifyError(err, c.GetServerURL())
}

// classifyError converts a raw K8s error into a domain.APIError. The
// watch coordinators and the TUI rely on this classification being done
// here, closest to the transport; they never see raw backend errors.
func classifyError(err error, serverURL string) error {
	if err == nil {
		return nil
	}

	var statusErr *k8serrors.StatusError
	if errors.As(err, &statusErr) {
		code := statusErr.Status().Code
		switch {
		case code == http.StatusUnauthorized:
			loginCmd := "oc login"
			if serverURL != "" {
				loginCmd = fmt.Sprintf("oc login %s", serverURL)
			}
			return &domain.APIError{
				Type:    domain.ErrTokenExpired,
				Message: fmt.Sprintf("Session expirée. Reconnectez-vous :\n  %s", loginCmd),
				Err:     err,
			}
		case code == http.StatusForbidden:
			return &domain.APIError{
				Type:    domain.ErrForbidden,
				Message: statusErr.Status().Message,
				Err:     err,
			}
		case code == http.StatusNotFound:
			return &domain.APIError{
				Type:    domain.ErrNotFound,
				Message: statusErr.Status().Message,
				Err:     err,
			}
		case code == http.StatusConflict:
			return &domain.APIError{
				Type:    domain.ErrConflict,
				Message: "Conflit : la ressource a été modifiée. Réessayez.",
				Err:     err,
			}
		case code == http.StatusTooManyRequests:
			return &domain.APIError{
				Type:    domain.ErrRateLimited,
				Message: "Trop de requêtes. Pause 2s...",
				Err:     err,
			}
		case code >= 500:
			return &domain.APIError{
				Type:    domain.ErrServerError,
				Message: fmt.Sprintf("Erreur serveur (%d). Réessayez avec 'r'.", code),
				Err:     err,
			}
		}
	}

	errStr := err.Error()
	if strings.Contains(errStr, "x509") || strings.Contains(errStr, "certificate") || strings.Contains(errStr, "tls") {
		return &domain.APIError{
			Type:    domain.ErrTLS,
			Message: fmt.Sprintf("Certificat TLS invalide pour %s.\nVérifiez votre kubeconfig.", serverURL),
			Err:     err,
		}
	}

	if strings.Contains(errStr, "dial tcp") || strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return &domain.APIError{
			Type:    domain.ErrUnreachable,
			Message: fmt.Sprintf("Cluster injoignable : %s\n%v", serverURL, err),
			Err:     err,
		}
	}

	return &domain.APIError{
		Type:    domain.ErrUnknown,
		Message: err.Error(),
		Err:     err,
	}
}
