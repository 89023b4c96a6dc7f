package k8s

import (
	"context"
	"sort"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/jclamy/kubedeck/internal/domain"
)

func (c *Client) ListSecrets(ctx context.Context, scope domain.Scope) ([]domain.SecretRecord, error) {
	var secrets []domain.SecretRecord
	for _, ns := range namespacesFor(scope) {
		secretList, err := c.bundle().clientset.CoreV1().Secrets(ns).List(ctx, metav1.ListOptions{
			Limit: 500,
		})
		if err != nil {
			return nil, c.classify(err)
		}
		for _, secret := range secretList.Items {
			secrets = append(secrets, secretToRecord(secret))
		}
	}
	sort.Slice(secrets, func(i, j int) bool { return secrets[i].Key() < secrets[j].Key() })
	return secrets, nil
}

// secretToRecord projects a secret without touching its values: only
// the key count reaches the display layer.
func secretToRecord(secret corev1.Secret) domain.SecretRecord {
	return domain.SecretRecord{
		Name:      secret.Name,
		Namespace: secret.Namespace,
		Type:      string(secret.Type),
		Keys:      len(secret.Data),
		Age:       formatAge(secret.CreationTimestamp.Time),
		CreatedAt: secret.CreationTimestamp.Time,
	}
}
