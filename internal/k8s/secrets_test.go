package k8s

import (
	"context"
	"testing"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/jclamy/kubedeck/internal/domain"
)

func TestListSecrets(t *testing.T) {
	c := newFakeClient(
		&corev1.Secret{
			ObjectMeta: metav1.ObjectMeta{
				Name:              "tls-cert",
				Namespace:         "default",
				CreationTimestamp: metav1.NewTime(time.Now().Add(-time.Hour)),
			},
			Type: corev1.SecretTypeTLS,
			Data: map[string][]byte{"tls.crt": nil, "tls.key": nil},
		},
		&corev1.Secret{
			ObjectMeta: metav1.ObjectMeta{Name: "token", Namespace: "other"},
			Type:       corev1.SecretTypeOpaque,
		},
	)

	secrets, err := c.ListSecrets(context.Background(), domain.ScopeOf("default"))
	if err != nil {
		t.Fatalf("ListSecrets() error = %v", err)
	}
	if len(secrets) != 1 {
		t.Fatalf("got %d secrets, want 1", len(secrets))
	}

	s := secrets[0]
	if s.Name != "tls-cert" || s.Type != string(corev1.SecretTypeTLS) {
		t.Errorf("record = %+v", s)
	}
	if s.Keys != 2 {
		t.Errorf("Keys = %d, want 2 (values must never be projected)", s.Keys)
	}
	if s.Age != "1h" {
		t.Errorf("Age = %q, want 1h", s.Age)
	}
}
