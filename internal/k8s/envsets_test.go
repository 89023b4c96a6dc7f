package k8s

import (
	"context"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func TestEnvToRecord(t *testing.T) {
	tests := []struct {
		name       string
		env        corev1.EnvVar
		wantValue  string
		wantSource string
	}{
		{
			"literal value",
			corev1.EnvVar{Name: "PORT", Value: "8080"},
			"8080", "",
		},
		{
			"configmap reference",
			corev1.EnvVar{Name: "DB_HOST", ValueFrom: &corev1.EnvVarSource{
				ConfigMapKeyRef: &corev1.ConfigMapKeySelector{
					LocalObjectReference: corev1.LocalObjectReference{Name: "db-config"},
					Key:                  "host",
				},
			}},
			"", "configmap:db-config/host",
		},
		{
			"secret reference stays opaque",
			corev1.EnvVar{Name: "DB_PASSWORD", ValueFrom: &corev1.EnvVarSource{
				SecretKeyRef: &corev1.SecretKeySelector{
					LocalObjectReference: corev1.LocalObjectReference{Name: "db-creds"},
					Key:                  "password",
				},
			}},
			"", "secret:db-creds/password",
		},
		{
			"field reference",
			corev1.EnvVar{Name: "POD_IP", ValueFrom: &corev1.EnvVarSource{
				FieldRef: &corev1.ObjectFieldSelector{FieldPath: "status.podIP"},
			}},
			"", "field:status.podIP",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := envToRecord("app", tt.env)
			if rec.Value != tt.wantValue || rec.Source != tt.wantSource {
				t.Errorf("record = %+v, want value %q source %q", rec, tt.wantValue, tt.wantSource)
			}
		})
	}
}

func TestListContainerEnv(t *testing.T) {
	c := newFakeClient(&corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: "web-1", Namespace: "default"},
		Spec: corev1.PodSpec{
			Containers: []corev1.Container{
				{Name: "app", Env: []corev1.EnvVar{{Name: "PORT", Value: "8080"}}},
				{Name: "sidecar", Env: []corev1.EnvVar{{Name: "MODE", Value: "proxy"}}},
			},
		},
	})

	vars, err := c.ListContainerEnv(context.Background(), "default", "web-1")
	if err != nil {
		t.Fatalf("ListContainerEnv() error = %v", err)
	}
	if len(vars) != 2 {
		t.Fatalf("got %d vars, want 2", len(vars))
	}
	if vars[0].Key() != "app/PORT" || vars[1].Key() != "sidecar/MODE" {
		t.Errorf("keys = %q, %q", vars[0].Key(), vars[1].Key())
	}
}
