package k8s

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/jclamy/kubedeck/internal/domain"
)

// ListContainerEnv projects the environment of every container of one
// pod. Indirect values (configMapKeyRef, secretKeyRef, fieldRef) are
// reported as a source reference, never resolved: secret material stays
// on the server.
func (c *Client) ListContainerEnv(ctx context.Context, namespace, name string) ([]domain.EnvVarRecord, error) {
	pod, err := c.bundle().clientset.CoreV1().Pods(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, c.classify(err)
	}

	var vars []domain.EnvVarRecord
	for _, ctr := range pod.Spec.Containers {
		for _, env := range ctr.Env {
			vars = append(vars, envToRecord(ctr.Name, env))
		}
	}
	return vars, nil
}

func envToRecord(container string, env corev1.EnvVar) domain.EnvVarRecord {
	rec := domain.EnvVarRecord{Container: container, Name: env.Name, Value: env.Value}
	if env.ValueFrom == nil {
		return rec
	}
	switch {
	case env.ValueFrom.ConfigMapKeyRef != nil:
		ref := env.ValueFrom.ConfigMapKeyRef
		rec.Source = "configmap:" + ref.Name + "/" + ref.Key
	case env.ValueFrom.SecretKeyRef != nil:
		ref := env.ValueFrom.SecretKeyRef
		rec.Source = "secret:" + ref.Name + "/" + ref.Key
	case env.ValueFrom.FieldRef != nil:
		rec.Source = "field:" + env.ValueFrom.FieldRef.FieldPath
	case env.ValueFrom.ResourceFieldRef != nil:
		rec.Source = "resource:" + env.ValueFrom.ResourceFieldRef.Resource
	}
	return rec
}
