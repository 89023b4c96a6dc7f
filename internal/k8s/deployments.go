package k8s

import (
	"context"
	"fmt"
	"sort"

	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/jclamy/kubedeck/internal/domain"
)

func (c *Client) ListDeployments(ctx context.Context, scope domain.Scope) ([]domain.DeploymentRecord, error) {
	var deps []domain.DeploymentRecord
	for _, ns := range namespacesFor(scope) {
		depList, err := c.bundle().clientset.AppsV1().Deployments(ns).List(ctx, metav1.ListOptions{
			Limit: 500,
		})
		if err != nil {
			return nil, c.classify(err)
		}
		for _, dep := range depList.Items {
			deps = append(deps, deploymentToRecord(dep))
		}
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i].Key() < deps[j].Key() })
	return deps, nil
}

func (c *Client) ScaleDeployment(ctx context.Context, namespace, name string, replicas int32) error {
	if replicas < 0 {
		replicas = 0
	}
	deployments := c.bundle().clientset.AppsV1().Deployments(namespace)
	scale, err := deployments.GetScale(ctx, name, metav1.GetOptions{})
	if err != nil {
		return c.classify(err)
	}
	scale.Spec.Replicas = replicas
	_, err = deployments.UpdateScale(ctx, name, scale, metav1.UpdateOptions{})
	return c.classify(err)
}

func deploymentToRecord(dep appsv1.Deployment) domain.DeploymentRecord {
	var replicas int32
	if dep.Spec.Replicas != nil {
		replicas = *dep.Spec.Replicas
	}
	image := ""
	if len(dep.Spec.Template.Spec.Containers) > 0 {
		image = dep.Spec.Template.Spec.Containers[0].Image
	}
	return domain.DeploymentRecord{
		Name:      dep.Name,
		Namespace: dep.Namespace,
		Ready:     fmt.Sprintf("%d/%d", dep.Status.ReadyReplicas, replicas),
		Replicas:  replicas,
		Available: dep.Status.AvailableReplicas,
		Age:       formatAge(dep.CreationTimestamp.Time),
		Image:     image,
		CreatedAt: dep.CreationTimestamp.Time,
	}
}
