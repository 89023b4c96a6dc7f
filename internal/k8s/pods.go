package k8s

import (
	"context"
	"fmt"
	"sort"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/jclamy/kubedeck/internal/domain"
)

func (c *Client) ListPods(ctx context.Context, scope domain.Scope) ([]domain.PodRecord, error) {
	var pods []domain.PodRecord
	for _, ns := range namespacesFor(scope) {
		podList, err := c.bundle().clientset.CoreV1().Pods(ns).List(ctx, metav1.ListOptions{
			Limit: 500,
		})
		if err != nil {
			return nil, c.classify(err)
		}
		for _, pod := range podList.Items {
			pods = append(pods, podToRecord(pod))
		}
	}
	sort.Slice(pods, func(i, j int) bool { return pods[i].Key() < pods[j].Key() })
	return pods, nil
}

func (c *Client) GetPod(ctx context.Context, namespace, name string) (domain.PodRecord, error) {
	pod, err := c.bundle().clientset.CoreV1().Pods(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return domain.PodRecord{}, c.classify(err)
	}
	return podToRecord(*pod), nil
}

func (c *Client) GetPodLogs(ctx context.Context, namespace, name, container string, tailLines int64, previous bool) (string, error) {
	opts := &corev1.PodLogOptions{
		TailLines: &tailLines,
		Previous:  previous,
	}
	if container != "" {
		opts.Container = container
	}
	result, err := c.bundle().clientset.CoreV1().Pods(namespace).GetLogs(name, opts).Do(ctx).Raw()
	if err != nil {
		return "", c.classify(err)
	}
	return string(result), nil
}

func (c *Client) DeletePod(ctx context.Context, namespace, name string) error {
	err := c.bundle().clientset.CoreV1().Pods(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	return c.classify(err)
}

func podToRecord(pod corev1.Pod) domain.PodRecord {
	status := podStatus(pod)
	ready, total := podReadyCount(pod)
	var restarts int32
	for _, cs := range pod.Status.ContainerStatuses {
		restarts += cs.RestartCount
	}

	statusMap := make(map[string]corev1.ContainerStatus)
	for _, cs := range pod.Status.ContainerStatuses {
		statusMap[cs.Name] = cs
	}
	containers := make([]domain.ContainerRecord, 0, len(pod.Spec.Containers))
	for _, ctr := range pod.Spec.Containers {
		rec := domain.ContainerRecord{Name: ctr.Name}
		if cs, ok := statusMap[ctr.Name]; ok {
			rec.Ready = cs.Ready
			rec.State = containerState(cs)
		}
		containers = append(containers, rec)
	}

	return domain.PodRecord{
		Name:       pod.Name,
		Namespace:  pod.Namespace,
		Status:     status,
		Ready:      fmt.Sprintf("%d/%d", ready, total),
		Restarts:   restarts,
		Age:        formatAge(pod.CreationTimestamp.Time),
		Node:       pod.Spec.NodeName,
		Containers: containers,
		CreatedAt:  pod.CreationTimestamp.Time,
	}
}

func containerState(cs corev1.ContainerStatus) string {
	switch {
	case cs.State.Running != nil:
		return "running"
	case cs.State.Waiting != nil:
		return "waiting"
	case cs.State.Terminated != nil:
		return "terminated"
	default:
		return "unknown"
	}
}

func podStatus(pod corev1.Pod) string {
	// Check container statuses for more specific states
	for _, cs := range pod.Status.ContainerStatuses {
		if cs.State.Waiting != nil && cs.State.Waiting.Reason != "" {
			return cs.State.Waiting.Reason // CrashLoopBackOff, ImagePullBackOff, etc.
		}
		if cs.State.Terminated != nil && cs.State.Terminated.Reason != "" {
			return cs.State.Terminated.Reason
		}
	}
	// Check init container statuses
	for _, cs := range pod.Status.InitContainerStatuses {
		if cs.State.Waiting != nil && cs.State.Waiting.Reason != "" {
			return "Init:" + cs.State.Waiting.Reason
		}
		if cs.State.Terminated != nil && cs.State.Terminated.ExitCode != 0 {
			return "Init:Error"
		}
	}
	return string(pod.Status.Phase)
}

func podReadyCount(pod corev1.Pod) (int, int) {
	total := len(pod.Spec.Containers)
	ready := 0
	for _, cs := range pod.Status.ContainerStatuses {
		if cs.Ready {
			ready++
		}
	}
	return ready, total
}

func formatAge(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		days := int(d.Hours() / 24)
		if days > 365 {
			return fmt.Sprintf("%dy%dd", days/365, days%365)
		}
		return fmt.Sprintf("%dd", days)
	}
}
