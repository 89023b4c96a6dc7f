package k8s

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	metricsv1beta1 "k8s.io/metrics/pkg/apis/metrics/v1beta1"
	metricsfake "k8s.io/metrics/pkg/client/clientset/versioned/fake"
)

func TestGetPodMetrics(t *testing.T) {
	// The generated fake reads PodMetrics under the "pods" resource, but
	// NewSimpleClientset(obj) would store it under the guessed
	// "podmetricses" resource, so seed the tracker with the explicit GVR.
	fakeMetrics := metricsfake.NewSimpleClientset()
	err := fakeMetrics.Tracker().Create(metricsv1beta1.SchemeGroupVersion.WithResource("pods"), &metricsv1beta1.PodMetrics{
		ObjectMeta: metav1.ObjectMeta{Name: "web-1", Namespace: "default"},
		Window:     metav1.Duration{Duration: 30 * time.Second},
		Containers: []metricsv1beta1.ContainerMetrics{
			{
				Name: "app",
				Usage: corev1.ResourceList{
					corev1.ResourceCPU:    resource.MustParse("250m"),
					corev1.ResourceMemory: resource.MustParse("128Mi"),
				},
			},
			{
				Name: "sidecar",
				Usage: corev1.ResourceList{
					corev1.ResourceCPU:    resource.MustParse("50m"),
					corev1.ResourceMemory: resource.MustParse("64Mi"),
				},
			},
		},
	}, "default")
	if err != nil {
		t.Fatalf("seeding fake metrics tracker: %v", err)
	}

	c := &Client{log: zap.NewNop()}
	c.current.Store(&clients{metrics: fakeMetrics})

	rec, err := c.GetPodMetrics(context.Background(), "default", "web-1")
	if err != nil {
		t.Fatalf("GetPodMetrics() error = %v", err)
	}
	if rec.CPU != "300m" {
		t.Errorf("CPU = %q, want summed 300m", rec.CPU)
	}
	if rec.Memory != "192Mi" {
		t.Errorf("Memory = %q, want summed 192Mi", rec.Memory)
	}
	if rec.Containers != 2 {
		t.Errorf("Containers = %d", rec.Containers)
	}
	if rec.Window != "30s" {
		t.Errorf("Window = %q", rec.Window)
	}
}
