package k8s

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/jclamy/kubedeck/internal/domain"
)

// GetPodMetrics reads one pod's usage from the metrics API
// (metrics.k8s.io). Feeds the detail view's metrics session.
func (c *Client) GetPodMetrics(ctx context.Context, namespace, name string) (domain.PodMetricsRecord, error) {
	podMetrics, err := c.bundle().metrics.MetricsV1beta1().PodMetricses(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return domain.PodMetricsRecord{}, c.classify(err)
	}

	var cpuMilli, memBytes int64
	for _, ctr := range podMetrics.Containers {
		cpuMilli += ctr.Usage.Cpu().MilliValue()
		memBytes += ctr.Usage.Memory().Value()
	}

	return domain.PodMetricsRecord{
		Name:       podMetrics.Name,
		Namespace:  podMetrics.Namespace,
		CPU:        fmt.Sprintf("%dm", cpuMilli),
		Memory:     fmt.Sprintf("%dMi", memBytes/(1024*1024)),
		Containers: len(podMetrics.Containers),
		Window:     podMetrics.Window.Duration.String(),
	}, nil
}
