package k8s

import (
	"context"
	"fmt"
	"sort"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/jclamy/kubedeck/internal/domain"
)

// ListPodEvents returns the events involving one pod, newest first.
// Feeds the detail view's event session.
func (c *Client) ListPodEvents(ctx context.Context, namespace, name string) ([]domain.EventRecord, error) {
	eventList, err := c.bundle().clientset.CoreV1().Events(namespace).List(ctx, metav1.ListOptions{
		FieldSelector: "involvedObject.name=" + name,
		Limit:         500,
	})
	if err != nil {
		return nil, c.classify(err)
	}

	events := make([]domain.EventRecord, 0, len(eventList.Items))
	for _, evt := range eventList.Items {
		events = append(events, eventToRecord(evt))
	}
	sort.Slice(events, func(i, j int) bool { return events[i].CreatedAt.After(events[j].CreatedAt) })
	return events, nil
}

func eventToRecord(evt corev1.Event) domain.EventRecord {
	obj := fmt.Sprintf("%s/%s", evt.InvolvedObject.Kind, evt.InvolvedObject.Name)

	age := ""
	if !evt.LastTimestamp.IsZero() {
		age = formatAge(evt.LastTimestamp.Time)
	} else if !evt.EventTime.IsZero() {
		age = formatAge(evt.EventTime.Time)
	}

	createdAt := evt.LastTimestamp.Time
	if createdAt.IsZero() {
		createdAt = evt.EventTime.Time
	}

	return domain.EventRecord{
		Type:      evt.Type,
		Reason:    evt.Reason,
		Message:   evt.Message,
		Object:    obj,
		Namespace: evt.Namespace,
		Age:       age,
		Count:     evt.Count,
		CreatedAt: createdAt,
	}
}
