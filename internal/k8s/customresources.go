package k8s

import (
	"context"
	"sort"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/jclamy/kubedeck/internal/domain"
)

// ListCustomResources lists instances of one configured custom resource
// through the dynamic client.
func (c *Client) ListCustomResources(ctx context.Context, ref domain.ResourceRef, scope domain.Scope) ([]domain.CustomResourceRecord, error) {
	gvr := schema.GroupVersionResource{Group: ref.Group, Version: ref.Version, Resource: ref.Resource}
	dyn := c.bundle().dynamic

	var lists []*unstructured.UnstructuredList
	if !ref.Namespaced {
		list, err := dyn.Resource(gvr).List(ctx, metav1.ListOptions{Limit: 500})
		if err != nil {
			return nil, c.classify(err)
		}
		lists = append(lists, list)
	} else {
		for _, ns := range namespacesFor(scope) {
			list, err := dyn.Resource(gvr).Namespace(ns).List(ctx, metav1.ListOptions{Limit: 500})
			if err != nil {
				return nil, c.classify(err)
			}
			lists = append(lists, list)
		}
	}

	var records []domain.CustomResourceRecord
	for _, list := range lists {
		for _, obj := range list.Items {
			records = append(records, unstructuredToRecord(obj, ref))
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Key() < records[j].Key() })
	return records, nil
}

func unstructuredToRecord(obj unstructured.Unstructured, ref domain.ResourceRef) domain.CustomResourceRecord {
	kind := obj.GetKind()
	if kind == "" {
		kind = ref.Kind
	}
	created := obj.GetCreationTimestamp()
	return domain.CustomResourceRecord{
		Name:       obj.GetName(),
		Namespace:  obj.GetNamespace(),
		Kind:       kind,
		APIVersion: obj.GetAPIVersion(),
		Status:     customResourceStatus(obj),
		Age:        formatAge(created.Time),
		CreatedAt:  created.Time,
	}
}

// customResourceStatus extracts a displayable status without knowing
// the CRD's schema: status.phase when present, otherwise the first
// condition of type Ready/Available.
func customResourceStatus(obj unstructured.Unstructured) string {
	if phase, ok, _ := unstructured.NestedString(obj.Object, "status", "phase"); ok && phase != "" {
		return phase
	}
	conditions, ok, _ := unstructured.NestedSlice(obj.Object, "status", "conditions")
	if !ok {
		return ""
	}
	for _, raw := range conditions {
		cond, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		condType, _ := cond["type"].(string)
		if condType != "Ready" && condType != "Available" {
			continue
		}
		status, _ := cond["status"].(string)
		if status == "True" {
			return condType
		}
		return "Not" + condType
	}
	return ""
}
