package k8s

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"

	"github.com/jclamy/kubedeck/internal/domain"
)

var widgetRef = domain.ResourceRef{
	Group:      "apps.example.com",
	Version:    "v1alpha1",
	Resource:   "widgets",
	Kind:       "Widget",
	Namespaced: true,
}

func widget(namespace, name string, status map[string]interface{}) *unstructured.Unstructured {
	obj := &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "apps.example.com/v1alpha1",
		"kind":       "Widget",
		"metadata": map[string]interface{}{
			"name":      name,
			"namespace": namespace,
		},
	}}
	if status != nil {
		obj.Object["status"] = status
	}
	return obj
}

func newFakeDynamicClient(objects ...runtime.Object) *Client {
	scheme := runtime.NewScheme()
	gvr := schema.GroupVersionResource{Group: widgetRef.Group, Version: widgetRef.Version, Resource: widgetRef.Resource}
	dyn := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(scheme,
		map[schema.GroupVersionResource]string{gvr: "WidgetList"}, objects...)

	c := &Client{log: zap.NewNop()}
	c.current.Store(&clients{dynamic: dyn, serverURL: "https://cluster.example:6443"})
	return c
}

func TestListCustomResources(t *testing.T) {
	c := newFakeDynamicClient(
		widget("default", "w-1", map[string]interface{}{"phase": "Active"}),
		widget("default", "w-2", nil),
		widget("other", "w-3", nil),
	)

	records, err := c.ListCustomResources(context.Background(), widgetRef, domain.ScopeOf("default"))
	if err != nil {
		t.Fatalf("ListCustomResources() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Name != "w-1" || records[0].Status != "Active" {
		t.Errorf("record = %+v", records[0])
	}
	if records[0].Kind != "Widget" || records[0].APIVersion != "apps.example.com/v1alpha1" {
		t.Errorf("record = %+v", records[0])
	}
}

func TestCustomResourceStatusExtraction(t *testing.T) {
	tests := []struct {
		name   string
		status map[string]interface{}
		want   string
	}{
		{"phase wins", map[string]interface{}{"phase": "Running"}, "Running"},
		{
			"ready condition true",
			map[string]interface{}{"conditions": []interface{}{
				map[string]interface{}{"type": "Ready", "status": "True"},
			}},
			"Ready",
		},
		{
			"ready condition false",
			map[string]interface{}{"conditions": []interface{}{
				map[string]interface{}{"type": "Ready", "status": "False"},
			}},
			"NotReady",
		},
		{
			"available condition",
			map[string]interface{}{"conditions": []interface{}{
				map[string]interface{}{"type": "Available", "status": "True"},
			}},
			"Available",
		},
		{"no status", nil, ""},
		{
			"unrecognized conditions",
			map[string]interface{}{"conditions": []interface{}{
				map[string]interface{}{"type": "Synced", "status": "True"},
			}},
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := widget("default", "w", tt.status)
			if got := customResourceStatus(*obj); got != tt.want {
				t.Errorf("customResourceStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}
