package processor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

func TestDiffNoOpProducesEmptyArrayNotNull(t *testing.T) {
	obj := &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "v1",
		"kind":       "Pod",
		"metadata":   map[string]interface{}{"name": "nginx"},
	}}

	patch, err := diff(obj, obj.DeepCopy())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(patch))
}

func TestDiffDetectsLabelAddition(t *testing.T) {
	original := &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "v1",
		"kind":       "Pod",
		"metadata":   map[string]interface{}{"name": "nginx"},
	}}
	mutated := original.DeepCopy()
	mutated.SetLabels(map[string]string{"env": "prod"})

	patch, err := diff(original, mutated)
	require.NoError(t, err)

	var ops []map[string]interface{}
	require.NoError(t, json.Unmarshal(patch, &ops))
	require.Len(t, ops, 1)
	assert.Equal(t, "add", ops[0]["op"])
}
