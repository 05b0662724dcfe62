package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/kubewarden/capability-runtime/pkg/types"
)

func TestEvaluateReadsRequestFields(t *testing.T) {
	req := &types.AdmissionRequest{
		Operation: types.Create,
		Namespace: "prod",
		Name:      "nginx",
		Object: &unstructured.Unstructured{Object: map[string]interface{}{
			"metadata": map[string]interface{}{"labels": map[string]interface{}{"tier": "frontend"}},
		}},
	}

	ok, err := evaluate(`namespace == "prod" && operation == "CREATE"`, req)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = evaluate(`name == "other"`, req)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluateNonBoolResultErrors(t *testing.T) {
	req := &types.AdmissionRequest{Name: "nginx"}
	_, err := evaluate(`name`, req)
	assert.Error(t, err)
}

func TestEvaluateInvalidExpressionErrors(t *testing.T) {
	req := &types.AdmissionRequest{}
	_, err := evaluate(`this is not cel (((`, req)
	assert.Error(t, err)
}

func TestCompileCachesProgram(t *testing.T) {
	p1, err := compile(`operation == "CREATE"`)
	require.NoError(t, err)
	p2, err := compile(`operation == "CREATE"`)
	require.NoError(t, err)
	assert.Same(t, p1, p2)
}
