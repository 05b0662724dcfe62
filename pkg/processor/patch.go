package processor

import (
	"encoding/json"
	"fmt"

	jsonpatch "gomodules.xyz/jsonpatch/v2"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// diff computes the RFC 6902 JSON Patch document that turns original into
// mutated, serialized as bytes. A no-op mutation yields the literal empty
// array "[]", never a null patch.
func diff(original, mutated *unstructured.Unstructured) ([]byte, error) {
	originalJSON, err := json.Marshal(original.Object)
	if err != nil {
		return nil, fmt.Errorf("marshaling original object: %w", err)
	}
	mutatedJSON, err := json.Marshal(mutated.Object)
	if err != nil {
		return nil, fmt.Errorf("marshaling mutated object: %w", err)
	}

	operations, err := jsonpatch.CreatePatch(originalJSON, mutatedJSON)
	if err != nil {
		return nil, fmt.Errorf("computing json patch: %w", err)
	}
	if operations == nil {
		operations = []jsonpatch.JsonPatchOperation{}
	}

	patch, err := json.Marshal(operations)
	if err != nil {
		return nil, fmt.Errorf("serializing json patch: %w", err)
	}
	return patch, nil
}
