package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupVersionKindString(t *testing.T) {
	assert.Equal(t, "Kind=Pod", GroupVersionKind{Kind: "Pod"}.String())
	assert.Equal(t, "v1, Kind=Pod", GroupVersionKind{Version: "v1", Kind: "Pod"}.String())
	assert.Equal(t, "apps/v1, Kind=Deployment", GroupVersionKind{Group: "apps", Version: "v1", Kind: "Deployment"}.String())
}

func TestGroupVersionKindMatches(t *testing.T) {
	pod := GroupVersionKind{Version: "v1", Kind: "Pod"}

	assert.True(t, pod.Matches(GroupVersionKind{Kind: "Pod"}))
	assert.True(t, pod.Matches(GroupVersionKind{Version: "v1", Kind: "Pod"}))
	assert.False(t, pod.Matches(GroupVersionKind{Kind: "Deployment"}))
	assert.False(t, pod.Matches(GroupVersionKind{Group: "apps", Kind: "Pod"}))
}
