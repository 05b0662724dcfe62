package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubewarden/capability-runtime/pkg/request"
)

func TestBuilderChainProducesOneBindingPerThen(t *testing.T) {
	c := New("example")

	c.InNamespace("default").
		When(Kind("Pod")).
		IsCreated().
		WithLabel("tier", "frontend").
		WithAnnotation("team").
		Then(func(*request.Wrapper) error { return nil }).
		Then(func(*request.Wrapper) error { return nil })

	require.Len(t, c.Bindings, 2)
	assert.Equal(t, []string{"default"}, c.Namespaces)

	for _, b := range c.Bindings {
		assert.Equal(t, EventCreate, b.Event)
		assert.Equal(t, "Pod", b.Kind.Kind)
		assert.Equal(t, "frontend", b.Filters.Labels["tier"])
		assert.Equal(t, "", b.Filters.Annotations["team"])
	}
}

func TestInOneOfNamespacesAppends(t *testing.T) {
	c := New("example")
	c.InNamespace("a").InOneOfNamespaces("b", "c")

	assert.Equal(t, []string{"a", "b", "c"}, c.Namespaces)
}

func TestWithMatchConditionAccumulates(t *testing.T) {
	c := New("example")
	c.When(Kind("Pod")).IsUpdated().
		WithMatchCondition("has-annotation", `has(object.metadata.annotations)`).
		WithMatchCondition("is-update", `operation == "UPDATE"`).
		Then(func(*request.Wrapper) error { return nil })

	require.Len(t, c.Bindings, 1)
	require.Len(t, c.Bindings[0].Filters.MatchConditions, 2)
	assert.Equal(t, "has-annotation", c.Bindings[0].Filters.MatchConditions[0].Name)
	assert.Equal(t, "is-update", c.Bindings[0].Filters.MatchConditions[1].Name)
}

func TestIsCreatedOrUpdatedEvent(t *testing.T) {
	c := New("example")
	c.When(Kind("ConfigMap")).IsCreatedOrUpdated().Then(func(*request.Wrapper) error { return nil })

	assert.Equal(t, EventCreateOrUpdate, c.Bindings[0].Event)
}
