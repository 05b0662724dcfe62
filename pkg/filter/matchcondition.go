package filter

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/kubewarden/capability-runtime/pkg/types"
)

// env declares the variables a match condition expression may reference:
// the request's operation/namespace/name and the inbound/prior object,
// each exposed as a dynamic CEL value over the underlying unstructured
// map. It is built once; cel.Env is safe for concurrent Program creation.
var env = sync.OnceValues(func() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("operation", cel.StringType),
		cel.Variable("namespace", cel.StringType),
		cel.Variable("name", cel.StringType),
		cel.Variable("object", cel.DynType),
		cel.Variable("oldObject", cel.DynType),
	)
})

// programs caches compiled expressions across requests and bindings: the
// same capability is typically registered once and evaluated many times,
// so compilation should happen at most once per distinct expression.
var programs sync.Map // map[string]cel.Program

func evaluate(expression string, req *types.AdmissionRequest) (bool, error) {
	program, err := compile(expression)
	if err != nil {
		return false, err
	}

	var object, oldObject map[string]interface{}
	if req.Object != nil {
		object = req.Object.Object
	}
	if req.OldObject != nil {
		oldObject = req.OldObject.Object
	}

	out, _, err := program.Eval(map[string]interface{}{
		"operation": string(req.Operation),
		"namespace": req.Namespace,
		"name":      req.Name,
		"object":    object,
		"oldObject": oldObject,
	})
	if err != nil {
		return false, fmt.Errorf("evaluating match condition %q: %w", expression, err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("match condition %q did not evaluate to a bool", expression)
	}
	return result, nil
}

func compile(expression string) (cel.Program, error) {
	if cached, ok := programs.Load(expression); ok {
		return cached.(cel.Program), nil
	}

	celEnv, err := env()
	if err != nil {
		return nil, fmt.Errorf("building CEL environment: %w", err)
	}

	ast, issues := celEnv.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compiling match condition %q: %w", expression, issues.Err())
	}

	program, err := celEnv.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("building CEL program for %q: %w", expression, err)
	}

	// Two goroutines racing to compile the same new expression both succeed;
	// LoadOrStore keeps whichever program won so later callers share one.
	actual, _ := programs.LoadOrStore(expression, program)
	return actual.(cel.Program), nil
}
