package kmap

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"
)

// celReserved are identifiers CEL already declares; snapshot keys with these
// names are not bound as variables.
var celReserved = map[string]struct{}{
	"bool": {}, "bytes": {}, "double": {}, "dyn": {}, "int": {}, "list": {},
	"map": {}, "null_type": {}, "string": {}, "type": {}, "uint": {},
}

type celEvaluator struct{}

// NewCELEvaluator constructs an Evaluator backed by cel-go. The grid flag is
// reachable as snapshot["map"] since "map" is a CEL type name.
func NewCELEvaluator() Evaluator {
	return &celEvaluator{}
}

func (e *celEvaluator) Evaluate(ctx RuleContext, expression string) (any, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	ctx = ctx.withDefaults()
	env, err := e.buildEnv(ctx.Snapshot)
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, wrapEvaluationError("cel", expression, issues.Err())
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, wrapEvaluationError("cel", expression, err)
	}
	out, _, err := program.Eval(e.activation(ctx))
	if err != nil {
		return nil, wrapEvaluationError("cel", expression, err)
	}
	return out.Value(), nil
}

func (e *celEvaluator) buildEnv(snapshot map[string]any) (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("now", celgo.TimestampType),
		celgo.Variable("args", celgo.DynType),
		celgo.Variable("snapshot", celgo.DynType),
	}
	for key := range snapshot {
		if _, reserved := celReserved[key]; reserved {
			continue
		}
		opts = append(opts, celgo.Variable(key, celgo.DynType))
	}
	return celgo.NewEnv(opts...)
}

func (e *celEvaluator) activation(ctx RuleContext) map[string]any {
	activation := map[string]any{
		"now":      ctx.timestamp(),
		"args":     ctx.Args,
		"snapshot": ctx.Snapshot,
	}
	for key, value := range ctx.Snapshot {
		if _, reserved := celReserved[key]; reserved {
			continue
		}
		activation[key] = value
	}
	return activation
}
