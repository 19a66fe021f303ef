package kmap

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
)

// exprEvaluator executes rule expressions using github.com/expr-lang/expr.
type exprEvaluator struct{}

// NewExprEvaluator constructs an Evaluator backed by expr-lang/expr.
func NewExprEvaluator() Evaluator {
	return &exprEvaluator{}
}

func (e *exprEvaluator) Evaluate(ctx RuleContext, expression string) (any, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	ctx = ctx.withDefaults()
	env := e.environment(ctx)
	program, err := exprlang.Compile(expression, exprlang.Env(env), exprlang.AllowUndefinedVariables())
	if err != nil {
		return nil, wrapEvaluationError("expr", expression, err)
	}
	result, err := exprlang.Run(program, env)
	if err != nil {
		return nil, wrapEvaluationError("expr", expression, err)
	}
	return result, nil
}

func (e *exprEvaluator) environment(ctx RuleContext) map[string]any {
	env := map[string]any{
		"now":  ctx.timestamp(),
		"args": ctx.Args,
	}
	for key, value := range ctx.Snapshot {
		env[key] = value
	}
	return env
}
