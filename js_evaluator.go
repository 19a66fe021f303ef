//go:build js_eval

package kmap

import (
	"fmt"

	"github.com/dop251/goja"
)

type jsEvaluator struct{}

// NewJSEvaluator constructs an Evaluator backed by goja.
func NewJSEvaluator() Evaluator {
	return &jsEvaluator{}
}

// Engine names the evaluator in log events.
func (e *jsEvaluator) Engine() string {
	return "js"
}

func (e *jsEvaluator) Evaluate(ctx RuleContext, expression string) (any, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	ctx = ctx.withDefaults()
	vm := goja.New()
	if err := e.injectContext(vm, ctx); err != nil {
		return nil, err
	}
	value, err := vm.RunString(fmt.Sprintf("(function(){ return (%s); })()", expression))
	if err != nil {
		return nil, wrapEvaluationError("js", expression, err)
	}
	return value.Export(), nil
}

func (e *jsEvaluator) injectContext(vm *goja.Runtime, ctx RuleContext) error {
	if err := vm.Set("now", ctx.timestamp()); err != nil {
		return err
	}
	if err := vm.Set("args", ctx.Args); err != nil {
		return err
	}
	for key, value := range ctx.Snapshot {
		if err := vm.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

func jsEvaluatorAvailable() bool {
	return true
}
