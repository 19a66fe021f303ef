package kmap

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoEvaluator is returned when no rule evaluator is available.
var ErrNoEvaluator = errors.New("kmap: evaluator not configured")

// RuleContext carries inputs needed when evaluating an expression.
type RuleContext struct {
	Snapshot map[string]any
	Now      *time.Time
	Args     map[string]any
}

func (ctx RuleContext) withDefaults() RuleContext {
	if ctx.Now == nil {
		now := time.Now()
		ctx.Now = &now
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Snapshot == nil {
		ctx.Snapshot = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	ctx = ctx.withDefaults()
	return *ctx.Now
}

// Evaluator executes expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
}

// ruleView is what rules may read: every payload field as Render reveals it,
// with omitted keys at their defaults, the readable appTag and the extra
// options under "options". Values Render keeps hidden (test, encode, name or
// the endpoint without the test gate) are not exposed.
func (k *Kmap) ruleView() map[string]any {
	revealed := newPayload()
	k.appendFields(revealed)

	view := make(map[string]any, len(propertyTable)+2)
	for _, p := range propertyTable {
		if p.payloadKey == "" {
			continue
		}
		if value, ok := revealed.Get(p.payloadKey); ok {
			view[p.name] = value
			continue
		}
		view[p.name] = p.initial()
	}
	view[PropertyAppTag] = cloneStored(k.field(PropertyAppTag))
	view[PayloadKeyTestAPI], _ = revealed.Get(PayloadKeyTestAPI)

	options := make(map[string]any, k.options.Len())
	for pair := k.options.Oldest(); pair != nil; pair = pair.Next() {
		options[pair.Key] = cloneStored(pair.Value)
	}
	view["options"] = options
	return view
}

// Evaluate runs expr against the values the widget reveals, e.g.
// "size == 4 && fixed".
func (k *Kmap) Evaluate(expr string) (any, error) {
	return k.EvaluateWith(RuleContext{}, expr)
}

// EvaluateWith runs expr using ctx, filling ctx.Snapshot with the revealed
// values when it is nil.
func (k *Kmap) EvaluateWith(ctx RuleContext, expr string) (any, error) {
	if expr == "" {
		return nil, fmt.Errorf("kmap: expression must not be empty")
	}
	evaluator, err := k.resolveEvaluator()
	if err != nil {
		return nil, err
	}
	if ctx.Snapshot == nil {
		ctx.Snapshot = k.ruleView()
	}
	ctx = ctx.withDefaults()
	engine := evaluatorEngineName(evaluator)
	start := time.Now()
	value, evalErr := evaluator.Evaluate(ctx, expr)
	duration := time.Since(start)
	evalErr = wrapEvaluationError(engine, expr, evalErr)
	k.cfg.evaluationLogger().LogEvaluation(EvaluatorLogEvent{
		Engine:   engine,
		Expr:     expr,
		Duration: duration,
		Err:      evalErr,
	})
	if evalErr != nil {
		return nil, evalErr
	}
	return value, nil
}

func (k *Kmap) resolveEvaluator() (Evaluator, error) {
	if k.cfg.evaluator != nil {
		return k.cfg.evaluator, nil
	}
	evaluator := NewExprEvaluator()
	if evaluator == nil {
		return nil, ErrNoEvaluator
	}
	k.cfg.evaluator = evaluator
	return evaluator, nil
}

func evaluatorEngineName(e Evaluator) string {
	switch e.(type) {
	case *exprEvaluator:
		return "expr"
	case *celEvaluator:
		return "cel"
	case nil:
		return "unknown"
	default:
		if named, ok := e.(interface{ Engine() string }); ok {
			return named.Engine()
		}
		return "custom"
	}
}
