//go:build !js_eval

package kmap

// NewJSEvaluator is unavailable without the js_eval build tag.
func NewJSEvaluator() Evaluator {
	return nil
}

func jsEvaluatorAvailable() bool {
	return false
}
