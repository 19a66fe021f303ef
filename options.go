package kmap

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/goliatone/go-kmap/pkg/activity"
)

// Option configures a Kmap at construction.
type Option func(*config)

type config struct {
	id              string
	logger          DiagnosticLogger
	evaluator       Evaluator
	evaluatorLogger EvaluatorLogger
	schemaGenerator SchemaGenerator
	activityHooks   activity.Hooks
	activityChannel string
}

func applyOptions(opts []Option) config {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithID overrides the generated instance identifier used as the object ID
// of activity events.
func WithID(id string) Option {
	return func(cfg *config) {
		cfg.id = strings.TrimSpace(id)
	}
}

// WithLogger attaches a diagnostic logger. A nil logger discards diagnostics.
func WithLogger(logger DiagnosticLogger) Option {
	return func(cfg *config) {
		if logger == nil {
			cfg.logger = noopDiagnosticLogger{}
			return
		}
		cfg.logger = logger
	}
}

// WithCharmLogger reports diagnostics through a charmbracelet logger.
func WithCharmLogger(logger *log.Logger) Option {
	return WithLogger(CharmLogger(logger))
}

// WithEvaluator configures the rule evaluator used by Evaluate.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *config) {
		cfg.evaluator = e
	}
}

// WithEvaluatorLogger attaches an evaluation logger.
func WithEvaluatorLogger(logger EvaluatorLogger) Option {
	return func(cfg *config) {
		cfg.evaluatorLogger = logger
	}
}

// WithSchemaGenerator configures a custom schema generator implementation.
func WithSchemaGenerator(generator SchemaGenerator) Option {
	return func(cfg *config) {
		cfg.schemaGenerator = generator
	}
}

// WithActivityHooks attaches activity hooks notified of every successful
// mutation. Hooks are cloned and nil entries dropped.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := cloneActivityHooks(hooks)
	return func(cfg *config) {
		cfg.activityHooks = normalized
	}
}

// WithActivityChannel sets the channel stamped on emitted events.
func WithActivityChannel(channel string) Option {
	return func(cfg *config) {
		cfg.activityChannel = channel
	}
}

func (c config) diagnosticLogger() DiagnosticLogger {
	if c.logger != nil {
		return c.logger
	}
	return noopDiagnosticLogger{}
}

func (c config) evaluationLogger() EvaluatorLogger {
	if c.evaluatorLogger != nil {
		return c.evaluatorLogger
	}
	return noopEvaluatorLogger{}
}
