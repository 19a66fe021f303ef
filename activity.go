package kmap

import (
	"context"

	"github.com/goliatone/go-kmap/pkg/activity"
)

const activityChannel = "kmap"

// ActivityHooks returns a cloned slice of the configured activity hooks.
func (k *Kmap) ActivityHooks() activity.Hooks {
	if k == nil {
		return nil
	}
	return cloneActivityHooks(k.cfg.activityHooks)
}

func newEmitter(cfg config) *activity.Emitter {
	channel := cfg.activityChannel
	if channel == "" {
		channel = activityChannel
	}
	return activity.NewEmitter(cfg.activityHooks, activity.Config{
		Enabled: len(cfg.activityHooks) > 0,
		Channel: channel,
	})
}

func (k *Kmap) emit(build func(activity.KmapEventInput) activity.Event, property string, value any) {
	if !k.emitter.Enabled() {
		return
	}
	event := build(activity.KmapEventInput{
		ObjectID: k.id,
		Property: property,
		NewValue: value,
	})
	if err := k.emitter.Emit(context.Background(), event); err != nil {
		k.cfg.diagnosticLogger().LogDiagnostic(Diagnostic{
			Component: "kmap.activity",
			Operation: "emit",
			Property:  property,
			Err:       err,
		})
	}
}

func cloneActivityHooks(hooks activity.Hooks) activity.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]activity.ActivityHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return activity.Hooks(normalized)
}
