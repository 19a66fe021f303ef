package kmap

import (
	"github.com/goliatone/go-kmap/pkg/activity"
	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const component = "kmap"

// Kmap accumulates the display options of one embedded K-map widget.
//
// Fields are write-only from the outside: Set changes them and Render reports
// them. Only appTag and the API holder are readable through Get.
type Kmap struct {
	id string

	// fields holds every recognized property under its canonical name,
	// exactly as it was set.
	fields  map[string]any
	options *orderedmap.OrderedMap[string, any]
	api     *API

	cfg     config
	emitter *activity.Emitter
}

// New constructs a Kmap with every field at its default.
func New(opts ...Option) *Kmap {
	cfg := applyOptions(opts)
	id := cfg.id
	if id == "" {
		id = uuid.NewString()
	}
	k := &Kmap{
		id:      id,
		cfg:     cfg,
		emitter: newEmitter(cfg),
	}
	k.applyDefaults()
	return k
}

// ID returns the instance identifier.
func (k *Kmap) ID() string {
	return k.id
}

// Reset restores every field to its default, clears the extra options and
// replaces the API holder with a fresh one.
func (k *Kmap) Reset() {
	k.applyDefaults()
	k.emit(activity.BuildKmapResetEvent, "", nil)
}

func (k *Kmap) applyDefaults() {
	k.fields = make(map[string]any, len(propertyTable))
	for _, p := range propertyTable {
		k.fields[p.name] = p.initial()
	}
	k.options = orderedmap.New[string, any]()
	if k.api != nil {
		k.api.owner = nil
	}
	k.api = &API{owner: k}
}

// Set stores value under a recognized property name without converting or
// checking it. Unknown names leave the model untouched, log a diagnostic and
// report SetUnknownProperty.
func (k *Kmap) Set(property string, value any) SetResult {
	p, ok := lookupProperty(property)
	if !ok {
		return k.reject(rejected(component, property, value))
	}
	k.fields[p.name] = cloneStored(value)
	k.emit(activity.BuildKmapPropertySetEvent, p.name, value)
	return applied(property)
}

// Get reads one of the externally readable properties: appTag or api.
func (k *Kmap) Get(property string) GetResult {
	if property == PropertyAPI {
		return found(property, k.api)
	}
	if p, ok := lookupProperty(property); ok && p.readable {
		return found(property, cloneStored(k.fields[p.name]))
	}
	result := notFound(component, property)
	k.cfg.diagnosticLogger().LogDiagnostic(diagnosticFrom(result.err))
	return result
}

// API returns the owned endpoint holder.
func (k *Kmap) API() *API {
	return k.api
}

// Option adds or overwrites an extra option passed through to the client.
// An overwritten option keeps its original position.
func (k *Kmap) Option(name string, value any) {
	k.options.Set(name, value)
	k.emit(activity.BuildKmapOptionSetEvent, name, value)
}

func (k *Kmap) reject(result SetResult) SetResult {
	k.cfg.diagnosticLogger().LogDiagnostic(diagnosticFrom(result.err))
	return result
}

func (k *Kmap) field(name string) any {
	return k.fields[name]
}
