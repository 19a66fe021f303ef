package activity

import (
	"strings"
	"time"
)

// Verbs emitted for widget configuration changes.
const (
	VerbPropertySet = "kmap.property.set"
	VerbOptionSet   = "kmap.option.set"
	VerbAPISet      = "kmap.api.set"
	VerbReset       = "kmap.reset"

	// ObjectTypeKmap is the object type of every widget event.
	ObjectTypeKmap = "kmap"
)

// KmapEventInput describes the common fields of widget events.
type KmapEventInput struct {
	ActorID    string
	ObjectID   string
	Channel    string
	Property   string
	NewValue   any
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildKmapPropertySetEvent describes a recognized property being stored.
func BuildKmapPropertySetEvent(input KmapEventInput) Event {
	return buildKmapEvent(VerbPropertySet, input)
}

// BuildKmapOptionSetEvent describes an extra passthrough option being stored.
func BuildKmapOptionSetEvent(input KmapEventInput) Event {
	return buildKmapEvent(VerbOptionSet, input)
}

// BuildKmapAPISetEvent describes an API endpoint being stored.
func BuildKmapAPISetEvent(input KmapEventInput) Event {
	return buildKmapEvent(VerbAPISet, input)
}

// BuildKmapResetEvent describes a reset to defaults.
func BuildKmapResetEvent(input KmapEventInput) Event {
	return buildKmapEvent(VerbReset, input)
}

func buildKmapEvent(verb string, input KmapEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if property := strings.TrimSpace(input.Property); property != "" {
		if metadata == nil {
			metadata = map[string]any{}
		}
		metadata["property"] = property
		metadata["new_value"] = input.NewValue
	}
	objectID := strings.TrimSpace(input.ObjectID)
	if objectID == "" {
		objectID = ObjectTypeKmap
	}
	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		ObjectType: ObjectTypeKmap,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}
