// Package usersink records widget configuration changes in a go-users
// activity feed.
package usersink

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-kmap/pkg/activity"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Hook adapts activity events to a go-users ActivitySink.
type Hook struct {
	Sink usertypes.ActivitySink
	// ActorID is recorded for events that carry no actor, typically the
	// author whose session configures the widgets.
	ActorID string
	// TenantID scopes every record; empty leaves it unset.
	TenantID string
	// Now stamps records whose event has no timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Notify maps the event into an ActivityRecord and forwards it to the sink.
// Events missing a verb, object type or object ID are dropped.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil {
		return nil
	}
	occurredAt := event.OccurredAt
	event = activity.NormalizeEvent(event)
	if !event.Valid() {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	actor := event.ActorID
	if actor == "" {
		actor = h.ActorID
	}
	actorID := parseUUID(actor)

	record := usertypes.ActivityRecord{
		ActorID:    actorID,
		UserID:     actorID,
		TenantID:   parseUUID(h.TenantID),
		Verb:       event.Verb,
		ObjectType: event.ObjectType,
		ObjectID:   event.ObjectID,
		Channel:    event.Channel,
		Data:       recordData(event),
		OccurredAt: occurredAt,
	}
	if record.OccurredAt.IsZero() {
		record.OccurredAt = h.now()
	}
	return h.Sink.Log(ctx, record)
}

func (h Hook) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// recordData keeps the widget metadata and names the actor when it is not a
// UUID, since ActivityRecord only stores UUID actors.
func recordData(event activity.Event) map[string]any {
	data := make(map[string]any, len(event.Metadata)+1)
	for key, value := range event.Metadata {
		data[key] = value
	}
	if event.ActorID != "" && parseUUID(event.ActorID) == uuid.Nil {
		data["actor"] = event.ActorID
	}
	if len(data) == 0 {
		return nil
	}
	return data
}

func parseUUID(input string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(input))
	if err != nil {
		return uuid.Nil
	}
	return id
}
