package usersink

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-kmap/pkg/activity"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

type recordingSink struct {
	records []usertypes.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record usertypes.ActivityRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func TestHookNotifyMapsWidgetEvent(t *testing.T) {
	sink := &recordingSink{}
	tenantID := uuid.New()
	authorID := uuid.New()
	now := time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)
	hook := Hook{
		Sink:     sink,
		ActorID:  authorID.String(),
		TenantID: tenantID.String(),
		Now:      func() time.Time { return now },
	}

	event := activity.BuildKmapPropertySetEvent(activity.KmapEventInput{
		ObjectID: "widget-1",
		Channel:  "course",
		Property: "size",
		NewValue: 4,
	})
	if err := hook.Notify(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}

	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.ActorID != authorID || record.UserID != authorID {
		t.Fatalf("expected fallback actor %s, got %s", authorID, record.ActorID)
	}
	if record.TenantID != tenantID {
		t.Fatalf("expected tenant %s, got %s", tenantID, record.TenantID)
	}
	if record.Verb != activity.VerbPropertySet || record.ObjectType != activity.ObjectTypeKmap || record.ObjectID != "widget-1" {
		t.Fatalf("unexpected record envelope %+v", record)
	}
	if record.Channel != "course" {
		t.Fatalf("expected channel course, got %q", record.Channel)
	}
	if record.Data["property"] != "size" || record.Data["new_value"] != 4 {
		t.Fatalf("unexpected record data %+v", record.Data)
	}
	if !record.OccurredAt.Equal(now) {
		t.Fatalf("expected injected clock, got %s", record.OccurredAt)
	}
}

func TestHookKeepsNonUUIDActorInData(t *testing.T) {
	sink := &recordingSink{}
	event := activity.BuildKmapResetEvent(activity.KmapEventInput{ActorID: "staff-user", ObjectID: "widget-2"})

	if err := (Hook{Sink: sink}).Notify(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}
	record := sink.records[0]
	if record.ActorID != uuid.Nil {
		t.Fatalf("expected nil actor uuid, got %s", record.ActorID)
	}
	if record.Data["actor"] != "staff-user" {
		t.Fatalf("expected actor name in data, got %+v", record.Data)
	}
}

func TestHookSkipsIncompleteEvents(t *testing.T) {
	sink := &recordingSink{}
	if err := (Hook{Sink: sink}).Notify(context.Background(), activity.Event{Verb: activity.VerbReset}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sink.records) != 0 {
		t.Fatalf("expected incomplete event to be dropped")
	}
}

func TestHookReturnsSinkErrors(t *testing.T) {
	sink := &recordingSink{err: errors.New("feed unavailable")}
	event := activity.BuildKmapResetEvent(activity.KmapEventInput{ObjectID: "widget-3"})
	if err := (Hook{Sink: sink}).Notify(context.Background(), event); err == nil {
		t.Fatalf("expected sink error")
	}
}

func TestHookWithoutSinkIsNoop(t *testing.T) {
	event := activity.BuildKmapResetEvent(activity.KmapEventInput{ObjectID: "1"})
	if err := (Hook{}).Notify(context.Background(), event); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestParseUUID(t *testing.T) {
	id := uuid.New()
	if got := parseUUID(" " + id.String() + " "); got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}
	if got := parseUUID("staff-user"); got != uuid.Nil {
		t.Fatalf("expected nil uuid for non-uuid input, got %s", got)
	}
}
