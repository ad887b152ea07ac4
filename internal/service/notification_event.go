package service

import (
	"fmt"

	"household-sync-be/pkg/chorewatch"
	"household-sync-be/pkg/events"

	"github.com/google/uuid"
)

// toBusEvent flattens a change into the payload carried on the event bus.
func toBusEvent(target chorewatch.Target, evt chorewatch.Event) events.BaseEvent {
	data := map[string]interface{}{
		"event_id":  uuid.NewString(),
		"device_id": target.DeviceId,
		"group_id":  target.GroupId,
	}
	switch evt.Kind {
	case chorewatch.EventNewChores, chorewatch.EventNewGroceries:
		data["count"] = evt.Count
	case chorewatch.EventGroupRenamed:
		data["old_name"] = evt.OldName
		data["new_name"] = evt.NewName
	}
	return events.NewEvent(string(evt.Kind), data)
}

// fromBusEvent is the inverse of toBusEvent.
func fromBusEvent(event events.Event) (chorewatch.Target, chorewatch.Event, error) {
	target := chorewatch.Target{
		DeviceId: events.PayloadString(event, "device_id"),
		GroupId:  events.PayloadString(event, "group_id"),
	}
	if !target.Valid() {
		return target, chorewatch.Event{}, fmt.Errorf("event %s has no device/group", event.EventType())
	}

	kind := chorewatch.EventKind(events.TypeFromSubject(event.EventType()))
	switch kind {
	case chorewatch.EventNewChores, chorewatch.EventNewGroceries:
		count, ok := events.PayloadInt(event, "count")
		if !ok || count <= 0 {
			return target, chorewatch.Event{}, fmt.Errorf("event %s has invalid count", kind)
		}
		return target, chorewatch.Event{Kind: kind, Count: count}, nil
	case chorewatch.EventGroupRenamed:
		return target, chorewatch.GroupRenamed(
			events.PayloadString(event, "old_name"),
			events.PayloadString(event, "new_name"),
		), nil
	default:
		return target, chorewatch.Event{}, fmt.Errorf("unknown event type %q", event.EventType())
	}
}
