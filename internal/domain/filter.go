package domain

// FilterAll disables a filter dimension.
const FilterAll = "all"

// EventFilter holds the three filter dimensions applied to events.
// swagger:model EventFilter
type EventFilter struct {
	Status        string `json:"status"`
	TagID         string `json:"tag"`
	ParticipantID string `json:"participant"`
}

// DefaultEventFilter has every dimension set to FilterAll.
func DefaultEventFilter() EventFilter {
	return EventFilter{Status: FilterAll, TagID: FilterAll, ParticipantID: FilterAll}
}

func active(v string) bool { return v != "" && v != FilterAll }

// Apply returns the events matching every active dimension, in input order.
// Dimensions are applied as status, then tag, then participant.
func (f EventFilter) Apply(events []*Event) []*Event {
	out := events
	if active(f.Status) {
		out = keep(out, func(e *Event) bool { return string(e.Status) == f.Status })
	}
	if active(f.TagID) {
		out = keep(out, func(e *Event) bool { return e.HasTag(f.TagID) })
	}
	if active(f.ParticipantID) {
		out = keep(out, func(e *Event) bool { return e.HasParticipant(f.ParticipantID) })
	}
	return out
}

func keep(events []*Event, pred func(*Event) bool) []*Event {
	out := make([]*Event, 0, len(events))
	for _, e := range events {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}
