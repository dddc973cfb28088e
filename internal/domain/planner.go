package domain

import "context"

// EventStore is the event half of the store's public contract.
type EventStore interface {
	AddEvent(e Event) (*Event, error)
	UpdateEvent(id string, patch EventPatch) (*Event, error)
	DeleteEvent(id string) error
	Events() []*Event
	FilteredEvents() []*Event
	GetEventByID(id string) (*Event, bool)
	SelectEvent(sel Selection)
	CurrentEvent() (*Event, Selection)
}

// ParticipantStore is the participant half of the store's public contract.
type ParticipantStore interface {
	AddParticipant(p Participant) (*Participant, error)
	UpdateParticipant(id string, patch ParticipantPatch) (*Participant, error)
	DeleteParticipant(id string) error
	Participants() []*Participant
	GetParticipantByID(id string) (*Participant, bool)
	EventsForParticipant(id string) []*Event
	SelectParticipant(sel Selection)
	CurrentParticipant() (*Participant, Selection)
}

// TagStore is the tag half of the store's public contract.
type TagStore interface {
	AddTag(t Tag) (*Tag, error)
	UpdateTag(id string, patch TagPatch) (*Tag, error)
	DeleteTag(id string) error
	Tags() []*Tag
	GetTagByID(id string) (*Tag, bool)
	// GetTagTitle falls back to the id when the tag is unknown.
	GetTagTitle(id string) string
	EventsForTag(id string) []*Event
	SelectTag(sel Selection)
	CurrentTag() (*Tag, Selection)
}

// FilterStore holds the event filter dimensions.
type FilterStore interface {
	SetStatusFilter(status string) error
	SetTagFilter(tagID string)
	SetParticipantFilter(participantID string)
	Filters() EventFilter
}

// PlannerService is everything a UI layer may call on the store.
type PlannerService interface {
	EventStore
	ParticipantStore
	TagStore
	FilterStore
	Notifier
	Load(ctx context.Context, loader SnapshotLoader) error
	Ready() bool
	Count(kind EntityKind) int
}
