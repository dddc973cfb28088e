package domain

// NotificationKind names a change broadcast by the store.
type NotificationKind string

const (
	NotifyDataReady                   NotificationKind = "data-ready"
	NotifyEventsChanged               NotificationKind = "events-changed"
	NotifyParticipantsChanged         NotificationKind = "participants-changed"
	NotifyTagsChanged                 NotificationKind = "tags-changed"
	NotifyEventSelectionChanged       NotificationKind = "event-selection-changed"
	NotifyParticipantSelectionChanged NotificationKind = "participant-selection-changed"
	NotifyTagSelectionChanged         NotificationKind = "tag-selection-changed"
	NotifyFilterChanged               NotificationKind = "filter-changed"
	NotifyError                       NotificationKind = "error"
)

// NotificationKinds lists every kind in a stable order.
var NotificationKinds = []NotificationKind{
	NotifyDataReady,
	NotifyEventsChanged,
	NotifyParticipantsChanged,
	NotifyTagsChanged,
	NotifyEventSelectionChanged,
	NotifyParticipantSelectionChanged,
	NotifyTagSelectionChanged,
	NotifyFilterChanged,
	NotifyError,
}

// ChangedKind returns the "<kind>s-changed" notification for a collection.
func ChangedKind(k EntityKind) NotificationKind {
	switch k {
	case KindEvent:
		return NotifyEventsChanged
	case KindParticipant:
		return NotifyParticipantsChanged
	case KindTag:
		return NotifyTagsChanged
	}
	return ""
}

// SelectionChangedKind returns the "<kind>-selection-changed" notification for a collection.
func SelectionChangedKind(k EntityKind) NotificationKind {
	switch k {
	case KindEvent:
		return NotifyEventSelectionChanged
	case KindParticipant:
		return NotifyParticipantSelectionChanged
	case KindTag:
		return NotifyTagSelectionChanged
	}
	return ""
}

// Notification is the payload handed to observers. Payloads are minimal: at most
// one record (selection notifications) or a message (error). Observers re-read
// derived state from the store instead of relying on the payload.
type Notification struct {
	Kind        NotificationKind `json:"kind"`
	Selection   *Selection       `json:"selection,omitempty"`
	Event       *Event           `json:"event,omitempty"`
	Participant *Participant     `json:"participant,omitempty"`
	Tag         *Tag             `json:"tag,omitempty"`
	Message     string           `json:"message,omitempty"`
}

// NotificationHandler receives notifications synchronously.
type NotificationHandler func(Notification)

// Notifier is the observer-facing half of the notification channel.
type Notifier interface {
	// Subscribe registers h for one kind and returns a function that removes it.
	Subscribe(kind NotificationKind, h NotificationHandler) (unsubscribe func())
	// SubscribeAll registers h for every kind.
	SubscribeAll(h NotificationHandler) (unsubscribe func())
}
