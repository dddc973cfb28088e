package domain

// EntityKind names one of the three collections.
type EntityKind string

const (
	KindEvent       EntityKind = "event"
	KindParticipant EntityKind = "participant"
	KindTag         EntityKind = "tag"
)

// IDPrefix is prepended to locally generated ids.
func (k EntityKind) IDPrefix() string {
	switch k {
	case KindEvent:
		return "e"
	case KindParticipant:
		return "p"
	case KindTag:
		return "t"
	}
	return ""
}

// ParseEntityKind accepts the singular or plural collection name.
func ParseEntityKind(s string) (EntityKind, bool) {
	switch s {
	case "event", "events":
		return KindEvent, true
	case "participant", "participants":
		return KindParticipant, true
	case "tag", "tags":
		return KindTag, true
	}
	return "", false
}
