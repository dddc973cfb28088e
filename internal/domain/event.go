package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// EventStatus is the lifecycle state of an Event.
type EventStatus string

const (
	StatusPlanned EventStatus = "planned"
	StatusDone    EventStatus = "done"
)

// Valid reports whether s belongs to the closed status set.
func (s EventStatus) Valid() bool {
	return s == StatusPlanned || s == StatusDone
}

// NormalizeStatus maps an incoming status label onto the closed set.
// Empty input yields StatusPlanned; the German labels used by older data files
// ("geplant", "abgeschlossen") map to their canonical values. Unknown labels are
// returned unchanged so validation can reject them.
func NormalizeStatus(s string) EventStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "planned", "geplant":
		return StatusPlanned
	case "done", "abgeschlossen":
		return StatusDone
	}
	return EventStatus(s)
}

// ParticipationStatus is a participant's answer for one event.
type ParticipationStatus string

const (
	ParticipationAccepted  ParticipationStatus = "accepted"
	ParticipationDeclined  ParticipationStatus = "declined"
	ParticipationUndecided ParticipationStatus = "undecided"
)

// Valid reports whether s is one of accepted, declined or undecided.
func (s ParticipationStatus) Valid() bool {
	switch s {
	case ParticipationAccepted, ParticipationDeclined, ParticipationUndecided:
		return true
	}
	return false
}

// ParticipantLink attaches a participant to an event with a per-event status.
type ParticipantLink struct {
	ParticipantID string              `json:"participantId" yaml:"participantId"`
	Status        ParticipationStatus `json:"status" yaml:"status"`
}

// Event is a planned or past happening.
// swagger:model Event
type Event struct {
	ID           string            `json:"id" yaml:"id"`
	Title        string            `json:"title" yaml:"title"`
	Description  string            `json:"description" yaml:"description"`
	Datetime     string            `json:"datetime,omitempty" yaml:"datetime,omitempty"`
	Location     string            `json:"location" yaml:"location"`
	Status       EventStatus       `json:"status" yaml:"status"`
	TagIDs       []string          `json:"tagIds" yaml:"tagIds"`
	Participants []ParticipantLink `json:"participants" yaml:"participants"`
}

// eventDocument is Event as found in data files, where older files list tag
// ids under "tags".
type eventDocument struct {
	ID           string            `json:"id" yaml:"id"`
	Title        string            `json:"title" yaml:"title"`
	Description  string            `json:"description" yaml:"description"`
	Datetime     string            `json:"datetime" yaml:"datetime"`
	Location     string            `json:"location" yaml:"location"`
	Status       EventStatus       `json:"status" yaml:"status"`
	TagIDs       []string          `json:"tagIds" yaml:"tagIds"`
	Tags         []string          `json:"tags" yaml:"tags"`
	Participants []ParticipantLink `json:"participants" yaml:"participants"`
}

func (d eventDocument) event() Event {
	tagIDs := d.TagIDs
	if tagIDs == nil {
		tagIDs = d.Tags
	}
	return Event{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		Datetime:     d.Datetime,
		Location:     d.Location,
		Status:       d.Status,
		TagIDs:       tagIDs,
		Participants: d.Participants,
	}
}

// UnmarshalJSON accepts "tags" as an alias of "tagIds"; "tagIds" wins when
// both are present.
func (e *Event) UnmarshalJSON(b []byte) error {
	var d eventDocument
	if err := json.Unmarshal(b, &d); err != nil {
		return err
	}
	*e = d.event()
	return nil
}

// UnmarshalYAML is UnmarshalJSON for YAML documents.
func (e *Event) UnmarshalYAML(unmarshal func(any) error) error {
	var d eventDocument
	if err := unmarshal(&d); err != nil {
		return err
	}
	*e = d.event()
	return nil
}

// Clone returns a deep copy so callers never share slices with the store.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	c := *e
	c.TagIDs = append([]string{}, e.TagIDs...)
	c.Participants = append([]ParticipantLink{}, e.Participants...)
	return &c
}

// HasTag reports whether tagID is among the event's tags.
func (e *Event) HasTag(tagID string) bool {
	for _, id := range e.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

// HasParticipant reports whether participantID is linked to the event.
func (e *Event) HasParticipant(participantID string) bool {
	for _, l := range e.Participants {
		if l.ParticipantID == participantID {
			return true
		}
	}
	return false
}

var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Start parses Datetime. Values without a zone are read as UTC.
func (e *Event) Start() (time.Time, bool) {
	if e.Datetime == "" {
		return time.Time{}, false
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, e.Datetime); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EventPatch is a partial update. A nil field is left untouched; a non-nil field
// replaces the stored value, including slices which are replaced wholesale.
type EventPatch struct {
	Title        *string            `json:"title,omitempty"`
	Description  *string            `json:"description,omitempty"`
	Datetime     *string            `json:"datetime,omitempty"`
	Location     *string            `json:"location,omitempty"`
	Status       *EventStatus       `json:"status,omitempty"`
	TagIDs       *[]string          `json:"tagIds,omitempty"`
	Participants *[]ParticipantLink `json:"participants,omitempty"`
}

// Apply writes every present field of p onto e.
func (p EventPatch) Apply(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Datetime != nil {
		e.Datetime = *p.Datetime
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.TagIDs != nil {
		e.TagIDs = append([]string{}, (*p.TagIDs)...)
	}
	if p.Participants != nil {
		e.Participants = append([]ParticipantLink{}, (*p.Participants)...)
	}
}

// NormalizeEvent fills defaults and drops duplicate tag ids and participant links,
// keeping the first occurrence of each.
func NormalizeEvent(e *Event) {
	e.Title = strings.TrimSpace(e.Title)
	e.Status = NormalizeStatus(string(e.Status))

	seenTags := make(map[string]struct{}, len(e.TagIDs))
	tags := make([]string, 0, len(e.TagIDs))
	for _, id := range e.TagIDs {
		if _, ok := seenTags[id]; ok {
			continue
		}
		seenTags[id] = struct{}{}
		tags = append(tags, id)
	}
	e.TagIDs = tags

	seenParticipants := make(map[string]struct{}, len(e.Participants))
	links := make([]ParticipantLink, 0, len(e.Participants))
	for _, l := range e.Participants {
		if _, ok := seenParticipants[l.ParticipantID]; ok {
			continue
		}
		seenParticipants[l.ParticipantID] = struct{}{}
		if l.Status == "" {
			l.Status = ParticipationUndecided
		}
		links = append(links, l)
	}
	e.Participants = links
}

// ValidateEvent checks required fields and closed value sets. References to tags
// and participants are checked by the store, which owns those collections.
func ValidateEvent(e *Event) []FieldError {
	var errs []FieldError
	if strings.TrimSpace(e.Title) == "" {
		errs = append(errs, FieldError{"title", "required"})
	}
	if !e.Status.Valid() {
		errs = append(errs, FieldError{"status", "must be planned or done"})
	}
	for i, l := range e.Participants {
		if l.ParticipantID == "" {
			errs = append(errs, FieldError{participantField(i, "participantId"), "required"})
		}
		if !l.Status.Valid() {
			errs = append(errs, FieldError{participantField(i, "status"), "must be accepted, declined or undecided"})
		}
	}
	return errs
}

func participantField(i int, name string) string {
	return fmt.Sprintf("participants[%d].%s", i, name)
}
