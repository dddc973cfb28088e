package domain

import "fmt"

// SelectionMode is the tri-state of a per-kind selection.
type SelectionMode int

const (
	// SelectionNone means no detail view.
	SelectionNone SelectionMode = iota
	// SelectionCreate asks the UI for an empty creation form.
	SelectionCreate
	// SelectionRecord points at a record by id.
	SelectionRecord
)

func (m SelectionMode) String() string {
	switch m {
	case SelectionCreate:
		return "create"
	case SelectionRecord:
		return "selected"
	}
	return "none"
}

// MarshalText encodes the mode by name.
func (m SelectionMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText accepts "none", "create" or "selected".
func (m *SelectionMode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "", "none":
		*m = SelectionNone
	case "create":
		*m = SelectionCreate
	case "selected":
		*m = SelectionRecord
	default:
		return fmt.Errorf("unknown selection mode %q", string(b))
	}
	return nil
}

// Selection is what the store remembers: never a snapshot of the record, only
// its id, so reads always see the live record.
type Selection struct {
	Mode SelectionMode `json:"mode"`
	ID   string        `json:"id,omitempty"`
}

// Unselected clears the detail view.
func Unselected() Selection { return Selection{Mode: SelectionNone} }

// CreateNew switches the detail view into creation mode.
func CreateNew() Selection { return Selection{Mode: SelectionCreate} }

// SelectID selects the record with the given id. An empty id means unselected.
func SelectID(id string) Selection {
	if id == "" {
		return Unselected()
	}
	return Selection{Mode: SelectionRecord, ID: id}
}
