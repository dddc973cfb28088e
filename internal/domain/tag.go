package domain

import "strings"

// Tag represents a named label shared across events.
// swagger:model Tag
type Tag struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// Clone returns a copy of t.
func (t *Tag) Clone() *Tag {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// TagPatch is a partial update; a nil Title leaves the tag untouched.
type TagPatch struct {
	Title *string `json:"title,omitempty"`
}

// Apply writes the present fields of patch onto t.
func (patch TagPatch) Apply(t *Tag) {
	if patch.Title != nil {
		t.Title = *patch.Title
	}
}

// NormalizeTag trims the title.
func NormalizeTag(t *Tag) {
	t.Title = strings.TrimSpace(t.Title)
}

// ValidateTag checks that the title is present.
func ValidateTag(t *Tag) []FieldError {
	if strings.TrimSpace(t.Title) == "" {
		return []FieldError{{"title", "required"}}
	}
	return nil
}
