package domain

import "strings"

// Participant is a person who can be linked to events.
// swagger:model Participant
type Participant struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Email  string `json:"email" yaml:"email"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}

// Clone returns a copy of p.
func (p *Participant) Clone() *Participant {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// ParticipantPatch is a partial update; nil fields are left untouched.
type ParticipantPatch struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// Apply writes every present field of patch onto p.
func (patch ParticipantPatch) Apply(p *Participant) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.Avatar != nil {
		p.Avatar = *patch.Avatar
	}
}

// NormalizeParticipant trims the required text fields.
func NormalizeParticipant(p *Participant) {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
}

// ValidateParticipant checks that name and email are present.
func ValidateParticipant(p *Participant) []FieldError {
	var errs []FieldError
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, FieldError{"name", "required"})
	}
	if strings.TrimSpace(p.Email) == "" {
		errs = append(errs, FieldError{"email", "required"})
	}
	return errs
}
