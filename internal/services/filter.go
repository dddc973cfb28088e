package services

import (
	"strings"

	"eventbuddy/internal/domain"
)

// SetStatusFilter narrows FilteredEvents to one status; "all" or "" disables it.
func (p *Planner) SetStatusFilter(status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		status = domain.FilterAll
	}
	if status != domain.FilterAll {
		s := domain.NormalizeStatus(status)
		if !s.Valid() {
			return domain.NewValidationError(domain.KindEvent, []domain.FieldError{{Field: "status", Msg: "must be all, planned or done"}})
		}
		status = string(s)
	}
	p.setFilter(func(f *domain.EventFilter) { f.Status = status })
	return nil
}

// SetTagFilter narrows FilteredEvents to events carrying tagID.
func (p *Planner) SetTagFilter(tagID string) {
	tagID = filterValue(tagID)
	p.setFilter(func(f *domain.EventFilter) { f.TagID = tagID })
}

// SetParticipantFilter narrows FilteredEvents to events linked to participantID.
func (p *Planner) SetParticipantFilter(participantID string) {
	participantID = filterValue(participantID)
	p.setFilter(func(f *domain.EventFilter) { f.ParticipantID = participantID })
}

// Filters returns the current filter dimensions.
func (p *Planner) Filters() domain.EventFilter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.filter
}

func (p *Planner) setFilter(set func(*domain.EventFilter)) {
	p.mutate(func() []domain.Notification {
		set(&p.filter)
		p.logger.Debug("filter changed", "status", p.filter.Status, "tag", p.filter.TagID, "participant", p.filter.ParticipantID)
		return []domain.Notification{{Kind: domain.NotifyFilterChanged}}
	})
}

func filterValue(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return domain.FilterAll
	}
	return v
}
