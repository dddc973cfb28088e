package services

import "eventbuddy/internal/domain"

// SelectEvent sets the event selection and publishes event-selection-changed.
func (p *Planner) SelectEvent(sel domain.Selection) { p.selectKind(domain.KindEvent, sel) }

// SelectParticipant sets the participant selection.
func (p *Planner) SelectParticipant(sel domain.Selection) {
	p.selectKind(domain.KindParticipant, sel)
}

// SelectTag sets the tag selection.
func (p *Planner) SelectTag(sel domain.Selection) { p.selectKind(domain.KindTag, sel) }

func (p *Planner) selectKind(kind domain.EntityKind, sel domain.Selection) {
	p.mutate(func() []domain.Notification {
		p.selections[kind] = sel
		p.logger.Debug("selection changed", "kind", kind, "mode", sel.Mode, "id", sel.ID)
		return []domain.Notification{p.selectionNotificationLocked(kind)}
	})
}

// CurrentEvent returns the live selected event, or nil with the effective
// selection when nothing (or creation mode) is selected.
func (p *Planner) CurrentEvent() (*domain.Event, domain.Selection) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	sel := p.effectiveSelectionLocked(domain.KindEvent)
	if sel.Mode != domain.SelectionRecord {
		return nil, sel
	}
	ev, _ := p.events.Get(sel.ID)
	return ev.Clone(), sel
}

// CurrentParticipant is CurrentEvent for participants.
func (p *Planner) CurrentParticipant() (*domain.Participant, domain.Selection) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	sel := p.effectiveSelectionLocked(domain.KindParticipant)
	if sel.Mode != domain.SelectionRecord {
		return nil, sel
	}
	rec, _ := p.participants.Get(sel.ID)
	return rec.Clone(), sel
}

// CurrentTag is CurrentEvent for tags.
func (p *Planner) CurrentTag() (*domain.Tag, domain.Selection) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	sel := p.effectiveSelectionLocked(domain.KindTag)
	if sel.Mode != domain.SelectionRecord {
		return nil, sel
	}
	rec, _ := p.tags.Get(sel.ID)
	return rec.Clone(), sel
}

// effectiveSelectionLocked resolves the stored selection against the
// collection: an id that no longer resolves reads as unselected.
func (p *Planner) effectiveSelectionLocked(kind domain.EntityKind) domain.Selection {
	sel := p.selections[kind]
	if sel.Mode == domain.SelectionRecord && !p.hasLocked(kind, sel.ID) {
		return domain.Unselected()
	}
	return sel
}

// clearSelectionLocked drops the selection when it points at id.
func (p *Planner) clearSelectionLocked(kind domain.EntityKind, id string) {
	if sel := p.selections[kind]; sel.Mode == domain.SelectionRecord && sel.ID == id {
		p.selections[kind] = domain.Unselected()
	}
}

func (p *Planner) selectionNotificationLocked(kind domain.EntityKind) domain.Notification {
	sel := p.effectiveSelectionLocked(kind)
	n := domain.Notification{Kind: domain.SelectionChangedKind(kind), Selection: &sel}
	if sel.Mode != domain.SelectionRecord {
		return n
	}
	switch kind {
	case domain.KindEvent:
		rec, _ := p.events.Get(sel.ID)
		n.Event = rec.Clone()
	case domain.KindParticipant:
		rec, _ := p.participants.Get(sel.ID)
		n.Participant = rec.Clone()
	case domain.KindTag:
		rec, _ := p.tags.Get(sel.ID)
		n.Tag = rec.Clone()
	}
	return n
}
