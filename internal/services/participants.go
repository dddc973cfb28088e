package services

import (
	"eventbuddy/internal/domain"
)

// AddParticipant validates and stores a new participant, then selects it.
func (p *Planner) AddParticipant(in domain.Participant) (*domain.Participant, error) {
	var (
		out *domain.Participant
		err error
	)
	p.mutate(func() []domain.Notification {
		rec := in.Clone()
		domain.NormalizeParticipant(rec)
		if err = domain.NewValidationError(domain.KindParticipant, domain.ValidateParticipant(rec)); err != nil {
			return nil
		}
		if err = p.assignIDLocked(domain.KindParticipant, &rec.ID); err != nil {
			return nil
		}
		if err = p.participants.Insert(rec.ID, rec); err != nil {
			return nil
		}
		p.selections[domain.KindParticipant] = domain.SelectID(rec.ID)
		p.logger.Debug("participant added", "id", rec.ID)
		out = rec.Clone()
		return []domain.Notification{
			{Kind: domain.ChangedKind(domain.KindParticipant)},
			p.selectionNotificationLocked(domain.KindParticipant),
		}
	})
	return out, err
}

// UpdateParticipant applies the present fields of patch.
func (p *Planner) UpdateParticipant(id string, patch domain.ParticipantPatch) (*domain.Participant, error) {
	var (
		out *domain.Participant
		err error
	)
	p.mutate(func() []domain.Notification {
		cur, ok := p.participants.Get(id)
		if !ok {
			err = domain.ErrNotFound
			return nil
		}
		next := cur.Clone()
		patch.Apply(next)
		domain.NormalizeParticipant(next)
		if err = domain.NewValidationError(domain.KindParticipant, domain.ValidateParticipant(next)); err != nil {
			return nil
		}
		p.participants.Replace(id, next)
		p.logger.Debug("participant updated", "id", id)
		out = next.Clone()
		return []domain.Notification{
			{Kind: domain.ChangedKind(domain.KindParticipant)},
			p.selectionNotificationLocked(domain.KindParticipant),
		}
	})
	return out, err
}

// DeleteParticipant removes a participant no event links to. When an event
// still links to it, an error notification is published, nothing changes and
// a *domain.IntegrityError is returned.
func (p *Planner) DeleteParticipant(id string) error {
	var err error
	p.mutate(func() []domain.Notification {
		rec, ok := p.participants.Get(id)
		if !ok {
			err = domain.ErrNotFound
			return nil
		}
		if refs := p.eventsWhereLocked(func(e *domain.Event) bool { return e.HasParticipant(id) }); len(refs) > 0 {
			ie := &domain.IntegrityError{Kind: domain.KindParticipant, ID: id, Name: rec.Name, ReferencedBy: eventIDs(refs)}
			err = ie
			p.logger.Warn("participant delete refused", "id", id, "events", ie.ReferencedBy)
			return []domain.Notification{{Kind: domain.NotifyError, Message: ie.Error()}}
		}
		p.participants.Delete(id)
		p.clearSelectionLocked(domain.KindParticipant, id)
		p.logger.Debug("participant deleted", "id", id)
		return []domain.Notification{
			{Kind: domain.ChangedKind(domain.KindParticipant)},
			p.selectionNotificationLocked(domain.KindParticipant),
		}
	})
	return err
}

// Participants returns every participant in insertion order.
func (p *Planner) Participants() []*domain.Participant {
	p.mu.RLock()
	defer p.mu.RUnlock()
	list := p.participants.List()
	out := make([]*domain.Participant, 0, len(list))
	for _, rec := range list {
		out = append(out, rec.Clone())
	}
	return out
}

// GetParticipantByID returns a copy of the participant.
func (p *Planner) GetParticipantByID(id string) (*domain.Participant, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	rec, ok := p.participants.Get(id)
	return rec.Clone(), ok
}

// EventsForParticipant scans the events for links to id.
func (p *Planner) EventsForParticipant(id string) []*domain.Event {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return cloneEvents(p.eventsWhereLocked(func(e *domain.Event) bool { return e.HasParticipant(id) }))
}
