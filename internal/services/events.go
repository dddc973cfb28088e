package services

import (
	"eventbuddy/internal/domain"
)

// AddEvent validates and stores a new event, then selects it. A missing id is
// generated; tag and participant ids must exist at the time of the call.
func (p *Planner) AddEvent(in domain.Event) (*domain.Event, error) {
	var (
		out *domain.Event
		err error
	)
	p.mutate(func() []domain.Notification {
		ev := in.Clone()
		domain.NormalizeEvent(ev)
		invalid := domain.ValidateEvent(ev)
		invalid = append(invalid, p.eventReferenceErrorsLocked(ev, true, true)...)
		if err = domain.NewValidationError(domain.KindEvent, invalid); err != nil {
			return nil
		}
		if err = p.assignIDLocked(domain.KindEvent, &ev.ID); err != nil {
			return nil
		}
		if err = p.events.Insert(ev.ID, ev); err != nil {
			return nil
		}
		p.selections[domain.KindEvent] = domain.SelectID(ev.ID)
		p.logger.Debug("event added", "id", ev.ID)
		out = ev.Clone()
		return []domain.Notification{
			{Kind: domain.ChangedKind(domain.KindEvent)},
			p.selectionNotificationLocked(domain.KindEvent),
		}
	})
	return out, err
}

// UpdateEvent applies the present fields of patch. Unknown ids return
// domain.ErrNotFound without touching state or notifying observers.
func (p *Planner) UpdateEvent(id string, patch domain.EventPatch) (*domain.Event, error) {
	var (
		out *domain.Event
		err error
	)
	p.mutate(func() []domain.Notification {
		cur, ok := p.events.Get(id)
		if !ok {
			err = domain.ErrNotFound
			return nil
		}
		next := cur.Clone()
		patch.Apply(next)
		domain.NormalizeEvent(next)
		invalid := domain.ValidateEvent(next)
		invalid = append(invalid, p.eventReferenceErrorsLocked(next, patch.TagIDs != nil, patch.Participants != nil)...)
		if err = domain.NewValidationError(domain.KindEvent, invalid); err != nil {
			return nil
		}
		p.events.Replace(id, next)
		p.logger.Debug("event updated", "id", id)
		out = next.Clone()
		return []domain.Notification{
			{Kind: domain.ChangedKind(domain.KindEvent)},
			p.selectionNotificationLocked(domain.KindEvent),
		}
	})
	return out, err
}

// DeleteEvent removes an event. Events are never referenced, so deletion is
// unconditional for known ids.
func (p *Planner) DeleteEvent(id string) error {
	var err error
	p.mutate(func() []domain.Notification {
		if !p.events.Delete(id) {
			err = domain.ErrNotFound
			return nil
		}
		p.clearSelectionLocked(domain.KindEvent, id)
		p.logger.Debug("event deleted", "id", id)
		return []domain.Notification{
			{Kind: domain.ChangedKind(domain.KindEvent)},
			p.selectionNotificationLocked(domain.KindEvent),
		}
	})
	return err
}

// Events returns every event in insertion order.
func (p *Planner) Events() []*domain.Event {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return cloneEvents(p.events.List())
}

// FilteredEvents applies the current filter to all events. It is computed on
// every call.
func (p *Planner) FilteredEvents() []*domain.Event {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return cloneEvents(p.filter.Apply(p.events.List()))
}

// GetEventByID returns a copy of the event.
func (p *Planner) GetEventByID(id string) (*domain.Event, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ev, ok := p.events.Get(id)
	return ev.Clone(), ok
}

// eventReferenceErrorsLocked reports tag and participant ids that do not
// resolve. Only the requested fields are checked, so an update that leaves
// tags alone is not rejected for a tag that vanished earlier.
func (p *Planner) eventReferenceErrorsLocked(ev *domain.Event, tags, participants bool) []domain.FieldError {
	var errs []domain.FieldError
	if tags {
		for _, id := range ev.TagIDs {
			if !p.tags.Has(id) {
				errs = append(errs, domain.FieldError{Field: "tagIds", Msg: "unknown tag " + id})
			}
		}
	}
	if participants {
		for _, l := range ev.Participants {
			if l.ParticipantID != "" && !p.participants.Has(l.ParticipantID) {
				errs = append(errs, domain.FieldError{Field: "participants", Msg: "unknown participant " + l.ParticipantID})
			}
		}
	}
	return errs
}

func (p *Planner) eventsWhereLocked(pred func(*domain.Event) bool) []*domain.Event {
	return p.events.Filter(pred)
}

func cloneEvents(in []*domain.Event) []*domain.Event {
	out := make([]*domain.Event, 0, len(in))
	for _, ev := range in {
		out = append(out, ev.Clone())
	}
	return out
}

func eventIDs(in []*domain.Event) []string {
	out := make([]string, 0, len(in))
	for _, ev := range in {
		out = append(out, ev.ID)
	}
	return out
}
