package services

import (
	"eventbuddy/internal/domain"
)

// AddTag validates and stores a new tag, then selects it.
func (p *Planner) AddTag(in domain.Tag) (*domain.Tag, error) {
	var (
		out *domain.Tag
		err error
	)
	p.mutate(func() []domain.Notification {
		rec := in.Clone()
		domain.NormalizeTag(rec)
		if err = domain.NewValidationError(domain.KindTag, domain.ValidateTag(rec)); err != nil {
			return nil
		}
		if err = p.assignIDLocked(domain.KindTag, &rec.ID); err != nil {
			return nil
		}
		if err = p.tags.Insert(rec.ID, rec); err != nil {
			return nil
		}
		p.selections[domain.KindTag] = domain.SelectID(rec.ID)
		p.logger.Debug("tag added", "id", rec.ID)
		out = rec.Clone()
		return []domain.Notification{
			{Kind: domain.ChangedKind(domain.KindTag)},
			p.selectionNotificationLocked(domain.KindTag),
		}
	})
	return out, err
}

// UpdateTag applies the present fields of patch.
func (p *Planner) UpdateTag(id string, patch domain.TagPatch) (*domain.Tag, error) {
	var (
		out *domain.Tag
		err error
	)
	p.mutate(func() []domain.Notification {
		cur, ok := p.tags.Get(id)
		if !ok {
			err = domain.ErrNotFound
			return nil
		}
		next := cur.Clone()
		patch.Apply(next)
		domain.NormalizeTag(next)
		if err = domain.NewValidationError(domain.KindTag, domain.ValidateTag(next)); err != nil {
			return nil
		}
		p.tags.Replace(id, next)
		p.logger.Debug("tag updated", "id", id)
		out = next.Clone()
		return []domain.Notification{
			{Kind: domain.ChangedKind(domain.KindTag)},
			p.selectionNotificationLocked(domain.KindTag),
		}
	})
	return out, err
}

// DeleteTag removes a tag no event carries. A tag still in use is refused with
// an error notification and a *domain.IntegrityError.
func (p *Planner) DeleteTag(id string) error {
	var err error
	p.mutate(func() []domain.Notification {
		rec, ok := p.tags.Get(id)
		if !ok {
			err = domain.ErrNotFound
			return nil
		}
		if refs := p.eventsWhereLocked(func(e *domain.Event) bool { return e.HasTag(id) }); len(refs) > 0 {
			ie := &domain.IntegrityError{Kind: domain.KindTag, ID: id, Name: rec.Title, ReferencedBy: eventIDs(refs)}
			err = ie
			p.logger.Warn("tag delete refused", "id", id, "events", ie.ReferencedBy)
			return []domain.Notification{{Kind: domain.NotifyError, Message: ie.Error()}}
		}
		p.tags.Delete(id)
		p.clearSelectionLocked(domain.KindTag, id)
		p.logger.Debug("tag deleted", "id", id)
		return []domain.Notification{
			{Kind: domain.ChangedKind(domain.KindTag)},
			p.selectionNotificationLocked(domain.KindTag),
		}
	})
	return err
}

// Tags returns every tag in insertion order.
func (p *Planner) Tags() []*domain.Tag {
	p.mu.RLock()
	defer p.mu.RUnlock()
	list := p.tags.List()
	out := make([]*domain.Tag, 0, len(list))
	for _, rec := range list {
		out = append(out, rec.Clone())
	}
	return out
}

// GetTagByID returns a copy of the tag.
func (p *Planner) GetTagByID(id string) (*domain.Tag, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	rec, ok := p.tags.Get(id)
	return rec.Clone(), ok
}

// GetTagTitle returns the tag's title, or id itself for unknown tags.
func (p *Planner) GetTagTitle(id string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if rec, ok := p.tags.Get(id); ok {
		return rec.Title
	}
	return id
}

// EventsForTag scans the events for ones carrying id.
func (p *Planner) EventsForTag(id string) []*domain.Event {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return cloneEvents(p.eventsWhereLocked(func(e *domain.Event) bool { return e.HasTag(id) }))
}
