package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"eventbuddy/internal/domain"
	"eventbuddy/internal/notify"
	"eventbuddy/internal/repository/memory"
)

var _ domain.PlannerService = (*Planner)(nil)

// Option configures a Planner.
type Option func(*Planner)

// WithIDGenerator replaces the UUID based id generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(p *Planner) {
		p.newID = gen
	}
}

// WithBus publishes through an existing bus instead of a private one.
func WithBus(bus *notify.Bus) Option {
	return func(p *Planner) {
		p.bus = bus
	}
}

// Planner owns the event, participant and tag collections together with the
// per-kind selection and the event filter. Every change goes through its
// methods; notifications are published after the state lock is released, in
// the order the change produced them, so observers may read back immediately.
type Planner struct {
	logger *slog.Logger
	bus    *notify.Bus
	newID  IDGenerator

	mu           sync.RWMutex
	events       *memory.Collection[domain.Event]
	participants *memory.Collection[domain.Participant]
	tags         *memory.Collection[domain.Tag]
	selections   map[domain.EntityKind]domain.Selection
	filter       domain.EventFilter
	loaded       bool
}

// NewPlanner returns an empty, unloaded Planner.
func NewPlanner(logger *slog.Logger, opts ...Option) *Planner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p := &Planner{
		logger:       logger,
		newID:        UUIDGenerator,
		events:       memory.NewCollection[domain.Event](),
		participants: memory.NewCollection[domain.Participant](),
		tags:         memory.NewCollection[domain.Tag](),
		selections:   make(map[domain.EntityKind]domain.Selection),
		filter:       domain.DefaultEventFilter(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bus == nil {
		p.bus = notify.NewBus(logger)
	}
	return p
}

// Subscribe registers h for one notification kind.
func (p *Planner) Subscribe(kind domain.NotificationKind, h domain.NotificationHandler) func() {
	return p.bus.Subscribe(kind, h)
}

// SubscribeAll registers h for every notification kind.
func (p *Planner) SubscribeAll(h domain.NotificationHandler) func() {
	return p.bus.SubscribeAll(h)
}

// Ready reports whether the initial snapshot has been loaded.
func (p *Planner) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loaded
}

// Count returns the number of records held for kind.
func (p *Planner) Count(kind domain.EntityKind) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	switch kind {
	case domain.KindEvent:
		return p.events.Len()
	case domain.KindParticipant:
		return p.participants.Len()
	case domain.KindTag:
		return p.tags.Len()
	}
	return 0
}

// Load fetches the snapshot from loader and populates the collections. A loader
// failure is published as an error notification and leaves the collections as
// they were, so the store stays usable.
func (p *Planner) Load(ctx context.Context, loader domain.SnapshotLoader) error {
	if p.Ready() {
		return domain.ErrAlreadyLoaded
	}
	snap, err := loader.Load(ctx)
	if err != nil {
		return p.ReportLoadFailure(ctx, err)
	}
	if snap == nil {
		snap = &domain.Snapshot{}
	}
	return p.LoadSnapshot(*snap)
}

// ReportLoadFailure publishes err as an error notification and returns it
// wrapped. Callers that fail before a loader exists use it so observers learn
// about every failed load.
func (p *Planner) ReportLoadFailure(ctx context.Context, err error) error {
	p.logger.ErrorContext(ctx, "snapshot load failed", "err", err)
	p.bus.Publish(domain.Notification{Kind: domain.NotifyError, Message: fmt.Sprintf("loading data failed: %v", err)})
	return fmt.Errorf("load snapshot: %w", err)
}

// LoadSnapshot bulk inserts participants, tags and events, then publishes
// data-ready. Records failing validation are skipped with a warning. It may
// succeed only once per Planner.
func (p *Planner) LoadSnapshot(snap domain.Snapshot) error {
	var err error
	p.mutate(func() []domain.Notification {
		if p.loaded {
			err = domain.ErrAlreadyLoaded
			return nil
		}
		for _, in := range snap.Participants {
			if in == nil {
				continue
			}
			rec := in.Clone()
			domain.NormalizeParticipant(rec)
			p.loadRecordLocked(domain.KindParticipant, &rec.ID, domain.ValidateParticipant(rec), func() error {
				return p.participants.Insert(rec.ID, rec)
			})
		}
		for _, in := range snap.Tags {
			if in == nil {
				continue
			}
			rec := in.Clone()
			domain.NormalizeTag(rec)
			p.loadRecordLocked(domain.KindTag, &rec.ID, domain.ValidateTag(rec), func() error {
				return p.tags.Insert(rec.ID, rec)
			})
		}
		for _, in := range snap.Events {
			if in == nil {
				continue
			}
			rec := in.Clone()
			domain.NormalizeEvent(rec)
			inserted := p.loadRecordLocked(domain.KindEvent, &rec.ID, domain.ValidateEvent(rec), func() error {
				return p.events.Insert(rec.ID, rec)
			})
			if !inserted {
				continue
			}
			for _, fe := range p.eventReferenceErrorsLocked(rec, true, true) {
				p.logger.Warn("loaded event has dangling reference", "id", rec.ID, "field", fe.Field, "err", fe.Msg)
			}
		}
		p.loaded = true
		p.logger.Info("snapshot loaded",
			"events", p.events.Len(),
			"participants", p.participants.Len(),
			"tags", p.tags.Len(),
		)
		return []domain.Notification{{Kind: domain.NotifyDataReady}}
	})
	return err
}

func (p *Planner) loadRecordLocked(kind domain.EntityKind, id *string, invalid []domain.FieldError, insert func() error) bool {
	if len(invalid) > 0 {
		p.logger.Warn("skipping invalid record", "kind", kind, "id", *id, "err", domain.NewValidationError(kind, invalid))
		return false
	}
	if *id == "" {
		*id = p.uniqueIDLocked(kind)
	}
	if err := insert(); err != nil {
		p.logger.Warn("skipping record", "kind", kind, "id", *id, "err", err)
		return false
	}
	return true
}

// mutate runs fn under the write lock and publishes what it returns once the
// lock is released.
func (p *Planner) mutate(fn func() []domain.Notification) {
	p.mu.Lock()
	pending := fn()
	p.mu.Unlock()
	for _, n := range pending {
		p.bus.Publish(n)
	}
}

func (p *Planner) hasLocked(kind domain.EntityKind, id string) bool {
	switch kind {
	case domain.KindEvent:
		return p.events.Has(id)
	case domain.KindParticipant:
		return p.participants.Has(id)
	case domain.KindTag:
		return p.tags.Has(id)
	}
	return false
}

// uniqueIDLocked draws ids until one is free in the kind's collection.
func (p *Planner) uniqueIDLocked(kind domain.EntityKind) string {
	for {
		id := p.newID(kind)
		if id != "" && !p.hasLocked(kind, id) {
			return id
		}
	}
}

// assignIDLocked fills a missing id or rejects one already taken.
func (p *Planner) assignIDLocked(kind domain.EntityKind, id *string) error {
	if *id == "" {
		*id = p.uniqueIDLocked(kind)
		return nil
	}
	if p.hasLocked(kind, *id) {
		return domain.NewValidationError(kind, []domain.FieldError{{Field: "id", Msg: "already exists"}})
	}
	return nil
}
