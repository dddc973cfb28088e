package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"eventbuddy/internal/domain"

	"github.com/lib/pq"
)

// Schema creates the tables the snapshot loader reads.
const Schema = `
CREATE TABLE IF NOT EXISTS participants (
	id     TEXT PRIMARY KEY,
	name   TEXT NOT NULL,
	email  TEXT NOT NULL DEFAULT '',
	avatar TEXT NOT NULL DEFAULT '',
	position SERIAL
);
CREATE TABLE IF NOT EXISTS tags (
	id    TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	position SERIAL
);
CREATE TABLE IF NOT EXISTS events (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	datetime    TEXT NOT NULL DEFAULT '',
	location    TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT 'planned',
	tag_ids     TEXT[] NOT NULL DEFAULT '{}',
	position SERIAL
);
CREATE TABLE IF NOT EXISTS event_participants (
	event_id       TEXT NOT NULL REFERENCES events (id) ON DELETE CASCADE,
	participant_id TEXT NOT NULL REFERENCES participants (id),
	status         TEXT NOT NULL DEFAULT 'undecided',
	position SERIAL,
	PRIMARY KEY (event_id, participant_id)
);
`

type snapshotLoader struct {
	DB *sql.DB
}

// NewSnapshotLoader returns a domain.SnapshotLoader reading from Postgres.
func NewSnapshotLoader(db *sql.DB) domain.SnapshotLoader {
	return &snapshotLoader{DB: db}
}

// Open connects to dsn with the lib/pq driver and checks the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// EnsureSchema creates missing tables.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	return err
}

func (r *snapshotLoader) Load(ctx context.Context) (*domain.Snapshot, error) {
	participants, err := r.listParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	tags, err := r.listTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	events, err := r.listEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if err := r.attachParticipants(ctx, events); err != nil {
		return nil, fmt.Errorf("list event participants: %w", err)
	}
	return &domain.Snapshot{Events: events, Participants: participants, Tags: tags}, nil
}

func (r *snapshotLoader) listParticipants(ctx context.Context) ([]*domain.Participant, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, email, avatar FROM participants ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*domain.Participant
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Avatar); err != nil {
			return nil, err
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *snapshotLoader) listTags(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, title FROM tags ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Title); err != nil {
			return nil, err
		}
		list = append(list, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *snapshotLoader) listEvents(ctx context.Context) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, title, description, datetime, location, status, tag_ids
		 FROM events ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*domain.Event
	for rows.Next() {
		var (
			e      domain.Event
			status string
			tagIDs pq.StringArray
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Datetime, &e.Location, &status, &tagIDs); err != nil {
			return nil, err
		}
		e.Status = domain.EventStatus(status)
		e.TagIDs = []string(tagIDs)
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *snapshotLoader) attachParticipants(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Event, len(events))
	ids := make([]string, 0, len(events))
	for _, e := range events {
		byID[e.ID] = e
		ids = append(ids, e.ID)
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT event_id, participant_id, status FROM event_participants
		 WHERE event_id = ANY($1)
		 ORDER BY event_id, position`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var eventID, participantID, status string
		if err := rows.Scan(&eventID, &participantID, &status); err != nil {
			return err
		}
		if e, ok := byID[eventID]; ok {
			e.Participants = append(e.Participants, domain.ParticipantLink{
				ParticipantID: participantID,
				Status:        domain.ParticipationStatus(status),
			})
		}
	}
	return rows.Err()
}
