package domain

import "context"

// Snapshot is the bulk payload handed to the store by a loader. Missing
// collections are treated as empty.
type Snapshot struct {
	Events       []*Event       `json:"events" yaml:"events"`
	Participants []*Participant `json:"participants" yaml:"participants"`
	Tags         []*Tag         `json:"tags" yaml:"tags"`
}

// SnapshotLoader fetches the initial data set from a file, URL or database.
type SnapshotLoader interface {
	Load(ctx context.Context) (*Snapshot, error)
}
