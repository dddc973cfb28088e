package services

import (
	"eventbuddy/internal/domain"

	"github.com/google/uuid"
)

// IDGenerator returns a new id for a record of the given kind.
type IDGenerator func(kind domain.EntityKind) string

// UUIDGenerator prefixes a random UUID with the kind's letter ("e", "p", "t").
// Timestamps are not used: two creates within the same tick must not collide.
func UUIDGenerator(kind domain.EntityKind) string {
	return kind.IDPrefix() + uuid.NewString()
}
