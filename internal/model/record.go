package model

import (
	"time"

	"github.com/google/uuid"
)

// Record is implemented by pointers to every persisted entity. Stores use it to
// assign identity and timestamps without knowing the concrete document shape.
type Record interface {
	GetID() uuid.UUID
	SetID(id uuid.UUID)
	GetCreatedAt() time.Time
	SetTimestamps(createdAt, updatedAt time.Time)
}
