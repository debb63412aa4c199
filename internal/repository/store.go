package repository

import (
	"asset-registry-api/internal/model"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrRecordNotFound is returned when no record has the requested id.
var ErrRecordNotFound = errors.New("record not found")

const (
	queryTimeout = 5 * time.Second
	listTimeout  = 10 * time.Second
)

// Store persists one kind of record. Every backend (Postgres, MongoDB,
// memory) implements it with the same semantics:
//   - List returns all records in insertion order.
//   - Create assigns the id and both timestamps.
//   - Replace overwrites the whole document, keeping id and createdAt.
//   - Get, Replace and Delete return ErrRecordNotFound for unknown ids.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	Create(ctx context.Context, record T) (*T, error)
	Replace(ctx context.Context, id uuid.UUID, record T) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EmployeeStore persists employees.
type EmployeeStore = Store[model.Employee]

// SystemStore persists systems.
type SystemStore = Store[model.System]

// recordPtr lets generic stores set ids and timestamps on a *T.
type recordPtr[T any] interface {
	*T
	model.Record
}

// Table and collection names.
const (
	EmployeeTable = "employees"
	SystemTable   = "systems"
)
