package service

import (
	"asset-registry-api/internal/model"
	"asset-registry-api/internal/repository"
	"asset-registry-api/pkg/errors"
	"context"
	stderrors "errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Entity names a record type in user-facing messages.
type Entity struct {
	Name   string // "Employee"
	Plural string // "employees"
}

var (
	EmployeeEntity = Entity{Name: "Employee", Plural: "employees"}
	SystemEntity   = Entity{Name: "System", Plural: "systems"}
)

func (e Entity) singular() string { return strings.ToLower(e.Name) }

// NotFoundMessage is "<Entity> not found".
func (e Entity) NotFoundMessage() string { return e.Name + " not found" }

// CreatedMessage is "<Entity> created successfully".
func (e Entity) CreatedMessage() string { return e.Name + " created successfully" }

// UpdatedMessage is "<Entity> updated successfully".
func (e Entity) UpdatedMessage() string { return e.Name + " updated successfully" }

// DeletedMessage is "<Entity> deleted successfully".
func (e Entity) DeletedMessage() string { return e.Name + " deleted successfully" }

// Operation failure messages
func (e Entity) listFailed() string   { return "Failed to fetch " + e.Plural }
func (e Entity) getFailed() string    { return "Failed to fetch " + e.singular() }
func (e Entity) createFailed() string { return "Failed to create " + e.singular() }
func (e Entity) updateFailed() string { return "Failed to update " + e.singular() }
func (e Entity) deleteFailed() string { return "Failed to delete " + e.singular() }

// RecordService handles the CRUD operations of one record type and maps
// store errors to application errors.
type RecordService[T any] struct {
	store  repository.Store[T]
	entity Entity
	logger *zap.Logger
}

// NewRecordService creates a new record service
func NewRecordService[T any](store repository.Store[T], entity Entity, logger *zap.Logger) *RecordService[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordService[T]{
		store:  store,
		entity: entity,
		logger: logger.With(zap.String("entity", entity.singular())),
	}
}

// NewEmployeeService creates the employee service
func NewEmployeeService(store repository.EmployeeStore, logger *zap.Logger) *RecordService[model.Employee] {
	return NewRecordService(store, EmployeeEntity, logger)
}

// NewSystemService creates the system service
func NewSystemService(store repository.SystemStore, logger *zap.Logger) *RecordService[model.System] {
	return NewRecordService(store, SystemEntity, logger)
}

// Entity returns the record type the service manages.
func (s *RecordService[T]) Entity() Entity {
	return s.entity
}

// List retrieves every record.
func (s *RecordService[T]) List(ctx context.Context) ([]T, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, s.fail(err, s.entity.listFailed())
	}
	s.logger.Debug("Listed records", zap.Int("count", len(records)))
	return records, nil
}

// Get retrieves one record by id.
func (s *RecordService[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.fail(err, s.entity.getFailed(), zap.Stringer("id", id))
	}
	return record, nil
}

// Create stores a new record.
func (s *RecordService[T]) Create(ctx context.Context, record T) (*T, error) {
	created, err := s.store.Create(ctx, record)
	if err != nil {
		return nil, s.fail(err, s.entity.createFailed())
	}
	s.logger.Info("Record created", zap.String("id", recordID(created)))
	return created, nil
}

// Replace overwrites the record stored under id.
func (s *RecordService[T]) Replace(ctx context.Context, id uuid.UUID, record T) (*T, error) {
	replaced, err := s.store.Replace(ctx, id, record)
	if err != nil {
		return nil, s.fail(err, s.entity.updateFailed(), zap.Stringer("id", id))
	}
	s.logger.Info("Record updated", zap.Stringer("id", id))
	return replaced, nil
}

// Delete removes the record stored under id.
func (s *RecordService[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return s.fail(err, s.entity.deleteFailed(), zap.Stringer("id", id))
	}
	s.logger.Info("Record deleted", zap.Stringer("id", id))
	return nil
}

// fail maps a store error: unknown ids become NotFound, everything else is a
// persistence failure carrying the store's message.
func (s *RecordService[T]) fail(err error, message string, fields ...zap.Field) error {
	if stderrors.Is(err, repository.ErrRecordNotFound) {
		return errors.NotFoundError(s.entity.Name)
	}
	s.logger.Error(message, append(fields, zap.Error(err))...)
	return errors.PersistenceError(message, err)
}

// InvalidPayload reports a request body that could not be decoded for op
// ("create" or "update").
func (s *RecordService[T]) InvalidPayload(op string, err error) error {
	message := s.entity.updateFailed()
	if op == "create" {
		message = s.entity.createFailed()
	}
	s.logger.Warn("Undecodable payload", zap.String("operation", op), zap.Error(err))
	return errors.PersistenceError(message, err)
}

func recordID(v interface{}) string {
	if r, ok := v.(model.Record); ok {
		return r.GetID().String()
	}
	return ""
}
