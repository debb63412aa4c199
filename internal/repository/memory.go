package repository

import (
	"asset-registry-api/internal/model"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps records in process. It is used for local runs and tests.
type MemoryStore[T any, P recordPtr[T]] struct {
	mu      sync.RWMutex
	order   []uuid.UUID
	records map[uuid.UUID]T
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore[T any, P recordPtr[T]]() *MemoryStore[T, P] {
	return &MemoryStore[T, P]{
		records: make(map[uuid.UUID]T),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// NewEmployeeMemoryStore creates an in-memory employee store.
func NewEmployeeMemoryStore() EmployeeStore {
	return NewMemoryStore[model.Employee]()
}

// NewSystemMemoryStore creates an in-memory system store.
func NewSystemMemoryStore() SystemStore {
	return NewMemoryStore[model.System]()
}

func (s *MemoryStore[T, P]) List(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]T, 0, len(s.order))
	for _, id := range s.order {
		records = append(records, s.records[id])
	}
	return records, nil
}

func (s *MemoryStore[T, P]) Get(_ context.Context, id uuid.UUID) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &rec, nil
}

func (s *MemoryStore[T, P]) Create(ctx context.Context, record T) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	id := uuid.New()
	P(&record).SetID(id)
	P(&record).SetTimestamps(now, now)

	s.records[id] = record
	s.order = append(s.order, id)
	return &record, nil
}

func (s *MemoryStore[T, P]) Replace(ctx context.Context, id uuid.UUID, record T) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.records[id]
	if !ok {
		return nil, ErrRecordNotFound
	}

	P(&record).SetID(id)
	P(&record).SetTimestamps(P(&existing).GetCreatedAt(), s.now())

	s.records[id] = record
	return &record, nil
}

func (s *MemoryStore[T, P]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrRecordNotFound
	}
	delete(s.records, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
