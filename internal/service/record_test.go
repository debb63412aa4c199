package service

import (
	"asset-registry-api/internal/model"
	"asset-registry-api/internal/repository"
	apperrors "asset-registry-api/pkg/errors"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// MockSystemStore is a mock implementation of repository.SystemStore
type MockSystemStore struct {
	ListFunc    func(ctx context.Context) ([]model.System, error)
	GetFunc     func(ctx context.Context, id uuid.UUID) (*model.System, error)
	CreateFunc  func(ctx context.Context, s model.System) (*model.System, error)
	ReplaceFunc func(ctx context.Context, id uuid.UUID, s model.System) (*model.System, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *MockSystemStore) List(ctx context.Context) ([]model.System, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []model.System{}, nil
}

func (m *MockSystemStore) Get(ctx context.Context, id uuid.UUID) (*model.System, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, repository.ErrRecordNotFound
}

func (m *MockSystemStore) Create(ctx context.Context, s model.System) (*model.System, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	s.ID = uuid.New()
	return &s, nil
}

func (m *MockSystemStore) Replace(ctx context.Context, id uuid.UUID, s model.System) (*model.System, error) {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, id, s)
	}
	s.ID = id
	return &s, nil
}

func (m *MockSystemStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func newTestService(t *testing.T, store *MockSystemStore) *RecordService[model.System] {
	return NewSystemService(store, zaptest.NewLogger(t))
}

func requireAppError(t *testing.T, err error, code apperrors.ErrorCode) *apperrors.AppError {
	t.Helper()
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	require.Equal(t, code, appErr.Code)
	return appErr
}

func TestEntityMessages(t *testing.T) {
	assert.Equal(t, "Employee not found", EmployeeEntity.NotFoundMessage())
	assert.Equal(t, "System created successfully", SystemEntity.CreatedMessage())
	assert.Equal(t, "Employee updated successfully", EmployeeEntity.UpdatedMessage())
	assert.Equal(t, "System deleted successfully", SystemEntity.DeletedMessage())
	assert.Equal(t, "Failed to fetch employees", EmployeeEntity.listFailed())
	assert.Equal(t, "Failed to fetch system", SystemEntity.getFailed())
}

func TestList(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		store := &MockSystemStore{
			ListFunc: func(ctx context.Context) ([]model.System, error) {
				return []model.System{{SystemNumber: "SYS-1"}, {SystemNumber: "SYS-2"}}, nil
			},
		}
		systems, err := newTestService(t, store).List(context.Background())
		require.NoError(t, err)
		assert.Len(t, systems, 2)
	})

	t.Run("store failure", func(t *testing.T) {
		store := &MockSystemStore{
			ListFunc: func(ctx context.Context) ([]model.System, error) {
				return nil, errors.New("connection reset")
			},
		}
		_, err := newTestService(t, store).List(context.Background())

		appErr := requireAppError(t, err, apperrors.ErrorCodePersistence)
		assert.Equal(t, "Failed to fetch systems", appErr.Message)
		assert.Equal(t, "connection reset", appErr.Detail())
		assert.Equal(t, http.StatusInternalServerError, appErr.GetHTTPStatus())
	})
}

func TestGet(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		_, err := newTestService(t, &MockSystemStore{}).Get(context.Background(), uuid.New())

		appErr := requireAppError(t, err, apperrors.ErrorCodeNotFound)
		assert.Equal(t, "System not found", appErr.Message)
	})

	t.Run("wrapped not found", func(t *testing.T) {
		store := &MockSystemStore{
			GetFunc: func(ctx context.Context, id uuid.UUID) (*model.System, error) {
				return nil, errors.Join(errors.New("lookup"), repository.ErrRecordNotFound)
			},
		}
		_, err := newTestService(t, store).Get(context.Background(), uuid.New())
		requireAppError(t, err, apperrors.ErrorCodeNotFound)
	})
}

func TestCreate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		created, err := newTestService(t, &MockSystemStore{}).Create(context.Background(), model.System{SystemNumber: "SYS-1"})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
	})

	t.Run("schema failure becomes persistence error", func(t *testing.T) {
		schemaErr := &repository.SchemaError{
			Entity:     "System",
			Violations: []repository.FieldViolation{{Path: "systemNumber", Message: "Path `systemNumber` is required."}},
		}
		store := &MockSystemStore{
			CreateFunc: func(ctx context.Context, s model.System) (*model.System, error) {
				return nil, schemaErr
			},
		}
		_, err := newTestService(t, store).Create(context.Background(), model.System{})

		appErr := requireAppError(t, err, apperrors.ErrorCodePersistence)
		assert.Equal(t, "Failed to create system", appErr.Message)
		assert.Equal(t, "System validation failed: systemNumber: Path `systemNumber` is required.", appErr.Detail())
	})
}

func TestReplace(t *testing.T) {
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		replaced, err := newTestService(t, &MockSystemStore{}).Replace(context.Background(), id, model.System{SystemNumber: "SYS-1"})
		require.NoError(t, err)
		assert.Equal(t, id, replaced.ID)
	})

	t.Run("not found", func(t *testing.T) {
		store := &MockSystemStore{
			ReplaceFunc: func(ctx context.Context, id uuid.UUID, s model.System) (*model.System, error) {
				return nil, repository.ErrRecordNotFound
			},
		}
		_, err := newTestService(t, store).Replace(context.Background(), id, model.System{SystemNumber: "SYS-1"})
		requireAppError(t, err, apperrors.ErrorCodeNotFound)
	})

	t.Run("failure", func(t *testing.T) {
		store := &MockSystemStore{
			ReplaceFunc: func(ctx context.Context, id uuid.UUID, s model.System) (*model.System, error) {
				return nil, context.DeadlineExceeded
			},
		}
		_, err := newTestService(t, store).Replace(context.Background(), id, model.System{})
		appErr := requireAppError(t, err, apperrors.ErrorCodePersistence)
		assert.Equal(t, "Failed to update system", appErr.Message)
	})
}

func TestDelete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		assert.NoError(t, newTestService(t, &MockSystemStore{}).Delete(context.Background(), uuid.New()))
	})

	t.Run("not found", func(t *testing.T) {
		store := &MockSystemStore{
			DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
				return repository.ErrRecordNotFound
			},
		}
		err := newTestService(t, store).Delete(context.Background(), uuid.New())
		requireAppError(t, err, apperrors.ErrorCodeNotFound)
	})

	t.Run("failure", func(t *testing.T) {
		store := &MockSystemStore{
			DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
				return errors.New("disk full")
			},
		}
		err := newTestService(t, store).Delete(context.Background(), uuid.New())
		appErr := requireAppError(t, err, apperrors.ErrorCodePersistence)
		assert.Equal(t, "Failed to delete system", appErr.Message)
	})
}

func TestInvalidPayload(t *testing.T) {
	svc := NewEmployeeService(repository.NewEmployeeMemoryStore(), nil)

	err := svc.InvalidPayload("create", errors.New("unexpected EOF"))
	appErr := requireAppError(t, err, apperrors.ErrorCodePersistence)
	assert.Equal(t, "Failed to create employee", appErr.Message)

	err = svc.InvalidPayload("update", errors.New("unexpected EOF"))
	appErr = requireAppError(t, err, apperrors.ErrorCodePersistence)
	assert.Equal(t, "Failed to update employee", appErr.Message)
}
