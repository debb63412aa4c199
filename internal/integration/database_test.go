package integration

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"asset-registry-api/internal/model"
	"asset-registry-api/internal/repository"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIntegration_PostgresCRUD runs the HTTP CRUD flow against a real database.
func TestIntegration_PostgresCRUD(t *testing.T) {
	runCRUD(t, setupPostgresSuite(t))
}

func TestIntegration_PostgresHealth(t *testing.T) {
	suite := setupPostgresSuite(t)

	status, env := suite.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"database":"postgres"`)
}

// TestIntegration_PostgresStore exercises the store directly.
func TestIntegration_PostgresStore(t *testing.T) {
	suite := setupPostgresSuite(t)
	store := repository.NewSystemPostgresStore(suite.DB)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	first, err := store.Create(ctx, model.System{SystemNumber: "SYS-01", InvoiceDate: model.NewDate(2024, time.March, 2)})
	require.NoError(t, err)
	second, err := store.Create(ctx, model.System{SystemNumber: "SYS-02"})
	require.NoError(t, err)

	got, err := store.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "SYS-01", got.SystemNumber)
	assert.Equal(t, model.NewDate(2024, time.March, 2), got.InvoiceDate)
	assert.True(t, got.CreatedAt.Equal(first.CreatedAt))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	replaced, err := store.Replace(ctx, first.ID, model.System{SystemNumber: "SYS-01B"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, replaced.ID)
	assert.True(t, replaced.CreatedAt.Equal(first.CreatedAt))
	assert.False(t, replaced.UpdatedAt.Before(first.UpdatedAt))

	require.NoError(t, store.Delete(ctx, first.ID))
	assert.True(t, errors.Is(store.Delete(ctx, first.ID), repository.ErrRecordNotFound))

	_, err = store.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)

	_, err = store.Replace(ctx, uuid.New(), model.System{SystemNumber: "X"})
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)
}
