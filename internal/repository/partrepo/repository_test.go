package partrepo_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fleetstock/internal/domain"
	apperror "fleetstock/internal/errors"
	"fleetstock/internal/pkg/cache"
	"fleetstock/internal/pkg/database"
	"fleetstock/internal/pkg/logger"
	"fleetstock/internal/repository/partrepo"
	"fleetstock/migrations"
)

// MockCache é uma implementação mock de cache.Client
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) GetInt(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Incr(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func TestFindByID_CacheHitSkipsDB(t *testing.T) {
	c := new(MockCache)
	repo := partrepo.NewPartRepository(nil, c, time.Second, time.Minute, logger.NewNop())

	id := uuid.New().String()
	payload, err := json.Marshal(domain.Part{ID: id, Number: "BRK-001", Quantity: 7})
	require.NoError(t, err)
	c.On("Get", mock.Anything, "part:"+id).Return(string(payload), nil)

	part, err := repo.FindByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, 7, part.Quantity)
	c.AssertExpectations(t)
}

func TestInvalidatePart(t *testing.T) {
	c := new(MockCache)
	repo := partrepo.NewPartRepository(nil, c, time.Second, time.Minute, logger.NewNop())
	c.On("Delete", mock.Anything, "part:abc").Return(nil)

	assert.NoError(t, repo.InvalidatePart(context.Background(), "abc"))
	c.AssertExpectations(t)
}

func TestInvalidatePart_WithoutCache(t *testing.T) {
	repo := partrepo.NewPartRepository(nil, nil, time.Second, time.Minute, logger.NewNop())

	assert.NoError(t, repo.InvalidatePart(context.Background(), "abc"))
}

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL não definido; pulando teste de integração")
	}

	db, err := database.NewPostgresDB(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	goose.SetBaseFS(migrations.FS)
	require.NoError(t, goose.SetDialect("postgres"))
	goose.SetLogger(goose.NopLogger())
	require.NoError(t, goose.Up(db.DB, "."))
	return db
}

func TestFindByID_MissPopulatesCache(t *testing.T) {
	db := openTestDB(t)
	c := new(MockCache)
	repo := partrepo.NewPartRepository(db, c, 5*time.Second, time.Minute, logger.NewNop())

	id := uuid.New().String()
	_, err := db.Exec(`INSERT INTO parts (id, number, name, quantity, minimum_stock, cost) VALUES ($1, $2, 'Filtro', 4, 1, 9.90)`, id, "FLT-"+id[:8])
	require.NoError(t, err)
	t.Cleanup(func() { db.Exec(`DELETE FROM parts WHERE id = $1`, id) })

	c.On("Get", mock.Anything, "part:"+id).Return("", cache.ErrCacheMiss)
	c.On("Set", mock.Anything, "part:"+id, mock.Anything, time.Minute).Return(nil)

	part, err := repo.FindByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, 4, part.Quantity)
	assert.Equal(t, "9.9", part.Cost.String())
	c.AssertExpectations(t)
}

func TestFindByID_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := partrepo.NewPartRepository(db, nil, 5*time.Second, time.Minute, logger.NewNop())

	_, err := repo.FindByID(context.Background(), uuid.New().String())

	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestFindLowStock(t *testing.T) {
	db := openTestDB(t)
	repo := partrepo.NewPartRepository(db, nil, 5*time.Second, time.Minute, logger.NewNop())

	low := uuid.New().String()
	ok := uuid.New().String()
	_, err := db.Exec(`INSERT INTO parts (id, number, name, quantity, minimum_stock) VALUES
        ($1, $2, 'Baixo', 0, 1000000), ($3, $4, 'Ok', 1000000, 1)`,
		low, "LOW-"+low[:8], ok, "OK-"+ok[:8])
	require.NoError(t, err)
	t.Cleanup(func() { db.Exec(`DELETE FROM parts WHERE id IN ($1, $2)`, low, ok) })

	parts, total, err := repo.FindLowStock(context.Background(), domain.PartFilter{Page: 1, Limit: 1})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, 1)
	require.Len(t, parts, 1)
	assert.Equal(t, low, parts[0].ID)
}
