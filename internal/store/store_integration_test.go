package store

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	perrors "github.com/abgdnv/product-grpc/internal/errors"
	"github.com/abgdnv/product-grpc/internal/store/db"
	"github.com/abgdnv/product-grpc/internal/store/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const skipIntegrationTests = "PRODUCT_SVC_SKIP_INTEGRATION_TESTS"

// PgStoreSuite runs PgStore against a real PostgreSQL container.
type PgStoreSuite struct {
	suite.Suite
	pgContainer *postgres.PostgresContainer
	dbPool      *pgxpool.Pool
	store       ProductStore
	logger      *slog.Logger
	ctx         context.Context
}

func (s *PgStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:17.5-alpine",
		postgres.WithDatabase("products"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp"),
		),
	)
	require.NoError(s.T(), err, "Failed to run PostgreSQL container")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get connection string from container")

	s.dbPool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err, "Failed to create pgxpool")

	for i := range 10 {
		s.logger.Info("Pinging PostgreSQL database", "attempt", i+1)
		err = s.dbPool.Ping(s.ctx)
		if err == nil {
			break
		}
		time.Sleep(time.Second * 2)
	}
	require.NoError(s.T(), err, "Failed to connect to PostgreSQL after retries")

	require.NoError(s.T(), migrations.Up(connStr), "Failed to apply migrations")
	s.logger.Info("Migrations applied")

	s.store = NewPgStore(s.dbPool)
}

func (s *PgStoreSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Warn("failed to terminate PostgreSQL container", "error", err)
		}
	}
}

// SetupTest truncates the products table and resets the ID sequence.
func (s *PgStoreSuite) SetupTest() {
	_, err := s.dbPool.Exec(s.ctx, "TRUNCATE TABLE products RESTART IDENTITY CASCADE")
	require.NoError(s.T(), err, "Failed to truncate products table")
}

func TestPgStoreIntegration(t *testing.T) {
	if os.Getenv(skipIntegrationTests) == "1" {
		t.Skip("Skipping integration tests based on " + skipIntegrationTests + " env var")
	}
	suite.Run(t, new(PgStoreSuite))
}

func (s *PgStoreSuite) createTestProduct(name string, price float64, quantity int32) *db.Product {
	s.T().Helper()
	product, err := s.store.Save(s.ctx, db.Product{Name: name, Description: name + " description", Price: price, Quantity: quantity})
	require.NoError(s.T(), err, "createTestProduct helper failed to create product")
	return product
}

func (s *PgStoreSuite) TestSaveAndFindByID() {
	created := s.createTestProduct("Apple Iphone 15 Pro", 599.0, 100)

	require.Equal(s.T(), int64(1), created.ID, "First product should get ID 1")
	require.False(s.T(), created.CreatedAt.IsZero(), "CreatedAt should be set")

	fetched, err := s.store.FindByID(s.ctx, created.ID)

	require.NoError(s.T(), err)
	require.Equal(s.T(), created.ID, fetched.ID)
	require.Equal(s.T(), created.Name, fetched.Name)
	require.Equal(s.T(), created.Description, fetched.Description)
	require.Equal(s.T(), created.Price, fetched.Price)
	require.Equal(s.T(), created.Quantity, fetched.Quantity)
	require.WithinDuration(s.T(), created.CreatedAt, fetched.CreatedAt, time.Second)
}

func (s *PgStoreSuite) TestFindByID_NotFound() {
	_, err := s.store.FindByID(s.ctx, 42)
	require.ErrorIs(s.T(), err, perrors.ErrProductNotFound)
}

func (s *PgStoreSuite) TestSave_Update() {
	created := s.createTestProduct("Samsung Galaxy S23", 699.0, 50)

	updated, err := s.store.Save(s.ctx, db.Product{
		ID:          created.ID,
		Name:        "Samsung Galaxy S23 Ultra",
		Description: "",
		Price:       799.5,
		Quantity:    30,
	})

	require.NoError(s.T(), err)
	require.Equal(s.T(), created.ID, updated.ID)
	require.Equal(s.T(), "Samsung Galaxy S23 Ultra", updated.Name)
	require.Empty(s.T(), updated.Description)
	require.Equal(s.T(), 799.5, updated.Price)
	require.Equal(s.T(), int32(30), updated.Quantity)
	require.False(s.T(), updated.UpdatedAt.Before(created.UpdatedAt))
}

func (s *PgStoreSuite) TestSave_UpdateNotFound() {
	_, err := s.store.Save(s.ctx, db.Product{ID: 77, Name: "Non-existent Product"})
	require.ErrorIs(s.T(), err, perrors.ErrProductNotFound)
}

func (s *PgStoreSuite) TestDeleteByID() {
	created := s.createTestProduct("OnePlus 11", 549.0, 25)

	err := s.store.DeleteByID(s.ctx, created.ID)
	require.NoError(s.T(), err)

	_, err = s.store.FindByID(s.ctx, created.ID)
	require.ErrorIs(s.T(), err, perrors.ErrProductNotFound)
}

func (s *PgStoreSuite) TestDeleteByID_NotFound() {
	err := s.store.DeleteByID(s.ctx, 404)
	require.ErrorIs(s.T(), err, perrors.ErrProductNotFound)
}

func (s *PgStoreSuite) TestFindAll_Pagination() {
	s.createTestProduct("Product A", 1, 10)
	s.createTestProduct("Product B", 2, 20)
	s.createTestProduct("Product C", 3, 30)

	firstPage, total, err := s.store.FindAll(s.ctx, 0, 2)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(3), total)
	require.Len(s.T(), firstPage, 2)
	assert.Equal(s.T(), "Product A", firstPage[0].Name)
	assert.Equal(s.T(), "Product B", firstPage[1].Name)

	secondPage, total, err := s.store.FindAll(s.ctx, 1, 2)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(3), total)
	require.Len(s.T(), secondPage, 1)
	assert.Equal(s.T(), "Product C", secondPage[0].Name)

	empty, total, err := s.store.FindAll(s.ctx, 5, 2)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(3), total)
	assert.Empty(s.T(), empty)
}
