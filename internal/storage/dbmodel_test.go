package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/GevorkovG/go-shortener-digest/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// PostgresStorageTestSuite требует живую базу: TEST_DATABASE_DSN.
type PostgresStorageTestSuite struct {
	suite.Suite
	db      *database.DBStore
	storage *PostgresStorage
}

func (s *PostgresStorageTestSuite) SetupSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := database.InitDB(ctx, os.Getenv("TEST_DATABASE_DSN"))
	require.NoError(s.T(), err, "Failed to connect to database")

	s.db = db
	s.storage = NewPostgresStorage(db)
}

func (s *PostgresStorageTestSuite) TearDownSuite() {
	if s.db != nil {
		_, _ = s.db.Pool.Exec(context.Background(), "DROP TABLE IF EXISTS links")
		s.db.Close()
	}
}

func (s *PostgresStorageTestSuite) SetupTest() {
	_, err := s.db.Pool.Exec(context.Background(), "TRUNCATE TABLE links RESTART IDENTITY")
	require.NoError(s.T(), err, "Failed to truncate table")
}

func TestPostgresStorageSuite(t *testing.T) {
	if testing.Short() || os.Getenv("TEST_DATABASE_DSN") == "" {
		t.Skip("Skipping database integration tests")
	}
	suite.Run(t, new(PostgresStorageTestSuite))
}

func (s *PostgresStorageTestSuite) TestContract() {
	checkStorage(s.T(), s.storage)
}

func (s *PostgresStorageTestSuite) TestCreateTableIsRepeatable() {
	ctx := context.Background()
	require.NoError(s.T(), s.db.CreateTable(ctx))

	var exists bool
	err := s.db.Pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = 'links')",
	).Scan(&exists)
	assert.NoError(s.T(), err)
	assert.True(s.T(), exists)
}

func (s *PostgresStorageTestSuite) TestConnectionsReleased() {
	ctx := context.Background()
	link := newLink("https://example.com/release")

	for i := 0; i < 50; i++ {
		require.NoError(s.T(), s.storage.Put(ctx, link))
		_, _, err := s.storage.Get(ctx, link.Path)
		require.NoError(s.T(), err)
		_, _, err = s.storage.Get(ctx, unusedPath)
		require.NoError(s.T(), err)
	}

	assert.Zero(s.T(), s.db.Pool.Stat().AcquiredConns())
}

func (s *PostgresStorageTestSuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.storage.Get(ctx, unusedPath)
	assert.ErrorIs(s.T(), err, ErrStorage)
}
