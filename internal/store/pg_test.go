package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/partvault/assettag/internal/store/schema"
)

var (
	testDB      *gorm.DB
	pgContainer *postgres.PostgresContainer
)

// TestMain sets up the test database before running tests
func TestMain(m *testing.M) {
	ctx := context.Background()

	// Check if we should use an external database (for CI or local development)
	dbHost := os.Getenv("TEST_DB_HOST")
	dbPort := os.Getenv("TEST_DB_PORT")
	dbUser := os.Getenv("TEST_DB_USER")
	dbPassword := os.Getenv("TEST_DB_PASSWORD")
	dbName := os.Getenv("TEST_DB_NAME")

	var dsn string
	var err error

	if dbHost != "" {
		// Use external database
		if dbPort == "" {
			dbPort = "5432"
		}
		if dbUser == "" {
			dbUser = "postgres"
		}
		if dbPassword == "" {
			dbPassword = "postgres"
		}
		if dbName == "" {
			dbName = "test_db"
		}

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, dbPort, dbUser, dbPassword, dbName)

		fmt.Printf("Using external database: %s:%s/%s\n", dbHost, dbPort, dbName)
	} else {
		// Start a PostgreSQL container for testing
		pgContainer, err = postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("test_db"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			fmt.Printf("Failed to start PostgreSQL container: %v\n", err)
			os.Exit(1)
		}

		dsn, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Printf("Failed to get connection string: %v\n", err)
			if err := pgContainer.Terminate(ctx); err != nil {
				fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
			}
			os.Exit(1)
		}

		fmt.Printf("Started PostgreSQL container\n")
	}

	// Connect to the database
	testDB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		if pgContainer != nil {
			if err := pgContainer.Terminate(ctx); err != nil {
				fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
			}
		}
		os.Exit(1)
	}

	// Initialize the database schema
	err = initializeTestDatabase(testDB)
	if err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		if pgContainer != nil {
			if err := pgContainer.Terminate(ctx); err != nil {
				fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
			}
		}
		os.Exit(1)
	}

	// Run tests
	code := m.Run()

	// Cleanup
	if pgContainer != nil {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
		}
	}

	os.Exit(code)
}

// initializeTestDatabase runs the schema initialization SQL
func initializeTestDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	schemaPath := filepath.Join("..", "..", "db", "init_pg_db.sql")
	schemaSQL, err := os.ReadFile(schemaPath) //nolint:gosec,G304
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	_, err = sqlDB.Exec(string(schemaSQL))
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// initPGTestDB initializes a test database for each test. Each test runs in
// its own transaction which is rolled back on cleanup.
func initPGTestDB(t *testing.T) Store {
	tx := testDB.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)

	t.Cleanup(func() {
		tx.Rollback()
	})

	return NewPGStore(tx)
}

// cleanupPGTestDB is called after each test to clean up
// With transaction-based isolation, this is handled by the t.Cleanup rollback
func cleanupPGTestDB(t *testing.T) {
	// Cleanup is handled by transaction rollback in t.Cleanup
}

// TestPostgreSQLStore runs all store tests against PostgreSQL
func TestPostgreSQLStore(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}

	RunStoreTests(t, initPGTestDB, cleanupPGTestDB)
}

// TestTagChangeJournal verifies every status transition writes an audit row
// in the same transaction
func TestTagChangeJournal(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}

	ctx := context.Background()
	now := time.Now().UTC()

	tx := testDB.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() { tx.Rollback() })

	store := NewPGStore(tx)

	item, err := store.CreateItem(ctx, "journal-user", "power meter")
	require.NoError(t, err)

	rec, err := store.CreateReserved(ctx, "journal-user", now)
	require.NoError(t, err)
	require.NoError(t, store.MarkAssigned(ctx, rec, item.ID, now))
	require.NoError(t, store.MarkVoidByTag(ctx, *rec.Tag))

	var changes []schema.TagChange
	require.NoError(t, tx.Where("tag_id = ?", rec.ID).Order("id ASC").Find(&changes).Error)
	require.Len(t, changes, 3)

	assert.Equal(t, schema.TagChangeReserved, changes[0].ChangeType)
	assert.Equal(t, schema.TagChangeAssigned, changes[1].ChangeType)
	assert.Equal(t, schema.TagChangeVoided, changes[2].ChangeType)

	for _, change := range changes {
		assert.NotEmpty(t, []byte(change.Meta))
	}
}

// TestClaimSkipsLockedRows verifies the non-blocking claim: while one
// transaction holds the only reservation's row lock, a concurrent claim for
// the same user sees nothing instead of waiting. Runs against real
// connections, so it cleans up after itself.
func TestClaimSkipsLockedRows(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}

	ctx := context.Background()
	user := "skip-locked-user"
	store := NewPGStore(testDB)

	t.Cleanup(func() {
		testDB.Exec("DELETE FROM tag_changes WHERE tag_id IN (SELECT id FROM asset_tags WHERE reserved_by = ?)", user)
		testDB.Exec("DELETE FROM asset_tags WHERE reserved_by = ?", user)
	})

	rec, err := store.CreateReserved(ctx, user, time.Now().UTC())
	require.NoError(t, err)

	claimed := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := store.Transaction(ctx, func(tx Store) error {
			got, err := tx.ClaimOldestReserved(ctx, user)
			if err != nil {
				return err
			}
			require.NotNil(t, got)
			require.Equal(t, rec.ID, got.ID)

			close(claimed)
			<-release
			return nil
		})
		assert.NoError(t, err)
	}()

	<-claimed

	// The only reservation is locked by the first transaction; the claim
	// must come back empty without blocking
	err = store.Transaction(ctx, func(tx Store) error {
		got, err := tx.ClaimOldestReserved(ctx, user)
		if err != nil {
			return err
		}
		assert.Nil(t, got)
		return nil
	})
	require.NoError(t, err)

	close(release)
	wg.Wait()
}

// TestConcurrentAssignDistinctTags verifies that concurrent assignments for
// the same user never hand out the same ledger record
func TestConcurrentAssignDistinctTags(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}

	ctx := context.Background()
	user := "concurrent-assign-user"
	store := NewPGStore(testDB)

	t.Cleanup(func() {
		testDB.Exec("DELETE FROM tag_changes WHERE tag_id IN (SELECT id FROM asset_tags WHERE reserved_by = ?)", user)
		testDB.Exec("DELETE FROM asset_tags WHERE reserved_by = ?", user)
		testDB.Exec("DELETE FROM items WHERE owner = ?", user)
	})

	const workers = 8
	now := time.Now().UTC()

	// Fewer reservations than workers, so some assignments must mint
	for i := 0; i < workers/2; i++ {
		_, err := store.CreateReserved(ctx, user, now)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			err := store.Transaction(ctx, func(tx Store) error {
				item, err := tx.CreateItem(ctx, user, fmt.Sprintf("bench item %d", n))
				if err != nil {
					return err
				}

				rec, err := tx.ClaimOldestReserved(ctx, user)
				if err != nil {
					return err
				}
				if rec == nil {
					rec, err = tx.CreateReserved(ctx, user, time.Now().UTC())
					if err != nil {
						return err
					}
				}

				return tx.MarkAssigned(ctx, rec, item.ID, time.Now().UTC())
			})
			if err != nil {
				t.Errorf("concurrent assign failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	// Every worker assigned exactly one tag and no reservation is left
	// half-claimed: reserved rows never carry an item binding
	var assigned int64
	require.NoError(t, testDB.Model(&schema.AssetTag{}).
		Where("reserved_by = ? AND status = ?", user, schema.TagStatusAssigned).
		Count(&assigned).Error)
	assert.Equal(t, int64(workers), assigned)

	var danglers int64
	require.NoError(t, testDB.Model(&schema.AssetTag{}).
		Where("reserved_by = ? AND status = ? AND assigned_item_id IS NOT NULL", user, schema.TagStatusReserved).
		Count(&danglers).Error)
	assert.Equal(t, int64(0), danglers)
}
