// AngelaMos | 2026
// postgres.go

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage    = "postgres:16-alpine"
	postgresPort     = "5432/tcp"
	postgresUser     = "lifehacking"
	postgresPassword = "lifehacking"
	postgresDB       = "lifehacking"
	startTimeout     = 90 * time.Second
)

// SkipIfNoDocker skips the test when the Docker daemon is unreachable.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := exec.CommandContext(ctx, "docker", "info").Run(); err != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

// NewPostgres starts a throwaway Postgres container, applies the schema
// migrations and returns a connected handle. The container is terminated
// when the test finishes.
func NewPostgres(t *testing.T) *sqlx.DB {
	t.Helper()
	SkipIfNoDocker(t)

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{postgresPort},
			Env: map[string]string{
				"POSTGRES_USER":     postgresUser,
				"POSTGRES_PASSWORD": postgresPassword,
				"POSTGRES_DB":       postgresDB,
			},
			// The server logs readiness twice: once for the init pass and
			// once for the real start.
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort(postgresPort),
			).WithStartupTimeout(startTimeout),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, postgresPort)
	if err != nil {
		t.Fatalf("get mapped port: %v", err)
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		postgresUser, postgresPassword, host, port.Port(), postgresDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		t.Fatalf("connect to postgres: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := migrate(ctx, db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	return db
}

func migrate(ctx context.Context, db *sqlx.DB) error {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return fmt.Errorf("locate migrations directory")
	}

	dir := filepath.Join(filepath.Dir(file), "..", "..", "migrations")
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no migrations found in %s", dir)
	}

	for _, path := range files {
		script, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(script)); err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
	}

	return nil
}

// InsertUser stores an active user and returns its id.
func InsertUser(t *testing.T, db *sqlx.DB, email string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO users (id, email, name, external_auth_id)
		VALUES ($1, $2, $3, $4)`,
		id, email, email, "ext-"+id,
	)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}

	return id
}

// InsertCategory stores an active category and returns its id.
func InsertCategory(t *testing.T, db *sqlx.DB, name string) string {
	t.Helper()

	id := uuid.NewString()
	if _, err := db.Exec(`INSERT INTO categories (id, name) VALUES ($1, $2)`, id, name); err != nil {
		t.Fatalf("insert category: %v", err)
	}

	return id
}

// InsertTip stores an active tip in categoryID. tags is a JSON array
// literal such as `["kitchen"]`.
func InsertTip(t *testing.T, db *sqlx.DB, categoryID, title, description, tags string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO tips (id, title, description, category_id, tags)
		VALUES ($1, $2, $3, $4, $5::jsonb)`,
		id, title, description, categoryID, tags,
	)
	if err != nil {
		t.Fatalf("insert tip: %v", err)
	}

	return id
}
