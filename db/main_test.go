package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var dbAvailable bool

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := startPostgres(ctx)
	if err != nil {
		log.Printf("postgres container unavailable, db tests will be skipped: %v", err)
		os.Exit(m.Run())
	}

	code := func() int {
		defer func() {
			if err := container.Terminate(ctx); err != nil {
				log.Printf("failed to terminate container: %s", err)
			}
		}()

		connStr, err := container.ConnectionString(ctx, "sslmode=disable", "timezone=UTC")
		if err != nil {
			log.Printf("failed to get connection string: %v", err)
			return 1
		}

		conn, err := sqlx.Connect("postgres", connStr)
		if err != nil {
			log.Printf("failed to connect: %v", err)
			return 1
		}
		defer conn.Close()

		UseConn(conn)

		if err := MigrationsUp("../migrations"); err != nil {
			log.Printf("failed to run migrations: %v", err)
			return 1
		}

		dbAvailable = true
		return m.Run()
	}()

	os.Exit(code)
}

func startPostgres(ctx context.Context) (container *postgres.PostgresContainer, err error) {
	// testcontainers panics instead of erroring when no docker provider can be found
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("starting container: %v", r)
		}
	}()

	return postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("forum"),
		postgres.WithUsername("forum"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
}

// setupDb skips the test without docker and truncates every table when the test finishes.
func setupDb(t *testing.T) context.Context {
	t.Helper()
	if !dbAvailable {
		t.Skip("postgres not available")
	}

	t.Cleanup(func() {
		_, err := Conn.Exec(`TRUNCATE TABLE users, sections RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
	})

	return context.Background()
}

func createTestUser(t *testing.T, ctx context.Context, username string) *User {
	t.Helper()
	user, err := CreateUser(ctx, username, username+"@example.com", false)
	require.NoError(t, err)
	return user
}

func createTestSubsection(t *testing.T, ctx context.Context) *Subsection {
	t.Helper()
	section, err := CreateSection(ctx, "General", "Everything else", 0)
	require.NoError(t, err)
	subsection, err := CreateSubsection(ctx, section.Id, "Chat", "", 0)
	require.NoError(t, err)
	return subsection
}
