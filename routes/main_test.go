package routes

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"forum-server/db"
	"forum-server/emoji"
	"forum-server/handlers"
	"forum-server/hooks"
	"forum-server/inbox"
	"forum-server/media"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var dbAvailable bool

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := startPostgres(ctx)
	if err != nil {
		log.Printf("postgres container unavailable, integration tests will be skipped: %v", err)
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

		db.UseConn(conn)

		if err := db.MigrationsUp("../migrations"); err != nil {
			log.Printf("failed to run migrations: %v", err)
			return 1
		}

		dbAvailable = true
		return m.Run()
	}()

	os.Exit(code)
}

func startPostgres(ctx context.Context) (container *postgres.PostgresContainer, err error) {
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

// newTestRouter wires the handlers to temp-dir media and emoji stores.
func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	mediaStore := media.NewLocalStore(t.TempDir(), "/media/")
	renderer := emoji.NewRenderer(t.TempDir(), "/static/emoji/")

	handlers.Init(handlers.Deps{
		Sessions: handlers.NewCookieStore("test-secret", false),
		Inbox:    inbox.NewService(inbox.NewDbStore(), renderer, mediaStore),
		Emoji:    renderer,
		Media:    mediaStore,
	})
	hooks.Reset()

	t.Cleanup(func() {
		handlers.Init(handlers.Deps{})
		hooks.Reset()
	})

	r := mux.NewRouter()
	AddHealthRoutes(r)
	AddApiRoutes(r)
	return r
}

// setupDb skips the test without docker and truncates every table when the test finishes.
func setupDb(t *testing.T) context.Context {
	t.Helper()
	if !dbAvailable {
		t.Skip("postgres not available")
	}

	t.Cleanup(func() {
		_, err := db.Conn.Exec(`TRUNCATE TABLE users, sections RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
	})

	return context.Background()
}

type testUser struct {
	*db.User
	token string
}

func createTestUser(t *testing.T, ctx context.Context, username string, isStaff bool) testUser {
	t.Helper()
	user, err := db.CreateUser(ctx, username, username+"@example.com", isStaff)
	require.NoError(t, err)
	token, _, err := db.CreateAuthToken(ctx, user.Id)
	require.NoError(t, err)
	return testUser{User: user, token: token}
}
