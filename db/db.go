package db

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"forum-server/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var Conn *sqlx.DB

const LockTimeout = 4000
const IdleInTransactionSessionTimeout = 90000
const StatementTimeout = 30000

func Connect(cfg *config.Config) error {
	var err error

	dbUrl := withSessionSettings(cfg.Db.Url)

	Conn, err = sqlx.Connect("postgres", dbUrl)
	if err != nil {
		return err
	}

	log.Println("connected to database")

	Conn.SetMaxOpenConns(cfg.Db.MaxOpenConns)
	Conn.SetMaxIdleConns(cfg.Db.MaxIdleConns)

	type setting struct {
		Name    string  `db:"name"`
		Setting string  `db:"setting"`
		Unit    *string `db:"unit"`
	}

	var settings []setting
	err = Conn.Select(&settings, `
		SELECT name, setting, unit
		FROM pg_settings
		WHERE name IN ('statement_timeout', 'lock_timeout', 'TimeZone', 'idle_in_transaction_session_timeout')
`)
	if err != nil {
		return fmt.Errorf("error checking settings: %v", err)
	}

	s := ""
	for _, setting := range settings {
		unitStr := ""
		if setting.Unit != nil {
			unitStr = " " + *setting.Unit
		}
		s += fmt.Sprintf("- %s = %s%s\n", setting.Name, setting.Setting, unitStr)
	}
	log.Printf("\n\nDatabase settings:\n%s\n", s)

	return nil
}

// UseConn installs an already opened handle, e.g. one pointed at a test container.
func UseConn(conn *sqlx.DB) {
	Conn = conn
}

func withSessionSettings(dbUrl string) string {
	sep := "?"
	if strings.Contains(dbUrl, "?") {
		sep = "&"
	}
	return dbUrl + sep + fmt.Sprintf("statement_timeout=%d&lock_timeout=%d&timezone=UTC&idle_in_transaction_session_timeout=%d", StatementTimeout, LockTimeout, IdleInTransactionSessionTimeout)
}

func MigrationsUp(dir string) error {
	if Conn == nil {
		return errors.New("db not initialized")
	}

	driver, err := postgres.WithInstance(Conn.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("error creating postgres driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return fmt.Errorf("error creating migration instance: %v", err)
	}

	err = m.Up()
	if err != nil {
		if err == migrate.ErrNoChange {
			log.Println("migration state is up to date")
			return nil
		}
		return fmt.Errorf("error running migrations: %v", err)
	}

	log.Println("ran migrations successfully")

	return nil
}

// Ping is used by the health check route.
func Ping() error {
	if Conn == nil {
		return errors.New("db not initialized")
	}
	return Conn.Ping()
}
