package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/trezcool/goose"

	"github.com/jdfgtrompete/explicacoes/core"
	appfs "github.com/jdfgtrompete/explicacoes/fs"
)

// Open connects to the application database with the app credentials.
func Open(conf *core.Config) (*sql.DB, error) {
	return connect(conf.Database.Name, false, conf)
}

func connect(dbName string, asAdmin bool, conf *core.Config) (*sql.DB, error) {
	creds := url.UserPassword(conf.Database.User, conf.Database.Password)
	if asAdmin && conf.Database.AdminUser != "" {
		creds = url.UserPassword(conf.Database.AdminUser, conf.Database.AdminPassword)
	}

	q := make(url.Values)
	q.Set("timezone", "utc")
	if conf.Database.DisableTLS {
		q.Set("sslmode", "disable")
	} else {
		q.Set("sslmode", "require")
	}

	u := url.URL{
		Scheme:   conf.Database.Engine,
		User:     creds,
		Host:     conf.Database.Address(),
		Path:     dbName,
		RawQuery: q.Encode(),
	}
	return sql.Open(conf.Database.Engine, u.String())
}

// ping waits for the database to come up, backing off 100ms more per attempt.
func ping(db *sql.DB) error {
	var err error
	for attempt := 1; attempt <= 30; attempt++ {
		if err = db.Ping(); err == nil {
			return nil
		}
		time.Sleep(time.Duration(attempt) * 100 * time.Millisecond)
	}
	return errors.Wrap(err, "DB ping timeout")
}

// CreateIfNotExist provisions the app role (as admin) and the database (as
// the app role). Both steps are no-ops when the target already exists.
func CreateIfNotExist(conf *core.Config) error {
	admin, err := connect("postgres", true, conf)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer func() { _ = admin.Close() }()

	if err = ping(admin); err != nil {
		return errors.Wrap(err, "pinging database")
	}
	if err = createAppUser(admin, conf); err != nil {
		return errors.Wrap(err, "creating app user")
	}

	db, err := connect("postgres", false, conf)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer func() { _ = db.Close() }()

	return createDB(db, conf)
}

func createAppUser(db *sql.DB, conf *core.Config) error {
	if conf.Database.User == "" {
		return nil
	}

	exists, err := pgExists(db, fmt.Sprintf("SELECT true FROM pg_roles WHERE rolname='%s'", conf.Database.User))
	if err != nil {
		return errors.Wrap(err, "checking app user")
	}
	if exists {
		return nil
	}

	q := fmt.Sprintf("CREATE USER %s CREATEDB ENCRYPTED PASSWORD '%s'", conf.Database.User, conf.Database.Password)
	_, err = db.Exec(q)
	return err
}

func createDB(db *sql.DB, conf *core.Config) error {
	exists, err := pgExists(db, fmt.Sprintf("SELECT true FROM pg_database WHERE datname='%s'", conf.Database.Name))
	if err != nil {
		return errors.Wrap(err, "checking DB")
	}
	if exists {
		return nil
	}

	if _, err = db.Exec(fmt.Sprintf("CREATE DATABASE %s", conf.Database.Name)); err != nil {
		return errors.Wrap(err, "creating database")
	}
	return nil
}

func pgExists(db *sql.DB, query string) (bool, error) {
	var exists bool
	if err := db.QueryRow(query).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

// Migrate applies the embedded goose migrations.
func Migrate(db *sql.DB) error {
	if err := goose.RunFS("up", db, appfs.FS, "migrations"); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}
