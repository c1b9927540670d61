// Package db opens the single database session used for a run.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// Credentials are the individual connection settings accepted on the
// command line.
type Credentials struct {
	Host     string
	Database string
	User     string
	Password string
}

func (c Credentials) IsZero() bool {
	return c == Credentials{}
}

// Missing lists the settings that are not set, in flag order.
func (c Credentials) Missing() []string {
	var missing []string
	if c.Host == "" {
		missing = append(missing, "host")
	}
	if c.Database == "" {
		missing = append(missing, "database")
	}
	if c.User == "" {
		missing = append(missing, "user")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	return missing
}

func (c Credentials) ConnString() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host,
		Path:   "/" + c.Database,
	}
	return u.String()
}

// Open connects and verifies the session. The pool is capped at one
// connection and statements run in autocommit mode, as VACUUM FULL cannot
// run inside a transaction block.
func Open(ctx context.Context, connStr string) (*sql.DB, error) {
	cfg, err := pgx.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	conn := stdlib.OpenDB(*cfg)
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return conn, nil
}
