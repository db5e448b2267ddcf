package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
)

// ConnInfo describes how to reach a PostgreSQL server.
type ConnInfo struct {
	Host     string
	Port     int
	Username string
	Password string
	DBName   string
	// SSLMode is passed through to the driver; empty means "disable".
	SSLMode string
}

// ConnectionString returns a postgres:// URL. Credentials and the database
// name are escaped. A Host starting with "/" is a Unix-socket directory and
// goes into the host query parameter, as libpq does.
func (c ConnInfo) ConnectionString() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	query := url.Values{"sslmode": {sslMode}}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Username, c.Password),
		Path:   "/" + c.DBName,
	}
	if strings.HasPrefix(c.Host, "/") {
		query.Set("host", c.Host)
		query.Set("port", strconv.Itoa(c.Port))
	} else {
		u.Host = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	}
	u.RawQuery = query.Encode()

	return u.String()
}

// Redacted returns the connection URL with the password masked, for logs.
func (c ConnInfo) Redacted() string {
	u, err := url.Parse(c.ConnectionString())
	if err != nil {
		return ""
	}
	return u.Redacted()
}

// Open connects using info and verifies the connection with a ping.
func Open(ctx context.Context, info ConnInfo) (*sql.DB, error) {
	return OpenConnectionString(ctx, info.ConnectionString())
}

// OpenConnectionString connects using a lib/pq connection string or URL.
// The pool is limited to a single connection.
func OpenConnectionString(ctx context.Context, connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
