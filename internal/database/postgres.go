package database

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/lib/pq"

	"github.com/iliyamo/bowling-center/internal/config"
)

// OpenPostgres connects to Postgres and verifies the connection.  There
// is no connect retry; the process exits and the orchestrator restarts it.
func OpenPostgres(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", postgresURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("database: open postgres: %w", err)
	}
	return pool(db)
}

func postgresURL(cfg config.DBConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Pass),
		Host:     cfg.Host + ":" + cfg.Port,
		Path:     "/" + cfg.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
