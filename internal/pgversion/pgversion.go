// Package pgversion probes a live PostgreSQL server's reported version and
// returns it in the dotted form schema.Parser.SetVersion accepts.
package pgversion

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"regexp"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var numericVersionPattern = regexp.MustCompile(`^\d+(\.\d+)?`)

// Prober queries server_version over an open *sql.DB connected through the
// pgx stdlib driver.
type Prober struct {
	DB     *sql.DB
	Logger *slog.Logger
}

// Open connects to dsn using the pgx stdlib driver and returns a Prober.
// The caller owns the returned *sql.DB and must Close it.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Prober, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Prober{DB: db, Logger: logger}, nil
}

// Close releases the underlying connection.
func (p *Prober) Close() error {
	if p.DB == nil {
		return nil
	}
	return p.DB.Close()
}

// ServerVersion runs SHOW server_version and returns the dotted major.minor
// prefix (e.g. "15.4" from "15.4 (Debian 15.4-1.pgdg110+1)"), suitable for
// schema.Parser.SetVersion.
func (p *Prober) ServerVersion(ctx context.Context) (string, error) {
	var raw string
	if err := p.DB.QueryRowContext(ctx, "SHOW server_version").Scan(&raw); err != nil {
		return "", fmt.Errorf("query server_version: %w", err)
	}

	match := numericVersionPattern.FindString(raw)
	if match == "" {
		return "", fmt.Errorf("could not parse numeric version from %q", raw)
	}

	if p.Logger != nil {
		p.Logger.Debug("probed postgres server version", slog.String("raw", raw), slog.String("parsed", match))
	}
	return match, nil
}
