package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver

	"github.com/voxhire/interview-poc/gateway/internal/interview"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Postgres is the durable session registry, used when DATABASE_URL is set.
// Unlike the in-memory map, sessions survive process restarts.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects to the registry database at connStr and applies
// pending migrations.
func OpenPostgres(connStr string) (*Postgres, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("registry open: %w", err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("registry ping: %w", err)
	}
	if err = migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("registry migrate: %w", err)
	}
	return &Postgres{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`)
	if err != nil {
		return err
	}

	var current int
	row := db.QueryRow(`SELECT COALESCE(MAX(version), -1) FROM schema_version`)
	if err = row.Scan(&current); err != nil {
		return err
	}

	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	for i := current + 1; i < len(entries); i++ {
		data, readErr := migrationFS.ReadFile("migrations/" + entries[i].Name())
		if readErr != nil {
			return fmt.Errorf("read migration %d: %w", i, readErr)
		}
		if _, execErr := db.Exec(string(data)); execErr != nil {
			return fmt.Errorf("migration %d: %w", i, execErr)
		}
		if _, execErr := db.Exec(`INSERT INTO schema_version (version) VALUES ($1)`, i); execErr != nil {
			return fmt.Errorf("migration %d record: %w", i, execErr)
		}
	}
	return nil
}

// Create registers a new empty session for id.
func (p *Postgres) Create(ctx context.Context, id string, cfg interview.Config) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO interviews (id, role, difficulty, duration_minutes, created_at) VALUES ($1, $2, $3, $4, $5)`,
		id, string(cfg.Role), string(cfg.Difficulty), cfg.Duration, time.Now().UTC(),
	)
	return err
}

// Get returns the session for id with its history in transcript order.
func (p *Postgres) Get(ctx context.Context, id string) (*Session, error) {
	var sess Session
	var role, difficulty string
	err := p.db.QueryRowContext(ctx,
		`SELECT id, role, difficulty, duration_minutes, created_at FROM interviews WHERE id = $1`, id,
	).Scan(&sess.ID, &role, &difficulty, &sess.Config.Duration, &sess.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	sess.Config.Role = interview.Role(role)
	sess.Config.Difficulty = interview.Difficulty(difficulty)

	rows, err := p.db.QueryContext(ctx,
		`SELECT speaker, text, spoken_at FROM turns WHERE interview_id = $1 ORDER BY id ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var e interview.Entry
		var speaker string
		if err = rows.Scan(&speaker, &e.Text, &e.Timestamp); err != nil {
			return nil, err
		}
		e.Speaker = interview.Speaker(speaker)
		sess.History = append(sess.History, e)
	}
	return &sess, rows.Err()
}

// AppendTurns adds entries to the session history in order.
func (p *Postgres) AppendTurns(ctx context.Context, id string, entries ...interview.Entry) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	if err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM interviews WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	for _, e := range entries {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO turns (interview_id, speaker, text, spoken_at) VALUES ($1, $2, $3, $4)`,
			id, string(e.Speaker), e.Text, e.Timestamp,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Delete removes the session and, via cascade, its turns.
func (p *Postgres) Delete(ctx context.Context, id string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM interviews WHERE id = $1`, id)
	return err
}

// Close closes the database.
func (p *Postgres) Close() error {
	return p.db.Close()
}
