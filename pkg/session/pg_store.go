package session

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/sportkit/pkg/pg"
)

// PGStore implements Store on PostgreSQL through a pgx connection pool.
// One row per session; participants are kept inline as a text array so a row
// is always a consistent snapshot. The revision column drives the
// compare-and-swap on Update. Schema lives in migrations/.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore creates a PostgreSQL-backed session store over an existing pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// NewPGStoreFromConfig connects to PostgreSQL, applies the schema migrations
// from cfg.MigrationsPath, verifies connectivity, and returns a ready store.
func NewPGStoreFromConfig(ctx context.Context, cfg pg.Config, log *slog.Logger) (*PGStore, error) {
	if log == nil {
		log = slog.Default()
	}

	pool, err := pg.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
		pool.Close()
		return nil, err
	}
	if err := pg.Healthcheck(pool)(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return NewPGStore(pool), nil
}

// Create stores a new session row.
func (p *PGStore) Create(ctx context.Context, sess *Session) error {
	if sess == nil || sess.ID == "" {
		return ErrInvalidSession
	}

	_, err := p.pool.Exec(ctx, `
		INSERT INTO sessions (
			id, title, sport, venue, team_a, team_b, scheduled_at,
			capacity_total, capacity_filled, status, cancel_reason,
			creator_id, participants, revision, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		sess.ID, sess.Title, sess.Sport, sess.Venue, sess.TeamA, sess.TeamB,
		sess.ScheduledAt, sess.CapacityTotal, sess.CapacityFilled,
		string(sess.Status), sess.CancelReason, sess.CreatorID,
		sess.Participants, sess.Revision, sess.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Get retrieves a session row by id.
func (p *PGStore) Get(ctx context.Context, id string) (*Session, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT id, title, sport, venue, team_a, team_b, scheduled_at,
			capacity_total, capacity_filled, status, cancel_reason,
			creator_id, participants, revision, created_at
		FROM sessions WHERE id = $1`, id)

	sess, err := scanSession(row)
	if pg.IsNotFoundError(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// Update replaces the mutable columns if the revision chain is intact.
func (p *PGStore) Update(ctx context.Context, sess *Session) error {
	if sess == nil || sess.ID == "" {
		return ErrInvalidSession
	}

	tag, err := p.pool.Exec(ctx, `
		UPDATE sessions SET
			capacity_filled = $3, status = $4, cancel_reason = $5,
			participants = $6, revision = $7
		WHERE id = $1 AND revision = $2`,
		sess.ID, sess.Revision-1, sess.CapacityFilled, string(sess.Status),
		sess.CancelReason, sess.Participants, sess.Revision,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a lost race from a missing row.
		var exists bool
		if err := p.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM sessions WHERE id = $1)`, sess.ID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrRevisionMismatch
	}
	return nil
}

// All returns every stored session.
func (p *PGStore) All(ctx context.Context) ([]*Session, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, title, sport, venue, team_a, team_b, scheduled_at,
			capacity_total, capacity_filled, status, cancel_reason,
			creator_id, participants, revision, created_at
		FROM sessions`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

func scanSession(row pgx.Row) (*Session, error) {
	var sess Session
	var status string
	if err := row.Scan(
		&sess.ID, &sess.Title, &sess.Sport, &sess.Venue, &sess.TeamA,
		&sess.TeamB, &sess.ScheduledAt, &sess.CapacityTotal,
		&sess.CapacityFilled, &status, &sess.CancelReason, &sess.CreatorID,
		&sess.Participants, &sess.Revision, &sess.CreatedAt,
	); err != nil {
		return nil, err
	}
	sess.Status = Status(status)
	return &sess, nil
}
