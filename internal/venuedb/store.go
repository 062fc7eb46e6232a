// Package venuedb keeps the venue dataset and the session's verdict tally in
// an in-memory DuckDB database so the map and profile screens can query them.
package venuedb

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/tinytelemetry/spark/internal/model"
	"github.com/tinytelemetry/spark/internal/venuedb/migrate"
	"go.uber.org/zap"
)

// DefaultQueryTimeout bounds every query issued by the store.
const DefaultQueryTimeout = 5 * time.Second

// Store is an in-memory DuckDB database holding venues and verdicts.
// Nothing is written to disk; the data lives as long as the process.
type Store struct {
	db           *sql.DB
	mu           sync.RWMutex
	log          *zap.Logger
	QueryTimeout time.Duration
}

// Open creates an empty in-memory store with the schema applied.
func Open(ctx context.Context, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("opening duckdb: %w", err)
	}
	// An in-memory database is private to its connection.
	db.SetMaxOpenConns(1)

	if err := migrate.NewRunner(db).Run(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating: %w", err)
	}

	return &Store{
		db:           db,
		log:          log.Named("venuedb"),
		QueryTimeout: DefaultQueryTimeout,
	}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// queryCtx returns a context with the store's configured query timeout.
func (s *Store) queryCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.QueryTimeout)
}

// LoadVenues replaces the venue table with venues. Entries without a position
// are skipped.
func (s *Store) LoadVenues(venues []model.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin venue load: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM venues"); err != nil {
		return fmt.Errorf("clearing venues: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO venues
		(id, name, category, emoji, people, intensity, heat_rank, pos_top, pos_left, neighborhood)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing venue insert: %w", err)
	}
	defer stmt.Close()

	loaded := 0
	for _, v := range venues {
		if v.Position == nil {
			s.log.Debug("venue without position skipped", zap.Int("id", v.ID))
			continue
		}
		if _, err := stmt.ExecContext(ctx,
			v.ID, v.Name, v.Category, v.Emoji, v.People,
			string(v.Intensity), v.Intensity.Rank(),
			v.Position.Top, v.Position.Left, v.Neighborhood,
		); err != nil {
			return fmt.Errorf("inserting venue %d: %w", v.ID, err)
		}
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit venue load: %w", err)
	}
	s.log.Debug("venues loaded", zap.Int("count", loaded))
	return nil
}

// RecordVerdict appends one discovery decision to the session tally.
func (s *Store) RecordVerdict(rec model.VerdictRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	at := rec.DecidedAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO verdicts (card_id, verdict, decided_at) VALUES (?, ?, ?)",
		rec.CardID, rec.Verdict, at.UTC())
	if err != nil {
		return fmt.Errorf("recording verdict: %w", err)
	}
	return nil
}
