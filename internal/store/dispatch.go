package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/gesture"
)

// DispatchRecord is one journaled dispatch.
type DispatchRecord struct {
	ID      string        `json:"id"`
	Seq     int64         `json:"seq"`
	Gesture gesture.Label `json:"gesture"`
	Action  string        `json:"action"`
	At      time.Time     `json:"at"`
}

// DispatchRepository provides access to the dispatch journal.
type DispatchRepository struct {
	db *sql.DB
}

// Dispatches returns the dispatch repository for this store.
func (s *Store) Dispatches() *DispatchRepository {
	return &DispatchRepository{db: s.db}
}

// Record appends d to the journal and returns the stored record.
func (r *DispatchRepository) Record(ctx context.Context, d gesture.Dispatch) (*DispatchRecord, error) {
	rec := &DispatchRecord{
		ID:      uuid.NewString(),
		Gesture: d.Label,
		Action:  d.Action,
		At:      d.At,
	}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO dispatches (id, seq, gesture, action, at_unix_ns)
		 VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM dispatches), ?, ?, ?)
		 RETURNING seq`,
		rec.ID, string(rec.Gesture), rec.Action, rec.At.UnixNano(),
	).Scan(&rec.Seq)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GetByID retrieves a dispatch by its ID.
func (r *DispatchRepository) GetByID(ctx context.Context, id string) (*DispatchRecord, error) {
	rec, err := scanDispatch(r.db.QueryRowContext(ctx,
		`SELECT id, seq, gesture, action, at_unix_ns FROM dispatches WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

// List returns up to limit dispatches, newest first. A non-positive limit
// returns all of them.
func (r *DispatchRepository) List(ctx context.Context, limit int) ([]*DispatchRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, seq, gesture, action, at_unix_ns FROM dispatches
		 ORDER BY seq DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*DispatchRecord
	for rows.Next() {
		rec, err := scanDispatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// CountByGesture returns how often each gesture fired.
func (r *DispatchRepository) CountByGesture(ctx context.Context) (map[gesture.Label]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT gesture, COUNT(*) FROM dispatches GROUP BY gesture`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[gesture.Label]int)
	for rows.Next() {
		var g string
		var n int
		if err := rows.Scan(&g, &n); err != nil {
			return nil, err
		}
		counts[gesture.Label(g)] = n
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDispatch(row rowScanner) (*DispatchRecord, error) {
	rec := &DispatchRecord{}
	var g string
	var ns int64
	if err := row.Scan(&rec.ID, &rec.Seq, &g, &rec.Action, &ns); err != nil {
		return nil, err
	}
	rec.Gesture = gesture.Label(g)
	rec.At = time.Unix(0, ns)
	return rec, nil
}

// OnDispatch journals d. Failures are logged; the frame loop never sees
// them.
func (s *Store) OnDispatch(d gesture.Dispatch) {
	if _, err := s.Dispatches().Record(context.Background(), d); err != nil {
		s.log.Error("journal dispatch", "gesture", d.Label.String(), "error", err)
	}
}
