package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"speciesmap/internal/palette"
)

// GalleryState is the persisted result of a generation run. Species order is
// the gallery order; maps are rebuilt from the stored records on demand.
type GalleryState struct {
	Family      string
	Genus       string
	Policy      palette.Spec
	Species     []string
	RunID       string
	GeneratedAt time.Time
}

// ReplaceGallery swaps in a new gallery and resets the cursor to the first page.
func (s *Store) ReplaceGallery(ctx context.Context, state GalleryState) error {
	policy, err := json.Marshal(state.Policy)
	if err != nil {
		return fmt.Errorf("marshal policy: %w", err)
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"gallery", "selection", "cursor"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO selection (id, family, genus, policy_json, run_id, generated_at) VALUES (1, ?, ?, ?, ?, ?)`,
			state.Family, state.Genus, string(policy), state.RunID, formatTime(state.GeneratedAt),
		); err != nil {
			return fmt.Errorf("insert selection: %w", err)
		}
		for i, species := range state.Species {
			if _, err := tx.ExecContext(ctx, `INSERT INTO gallery (position, species) VALUES (?, ?)`, i, species); err != nil {
				return fmt.Errorf("insert gallery entry %d: %w", i, err)
			}
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO cursor (id, page) VALUES (1, 0)`); err != nil {
			return fmt.Errorf("reset cursor: %w", err)
		}
		return nil
	})
}

// LoadGallery returns the stored gallery, or nil when none has been generated.
func (s *Store) LoadGallery(ctx context.Context) (*GalleryState, error) {
	var (
		state     GalleryState
		policy    string
		generated sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT family, genus, policy_json, run_id, generated_at FROM selection WHERE id = 1`,
	).Scan(&state.Family, &state.Genus, &policy, &state.RunID, &generated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get selection: %w", err)
	}
	if err := json.Unmarshal([]byte(policy), &state.Policy); err != nil {
		return nil, fmt.Errorf("decode policy: %w", err)
	}
	state.GeneratedAt = parseTime(generated)

	rows, err := s.db.QueryContext(ctx, `SELECT species FROM gallery ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query gallery: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var species string
		if err := rows.Scan(&species); err != nil {
			return nil, fmt.Errorf("scan gallery: %w", err)
		}
		state.Species = append(state.Species, species)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gallery: %w", err)
	}
	return &state, nil
}

// Cursor returns the stored zero-based page, 0 when unset.
func (s *Store) Cursor(ctx context.Context) (int, error) {
	var page int
	err := s.db.QueryRowContext(ctx, `SELECT page FROM cursor WHERE id = 1`).Scan(&page)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get cursor: %w", err)
	}
	return page, nil
}

// SetCursor stores the zero-based page.
func (s *Store) SetCursor(ctx context.Context, page int) error {
	if err := s.execWithRetry(ctx,
		`INSERT INTO cursor (id, page) VALUES (1, ?) ON CONFLICT(id) DO UPDATE SET page = excluded.page`,
		page,
	); err != nil {
		return fmt.Errorf("set cursor: %w", err)
	}
	return nil
}
