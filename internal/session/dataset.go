package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"speciesmap/internal/dataset"
)

// LoadedDataset is the persisted working dataset.
type LoadedDataset struct {
	Dataset  *dataset.Dataset
	LoadedAt time.Time
}

// SaveDataset replaces the stored dataset. The gallery, selection and cursor
// belong to the previous dataset and are cleared in the same transaction.
func (s *Store) SaveDataset(ctx context.Context, ds *dataset.Dataset, loadedAt time.Time) error {
	if ds == nil {
		return errors.New("dataset is nil")
	}
	summary, err := json.Marshal(ds.Summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"records", "dataset", "gallery", "selection", "cursor"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dataset (id, source_path, loaded_at, summary_json) VALUES (1, ?, ?, ?)`,
			ds.Source, formatTime(loadedAt), string(summary),
		); err != nil {
			return fmt.Errorf("insert dataset: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO records (seq, county, family, genus, species, subgenus, year, matched)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare record insert: %w", err)
		}
		defer stmt.Close()

		seq := 0
		insert := func(rec dataset.Record, matched int) error {
			var year any
			if rec.HasYear {
				year = rec.Year
			}
			seq++
			if _, err := stmt.ExecContext(ctx, seq, rec.County, rec.Family, rec.Genus, rec.Species,
				nullableString(rec.Subgenus), year, matched); err != nil {
				return fmt.Errorf("insert record %d: %w", seq, err)
			}
			return nil
		}
		for _, rec := range ds.Records {
			if err := insert(rec, 1); err != nil {
				return err
			}
		}
		for _, rec := range ds.Rejected {
			if err := insert(rec, 0); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadDataset returns the stored dataset, or nil when none has been loaded.
func (s *Store) LoadDataset(ctx context.Context) (*LoadedDataset, error) {
	var (
		source    string
		loadedRaw sql.NullString
		summary   string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT source_path, loaded_at, summary_json FROM dataset WHERE id = 1`,
	).Scan(&source, &loadedRaw, &summary)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get dataset: %w", err)
	}

	ds := &dataset.Dataset{Source: source}
	if err := json.Unmarshal([]byte(summary), &ds.Summary); err != nil {
		return nil, fmt.Errorf("decode dataset summary: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT county, family, genus, species, subgenus, year, matched FROM records ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec      dataset.Record
			subgenus sql.NullString
			year     sql.NullInt64
			matched  int
		)
		if err := rows.Scan(&rec.County, &rec.Family, &rec.Genus, &rec.Species, &subgenus, &year, &matched); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Subgenus = subgenus.String
		if year.Valid {
			rec.Year, rec.HasYear = int(year.Int64), true
		}
		if matched == 1 {
			ds.Records = append(ds.Records, rec)
		} else {
			ds.Rejected = append(ds.Rejected, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return &LoadedDataset{Dataset: ds, LoadedAt: parseTime(loadedRaw)}, nil
}
