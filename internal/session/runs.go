package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// RunKind names the operation a run performed.
type RunKind string

const (
	RunLoad       RunKind = "load"
	RunGenerate   RunKind = "generate"
	RunExportPage RunKind = "export_page"
	RunExportAll  RunKind = "export_all"
)

// RunStatus is the outcome of a run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// Run is one recorded operation.
type Run struct {
	ID         string
	Kind       RunKind
	Status     RunStatus
	StartedAt  time.Time
	FinishedAt time.Time
	Family     string
	Genus      string
	Species    int
	Pages      int
	Output     string
	Unmatched  []string
	Error      string
}

const runColumns = "id, kind, status, started_at, finished_at, family, genus, species_count, page_count, output_path, unmatched_json, error_message"

// StartRun records a running operation.
func (s *Store) StartRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return errors.New("run id is required")
	}
	if run.Status == "" {
		run.Status = RunRunning
	}
	if err := s.execWithRetry(ctx,
		`INSERT INTO runs (id, kind, status, started_at, family, genus) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Kind, run.Status, formatTime(run.StartedAt),
		nullableString(run.Family), nullableString(run.Genus),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun stores the final state of a run.
func (s *Store) FinishRun(ctx context.Context, run Run) error {
	var unmatched any
	if len(run.Unmatched) > 0 {
		data, err := json.Marshal(run.Unmatched)
		if err != nil {
			return fmt.Errorf("marshal unmatched: %w", err)
		}
		unmatched = string(data)
	}
	if err := s.execWithRetry(ctx,
		`UPDATE runs
         SET status = ?, finished_at = ?, family = ?, genus = ?, species_count = ?,
             page_count = ?, output_path = ?, unmatched_json = ?, error_message = ?
         WHERE id = ?`,
		run.Status, formatTime(run.FinishedAt), nullableString(run.Family), nullableString(run.Genus),
		run.Species, run.Pages, nullableString(run.Output), unmatched, nullableString(run.Error),
		run.ID,
	); err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

// GetRun fetches a run by id, or nil when absent.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs first. limit <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run         Run
		kind        string
		status      string
		startedRaw  sql.NullString
		finishedRaw sql.NullString
		family      sql.NullString
		genus       sql.NullString
		output      sql.NullString
		unmatched   sql.NullString
		errMessage  sql.NullString
	)
	if err := scanner.Scan(
		&run.ID, &kind, &status, &startedRaw, &finishedRaw, &family, &genus,
		&run.Species, &run.Pages, &output, &unmatched, &errMessage,
	); err != nil {
		return nil, err
	}
	run.Kind = RunKind(kind)
	run.Status = RunStatus(status)
	run.StartedAt = parseTime(startedRaw)
	run.FinishedAt = parseTime(finishedRaw)
	run.Family = family.String
	run.Genus = genus.String
	run.Output = output.String
	run.Error = errMessage.String
	if unmatched.Valid && unmatched.String != "" {
		if err := json.Unmarshal([]byte(unmatched.String), &run.Unmatched); err != nil {
			return nil, fmt.Errorf("decode unmatched: %w", err)
		}
	}
	return &run, nil
}
