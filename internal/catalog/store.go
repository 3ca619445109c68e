package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"bindery/internal/config"
	"bindery/internal/report"
)

// Store persists runs and their planned operations in SQLite.
type Store struct {
	db *sql.DB
}

// Open connects to the catalog database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.CatalogPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// CreateRun records a plan together with one row per operation, all in
// one transaction. The run starts in the planned state.
func (s *Store) CreateRun(ctx context.Context, root string, ops *report.Operations) (*Run, error) {
	if ops == nil {
		return nil, errors.New("operations plan is nil")
	}
	planJSON, err := json.Marshal(ops)
	if err != nil {
		return nil, fmt.Errorf("marshal plan: %w", err)
	}

	id := uuid.NewString()
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	renames, duplicates, issues, todoCount := ops.Counts()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin run tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO runs (
            id, root, status, created_at, updated_at,
            rename_count, duplicate_delete_count, issue_delete_count, todo_count, plan_json
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, root, RunPlanned, timestamp, timestamp,
		renames, duplicates, issues, todoCount, string(planJSON),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	insert := func(kind, source, target, detail string) error {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO operations (run_id, kind, source, target, detail, status)
             VALUES (?, ?, ?, ?, ?, ?)`,
			id, kind, source, nullableString(target), nullableString(detail), OpPending,
		)
		return err
	}

	for _, rename := range ops.Renames {
		if err := insert(KindRename, rename.From, rename.To, rename.Reason); err != nil {
			return nil, fmt.Errorf("insert rename op: %w", err)
		}
	}
	for _, group := range ops.DuplicateDeletes {
		for _, path := range group.Delete {
			if err := insert(KindDuplicateDelete, path, "", "duplicate of "+group.Keep); err != nil {
				return nil, fmt.Errorf("insert duplicate op: %w", err)
			}
		}
	}
	for _, del := range ops.SmallOrCorruptedDeletes {
		if err := insert(KindIssueDelete, del.Path, "", string(del.Issue)); err != nil {
			return nil, fmt.Errorf("insert issue delete op: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit run: %w", err)
	}
	return s.GetRun(ctx, id)
}

// GetRun fetches a run by identifier, nil when absent.
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

// LatestPlanned returns the most recent run still awaiting apply for
// the given root, nil when none exists.
func (s *Store) LatestPlanned(ctx context.Context, root string) (*Run, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+runColumns+` FROM runs WHERE status = ? AND root = ? ORDER BY created_at DESC LIMIT 1`,
		RunPlanned, root,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest planned run: %w", err)
	}
	return run, nil
}

// ListRuns returns runs newest first, up to limit. A non-positive limit
// returns everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC`
	args := []any{}
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
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// OperationsForRun returns a run's operations in insertion order.
func (s *Store) OperationsForRun(ctx context.Context, runID string) ([]*Operation, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, run_id, kind, source, target, detail, status, error_message, applied_at
         FROM operations WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()

	var ops []*Operation
	for rows.Next() {
		var (
			op        Operation
			target    sql.NullString
			detail    sql.NullString
			errMsg    sql.NullString
			appliedAt sql.NullString
		)
		if err := rows.Scan(&op.ID, &op.RunID, &op.Kind, &op.Source, &target, &detail, &op.Status, &errMsg, &appliedAt); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		op.Target = target.String
		op.Detail = detail.String
		op.ErrorMessage = errMsg.String
		if appliedAt.Valid {
			if t, err := time.Parse(time.RFC3339Nano, appliedAt.String); err == nil {
				op.AppliedAt = &t
			}
		}
		ops = append(ops, &op)
	}
	return ops, rows.Err()
}

// MarkOperation records the outcome of applying one operation.
func (s *Store) MarkOperation(ctx context.Context, opID int64, status, errMsg string) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE operations SET status = ?, error_message = ?, applied_at = ? WHERE id = ?`,
		status, nullableString(errMsg), timestamp, opID,
	)
	if err != nil {
		return fmt.Errorf("mark operation: %w", err)
	}
	return nil
}

// FinishRun moves a run to its terminal status.
func (s *Store) FinishRun(ctx context.Context, runID, status, errMsg string) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE runs SET status = ?, error_message = ?, updated_at = ? WHERE id = ?`,
		status, nullableString(errMsg), timestamp, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run %s not found", runID)
	}
	return nil
}

const runColumns = "id, root, status, created_at, updated_at, rename_count, duplicate_delete_count, issue_delete_count, todo_count, plan_json, error_message"

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run       Run
		createdAt string
		updatedAt string
		planJSON  sql.NullString
		errMsg    sql.NullString
	)
	err := scanner.Scan(
		&run.ID, &run.Root, &run.Status, &createdAt, &updatedAt,
		&run.RenameCount, &run.DuplicateDeleteCount, &run.IssueDeleteCount,
		&run.TodoCount, &planJSON, &errMsg,
	)
	if err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		run.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		run.UpdatedAt = t
	}
	run.PlanJSON = planJSON.String
	run.ErrorMessage = errMsg.String
	return &run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
