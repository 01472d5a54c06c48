package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pulsecue/internal/modules/routine/domain"
	apperrors "pulsecue/internal/platform/errors"
	"pulsecue/internal/platform/sqlitedb"
)

type SQLiteRoutineStore struct {
	db *sql.DB
}

func NewSQLiteRoutineStore(ctx context.Context, db *sql.DB) (*SQLiteRoutineStore, error) {
	store := &SQLiteRoutineStore{db: db}
	if err := store.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteRoutineStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS routines (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at INTEGER NOT NULL,
  is_pinned INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS steps (
  id TEXT PRIMARY KEY,
  routine_id TEXT NOT NULL REFERENCES routines(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  duration_seconds INTEGER NOT NULL CHECK (duration_seconds >= 1),
  position INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_steps_routine ON steps(routine_id, position);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create routine tables: %w", err)
	}
	return nil
}

func (s *SQLiteRoutineStore) SaveRoutine(ctx context.Context, routine domain.Routine) error {
	const stmt = `
INSERT INTO routines (id, name, created_at, is_pinned)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  is_pinned=excluded.is_pinned;
`
	_, err := sqlitedb.Conn(ctx, s.db).ExecContext(ctx, stmt,
		routine.ID,
		routine.Name,
		routine.CreatedAt.UnixNano(),
		boolToInt(routine.IsPinned),
	)
	if err != nil {
		return fmt.Errorf("upsert routine: %w", err)
	}
	return nil
}

func (s *SQLiteRoutineStore) FindRoutine(ctx context.Context, id string) (domain.Routine, error) {
	conn := sqlitedb.Conn(ctx, s.db)
	row := conn.QueryRowContext(ctx, `SELECT id, name, created_at, is_pinned FROM routines WHERE id = ?`, id)
	routine, err := scanRoutine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Routine{}, fmt.Errorf("routine %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.Routine{}, fmt.Errorf("find routine: %w", err)
	}
	steps, err := s.querySteps(ctx, `WHERE routine_id = ?`, id)
	if err != nil {
		return domain.Routine{}, err
	}
	routine.Steps = steps[id]
	return routine, nil
}

func (s *SQLiteRoutineStore) ListRoutines(ctx context.Context) ([]domain.Routine, error) {
	rows, err := sqlitedb.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT id, name, created_at, is_pinned FROM routines ORDER BY is_pinned DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	var routines []domain.Routine
	for rows.Next() {
		routine, err := scanRoutine(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan routine: %w", err)
		}
		routines = append(routines, routine)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate routines: %w", err)
	}
	_ = rows.Close()

	steps, err := s.querySteps(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range routines {
		routines[i].Steps = steps[routines[i].ID]
	}
	return routines, nil
}

func (s *SQLiteRoutineStore) DeleteRoutine(ctx context.Context, id string) error {
	if _, err := sqlitedb.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM routines WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	return nil
}

func (s *SQLiteRoutineStore) SaveStep(ctx context.Context, step domain.Step) error {
	const stmt = `
INSERT INTO steps (id, routine_id, name, duration_seconds, position)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  duration_seconds=excluded.duration_seconds,
  position=excluded.position;
`
	_, err := sqlitedb.Conn(ctx, s.db).ExecContext(ctx, stmt,
		step.ID,
		step.RoutineID,
		step.Name,
		step.DurationSeconds,
		step.Order,
	)
	if err != nil {
		return fmt.Errorf("upsert step: %w", err)
	}
	return nil
}

func (s *SQLiteRoutineStore) FindStep(ctx context.Context, id string) (domain.Step, error) {
	row := sqlitedb.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT id, routine_id, name, duration_seconds, position FROM steps WHERE id = ?`, id)
	step, err := scanStep(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Step{}, fmt.Errorf("step %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.Step{}, fmt.Errorf("find step: %w", err)
	}
	return step, nil
}

func (s *SQLiteRoutineStore) DeleteStep(ctx context.Context, id string) error {
	if _, err := sqlitedb.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM steps WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete step: %w", err)
	}
	return nil
}

func (s *SQLiteRoutineStore) DeleteSteps(ctx context.Context, routineID string) error {
	if _, err := sqlitedb.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM steps WHERE routine_id = ?`, routineID); err != nil {
		return fmt.Errorf("delete steps: %w", err)
	}
	return nil
}

// querySteps returns steps grouped by routine id, each group in position order.
func (s *SQLiteRoutineStore) querySteps(ctx context.Context, where string, args ...any) (map[string][]domain.Step, error) {
	query := `SELECT id, routine_id, name, duration_seconds, position FROM steps ` + where + ` ORDER BY routine_id, position, id`
	rows, err := sqlitedb.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()
	out := map[string][]domain.Step{}
	for rows.Next() {
		step, err := scanStep(rows)
		if err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		out[step.RoutineID] = append(out[step.RoutineID], step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRoutine(row scanner) (domain.Routine, error) {
	var (
		routine   domain.Routine
		createdAt int64
		pinned    int
	)
	if err := row.Scan(&routine.ID, &routine.Name, &createdAt, &pinned); err != nil {
		return domain.Routine{}, err
	}
	routine.CreatedAt = time.Unix(0, createdAt)
	routine.IsPinned = pinned != 0
	return routine, nil
}

func scanStep(row scanner) (domain.Step, error) {
	var step domain.Step
	if err := row.Scan(&step.ID, &step.RoutineID, &step.Name, &step.DurationSeconds, &step.Order); err != nil {
		return domain.Step{}, err
	}
	return step, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
