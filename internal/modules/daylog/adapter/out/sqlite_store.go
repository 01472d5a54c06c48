package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pulsecue/internal/modules/daylog/domain"
	apperrors "pulsecue/internal/platform/errors"
	"pulsecue/internal/platform/sqlitedb"
)

type SQLiteDayLogStore struct {
	db *sql.DB
}

func NewSQLiteDayLogStore(ctx context.Context, db *sql.DB) (*SQLiteDayLogStore, error) {
	store := &SQLiteDayLogStore{db: db}
	if err := store.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteDayLogStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS day_logs (
  id TEXT PRIMARY KEY,
  day TEXT NOT NULL UNIQUE,
  logged_at INTEGER NOT NULL,
  calories_intake REAL NOT NULL DEFAULT 0,
  calories_exercise REAL NOT NULL DEFAULT 0,
  sleep_hours REAL NOT NULL DEFAULT 0,
  weight_kg REAL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create day_logs table: %w", err)
	}
	return nil
}

func (s *SQLiteDayLogStore) Save(ctx context.Context, log domain.DayLog) error {
	const stmt = `
INSERT INTO day_logs (id, day, logged_at, calories_intake, calories_exercise, sleep_hours, weight_kg)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  calories_intake=excluded.calories_intake,
  calories_exercise=excluded.calories_exercise,
  sleep_hours=excluded.sleep_hours,
  weight_kg=excluded.weight_kg;
`
	var weight sql.NullFloat64
	if log.WeightKg != nil {
		weight = sql.NullFloat64{Float64: *log.WeightKg, Valid: true}
	}
	_, err := sqlitedb.Conn(ctx, s.db).ExecContext(ctx, stmt,
		log.ID,
		log.DayKey(),
		log.Date.UnixNano(),
		log.CaloriesIntake,
		log.CaloriesExercise,
		log.SleepHours,
		weight,
	)
	if err != nil {
		return fmt.Errorf("upsert day log: %w", err)
	}
	return nil
}

const selectColumns = `SELECT id, day, logged_at, calories_intake, calories_exercise, sleep_hours, weight_kg FROM day_logs `

func (s *SQLiteDayLogStore) FindByID(ctx context.Context, id string) (domain.DayLog, error) {
	return s.findOne(ctx, `WHERE id = ?`, id)
}

func (s *SQLiteDayLogStore) FindByDay(ctx context.Context, dayKey string) (domain.DayLog, error) {
	return s.findOne(ctx, `WHERE day = ?`, dayKey)
}

func (s *SQLiteDayLogStore) findOne(ctx context.Context, where, arg string) (domain.DayLog, error) {
	row := sqlitedb.Conn(ctx, s.db).QueryRowContext(ctx, selectColumns+where, arg)
	log, err := scanDayLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DayLog{}, fmt.Errorf("day log %s: %w", arg, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.DayLog{}, fmt.Errorf("find day log: %w", err)
	}
	return log, nil
}

func (s *SQLiteDayLogStore) ListDays(ctx context.Context, fromKey, toKey string) ([]domain.DayLog, error) {
	rows, err := sqlitedb.Conn(ctx, s.db).QueryContext(ctx,
		selectColumns+`WHERE day >= ? AND day < ? ORDER BY day DESC`, fromKey, toKey)
	if err != nil {
		return nil, fmt.Errorf("list day logs: %w", err)
	}
	defer rows.Close()
	var out []domain.DayLog
	for rows.Next() {
		log, err := scanDayLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan day log: %w", err)
		}
		out = append(out, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate day logs: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDayLog(row scanner) (domain.DayLog, error) {
	var (
		log      domain.DayLog
		loggedAt int64
		weight   sql.NullFloat64
	)
	if err := row.Scan(&log.ID, &log.Day, &loggedAt, &log.CaloriesIntake, &log.CaloriesExercise, &log.SleepHours, &weight); err != nil {
		return domain.DayLog{}, err
	}
	log.Date = time.Unix(0, loggedAt)
	if weight.Valid {
		w := weight.Float64
		log.WeightKg = &w
	}
	return log, nil
}
