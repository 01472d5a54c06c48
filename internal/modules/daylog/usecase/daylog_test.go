package usecase_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	daylogin "pulsecue/internal/modules/daylog/adapter/in"
	daylogout "pulsecue/internal/modules/daylog/adapter/out"
	"pulsecue/internal/modules/daylog/dto"
	daylogport "pulsecue/internal/modules/daylog/port/in"
	"pulsecue/internal/modules/daylog/service"
	"pulsecue/internal/modules/daylog/usecase"
	apperrors "pulsecue/internal/platform/errors"
	"pulsecue/internal/platform/sqlitedb"
)

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

type seqID struct{ n int }

func (g *seqID) New() string {
	g.n++
	return fmt.Sprintf("log-%d", g.n)
}

var zone = time.FixedZone("UTC-5", -5*3600)

func newUsecase(t *testing.T, clk *manualClock) daylogport.Usecase {
	t.Helper()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "pulsecue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store, err := daylogout.NewSQLiteDayLogStore(context.Background(), db)
	require.NoError(t, err)
	return usecase.NewInteractor(service.NewDayLogService(clk, &seqID{}, store, zerolog.Nop()))
}

func newHandler(t *testing.T, clk *manualClock) daylogin.CLIHandler {
	t.Helper()
	return daylogin.NewCLIHandler(newUsecase(t, clk))
}

func TestGetOrCreateTodayIsIdempotentWithinDay(t *testing.T) {
	t.Parallel()
	clk := &manualClock{now: time.Date(2026, 4, 10, 0, 5, 0, 0, zone)}
	uc := newUsecase(t, clk)
	ctx := context.Background()

	_, ok, err := uc.GetTodayLog(ctx)
	require.NoError(t, err)
	require.False(t, ok, "no log should exist yet")

	first, err := uc.GetOrCreateTodayLog(ctx)
	require.NoError(t, err)
	require.Zero(t, first.CaloriesIntake)
	require.Nil(t, first.WeightKg)

	clk.now = time.Date(2026, 4, 10, 23, 59, 0, 0, zone)
	second, err := uc.GetOrCreateTodayLog(ctx)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	clk.now = time.Date(2026, 4, 11, 0, 0, 0, 0, zone)
	next, err := uc.GetOrCreateTodayLog(ctx)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, next.ID, "midnight starts a new day")
}

func TestSetMetricIsPartialUpdate(t *testing.T) {
	t.Parallel()
	clk := &manualClock{now: time.Date(2026, 4, 10, 9, 0, 0, 0, zone)}
	h := newHandler(t, clk)
	ctx := context.Background()

	_, err := h.SetMetric(ctx, daylogin.MetricIntake, 2100)
	require.NoError(t, err)
	_, err = h.SetMetric(ctx, daylogin.MetricExercise, 400)
	require.NoError(t, err)
	got, err := h.SetMetric(ctx, daylogin.MetricWeight, 71.2)
	require.NoError(t, err)

	require.Equal(t, 2100.0, got.CaloriesIntake)
	require.Equal(t, 400.0, got.CaloriesExercise)
	require.Equal(t, 1700.0, got.Balance)
	require.NotNil(t, got.WeightKg)
	require.Equal(t, 71.2, *got.WeightKg)

	today, ok, err := h.Today(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, got.ID, today.ID)
	require.Equal(t, 2100.0, today.CaloriesIntake)

	_, err = h.SetMetric(ctx, daylogin.MetricSleep, -2)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = h.SetMetric(ctx, "steps", 1)
	require.Error(t, err)
}

func TestRecentLogsNewestFirstIncludingToday(t *testing.T) {
	t.Parallel()
	clk := &manualClock{}
	h := newHandler(t, clk)
	ctx := context.Background()

	for _, day := range []int{1, 3, 8, 10} {
		clk.now = time.Date(2026, 4, day, 20, 0, 0, 0, zone)
		_, err := h.SetMetric(ctx, daylogin.MetricSleep, float64(day))
		require.NoError(t, err)
	}
	clk.now = time.Date(2026, 4, 10, 21, 0, 0, 0, zone)

	week, err := h.Recent(ctx, 0)
	require.NoError(t, err)
	sleeps := make([]float64, 0, len(week))
	for _, log := range week {
		sleeps = append(sleeps, log.SleepHours)
	}
	require.Equal(t, []float64{10, 8, 3}, sleeps, "default window is 7 days back through today")

	two, err := h.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, two, 2)
	require.Equal(t, 10.0, two[0].SleepHours)

	_, err = h.Recent(ctx, 30)
	require.NoError(t, err)
}

func TestUpdateUnknownLog(t *testing.T) {
	t.Parallel()
	clk := &manualClock{now: time.Date(2026, 4, 10, 9, 0, 0, 0, zone)}
	uc := newUsecase(t, clk)

	v := 1.0
	_, err := uc.UpdateLog(context.Background(), dto.UpdateLogInput{ID: "missing", SleepHours: &v})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLateEveningLogReadsBackOnItsOwnDay(t *testing.T) {
	t.Parallel()
	// 22:30 at UTC-5 is already the next day in UTC.
	clk := &manualClock{now: time.Date(2026, 4, 10, 22, 30, 0, 0, zone)}
	uc := newUsecase(t, clk)
	ctx := context.Background()

	created, err := uc.GetOrCreateTodayLog(ctx)
	require.NoError(t, err)
	require.Equal(t, "2026-04-10", created.Day)

	sleep := 7.5
	updated, err := uc.UpdateLog(ctx, dto.UpdateLogInput{ID: created.ID, SleepHours: &sleep})
	require.NoError(t, err)
	require.Equal(t, "2026-04-10", updated.Day)
	require.Equal(t, "2026-04-10", updated.Date.Format("2006-01-02"))

	today, ok, err := uc.GetTodayLog(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, created.ID, today.ID)
	require.Equal(t, "2026-04-10", today.Day)
	require.Equal(t, "2026-04-10", today.Date.Format("2006-01-02"))
	require.Equal(t, 22, today.Date.Hour())

	recent, err := uc.GetRecentLogs(ctx, dto.RecentLogsInput{Days: 1})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, "2026-04-10", recent[0].Day)
	require.Equal(t, "2026-04-10", recent[0].Date.Format("2006-01-02"))
}
