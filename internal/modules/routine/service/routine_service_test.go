package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"pulsecue/internal/modules/routine/domain"
	"pulsecue/internal/modules/routine/service"
	apperrors "pulsecue/internal/platform/errors"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fixedID struct{}

func (fixedID) New() string { return "r-1" }

// brokenStore fails every write and serves a single routine for reads.
type brokenStore struct {
	routine domain.Routine
}

var errDisk = errors.New("disk full")

func (s *brokenStore) SaveRoutine(context.Context, domain.Routine) error { return errDisk }
func (s *brokenStore) FindRoutine(_ context.Context, id string) (domain.Routine, error) {
	if id != s.routine.ID {
		return domain.Routine{}, apperrors.ErrNotFound
	}
	return s.routine, nil
}
func (s *brokenStore) ListRoutines(context.Context) ([]domain.Routine, error) {
	return []domain.Routine{s.routine}, nil
}
func (s *brokenStore) DeleteRoutine(context.Context, string) error { return errDisk }
func (s *brokenStore) SaveStep(context.Context, domain.Step) error { return errDisk }
func (s *brokenStore) FindStep(context.Context, string) (domain.Step, error) {
	return domain.Step{}, apperrors.ErrNotFound
}
func (s *brokenStore) DeleteStep(context.Context, string) error  { return errDisk }
func (s *brokenStore) DeleteSteps(context.Context, string) error { return errDisk }

func TestWriteFailuresAreLoggedNotReturned(t *testing.T) {
	t.Parallel()
	var logs bytes.Buffer
	store := &brokenStore{routine: domain.Routine{ID: "r-1", Name: "Legs"}}
	svc := service.NewRoutineService(fixedClock{t: time.Now()}, fixedID{}, store, nil, zerolog.New(&logs))
	ctx := context.Background()

	created, err := svc.Create(ctx, "Legs")
	if err != nil {
		t.Fatalf("create should not surface store errors: %v", err)
	}
	if created.Name != "Legs" {
		t.Fatalf("expected in-memory routine, got %+v", created)
	}
	pinned, err := svc.TogglePin(ctx, "r-1")
	if err != nil || !pinned.IsPinned {
		t.Fatalf("toggle pin should apply in memory: %+v %v", pinned, err)
	}
	if err := svc.Delete(ctx, "r-1"); err != nil {
		t.Fatalf("delete should swallow write errors: %v", err)
	}
	if !strings.Contains(logs.String(), "disk full") || !strings.Contains(logs.String(), `"routine_id":"r-1"`) {
		t.Fatalf("expected structured warn logs, got %s", logs.String())
	}
}

func TestLookupFailuresAreReturned(t *testing.T) {
	t.Parallel()
	store := &brokenStore{routine: domain.Routine{ID: "r-1", Name: "Legs"}}
	svc := service.NewRoutineService(fixedClock{t: time.Now()}, fixedID{}, store, nil, zerolog.Nop())

	if _, err := svc.Rename(context.Background(), "nope", "X"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := svc.DeleteStep(context.Background(), "nope"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
