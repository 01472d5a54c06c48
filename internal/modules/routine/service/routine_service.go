package service

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"pulsecue/internal/modules/routine/domain"
	routineout "pulsecue/internal/modules/routine/port/out"
	"pulsecue/internal/platform/clock"
	"pulsecue/internal/platform/id"
	"pulsecue/internal/platform/textmatch"
)

// RoutineService owns routine and step mutations. Validation and lookup
// failures are returned; write failures are logged and the in-memory result
// is still returned.
type RoutineService struct {
	clock  clock.Clock
	idGen  id.Generator
	store  routineout.RoutineStore
	tx     routineout.UnitOfWork
	logger zerolog.Logger
}

func NewRoutineService(clock clock.Clock, idGen id.Generator, store routineout.RoutineStore, txm routineout.UnitOfWork, logger zerolog.Logger) *RoutineService {
	if txm == nil {
		txm = inline{}
	}
	return &RoutineService{clock: clock, idGen: idGen, store: store, tx: txm, logger: logger}
}

func (s *RoutineService) Create(ctx context.Context, name string) (domain.Routine, error) {
	routine := domain.Routine{
		ID:        s.idGen.New(),
		Name:      strings.TrimSpace(name),
		CreatedAt: s.clock.Now(),
	}
	if err := routine.Validate(); err != nil {
		return domain.Routine{}, err
	}
	s.swallow(s.store.SaveRoutine(ctx, routine), "create routine", routine.ID)
	return routine, nil
}

func (s *RoutineService) Rename(ctx context.Context, id, name string) (domain.Routine, error) {
	name = strings.TrimSpace(name)
	if err := domain.ValidateName(name); err != nil {
		return domain.Routine{}, err
	}
	routine, err := s.store.FindRoutine(ctx, id)
	if err != nil {
		return domain.Routine{}, err
	}
	routine.Name = name
	s.swallow(s.store.SaveRoutine(ctx, routine), "rename routine", routine.ID)
	return routine, nil
}

// Delete removes the routine and all of its steps.
func (s *RoutineService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.FindRoutine(ctx, id); err != nil {
		return err
	}
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		if err := s.store.DeleteSteps(ctx, id); err != nil {
			return err
		}
		return s.store.DeleteRoutine(ctx, id)
	})
	s.swallow(err, "delete routine", id)
	return nil
}

// Duplicate deep-copies a routine with fresh identities. The copy is unpinned
// and keeps step names, durations and order.
func (s *RoutineService) Duplicate(ctx context.Context, id string) (domain.Routine, error) {
	source, err := s.store.FindRoutine(ctx, id)
	if err != nil {
		return domain.Routine{}, err
	}
	cp := domain.Routine{
		ID:        s.idGen.New(),
		Name:      source.Name + domain.CopySuffix,
		CreatedAt: s.clock.Now(),
	}
	for _, step := range source.SortedSteps() {
		cp.Steps = append(cp.Steps, domain.Step{
			ID:              s.idGen.New(),
			RoutineID:       cp.ID,
			Name:            step.Name,
			DurationSeconds: step.DurationSeconds,
			Order:           step.Order,
		})
	}
	err = s.tx.Within(ctx, func(ctx context.Context) error {
		if err := s.store.SaveRoutine(ctx, cp); err != nil {
			return err
		}
		for _, step := range cp.Steps {
			if err := s.store.SaveStep(ctx, step); err != nil {
				return err
			}
		}
		return nil
	})
	s.swallow(err, "duplicate routine", cp.ID)
	return cp, nil
}

func (s *RoutineService) TogglePin(ctx context.Context, id string) (domain.Routine, error) {
	routine, err := s.store.FindRoutine(ctx, id)
	if err != nil {
		return domain.Routine{}, err
	}
	routine.IsPinned = !routine.IsPinned
	s.swallow(s.store.SaveRoutine(ctx, routine), "toggle pin", routine.ID)
	return routine, nil
}

// AddStep appends a step with order equal to the current step count.
func (s *RoutineService) AddStep(ctx context.Context, routineID, name string, durationSeconds int) (domain.Step, error) {
	routine, err := s.store.FindRoutine(ctx, routineID)
	if err != nil {
		return domain.Step{}, err
	}
	step := domain.Step{
		ID:              s.idGen.New(),
		RoutineID:       routine.ID,
		Name:            strings.TrimSpace(name),
		DurationSeconds: durationSeconds,
		Order:           len(routine.Steps),
	}
	if err := step.Validate(); err != nil {
		return domain.Step{}, err
	}
	s.swallow(s.store.SaveStep(ctx, step), "add step", routine.ID)
	return step, nil
}

func (s *RoutineService) UpdateStep(ctx context.Context, stepID, name string, durationSeconds int) (domain.Step, error) {
	step, err := s.store.FindStep(ctx, stepID)
	if err != nil {
		return domain.Step{}, err
	}
	step.Name = strings.TrimSpace(name)
	step.DurationSeconds = durationSeconds
	if err := step.Validate(); err != nil {
		return domain.Step{}, err
	}
	s.swallow(s.store.SaveStep(ctx, step), "update step", step.RoutineID)
	return step, nil
}

// DeleteStep removes the step and renumbers its siblings to 0..N-2.
func (s *RoutineService) DeleteStep(ctx context.Context, stepID string) error {
	step, err := s.store.FindStep(ctx, stepID)
	if err != nil {
		return err
	}
	routine, err := s.store.FindRoutine(ctx, step.RoutineID)
	if err != nil {
		return err
	}
	remaining := make([]domain.Step, 0, len(routine.Steps))
	for _, sibling := range routine.SortedSteps() {
		if sibling.ID != step.ID {
			remaining = append(remaining, sibling)
		}
	}
	err = s.tx.Within(ctx, func(ctx context.Context) error {
		if err := s.store.DeleteStep(ctx, step.ID); err != nil {
			return err
		}
		return s.saveOrders(ctx, domain.Renumber(remaining))
	})
	s.swallow(err, "delete step", step.RoutineID)
	return nil
}

// Reorder moves the steps at the from offsets (in order-sorted sequence) to
// sit before offset to, and rewrites every order.
func (s *RoutineService) Reorder(ctx context.Context, routineID string, from []int, to int) (domain.Routine, error) {
	routine, err := s.store.FindRoutine(ctx, routineID)
	if err != nil {
		return domain.Routine{}, err
	}
	moved, err := domain.MoveSteps(routine.SortedSteps(), from, to)
	if err != nil {
		return domain.Routine{}, err
	}
	routine.Steps = moved
	err = s.tx.Within(ctx, func(ctx context.Context) error {
		return s.saveOrders(ctx, moved)
	})
	s.swallow(err, "reorder steps", routine.ID)
	return routine, nil
}

// List returns pinned routines first, then newest first. A non-empty query
// keeps only names containing it, ignoring case.
func (s *RoutineService) List(ctx context.Context, query string) ([]domain.Routine, error) {
	routines, err := s.store.ListRoutines(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	out := make([]domain.Routine, 0, len(routines))
	for _, routine := range routines {
		if textmatch.ContainsFold(routine.Name, query) {
			out = append(out, routine)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsPinned != out[j].IsPinned {
			return out[i].IsPinned
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *RoutineService) Get(ctx context.Context, id string) (domain.Routine, error) {
	return s.store.FindRoutine(ctx, id)
}

func (s *RoutineService) saveOrders(ctx context.Context, steps []domain.Step) error {
	for _, step := range steps {
		if err := s.store.SaveStep(ctx, step); err != nil {
			return err
		}
	}
	return nil
}

func (s *RoutineService) swallow(err error, op, routineID string) {
	if err == nil {
		return
	}
	s.logger.Warn().Err(err).Str("op", op).Str("routine_id", routineID).Msg("routine store write failed")
}

// inline runs the function without a transaction, for stores that have none.
type inline struct{}

func (inline) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
