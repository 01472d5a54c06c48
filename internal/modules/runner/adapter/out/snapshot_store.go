package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"pulsecue/internal/modules/runner/domain"
	"pulsecue/internal/platform/atomicfile"
	apperrors "pulsecue/internal/platform/errors"
)

// snapshotDocument is the on-disk form. Keys are stable across releases.
type snapshotDocument struct {
	RoutineID        string     `json:"routineId,omitempty"`
	CurrentStepIndex int        `json:"currentStepIndex"`
	DeadlineDate     *time.Time `json:"deadlineDate,omitempty"`
	IsRunning        bool       `json:"isRunning"`
	ElapsedSeconds   int        `json:"elapsedSeconds"`
	AutoAdvance      bool       `json:"autoAdvance,omitempty"`
}

// FileSnapshotStore keeps the run snapshot in a JSON file replaced
// atomically on every save.
type FileSnapshotStore struct {
	path   string
	logger zerolog.Logger
}

func NewFileSnapshotStore(path string, logger zerolog.Logger) *FileSnapshotStore {
	return &FileSnapshotStore{path: path, logger: logger}
}

func (s *FileSnapshotStore) Save(ctx context.Context, snapshot domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	if err := atomicfile.Write(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write runner snapshot: %w", err)
	}
	return nil
}

// Load returns ErrNoSnapshot for a missing file, a file without a routine id
// and a corrupt file. Corruption is logged.
func (s *FileSnapshotStore) Load(ctx context.Context) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Snapshot{}, apperrors.ErrNoSnapshot
		}
		return domain.Snapshot{}, fmt.Errorf("read runner snapshot: %w", err)
	}
	snapshot, err := DecodeSnapshot(payload)
	if err != nil {
		s.logger.Warn().Str("path", s.path).Err(err).Msg("runner snapshot corrupt, treating as absent")
		return domain.Snapshot{}, apperrors.ErrNoSnapshot
	}
	if !snapshot.Active() {
		return domain.Snapshot{}, apperrors.ErrNoSnapshot
	}
	return snapshot, nil
}

func (s *FileSnapshotStore) Clear(context.Context) error {
	if err := atomicfile.Remove(s.path); err != nil {
		return fmt.Errorf("clear runner snapshot: %w", err)
	}
	return nil
}

func EncodeSnapshot(snapshot domain.Snapshot) ([]byte, error) {
	doc := snapshotDocument{
		RoutineID:        snapshot.RoutineID,
		CurrentStepIndex: snapshot.CurrentStepIndex,
		IsRunning:        snapshot.IsRunning,
		ElapsedSeconds:   snapshot.ElapsedSeconds,
		AutoAdvance:      snapshot.AutoAdvance,
	}
	if !snapshot.Deadline.IsZero() {
		deadline := snapshot.Deadline
		doc.DeadlineDate = &deadline
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal runner snapshot: %w", err)
	}
	return payload, nil
}

func DecodeSnapshot(payload []byte) (domain.Snapshot, error) {
	var doc snapshotDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode runner snapshot: %w", err)
	}
	if doc.CurrentStepIndex < 0 {
		return domain.Snapshot{}, fmt.Errorf("decode runner snapshot: negative step index %d", doc.CurrentStepIndex)
	}
	snapshot := domain.Snapshot{
		RoutineID:        doc.RoutineID,
		CurrentStepIndex: doc.CurrentStepIndex,
		IsRunning:        doc.IsRunning,
		ElapsedSeconds:   doc.ElapsedSeconds,
		AutoAdvance:      doc.AutoAdvance,
	}
	if doc.DeadlineDate != nil {
		snapshot.Deadline = *doc.DeadlineDate
	}
	return snapshot, nil
}
