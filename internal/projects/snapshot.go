package projects

import (
	"context"
	"errors"
)

// ErrSnapshotEmpty reports that no snapshot has been written yet. Loading
// then falls back to the seed dataset.
var ErrSnapshotEmpty = errors.New("snapshot empty")

// Snapshot is the durable blob collaborator: a single named value holding
// the JSON-encoded ordered project sequence. It is read once at startup and
// rewritten after every mutation.
type Snapshot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}
