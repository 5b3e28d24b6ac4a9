// Package store defines the persistence contract used by the orchestrating
// layer to keep worlds and characters between turns.
package store

import (
	"context"
	"errors"

	"github.com/tatianab/story-atlas/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store is implemented by backends that persist world and character records.
type Store interface {
	PutWorld(ctx context.Context, world *models.World) error
	GetWorld(ctx context.Context, id string) (*models.World, error)
	PutCharacter(ctx context.Context, character *models.Character) error
	GetCharacter(ctx context.Context, id string) (*models.Character, error)
}
