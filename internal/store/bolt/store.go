// Package bolt provides a BoltDB-backed world and character store.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tatianab/story-atlas/internal/models"
	"github.com/tatianab/story-atlas/internal/store"
	"go.etcd.io/bbolt"
)

const (
	worldBucket     = "world"
	characterBucket = "character"
)

// Store persists worlds and characters in a single BoltDB file.
type Store struct {
	db *bbolt.DB
}

// Open opens a BoltDB-backed store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// PutWorld persists a world record.
func (s *Store) PutWorld(ctx context.Context, world *models.World) error {
	if world == nil || strings.TrimSpace(world.ID) == "" {
		return fmt.Errorf("world id is required")
	}
	return s.put(ctx, worldBucket, world.ID, world)
}

// GetWorld fetches a world record by id.
func (s *Store) GetWorld(ctx context.Context, id string) (*models.World, error) {
	var world models.World
	if err := s.get(ctx, worldBucket, id, &world); err != nil {
		return nil, err
	}
	return &world, nil
}

// PutCharacter persists a character record.
func (s *Store) PutCharacter(ctx context.Context, character *models.Character) error {
	if character == nil || strings.TrimSpace(character.ID) == "" {
		return fmt.Errorf("character id is required")
	}
	return s.put(ctx, characterBucket, character.ID, character)
}

// GetCharacter fetches a character record by id.
func (s *Store) GetCharacter(ctx context.Context, id string) (*models.Character, error) {
	var character models.Character
	if err := s.get(ctx, characterBucket, id, &character); err != nil {
		return nil, err
	}
	return &character, nil
}

func (s *Store) put(ctx context.Context, bucket, key string, record any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", bucket, err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return fmt.Errorf("%s bucket is missing", bucket)
		}
		return b.Put([]byte(key), payload)
	})
}

func (s *Store) get(ctx context.Context, bucket, key string, record any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%s id is required", bucket)
	}

	return s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return fmt.Errorf("%s bucket is missing", bucket)
		}
		payload := b.Get([]byte(key))
		if payload == nil {
			return store.ErrNotFound
		}
		if err := json.Unmarshal(payload, record); err != nil {
			return fmt.Errorf("unmarshal %s: %w", bucket, err)
		}
		return nil
	})
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range []string{worldBucket, characterBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("create %s bucket: %w", bucket, err)
			}
		}
		return nil
	})
}
