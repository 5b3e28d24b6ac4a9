package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tatianab/story-atlas/internal/config"
	"github.com/tatianab/story-atlas/internal/engine"
	"github.com/tatianab/story-atlas/internal/models"
	"github.com/tatianab/story-atlas/internal/store"
	"github.com/tatianab/story-atlas/internal/store/bolt"
	"github.com/tatianab/story-atlas/internal/tui"
	"github.com/tatianab/story-atlas/internal/worldgraph"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	models.SaveDir = cfg.SaveDir

	var archive store.Store
	if cfg.ArchiveDB != "" {
		if err := os.MkdirAll(cfg.SaveDir, 0o755); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		boltStore, err := bolt.Open(filepath.Join(cfg.SaveDir, cfg.ArchiveDB))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer boltStore.Close()
		archive = boltStore
	}

	eng, err := engine.NewEngine(ctx, cfg.GeminiAPIKey, cfg.Model, worldgraph.SyncOptions{MinimalMap: cfg.MinimalMap})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer eng.Close()

	if err := tui.Run(eng, archive); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
