package worldgraph

import (
	"fmt"
	"strings"
	"time"

	"github.com/tatianab/story-atlas/internal/id"
	"github.com/tatianab/story-atlas/internal/models"
)

// TurnInput carries one narrator turn into ApplyGameTurn.
type TurnInput struct {
	World         *models.World
	Character     *models.Character
	Turn          models.TurnPayload
	PlayerMessage string
	Initial       bool // initial turns record no player entry
	Options       SyncOptions
}

// TurnResult is the outcome of applying one turn.
type TurnResult struct {
	World      *models.World
	Character  *models.Character
	NewEntries []models.ChatEntry
}

// ApplyGameTurn folds a narrator turn into the world and character. Inputs
// are never mutated: the applier works on deep copies and returns fresh
// snapshots, so callers can diff before committing. Per call it resolves the
// player's location (marking it discovered), upserts each discovery, rewrites
// the character's world/location pointers, replaces the inventory with the
// merged result, registers the character on the world, touches the world's
// timestamp, and appends up to two chat entries.
func ApplyGameTurn(in TurnInput) TurnResult {
	world := in.World.Clone()
	character := in.Character.Clone()
	now := time.Now().UTC()

	prevLocationID := character.LocationID
	if prevLocationID == "" {
		prevLocationID = world.EntryLocationID
	}

	player := UpsertLocationFromPayload(world, in.Turn.PlayerLocation, true, in.Turn.MapDescription, in.Options)
	for _, discovery := range in.Turn.Discoveries {
		UpsertLocationFromPayload(world, discovery, false, "", in.Options)
	}

	character.WorldID = world.ID
	character.LocationID = player.ID
	character.Inventory = MergeItems(character.Inventory, in.Turn.Inventory, character.ID)

	if !containsString(world.CharacterIDs, character.ID) {
		world.CharacterIDs = append(world.CharacterIDs, character.ID)
	}
	if world.EntryLocationID == "" {
		world.EntryLocationID = player.ID
	}
	world.UpdatedAt = now

	var entries []models.ChatEntry
	if !in.Initial && strings.TrimSpace(in.PlayerMessage) != "" {
		entries = append(entries, models.ChatEntry{
			ID:         id.New(),
			Author:     models.AuthorPlayer,
			Text:       in.PlayerMessage,
			LocationID: player.ID,
			CreatedAt:  now,
		})
	}
	if strings.TrimSpace(in.Turn.Narration) != "" {
		entry := models.ChatEntry{
			ID:         id.New(),
			Author:     models.AuthorNarrator,
			Text:       in.Turn.Narration,
			LocationID: player.ID,
			CreatedAt:  now,
		}
		if !in.Initial && prevLocationID == player.ID && strings.TrimSpace(in.PlayerMessage) != "" {
			// The player acted without moving; keep the verbatim exchange so a
			// later turn can remind the narrator what just happened here.
			entry.ActionSummary = fmt.Sprintf("> %s\n%s", in.PlayerMessage, in.Turn.Narration)
		}
		entries = append(entries, entry)
	}

	return TurnResult{World: world, Character: character, NewEntries: entries}
}

func containsString(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
