package worldgraph

import (
	"strings"
	"testing"

	"github.com/tatianab/story-atlas/internal/models"
)

func sampleTurn() models.TurnPayload {
	return models.TurnPayload{
		Narration:      "You step onto the platform. Wind moves through the tunnel mouth to the north.",
		MapDescription: "a cracked metro platform",
		PlayerLocation: models.LocationPayload{
			Name:        "Platform",
			Description: "A cracked platform under flickering light.",
			Items:       []models.ItemPayload{{Name: "Signal Lamp", Description: "A dead signal lamp."}},
			Exits:       []models.ExitPayload{{Name: "Tunnel", Label: "walk into"}},
		},
		Discoveries: []models.LocationPayload{{
			Name:           "Tunnel",
			MapDescription: "a dark service tunnel",
			Description:    "Darkness swallows the rails.",
		}},
		Inventory: []models.ItemPayload{{Name: "Flashlight"}},
	}
}

func sampleInput() TurnInput {
	return TurnInput{
		World:         &models.World{ID: "w1", Setting: "abandoned metro", Locations: map[string]*models.LocationNode{}},
		Character:     &models.Character{ID: "c1", Name: "Artem"},
		Turn:          sampleTurn(),
		PlayerMessage: "go to the platform",
	}
}

func edgeCount(w *models.World) int {
	n := 0
	for _, node := range w.Locations {
		n += len(node.Connections)
	}
	return n
}

func TestApplyGameTurnBasics(t *testing.T) {
	in := sampleInput()
	out := ApplyGameTurn(in)

	if len(out.World.Locations) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(out.World.Locations))
	}

	platform := EnsureLocation(out.World, "Platform", "")
	tunnel := EnsureLocation(out.World, "Tunnel", "")
	if !platform.Discovered {
		t.Error("player location must be discovered")
	}
	if tunnel.Discovered {
		t.Error("a discovery is known but not visited")
	}
	if platform.MapDescription != "a cracked metro platform" {
		t.Errorf("turn map description must be the fallback, got %q", platform.MapDescription)
	}

	if out.Character.LocationID != platform.ID {
		t.Error("character location pointer must be rewritten")
	}
	if out.Character.WorldID != "w1" {
		t.Error("character world pointer must be rewritten")
	}
	if len(out.Character.Inventory) != 1 || out.Character.Inventory[0].OwnerCharacterID != "c1" {
		t.Errorf("inventory must be merged with the character as owner, got %+v", out.Character.Inventory)
	}
	if len(out.World.CharacterIDs) != 1 || out.World.CharacterIDs[0] != "c1" {
		t.Errorf("character must be registered on the world, got %v", out.World.CharacterIDs)
	}
	if out.World.EntryLocationID != platform.ID {
		t.Error("first resolved location must become the entry location")
	}
	if out.World.UpdatedAt.IsZero() {
		t.Error("world timestamp must be touched")
	}

	if len(out.NewEntries) != 2 {
		t.Fatalf("expected 2 chat entries, got %d", len(out.NewEntries))
	}
	if out.NewEntries[0].Author != models.AuthorPlayer || out.NewEntries[1].Author != models.AuthorNarrator {
		t.Errorf("expected player then narrator entries, got %+v", out.NewEntries)
	}
	for _, entry := range out.NewEntries {
		if entry.LocationID != platform.ID {
			t.Errorf("entries must carry the resolved location id, got %q", entry.LocationID)
		}
	}
}

func TestApplyGameTurnDoesNotMutateInputs(t *testing.T) {
	in := sampleInput()
	in.World.Locations["keep"] = &models.LocationNode{ID: "keep", Name: "Keep"}
	in.Character.Inventory = []models.Item{{ID: "i1", Name: "Old Coin"}}

	_ = ApplyGameTurn(in)

	if len(in.World.Locations) != 1 {
		t.Errorf("input world gained locations: %d", len(in.World.Locations))
	}
	if len(in.World.CharacterIDs) != 0 {
		t.Error("input world gained character ids")
	}
	if !in.World.UpdatedAt.IsZero() {
		t.Error("input world timestamp was touched")
	}
	if in.Character.LocationID != "" || len(in.Character.Inventory) != 1 {
		t.Error("input character was mutated")
	}
}

func TestApplyGameTurnIdempotentReapplication(t *testing.T) {
	in := sampleInput()
	first := ApplyGameTurn(in)

	again := in
	again.World = first.World
	again.Character = first.Character
	second := ApplyGameTurn(again)

	if len(second.World.Locations) != len(first.World.Locations) {
		t.Errorf("reapplication grew the node set: %d -> %d", len(first.World.Locations), len(second.World.Locations))
	}
	if edgeCount(second.World) != edgeCount(first.World) {
		t.Errorf("reapplication grew the edge set: %d -> %d", edgeCount(first.World), edgeCount(second.World))
	}
	if len(second.World.CharacterIDs) != 1 {
		t.Errorf("character registration must be idempotent, got %v", second.World.CharacterIDs)
	}

	// Item identity is stable across re-emission.
	if second.Character.Inventory[0].ID != first.Character.Inventory[0].ID {
		t.Error("inventory item id must be stable across turns")
	}
}

func TestApplyGameTurnInitialSkipsPlayerEntry(t *testing.T) {
	in := sampleInput()
	in.Initial = true
	out := ApplyGameTurn(in)

	if len(out.NewEntries) != 1 || out.NewEntries[0].Author != models.AuthorNarrator {
		t.Fatalf("initial turn must record only the narrator entry, got %+v", out.NewEntries)
	}

	in = sampleInput()
	in.PlayerMessage = "   "
	out = ApplyGameTurn(in)
	if len(out.NewEntries) != 1 {
		t.Fatalf("blank player message must record only the narrator entry, got %d", len(out.NewEntries))
	}
}

func TestApplyGameTurnActionSummaryAtSamePlace(t *testing.T) {
	in := sampleInput()
	first := ApplyGameTurn(in)

	// Second turn: same place, non-movement action.
	again := in
	again.World = first.World
	again.Character = first.Character
	again.PlayerMessage = "search the benches"
	again.Turn.Narration = "You find nothing but dust."
	second := ApplyGameTurn(again)

	narrator := second.NewEntries[len(second.NewEntries)-1]
	if narrator.Author != models.AuthorNarrator {
		t.Fatalf("expected narrator entry last, got %+v", narrator)
	}
	if !strings.Contains(narrator.ActionSummary, "search the benches") ||
		!strings.Contains(narrator.ActionSummary, "You find nothing but dust.") {
		t.Errorf("expected verbatim exchange in action summary, got %q", narrator.ActionSummary)
	}

	// Movement turns carry no summary.
	moved := in
	moved.World = second.World
	moved.Character = second.Character
	moved.PlayerMessage = "walk into the tunnel"
	moved.Turn.PlayerLocation = models.LocationPayload{Name: "Tunnel", Description: "Darkness swallows the rails."}
	moved.Turn.Narration = "You walk into the dark."
	out := ApplyGameTurn(moved)
	if out.NewEntries[len(out.NewEntries)-1].ActionSummary != "" {
		t.Error("movement turns must not attach an action summary")
	}
}
