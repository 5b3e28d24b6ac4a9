package worldgraph

import (
	"testing"

	"github.com/tatianab/story-atlas/internal/models"
)

func boolPtr(v bool) *bool { return &v }

func TestSyncExitsBidirectionalRepair(t *testing.T) {
	world := newTestWorld()
	source := EnsureLocation(world, "Gatehouse", "")

	SyncExits(world, source, []models.ExitPayload{{Name: "Square", Label: "walk onto"}}, SyncOptions{})

	square := EnsureLocation(world, "Square", "")
	forward := findConnection(source, square.ID)
	if forward == nil {
		t.Fatal("expected edge Gatehouse->Square")
	}
	if forward.Label != "walk onto" {
		t.Errorf("unexpected label %q", forward.Label)
	}
	if !forward.Bidirectional {
		t.Error("exit should default to bidirectional")
	}
	reverse := findConnection(square, source.ID)
	if reverse == nil {
		t.Fatal("expected mirrored edge Square->Gatehouse")
	}
	if !reverse.Bidirectional {
		t.Error("mirrored edge should be bidirectional")
	}
}

func TestSyncExitsOneWay(t *testing.T) {
	world := newTestWorld()
	source := EnsureLocation(world, "Cliff Top", "")

	SyncExits(world, source, []models.ExitPayload{{Name: "Ravine", Label: "jump down", Bidirectional: boolPtr(false)}}, SyncOptions{})

	ravine := EnsureLocation(world, "Ravine", "")
	if findConnection(source, ravine.ID) == nil {
		t.Fatal("expected edge Cliff Top->Ravine")
	}
	if findConnection(ravine, source.ID) != nil {
		t.Error("one-way exit must not create a reverse edge")
	}
}

func TestSyncExitsUpsertRules(t *testing.T) {
	world := newTestWorld()
	source := EnsureLocation(world, "Hall", "")

	SyncExits(world, source, []models.ExitPayload{{Name: "Crypt", Label: "descend into", Bidirectional: boolPtr(false)}}, SyncOptions{})
	crypt := EnsureLocation(world, "Crypt", "")

	// Blank label keeps the existing one; bidirectional ORs in.
	SyncExits(world, source, []models.ExitPayload{{Name: "Crypt", Label: "  "}}, SyncOptions{})
	conn := findConnection(source, crypt.ID)
	if conn.Label != "descend into" {
		t.Errorf("blank label must keep existing, got %q", conn.Label)
	}
	if !conn.Bidirectional {
		t.Error("edge should become bidirectional")
	}

	// New non-blank label wins; an edge once bidirectional stays so.
	SyncExits(world, source, []models.ExitPayload{{Name: "Crypt", Label: "climb down", Bidirectional: boolPtr(false)}}, SyncOptions{})
	conn = findConnection(source, crypt.ID)
	if conn.Label != "climb down" {
		t.Errorf("new label must win, got %q", conn.Label)
	}
	if !conn.Bidirectional {
		t.Error("bidirectional flag must never be cleared")
	}
	if len(source.Connections) != 1 {
		t.Fatalf("expected 1 connection, got %d", len(source.Connections))
	}
}

func TestSyncExitsDefaultLabel(t *testing.T) {
	world := newTestWorld()
	source := EnsureLocation(world, "Yard", "")

	SyncExits(world, source, []models.ExitPayload{{Name: "Shed"}}, SyncOptions{})

	shed := EnsureLocation(world, "Shed", "")
	if conn := findConnection(source, shed.ID); conn.Label != DefaultExitLabel {
		t.Errorf("expected default label %q, got %q", DefaultExitLabel, conn.Label)
	}
}

func TestSyncExitsSelfLoop(t *testing.T) {
	world := newTestWorld()
	source := EnsureLocation(world, "Mirror Maze", "")

	SyncExits(world, source, []models.ExitPayload{{Name: "mirror maze", Label: "circle back"}}, SyncOptions{})

	if len(world.Locations) != 1 {
		t.Fatalf("self-loop must not create a second node, got %d", len(world.Locations))
	}
	if conn := findConnection(source, source.ID); conn == nil {
		t.Fatal("expected a self-edge")
	}
	if len(source.Connections) != 1 {
		t.Fatalf("expected exactly 1 self-edge, got %d", len(source.Connections))
	}
}

func TestSyncExitsMinimalMapSkipsRedundantEdge(t *testing.T) {
	world := newTestWorld()
	opts := SyncOptions{MinimalMap: true}

	a := EnsureLocation(world, "A", "")
	SyncExits(world, a, []models.ExitPayload{{Name: "B"}}, opts)
	b := EnsureLocation(world, "B", "")
	SyncExits(world, b, []models.ExitPayload{{Name: "C"}}, opts)

	// A reaches C through B already; a direct A->C edge is redundant.
	SyncExits(world, a, []models.ExitPayload{{Name: "C"}}, opts)
	c := EnsureLocation(world, "C", "")
	if findConnection(a, c.ID) != nil {
		t.Error("minimal-map mode must skip the redundant direct edge")
	}

	// The default policy adds it.
	SyncExits(world, a, []models.ExitPayload{{Name: "C"}}, SyncOptions{})
	if findConnection(a, c.ID) == nil {
		t.Error("default policy must add the direct edge")
	}
}

func TestSyncExitsMinimalMapStillUpdatesExistingEdge(t *testing.T) {
	world := newTestWorld()

	a := EnsureLocation(world, "A", "")
	SyncExits(world, a, []models.ExitPayload{{Name: "B"}}, SyncOptions{})
	SyncExits(world, a, []models.ExitPayload{{Name: "C"}}, SyncOptions{})
	b := EnsureLocation(world, "B", "")
	SyncExits(world, b, []models.ExitPayload{{Name: "C"}}, SyncOptions{})

	// A->C exists directly and indirectly; minimal-map mode must still
	// update the existing direct edge's label.
	SyncExits(world, a, []models.ExitPayload{{Name: "C", Label: "squeeze through"}}, SyncOptions{MinimalMap: true})
	c := EnsureLocation(world, "C", "")
	if conn := findConnection(a, c.ID); conn == nil || conn.Label != "squeeze through" {
		t.Errorf("existing direct edge must still be updated, got %+v", conn)
	}
}

func TestSyncExitsIgnoresBlankTargets(t *testing.T) {
	world := newTestWorld()
	source := EnsureLocation(world, "Dock", "")

	SyncExits(world, source, []models.ExitPayload{{Name: "   "}}, SyncOptions{})
	if len(world.Locations) != 1 || len(source.Connections) != 0 {
		t.Error("blank exit names must be ignored")
	}
}
