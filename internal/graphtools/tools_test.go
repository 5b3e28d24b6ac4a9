package graphtools

import (
	"context"
	"errors"
	"testing"

	"github.com/tatianab/story-atlas/internal/models"
	"github.com/tatianab/story-atlas/internal/worldgraph"
)

func testSource(t *testing.T) SessionSource {
	t.Helper()
	world := &models.World{ID: "w1", Locations: map[string]*models.LocationNode{}}
	hall := worldgraph.EnsureLocation(world, "Great Hall", "")
	hall.Discovered = true
	worldgraph.SyncExits(world, hall, []models.ExitPayload{{Name: "Kitchen", Label: "slip into"}}, worldgraph.SyncOptions{})
	kitchen := worldgraph.EnsureLocation(world, "Kitchen", "")
	worldgraph.SyncExits(world, kitchen, []models.ExitPayload{{Name: "Pantry"}}, worldgraph.SyncOptions{})
	world.EntryLocationID = hall.ID

	session := &models.GameSession{
		World:     world,
		Character: &models.Character{ID: "c1", Name: "Wren", WorldID: "w1", LocationID: hall.ID},
	}
	return func() (*models.GameSession, error) { return session, nil }
}

func TestNearLocationsHandler(t *testing.T) {
	handler := NearLocationsHandler(testSource(t))

	_, result, err := handler(context.Background(), nil, NearLocationsInput{})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(result.Locations) != 1 || result.Locations[0].Name != "Kitchen" {
		t.Errorf("expected Kitchen as sole neighbor, got %+v", result.Locations)
	}
	if result.Locations[0].Label != "slip into" {
		t.Errorf("expected edge label, got %q", result.Locations[0].Label)
	}
}

func TestFindLocationHandler(t *testing.T) {
	handler := FindLocationHandler(testSource(t))

	_, result, err := handler(context.Background(), nil, FindLocationInput{Query: "pant"})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(result.Matches) != 1 || result.Matches[0].Name != "Pantry" {
		t.Errorf("expected Pantry, got %+v", result.Matches)
	}
	if result.Matches[0].Score != 0.9 {
		t.Errorf("expected prefix score 0.9, got %v", result.Matches[0].Score)
	}
}

func TestGetRouteHandler(t *testing.T) {
	handler := GetRouteHandler(testSource(t))

	_, result, err := handler(context.Background(), nil, GetRouteInput{To: "pantry"})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !result.Exists || result.Distance != 2 {
		t.Fatalf("expected 2-hop route to the pantry, got %+v", result)
	}
	if len(result.Path) != 3 || result.Path[0].Name != "Great Hall" || result.Path[2].Name != "Pantry" {
		t.Errorf("unexpected path %+v", result.Path)
	}

	_, result, err = handler(context.Background(), nil, GetRouteInput{To: "volcano"})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if result.Exists {
		t.Errorf("expected no route to an unknown place, got %+v", result)
	}
}

func TestHandlersPropagateSourceErrors(t *testing.T) {
	failing := SessionSource(func() (*models.GameSession, error) {
		return nil, errors.New("no saved session")
	})
	handler := NearLocationsHandler(failing)
	if _, _, err := handler(context.Background(), nil, NearLocationsInput{}); err == nil {
		t.Error("expected error from failing session source")
	}
}
