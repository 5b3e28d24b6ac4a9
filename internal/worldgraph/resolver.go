package worldgraph

import (
	"sort"

	"github.com/tatianab/story-atlas/internal/id"
	"github.com/tatianab/story-atlas/internal/models"
)

// orderedNodes returns the world's nodes sorted by id. Node ids are ULIDs,
// so this is creation order, which keeps scans and rankings reproducible.
func orderedNodes(world *models.World) []*models.LocationNode {
	nodes := make([]*models.LocationNode, 0, len(world.Locations))
	for _, node := range world.Locations {
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}

// EnsureLocation finds the node representing the named place or creates one,
// inserting it into the world. Matching is name-first: an existing node whose
// normalized name equals the given name wins regardless of description. When
// no name matches and a map-description hint is supplied, a node whose own
// map or long description equals the hint is treated as the same place
// renamed. Nothing is ever removed from the world.
func EnsureLocation(world *models.World, name, mapDescriptionHint string) *models.LocationNode {
	if world.Locations == nil {
		world.Locations = make(map[string]*models.LocationNode)
	}

	wanted := Normalize(name)
	nodes := orderedNodes(world)
	for _, node := range nodes {
		if Normalize(node.Name) == wanted {
			return node
		}
	}

	if hint := Normalize(mapDescriptionHint); hint != "" {
		for _, node := range nodes {
			if Normalize(node.MapDescription) == hint || Normalize(node.Description) == hint {
				return node
			}
		}
	}

	node := &models.LocationNode{
		ID:   id.New(),
		Name: name,
	}
	world.Locations[node.ID] = node
	return node
}

// UpsertLocationFromPayload resolves the payload's location via EnsureLocation
// and folds the payload into it: the long description is overwritten, the map
// description is recomputed through a fallback chain (payload, caller-supplied
// fallback, previous map description, previous long description), the
// discovered flag is ORed (a location once discovered stays discovered), items
// are merged by normalized name, and exits are synchronized.
func UpsertLocationFromPayload(world *models.World, payload models.LocationPayload, discovered bool, fallbackMapDescription string, opts SyncOptions) *models.LocationNode {
	node := EnsureLocation(world, payload.Name, payload.MapDescription)

	prevMap := node.MapDescription
	prevLong := node.Description

	node.Description = payload.Description
	node.MapDescription = firstNonEmpty(payload.MapDescription, fallbackMapDescription, prevMap, prevLong)
	node.Discovered = node.Discovered || discovered
	node.Items = MergeItems(node.Items, payload.Items, "")
	SyncExits(world, node, payload.Exits, opts)
	return node
}
