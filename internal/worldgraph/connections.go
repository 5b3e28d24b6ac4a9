package worldgraph

import (
	"strings"

	"github.com/tatianab/story-atlas/internal/id"
	"github.com/tatianab/story-atlas/internal/models"
)

// DefaultExitLabel is used when the narrator leaves an exit unlabeled.
const DefaultExitLabel = "go to"

// SyncOptions controls how SyncExits wires edges.
type SyncOptions struct {
	// MinimalMap skips creating a new direct edge between two locations when
	// a bounded indirect route between them already exists, keeping the map
	// sparse. Existing direct edges are still updated either way.
	MinimalMap bool
}

// SyncExits wires the source node's exits into the graph. Each descriptor's
// target is resolved (and lazily created) by name; the edge to it is created
// or updated, and bidirectional edges get a mirrored edge on the target so
// they are discoverable from both ends. A descriptor naming the source itself
// produces a self-edge; callers relying on "no self-loops" must filter
// upstream.
func SyncExits(world *models.World, source *models.LocationNode, exits []models.ExitPayload, opts SyncOptions) {
	for _, exit := range exits {
		if strings.TrimSpace(exit.Name) == "" {
			continue
		}
		target := EnsureLocation(world, exit.Name, "")
		bidirectional := exit.IsBidirectional()

		if findConnection(source, target.ID) == nil &&
			opts.MinimalMap && target.ID != source.ID &&
			hasPath(world, source.ID, target.ID, 2) {
			// An indirect route already reaches the target; leave the map sparse.
			continue
		}

		upsertConnection(source, target.ID, exit.Label, bidirectional)
		if bidirectional {
			upsertConnection(target, source.ID, exit.Label, true)
		}
	}
}

func findConnection(node *models.LocationNode, targetID string) *models.Connection {
	for i := range node.Connections {
		if node.Connections[i].TargetID == targetID {
			return &node.Connections[i]
		}
	}
	return nil
}

// upsertConnection creates or updates the edge node->targetID. A new non-blank
// label wins over the old one; a blank label keeps the existing label, falling
// back to DefaultExitLabel. The bidirectional flag ORs: an edge that was ever
// bidirectional stays bidirectional.
func upsertConnection(node *models.LocationNode, targetID, label string, bidirectional bool) {
	label = strings.TrimSpace(label)

	if conn := findConnection(node, targetID); conn != nil {
		if label != "" {
			conn.Label = label
		} else if conn.Label == "" {
			conn.Label = DefaultExitLabel
		}
		conn.Bidirectional = conn.Bidirectional || bidirectional
		return
	}

	if label == "" {
		label = DefaultExitLabel
	}
	node.Connections = append(node.Connections, models.Connection{
		ID:            id.New(),
		TargetID:      targetID,
		Label:         label,
		Bidirectional: bidirectional,
	})
}
