package worldgraph

import "github.com/tatianab/story-atlas/internal/models"

// MaxRouteDepth bounds breadth-first search; routes longer than this many
// hops are reported as nonexistent. It is the only guard against unbounded
// work on pathological graphs.
const MaxRouteDepth = 7

// LocationInfo is a compact view of a neighboring location.
type LocationInfo struct {
	ID             string
	Name           string
	MapDescription string
	Label          string // label of the edge that reaches it
	Discovered     bool
}

// RouteResult reports a shortest-path query.
type RouteResult struct {
	Exists   bool
	Path     []string // location ids, both endpoints included
	Distance int      // len(Path) - 1
}

// NearLocations returns the direct neighbors of a location in edge-declaration
// order. Unknown locations have no neighbors.
func NearLocations(world *models.World, locationID string) []LocationInfo {
	node, ok := world.Locations[locationID]
	if !ok {
		return nil
	}
	near := make([]LocationInfo, 0, len(node.Connections))
	for _, conn := range node.Connections {
		target, ok := world.Locations[conn.TargetID]
		if !ok {
			continue
		}
		near = append(near, LocationInfo{
			ID:             target.ID,
			Name:           target.Name,
			MapDescription: target.MapDescription,
			Label:          conn.Label,
			Discovered:     target.Discovered,
		})
	}
	return near
}

// Route finds the shortest path between two locations via breadth-first
// search, each edge traversed in its declared direction. Visitation follows
// stored edge order, so identical graphs always produce identical routes.
// A route from a location to itself trivially exists with distance zero.
func Route(world *models.World, fromID, toID string) RouteResult {
	if _, ok := world.Locations[fromID]; !ok {
		return RouteResult{}
	}
	if _, ok := world.Locations[toID]; !ok {
		return RouteResult{}
	}
	if fromID == toID {
		return RouteResult{Exists: true, Path: []string{fromID}, Distance: 0}
	}

	type visit struct {
		id    string
		depth int
	}
	parent := map[string]string{fromID: ""}
	queue := []visit{{id: fromID, depth: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current.depth >= MaxRouteDepth {
			continue
		}
		node := world.Locations[current.id]
		if node == nil {
			continue
		}
		for _, conn := range node.Connections {
			if _, seen := parent[conn.TargetID]; seen {
				continue
			}
			if _, ok := world.Locations[conn.TargetID]; !ok {
				continue
			}
			parent[conn.TargetID] = current.id
			if conn.TargetID == toID {
				return RouteResult{Exists: true, Path: buildPath(parent, fromID, toID), Distance: current.depth + 1}
			}
			queue = append(queue, visit{id: conn.TargetID, depth: current.depth + 1})
		}
	}
	return RouteResult{}
}

func buildPath(parent map[string]string, fromID, toID string) []string {
	var reversed []string
	for at := toID; at != ""; at = parent[at] {
		reversed = append(reversed, at)
		if at == fromID {
			break
		}
	}
	path := make([]string, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, reversed[i])
	}
	return path
}

// hasPath reports whether a route of at least minDepth hops (and at most
// MaxRouteDepth) connects the two locations. Arrivals shorter than minDepth
// are ignored rather than visited, so a trivial direct edge does not mask a
// longer indirect route.
func hasPath(world *models.World, fromID, toID string, minDepth int) bool {
	if _, ok := world.Locations[fromID]; !ok {
		return false
	}
	if _, ok := world.Locations[toID]; !ok {
		return false
	}

	type visit struct {
		id    string
		depth int
	}
	visited := map[string]bool{fromID: true}
	queue := []visit{{id: fromID, depth: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current.depth >= MaxRouteDepth {
			continue
		}
		node := world.Locations[current.id]
		if node == nil {
			continue
		}
		for _, conn := range node.Connections {
			depth := current.depth + 1
			if conn.TargetID == toID {
				if depth >= minDepth {
					return true
				}
				continue // too short; keep looking for a longer arrival
			}
			if visited[conn.TargetID] {
				continue
			}
			if _, ok := world.Locations[conn.TargetID]; !ok {
				continue
			}
			visited[conn.TargetID] = true
			queue = append(queue, visit{id: conn.TargetID, depth: depth})
		}
	}
	return false
}
