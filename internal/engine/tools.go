package engine

import (
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/story-atlas/internal/models"
	"github.com/tatianab/story-atlas/internal/worldgraph"
)

// Graph query tools offered to the narrator. These are the only three
// operations the narrator may use to ground its movement decisions.
const (
	toolNearLocations = "list_near_locations"
	toolFindLocation  = "find_location"
	toolGetRoute      = "get_route"
)

func graphTools() []*genai.Tool {
	return []*genai.Tool{{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        toolNearLocations,
				Description: "List the locations directly connected to a location. Defaults to the player's current location.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"location_id": {Type: genai.TypeString, Description: "Location id to inspect; omit for the player's current location."},
					},
				},
			},
			{
				Name:        toolFindLocation,
				Description: "Find known locations by approximate name. Returns ranked candidates with ids.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"query": {Type: genai.TypeString, Description: "Free-text location name."},
					},
					Required: []string{"query"},
				},
			},
			{
				Name:        toolGetRoute,
				Description: "Get the shortest known route from the player's current location to a named location.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"to": {Type: genai.TypeString, Description: "Target location name or id."},
					},
					Required: []string{"to"},
				},
			},
		},
	}}
}

// dispatchGraphQuery answers one narrator tool call from the session's graph.
// Failures are reported in-band so the narrator can recover.
func dispatchGraphQuery(session *models.GameSession, call genai.FunctionCall) map[string]any {
	switch call.Name {
	case toolNearLocations:
		locationID, _ := call.Args["location_id"].(string)
		if strings.TrimSpace(locationID) == "" {
			locationID = session.Character.LocationID
		}
		near := worldgraph.NearLocations(session.World, locationID)
		locations := make([]map[string]any, 0, len(near))
		for _, info := range near {
			locations = append(locations, map[string]any{
				"id":              info.ID,
				"name":            info.Name,
				"map_description": info.MapDescription,
				"label":           info.Label,
				"discovered":      info.Discovered,
			})
		}
		return map[string]any{"locations": locations}

	case toolFindLocation:
		query, _ := call.Args["query"].(string)
		matches := worldgraph.FindLocationsByName(session.World, query)
		results := make([]map[string]any, 0, len(matches))
		for _, match := range matches {
			results = append(results, map[string]any{
				"id":              match.ID,
				"name":            match.Name,
				"map_description": match.MapDescription,
				"score":           match.Score,
			})
		}
		return map[string]any{"matches": results}

	case toolGetRoute:
		to, _ := call.Args["to"].(string)
		toID := resolveLocationRef(session.World, to)
		if toID == "" {
			return map[string]any{"exists": false, "error": "no known location matches " + to}
		}
		route := worldgraph.Route(session.World, session.Character.LocationID, toID)
		path := make([]map[string]any, 0, len(route.Path))
		for _, locationID := range route.Path {
			node := session.World.Locations[locationID]
			if node == nil {
				continue
			}
			path = append(path, map[string]any{"id": node.ID, "name": node.Name})
		}
		return map[string]any{"exists": route.Exists, "distance": route.Distance, "path": path}

	default:
		return map[string]any{"error": "unknown tool " + call.Name}
	}
}

// resolveLocationRef turns a narrator-supplied reference into a location id:
// exact id first, then the best fuzzy name match.
func resolveLocationRef(world *models.World, ref string) string {
	if _, ok := world.Locations[ref]; ok {
		return ref
	}
	matches := worldgraph.FindLocationsByName(world, ref)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].ID
}
