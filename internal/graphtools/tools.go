// Package graphtools exposes the world graph's navigation queries as MCP
// tools, so external narrator clients can ground their movement decisions in
// the actual map. Only the three permitted read-only queries are offered.
package graphtools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/tatianab/story-atlas/internal/models"
	"github.com/tatianab/story-atlas/internal/worldgraph"
)

// SessionSource returns the session a tool call should read. Loading per call
// keeps the server in sync with a game saving in another process.
type SessionSource func() (*models.GameSession, error)

// LocationSummary is a compact location record returned by every tool.
type LocationSummary struct {
	ID             string  `json:"id" jsonschema:"location identifier"`
	Name           string  `json:"name" jsonschema:"location display name"`
	MapDescription string  `json:"map_description,omitempty" jsonschema:"short factual description"`
	Label          string  `json:"label,omitempty" jsonschema:"exit label that reaches this location"`
	Discovered     bool    `json:"discovered" jsonschema:"whether the player has visited"`
	Score          float64 `json:"score,omitempty" jsonschema:"similarity score for fuzzy matches"`
}

// NearLocationsInput is the input for the list_near_locations tool.
type NearLocationsInput struct {
	LocationID string `json:"location_id,omitempty" jsonschema:"location to inspect; defaults to the player's current location"`
}

// NearLocationsResult lists a location's direct neighbors.
type NearLocationsResult struct {
	Locations []LocationSummary `json:"locations"`
}

// FindLocationInput is the input for the find_location tool.
type FindLocationInput struct {
	Query string `json:"query" jsonschema:"free-text location name"`
}

// FindLocationResult lists ranked fuzzy matches.
type FindLocationResult struct {
	Matches []LocationSummary `json:"matches"`
}

// GetRouteInput is the input for the get_route tool.
type GetRouteInput struct {
	From string `json:"from,omitempty" jsonschema:"starting location name or id; defaults to the player's current location"`
	To   string `json:"to" jsonschema:"target location name or id"`
}

// GetRouteResult reports a shortest-path query.
type GetRouteResult struct {
	Exists   bool              `json:"exists" jsonschema:"whether a route was found"`
	Distance int               `json:"distance" jsonschema:"number of hops"`
	Path     []LocationSummary `json:"path,omitempty" jsonschema:"locations along the route, endpoints included"`
}

// NewServer builds an MCP server with the three navigation tools registered.
func NewServer(source SessionSource) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "story-atlas-graph", Version: "0.1.0"}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_near_locations",
		Description: "List the locations directly connected to a location on the player's map.",
	}, NearLocationsHandler(source))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_location",
		Description: "Find known locations by approximate name.",
	}, FindLocationHandler(source))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_route",
		Description: "Get the shortest known route between two locations on the player's map.",
	}, GetRouteHandler(source))
	return server
}

// NearLocationsHandler answers list_near_locations calls.
func NearLocationsHandler(source SessionSource) mcp.ToolHandlerFor[NearLocationsInput, NearLocationsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input NearLocationsInput) (*mcp.CallToolResult, NearLocationsResult, error) {
		session, err := source()
		if err != nil {
			return nil, NearLocationsResult{}, fmt.Errorf("load session: %w", err)
		}
		locationID := strings.TrimSpace(input.LocationID)
		if locationID == "" {
			locationID = session.Character.LocationID
		}
		near := worldgraph.NearLocations(session.World, locationID)
		result := NearLocationsResult{Locations: make([]LocationSummary, 0, len(near))}
		for _, info := range near {
			result.Locations = append(result.Locations, LocationSummary{
				ID:             info.ID,
				Name:           info.Name,
				MapDescription: info.MapDescription,
				Label:          info.Label,
				Discovered:     info.Discovered,
			})
		}
		return nil, result, nil
	}
}

// FindLocationHandler answers find_location calls.
func FindLocationHandler(source SessionSource) mcp.ToolHandlerFor[FindLocationInput, FindLocationResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FindLocationInput) (*mcp.CallToolResult, FindLocationResult, error) {
		session, err := source()
		if err != nil {
			return nil, FindLocationResult{}, fmt.Errorf("load session: %w", err)
		}
		matches := worldgraph.FindLocationsByName(session.World, input.Query)
		result := FindLocationResult{Matches: make([]LocationSummary, 0, len(matches))}
		for _, match := range matches {
			result.Matches = append(result.Matches, LocationSummary{
				ID:             match.ID,
				Name:           match.Name,
				MapDescription: match.MapDescription,
				Score:          match.Score,
			})
		}
		return nil, result, nil
	}
}

// GetRouteHandler answers get_route calls.
func GetRouteHandler(source SessionSource) mcp.ToolHandlerFor[GetRouteInput, GetRouteResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetRouteInput) (*mcp.CallToolResult, GetRouteResult, error) {
		session, err := source()
		if err != nil {
			return nil, GetRouteResult{}, fmt.Errorf("load session: %w", err)
		}

		fromID := resolveRef(session.World, input.From)
		if strings.TrimSpace(input.From) == "" {
			fromID = session.Character.LocationID
		}
		toID := resolveRef(session.World, input.To)
		if toID == "" {
			return nil, GetRouteResult{}, nil
		}

		route := worldgraph.Route(session.World, fromID, toID)
		result := GetRouteResult{Exists: route.Exists, Distance: route.Distance}
		for _, locationID := range route.Path {
			node := session.World.Locations[locationID]
			if node == nil {
				continue
			}
			result.Path = append(result.Path, LocationSummary{
				ID:             node.ID,
				Name:           node.Name,
				MapDescription: node.MapDescription,
				Discovered:     node.Discovered,
			})
		}
		return nil, result, nil
	}
}

// resolveRef turns a caller-supplied reference into a location id: exact id
// first, then the best fuzzy name match, else "".
func resolveRef(world *models.World, ref string) string {
	if _, ok := world.Locations[ref]; ok {
		return ref
	}
	matches := worldgraph.FindLocationsByName(world, ref)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].ID
}
