package worldgraph

import (
	"sort"
	"strings"

	"github.com/tatianab/story-atlas/internal/models"
)

// Fuzzy lookup tuning.
const (
	fuzzyThreshold  = 0.3
	fuzzyMaxResults = 5
)

// Match is one candidate from a fuzzy location lookup.
type Match struct {
	ID             string
	Name           string
	MapDescription string
	Score          float64
}

// FindLocationsByName scores every node against a free-text query and returns
// the top matches (at most five, score strictly above 0.3) in descending
// score order. Ties keep node creation order. The scoring is a tiered
// heuristic, first rule wins: exact name 1.0, name prefix 0.9, name substring
// 0.8, description substring 0.6, else the fraction of query words found in
// the name or description times 0.5.
func FindLocationsByName(world *models.World, query string) []Match {
	q := Normalize(query)
	if q == "" {
		return nil
	}

	var matches []Match
	for _, node := range orderedNodes(world) {
		score := scoreLocation(node, q)
		if score > fuzzyThreshold {
			matches = append(matches, Match{
				ID:             node.ID,
				Name:           node.Name,
				MapDescription: node.MapDescription,
				Score:          score,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > fuzzyMaxResults {
		matches = matches[:fuzzyMaxResults]
	}
	return matches
}

func scoreLocation(node *models.LocationNode, query string) float64 {
	name := Normalize(node.Name)
	desc := Normalize(firstNonEmpty(node.MapDescription, node.Description))

	switch {
	case name == query:
		return 1.0
	case strings.HasPrefix(name, query):
		return 0.9
	case strings.Contains(name, query):
		return 0.8
	case desc != "" && strings.Contains(desc, query):
		return 0.6
	}

	words := strings.Fields(query)
	if len(words) == 0 {
		return 0
	}
	found := 0
	for _, word := range words {
		if strings.Contains(name, word) || strings.Contains(desc, word) {
			found++
		}
	}
	return float64(found) / float64(len(words)) * 0.5
}
