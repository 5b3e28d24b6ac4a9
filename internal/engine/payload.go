package engine

import (
	"fmt"
	"strings"

	"github.com/tatianab/story-atlas/internal/models"
	"gopkg.in/yaml.v3"
)

// stripFences removes a surrounding markdown code fence, which the model
// tends to add despite instructions.
func stripFences(text string) string {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```yaml")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

// ParseTurnPayload parses the narrator's fenced-YAML turn output and checks
// the fields the turn applier requires.
func ParseTurnPayload(text string) (models.TurnPayload, error) {
	var turn models.TurnPayload
	if err := yaml.Unmarshal([]byte(stripFences(text)), &turn); err != nil {
		return models.TurnPayload{}, fmt.Errorf("failed to parse turn YAML: %v\nOutput was: %s", err, text)
	}
	if strings.TrimSpace(turn.PlayerLocation.Name) == "" {
		return models.TurnPayload{}, fmt.Errorf("turn payload is missing player_location.name\nOutput was: %s", text)
	}
	return turn, nil
}
