package worldgraph

import (
	"github.com/tatianab/story-atlas/internal/id"
	"github.com/tatianab/story-atlas/internal/models"
)

// MergeItems reconciles incoming item descriptors against an existing
// collection. An incoming item whose normalized name matches an existing one
// keeps that item's identifier, so re-emission by the narrator never mints a
// new id. The owner reference is always set from ownerCharacterID (empty for
// location items), and the result follows descriptor order: items omitted
// from the descriptors are dropped, not accumulated.
func MergeItems(existing []models.Item, descriptors []models.ItemPayload, ownerCharacterID string) []models.Item {
	byName := make(map[string]models.Item, len(existing))
	for _, item := range existing {
		byName[Normalize(item.Name)] = item
	}

	merged := make([]models.Item, 0, len(descriptors))
	for _, d := range descriptors {
		itemID := id.New()
		if prev, ok := byName[Normalize(d.Name)]; ok {
			itemID = prev.ID
		}
		merged = append(merged, models.Item{
			ID:               itemID,
			Name:             d.Name,
			Description:      d.Description,
			Portable:         d.IsPortable(),
			OwnerCharacterID: ownerCharacterID,
		})
	}
	return merged
}
