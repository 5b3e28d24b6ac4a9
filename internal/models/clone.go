package models

// Clone returns a deep copy of the world. The caller may mutate the copy
// freely without affecting the original.
func (w *World) Clone() *World {
	if w == nil {
		return nil
	}
	out := *w
	out.CharacterIDs = append([]string(nil), w.CharacterIDs...)
	out.Locations = make(map[string]*LocationNode, len(w.Locations))
	for id, node := range w.Locations {
		out.Locations[id] = node.Clone()
	}
	return &out
}

// Clone returns a deep copy of the location node.
func (n *LocationNode) Clone() *LocationNode {
	if n == nil {
		return nil
	}
	out := *n
	out.Items = append([]Item(nil), n.Items...)
	out.Connections = append([]Connection(nil), n.Connections...)
	return &out
}

// Clone returns a deep copy of the character.
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	out := *c
	out.Inventory = append([]Item(nil), c.Inventory...)
	return &out
}
