package models

import "time"

// Authors of chat log entries.
const (
	AuthorPlayer   = "player"
	AuthorNarrator = "narrator"
)

// World is a persistent graph of locations plus narrative metadata.
type World struct {
	ID              string                   `yaml:"id"`
	Setting         string                   `yaml:"setting"`
	Atmosphere      string                   `yaml:"atmosphere,omitempty"`
	Genre           string                   `yaml:"genre,omitempty"`
	EntryLocationID string                   `yaml:"entry_location_id,omitempty"`
	Locations       map[string]*LocationNode `yaml:"locations"` // keyed by location id
	CharacterIDs    []string                 `yaml:"character_ids,omitempty"`
	CreatedAt       time.Time                `yaml:"created_at,omitempty"`
	UpdatedAt       time.Time                `yaml:"updated_at,omitempty"`
}

// LocationNode is a single deduplicated place in the world graph.
type LocationNode struct {
	ID             string       `yaml:"id"`
	Name           string       `yaml:"name"`
	Description    string       `yaml:"description,omitempty"`     // long narrative text shown to the player
	MapDescription string       `yaml:"map_description,omitempty"` // terse, non-emotional; used for dedup and summaries
	Discovered     bool         `yaml:"discovered"`
	Items          []Item       `yaml:"items,omitempty"`
	Connections    []Connection `yaml:"connections,omitempty"`
}

// Connection is a directed (optionally mirrored) edge between two locations.
type Connection struct {
	ID            string `yaml:"id"`
	TargetID      string `yaml:"target_id"`
	Label         string `yaml:"label,omitempty"` // exit verb/phrase, e.g. "go through"
	Bidirectional bool   `yaml:"bidirectional"`
}

// Item is an object lying in a location or carried by a character.
type Item struct {
	ID               string `yaml:"id"`
	Name             string `yaml:"name"`
	Description      string `yaml:"description,omitempty"`
	Portable         bool   `yaml:"portable"`
	OwnerCharacterID string `yaml:"owner_character_id,omitempty"` // empty means the item belongs to a location
}

// Character is the player's presence in a world.
type Character struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	WorldID    string `yaml:"world_id,omitempty"`
	LocationID string `yaml:"location_id,omitempty"`
	Inventory  []Item `yaml:"inventory,omitempty"`
}

// ChatEntry is one line of the session's narration log.
type ChatEntry struct {
	ID            string    `yaml:"id"`
	Author        string    `yaml:"author"` // AuthorPlayer or AuthorNarrator
	Text          string    `yaml:"text"`
	LocationID    string    `yaml:"location_id,omitempty"`
	ActionSummary string    `yaml:"action_summary,omitempty"` // verbatim exchange for a same-place action
	CreatedAt     time.Time `yaml:"created_at,omitempty"`
}

// TurnPayload is the structured output the narrator produces each turn.
type TurnPayload struct {
	Narration      string            `yaml:"narration"`
	MapDescription string            `yaml:"map_description,omitempty"`
	Suggestions    []string          `yaml:"suggestions,omitempty"`
	PlayerLocation LocationPayload   `yaml:"player_location"`
	Discoveries    []LocationPayload `yaml:"discoveries,omitempty"`
	Inventory      []ItemPayload     `yaml:"inventory,omitempty"`
}

// LocationPayload describes a place the narrator mentioned this turn.
type LocationPayload struct {
	Name           string        `yaml:"name"`
	MapDescription string        `yaml:"map_description,omitempty"`
	Description    string        `yaml:"description"`
	Items          []ItemPayload `yaml:"items,omitempty"`
	Exits          []ExitPayload `yaml:"exits,omitempty"`
}

// ExitPayload describes one way out of a location.
type ExitPayload struct {
	Name          string `yaml:"name"`            // target location name
	Label         string `yaml:"label,omitempty"` // exit verb/phrase
	Bidirectional *bool  `yaml:"bidirectional,omitempty"`
}

// IsBidirectional reports the exit's direction flag, defaulting to true.
func (e ExitPayload) IsBidirectional() bool {
	return e.Bidirectional == nil || *e.Bidirectional
}

// ItemPayload describes an object the narrator mentioned this turn.
type ItemPayload struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Portable    *bool  `yaml:"portable,omitempty"`
}

// IsPortable reports the item's portability flag, defaulting to true.
func (i ItemPayload) IsPortable() bool {
	return i.Portable == nil || *i.Portable
}

// GameSession aggregates all game-related data.
type GameSession struct {
	World     *World      `yaml:"world"`
	Character *Character  `yaml:"character"`
	ChatLog   []ChatEntry `yaml:"chat_log,omitempty"`
	Summary   string      `yaml:"summary,omitempty"` // compacted prefix of the chat log
}
