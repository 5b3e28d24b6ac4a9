package models

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveDir is the on-disk location of saved sessions.
var SaveDir = ".saves"

type chatLogFile struct {
	Summary string      `yaml:"summary,omitempty"`
	Entries []ChatEntry `yaml:"entries,omitempty"`
}

func (s *GameSession) Save(name string) error {
	dir := filepath.Join(SaveDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Save world.yaml
	worldData, err := yaml.Marshal(s.World)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "world.yaml"), worldData, 0644); err != nil {
		return err
	}

	// Save character.yaml
	characterData, err := yaml.Marshal(s.Character)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "character.yaml"), characterData, 0644); err != nil {
		return err
	}

	// Save chatlog.yaml
	logData, err := yaml.Marshal(chatLogFile{Summary: s.Summary, Entries: s.ChatLog})
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "chatlog.yaml"), logData, 0644); err != nil {
		return err
	}

	return nil
}

func LoadSession(name string) (*GameSession, error) {
	dir := filepath.Join(SaveDir, name)

	// Load world
	worldData, err := os.ReadFile(filepath.Join(dir, "world.yaml"))
	if err != nil {
		return nil, err
	}
	var world World
	if err := yaml.Unmarshal(worldData, &world); err != nil {
		return nil, err
	}

	// Load character
	characterData, err := os.ReadFile(filepath.Join(dir, "character.yaml"))
	if err != nil {
		return nil, err
	}
	var character Character
	if err := yaml.Unmarshal(characterData, &character); err != nil {
		return nil, err
	}

	// Load chat log
	logData, err := os.ReadFile(filepath.Join(dir, "chatlog.yaml"))
	if err != nil {
		return nil, err
	}
	var log chatLogFile
	if err := yaml.Unmarshal(logData, &log); err != nil {
		return nil, err
	}

	return &GameSession{
		World:     &world,
		Character: &character,
		ChatLog:   log.Entries,
		Summary:   log.Summary,
	}, nil
}

func ListSessions() ([]string, error) {
	if _, err := os.Stat(SaveDir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(SaveDir)
	if err != nil {
		return nil, err
	}

	var sessions []string
	for _, entry := range entries {
		if entry.IsDir() {
			// Check if world.yaml exists as a marker for a valid session
			worldPath := filepath.Join(SaveDir, entry.Name(), "world.yaml")
			if _, err := os.Stat(worldPath); err == nil {
				sessions = append(sessions, entry.Name())
			}
		}
	}
	return sessions, nil
}
