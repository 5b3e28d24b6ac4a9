package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/story-atlas/internal/config"
	"github.com/tatianab/story-atlas/internal/engine"
	"github.com/tatianab/story-atlas/internal/models"
	"github.com/tatianab/story-atlas/internal/worldgraph"
	"google.golang.org/api/option"
)

const maxTurns = 10

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize the narrator engine
	narrator, err := engine.NewEngine(ctx, cfg.GeminiAPIKey, cfg.Model, worldgraph.SyncOptions{MinimalMap: cfg.MinimalMap})
	if err != nil {
		log.Fatalf("Failed to create narrator engine: %v", err)
	}
	defer narrator.Close()

	// Initialize the Player LLM
	playerClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Fatalf("Failed to create player client: %v", err)
	}
	defer playerClient.Close()
	playerModel := playerClient.GenerativeModel(cfg.Model)

	// 1. Get a theme from the Player LLM
	fmt.Println("--- Step 1: Requesting a theme from the Player LLM ---")
	themePrompt := "You are a player about to start a text-based adventure game. Provide a short, creative hint for a game theme (e.g., 'steampunk underwater city', 'abandoned metro after the flood'). Return ONLY the theme string."
	themeResp, err := playerModel.GenerateContent(ctx, genai.Text(themePrompt))
	if err != nil {
		log.Fatalf("Failed to get theme: %v", err)
	}
	theme := strings.TrimSpace(fmt.Sprintf("%v", themeResp.Candidates[0].Content.Parts[0]))
	fmt.Printf("Player chose theme: %s\n\n", theme)

	// 2. Generate the world
	fmt.Println("--- Step 2: Generating World ---")
	session, err := narrator.GenerateWorld(ctx, theme)
	if err != nil {
		log.Fatalf("Failed to generate world: %v", err)
	}
	fmt.Printf("Setting: %s\n", session.World.Setting)
	if len(session.ChatLog) > 0 {
		fmt.Printf("Opening: %s\n\n", session.ChatLog[0].Text)
	}

	// 3. Play the game
	for turn := 1; turn <= maxTurns; turn++ {
		fmt.Printf("--- Turn %d ---\n", turn)

		// Ask Player LLM what to do
		action := getPlayerAction(ctx, playerModel, session)
		fmt.Printf("Player Action: %s\n", action)

		// Process Turn
		narration, err := narrator.ProcessTurn(ctx, session, action)
		if err != nil {
			fmt.Printf("Error processing turn: %v\n", err)
			break
		}
		fmt.Printf("Narrator: %s\n", narration)
		printMap(session)
	}
}

func printMap(session *models.GameSession) {
	world := session.World
	fmt.Printf("Map: %d locations\n", len(world.Locations))
	current := world.Locations[session.Character.LocationID]
	if current != nil {
		fmt.Printf("At: %s\n", current.Name)
	}
	for _, near := range worldgraph.NearLocations(world, session.Character.LocationID) {
		fmt.Printf("  exit: %s (%s)\n", near.Name, near.Label)
	}
	inventory := make([]string, 0, len(session.Character.Inventory))
	for _, item := range session.Character.Inventory {
		inventory = append(inventory, item.Name)
	}
	fmt.Printf("Inventory: %v\n\n", inventory)
}

func getPlayerAction(ctx context.Context, model *genai.GenerativeModel, session *models.GameSession) string {
	logText := ""
	for _, entry := range session.ChatLog {
		logText += fmt.Sprintf("[%s] %s\n", entry.Author, entry.Text)
	}

	currentLocation := ""
	if node := session.World.Locations[session.Character.LocationID]; node != nil {
		currentLocation = node.Name
	}

	prompt := fmt.Sprintf(`You are playing a text-based adventure game.
World: %s
Current Location: %s

Story so far:
%s

What is your next action? Be creative but stay within the world's logic.
Explore: move to new places, examine things, pick things up.
Return ONLY the action string, no extra commentary.`,
		session.World.Setting,
		currentLocation,
		logText,
	)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "examine the area"
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "look around"
	}
	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
}
