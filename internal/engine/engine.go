package engine

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/story-atlas/internal/id"
	"github.com/tatianab/story-atlas/internal/models"
	"github.com/tatianab/story-atlas/internal/worldgraph"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"
)

//go:embed prompts/generate_world.txt
var generateWorldPrompt string

//go:embed prompts/process_turn.txt
var processTurnPrompt string

//go:embed prompts/summarize_log.txt
var summarizeLogPrompt string

// Engine drives the narrator model and keeps its output synchronized with
// the world graph.
type Engine struct {
	client *genai.Client
	model  *genai.GenerativeModel
	opts   worldgraph.SyncOptions
}

func NewEngine(ctx context.Context, apiKey, modelName string, opts worldgraph.SyncOptions) (*Engine, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(modelName)
	model.Tools = graphTools()
	return &Engine{
		client: client,
		model:  model,
		opts:   opts,
	}, nil
}

func (e *Engine) Close() {
	e.client.Close()
}

// GenerateWorld asks the narrator for an opening scene and builds a fresh
// session from it. The bootstrap payload runs through the same turn applier
// as regular play.
func (e *Engine) GenerateWorld(ctx context.Context, hint string) (*models.GameSession, error) {
	tmpl, err := template.New("generate_world").Parse(generateWorldPrompt)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Hint string }{Hint: hint}); err != nil {
		return nil, err
	}

	resp, err := e.model.GenerateContent(ctx, genai.Text(buf.String()))
	if err != nil {
		return nil, err
	}
	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	var bootstrap struct {
		Setting       string             `yaml:"setting"`
		Atmosphere    string             `yaml:"atmosphere"`
		Genre         string             `yaml:"genre"`
		CharacterName string             `yaml:"character_name"`
		Turn          models.TurnPayload `yaml:"turn"`
	}
	if err := yaml.Unmarshal([]byte(stripFences(text)), &bootstrap); err != nil {
		return nil, fmt.Errorf("failed to parse world YAML: %v\nOutput was: %s", err, text)
	}

	world := &models.World{
		ID:         id.New(),
		Setting:    bootstrap.Setting,
		Atmosphere: bootstrap.Atmosphere,
		Genre:      bootstrap.Genre,
		Locations:  make(map[string]*models.LocationNode),
	}
	character := &models.Character{
		ID:   id.New(),
		Name: bootstrap.CharacterName,
	}

	result := worldgraph.ApplyGameTurn(worldgraph.TurnInput{
		World:     world,
		Character: character,
		Turn:      bootstrap.Turn,
		Initial:   true,
		Options:   e.opts,
	})

	return &models.GameSession{
		World:     result.World,
		Character: result.Character,
		ChatLog:   result.NewEntries,
	}, nil
}

// ProcessTurn sends the player's message to the narrator, answers the
// narrator's graph queries until it commits to a turn payload, applies the
// payload, and updates the session in place. Returns the narration text.
func (e *Engine) ProcessTurn(ctx context.Context, session *models.GameSession, playerMessage string) (string, error) {
	if len(session.ChatLog) > maxLogEntries {
		if err := e.SummarizeChatLog(ctx, session); err != nil {
			// Continue with the full log; summarization is an optimization.
			fmt.Printf("Warning: failed to summarize chat log: %v\n", err)
		}
	}

	prompt, err := e.buildTurnPrompt(session, playerMessage)
	if err != nil {
		return "", err
	}

	chat := e.model.StartChat()
	resp, err := chat.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	// The narrator may ground its movement decisions with graph queries
	// before emitting the final payload.
	for round := 0; round < maxToolRounds; round++ {
		calls := functionCalls(resp)
		if len(calls) == 0 {
			break
		}
		responses := make([]genai.Part, 0, len(calls))
		for _, call := range calls {
			responses = append(responses, genai.FunctionResponse{
				Name:     call.Name,
				Response: dispatchGraphQuery(session, call),
			})
		}
		resp, err = chat.SendMessage(ctx, responses...)
		if err != nil {
			return "", err
		}
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	turn, err := ParseTurnPayload(text)
	if err != nil {
		return "", err
	}

	result := worldgraph.ApplyGameTurn(worldgraph.TurnInput{
		World:         session.World,
		Character:     session.Character,
		Turn:          turn,
		PlayerMessage: playerMessage,
		Options:       e.opts,
	})

	session.World = result.World
	session.Character = result.Character
	session.ChatLog = append(session.ChatLog, result.NewEntries...)
	return turn.Narration, nil
}

func (e *Engine) buildTurnPrompt(session *models.GameSession, playerMessage string) (string, error) {
	logText := ""
	if session.Summary != "" {
		logText = fmt.Sprintf("Summary of earlier events: %s\n\n", session.Summary)
	}
	for _, entry := range session.ChatLog {
		logText += fmt.Sprintf("[%s] %s\n", entry.Author, entry.Text)
		if entry.ActionSummary != "" {
			logText += fmt.Sprintf("(at this place: %s)\n", entry.ActionSummary)
		}
	}

	current := session.World.Locations[session.Character.LocationID]
	currentName := "nowhere yet"
	currentDescription := ""
	if current != nil {
		currentName = current.Name
		currentDescription = current.MapDescription
	}

	knownExits := ""
	for _, near := range worldgraph.NearLocations(session.World, session.Character.LocationID) {
		knownExits += fmt.Sprintf("- %s (%s): %s\n", near.Name, near.Label, near.MapDescription)
	}

	inventory := make([]string, 0, len(session.Character.Inventory))
	for _, item := range session.Character.Inventory {
		inventory = append(inventory, item.Name)
	}

	tmpl, err := template.New("process_turn").Parse(processTurnPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	data := struct {
		Setting            string
		Atmosphere         string
		Genre              string
		CharacterName      string
		CurrentLocation    string
		CurrentDescription string
		KnownExits         string
		Inventory          string
		ChatLog            string
		PlayerMessage      string
	}{
		Setting:            session.World.Setting,
		Atmosphere:         session.World.Atmosphere,
		Genre:              session.World.Genre,
		CharacterName:      session.Character.Name,
		CurrentLocation:    currentName,
		CurrentDescription: currentDescription,
		KnownExits:         knownExits,
		Inventory:          strings.Join(inventory, ", "),
		ChatLog:            logText,
		PlayerMessage:      playerMessage,
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Chat log compaction thresholds.
const (
	maxLogEntries = 16
	keepEntries   = 6
	maxToolRounds = 8
)

// SummarizeChatLog folds the oldest chat entries into the session summary,
// keeping only the most recent ones verbatim.
func (e *Engine) SummarizeChatLog(ctx context.Context, session *models.GameSession) error {
	if len(session.ChatLog) <= keepEntries {
		return nil
	}

	toSummarize := session.ChatLog[:len(session.ChatLog)-keepEntries]
	remaining := session.ChatLog[len(session.ChatLog)-keepEntries:]

	events := ""
	for _, entry := range toSummarize {
		events += fmt.Sprintf("[%s] %s\n", entry.Author, entry.Text)
	}

	tmpl, err := template.New("summarize_log").Parse(summarizeLogPrompt)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	data := struct {
		CurrentSummary string
		NewEvents      string
	}{
		CurrentSummary: session.Summary,
		NewEvents:      events,
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}

	resp, err := e.model.GenerateContent(ctx, genai.Text(buf.String()))
	if err != nil {
		return err
	}
	text, err := responseText(resp)
	if err != nil {
		return err
	}

	session.Summary = strings.TrimSpace(text)
	session.ChatLog = remaining
	return nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return string(text), nil
		}
	}
	return "", fmt.Errorf("unexpected response type from Gemini")
}

func functionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	var calls []genai.FunctionCall
	for _, part := range resp.Candidates[0].Content.Parts {
		if call, ok := part.(genai.FunctionCall); ok {
			calls = append(calls, call)
		}
	}
	return calls
}
