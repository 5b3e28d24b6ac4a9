package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/story-atlas/internal/engine"
	"github.com/tatianab/story-atlas/internal/models"
	"github.com/tatianab/story-atlas/internal/store"
	"github.com/tatianab/story-atlas/internal/worldgraph"
)

type sessionState int

const (
	stateInputHint sessionState = iota
	stateLoading
	statePlaying
	stateError
)

type model struct {
	state     sessionState
	engine    *engine.Engine
	archive   store.Store
	session   *models.GameSession
	textInput textinput.Model
	viewport  viewport.Model
	err       error
	gameLog   string
	width     int
	height    int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

func NewModel(eng *engine.Engine, archive store.Store) model {
	ti := textinput.New()
	ti.Placeholder = "Enter a hint or 'random'..."
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	return model{
		state:     stateInputHint,
		engine:    eng,
		archive:   archive,
		textInput: ti,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type worldGeneratedMsg struct {
	session *models.GameSession
}

type turnProcessedMsg struct {
	narration string
	err       error
}

type errMsg struct {
	err error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.state == stateInputHint {
				hint := m.textInput.Value()
				if hint == "" {
					hint = "random"
				}
				m.state = stateLoading
				return m, m.generateWorld(hint)
			}
			if m.state == statePlaying {
				action := m.textInput.Value()
				if action == "" {
					return m, nil
				}
				m.textInput.Reset()

				switch action {
				case "/quit":
					return m, tea.Quit
				case "/restart":
					m.state = stateInputHint
					m.gameLog = ""
					m.session = nil
					m.textInput.Placeholder = "Enter a hint or 'random'..."
					return m, nil
				case "/map":
					m.appendGameText(m.renderMap())
					return m, nil
				}

				logWidth := int(float64(m.width) * 0.75)
				styledAction := userStyle.Width(logWidth).Render("> " + action)
				m.gameLog += "\n\n" + styledAction + "\n\n"
				m.viewport.SetContent(m.gameLog)
				m.viewport.GotoBottom()
				return m, m.processTurn(action)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.75)
		m.viewport.Height = msg.Height - 6
		if m.state == statePlaying {
			m.viewport.SetContent(m.gameLog)
		}

	case worldGeneratedMsg:
		m.session = msg.session
		m.state = statePlaying
		logWidth := int(float64(m.width) * 0.75)
		header := gameStyle.Bold(true).Render("World: " + m.session.World.Setting)
		opening := ""
		if len(m.session.ChatLog) > 0 {
			opening = m.session.ChatLog[len(m.session.ChatLog)-1].Text
		}
		description := gameStyle.Width(logWidth).Render(opening)
		m.gameLog = header + "\n\n" + description + "\n\n"
		if m.viewport.Width == 0 {
			m.viewport = viewport.New(logWidth, m.height-6)
		}
		m.viewport.SetContent(m.gameLog)
		m.textInput.Placeholder = "What do you do?"
		m.textInput.Reset()
		m.saveSession()
		return m, nil

	case turnProcessedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.appendGameText(msg.narration)
		m.saveSession()
		return m, nil

	case errMsg:
		m.err = msg.err
		m.state = stateError
		return m, nil
	}

	if m.state == stateInputHint || m.state == statePlaying {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// saveSession autosaves the current session and mirrors the world and
// character into the archive when one is configured. Autosave failures
// never interrupt play.
func (m model) saveSession() {
	if m.session == nil {
		return
	}
	_ = m.session.Save("current")
	if m.archive != nil {
		ctx := context.Background()
		_ = m.archive.PutWorld(ctx, m.session.World)
		_ = m.archive.PutCharacter(ctx, m.session.Character)
	}
}

func (m *model) appendGameText(text string) {
	logWidth := int(float64(m.width) * 0.75)
	m.gameLog += gameStyle.Width(logWidth).Render(text) + "\n\n"
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateInputHint:
		s = fmt.Sprintf(
			"Welcome to Story Atlas!\n\n%s\n\n%s",
			"Give me a hint about the world you want to explore:",
			m.textInput.View(),
		)

	case stateLoading:
		s = "\n  Generating your world... please wait.\n"

	case statePlaying:
		logView := m.viewport.View()
		stateView := m.renderState()

		// Join log and state horizontally
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			logView,
			stateView,
		)

		help := helpStyle.Render("Commands: /map, /restart, /quit, or just type what you want to do.")

		s = lipgloss.JoinVertical(lipgloss.Left,
			mainView,
			"\n"+m.textInput.View(),
			"\n"+help,
		)

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)
	}

	return "\n" + s + "\n"
}

func (m model) renderState() string {
	if m.session == nil {
		return ""
	}

	world := m.session.World
	character := m.session.Character

	// Location
	locationName := "nowhere"
	locationDesc := ""
	if node := world.Locations[character.LocationID]; node != nil {
		locationName = node.Name
		locationDesc = node.MapDescription
	}
	location := titleStyle.Render("LOCATION") + "\n" + locationName + "\n"
	if locationDesc != "" {
		location += locationDesc + "\n"
	}
	location += "\n"

	// Exits
	exitsTitle := titleStyle.Render("EXITS") + "\n"
	exits := ""
	near := worldgraph.NearLocations(world, character.LocationID)
	if len(near) == 0 {
		exits = "(none known)\n"
	} else {
		for _, info := range near {
			marker := ""
			if !info.Discovered {
				marker = " ?"
			}
			exits += fmt.Sprintf("- %s%s\n", info.Name, marker)
		}
	}
	exits += "\n"

	// Inventory
	invTitle := titleStyle.Render("INVENTORY") + "\n"
	inventory := ""
	if len(character.Inventory) == 0 {
		inventory = "(empty)"
	} else {
		for _, item := range character.Inventory {
			inventory += "- " + item.Name + "\n"
		}
	}

	content := location + exitsTitle + exits + invTitle + inventory

	stateWidth := int(float64(m.width) * 0.23) // Leave some room for padding
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(content)
}

// renderMap lists every known location with its exits, visited or not.
func (m model) renderMap() string {
	world := m.session.World
	var b strings.Builder
	b.WriteString("Known map:\n")
	for _, locationID := range sortedLocationIDs(world) {
		node := world.Locations[locationID]
		marker := " "
		if node.ID == m.session.Character.LocationID {
			marker = "*"
		} else if !node.Discovered {
			marker = "?"
		}
		b.WriteString(fmt.Sprintf("%s %s", marker, node.Name))
		names := make([]string, 0, len(node.Connections))
		for _, conn := range node.Connections {
			if target := world.Locations[conn.TargetID]; target != nil {
				names = append(names, target.Name)
			}
		}
		if len(names) > 0 {
			b.WriteString(" -> " + strings.Join(names, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func sortedLocationIDs(world *models.World) []string {
	ids := make([]string, 0, len(world.Locations))
	for locationID := range world.Locations {
		ids = append(ids, locationID)
	}
	// ULIDs sort by creation time.
	sort.Strings(ids)
	return ids
}

func (m model) generateWorld(hint string) tea.Cmd {
	return func() tea.Msg {
		session, err := m.engine.GenerateWorld(context.Background(), hint)
		if err != nil {
			return errMsg{err}
		}
		return worldGeneratedMsg{session}
	}
}

func (m model) processTurn(action string) tea.Cmd {
	return func() tea.Msg {
		narration, err := m.engine.ProcessTurn(context.Background(), m.session, action)
		return turnProcessedMsg{narration, err}
	}
}

// Run starts the interactive game UI. The archive may be nil, in which case
// only the per-session YAML saves are written.
func Run(eng *engine.Engine, archive store.Store) error {
	p := tea.NewProgram(NewModel(eng, archive), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
