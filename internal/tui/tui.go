package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/bby/internal/engine"
)

type sessionState int

const (
	statePlaying sessionState = iota
	stateTerminated
)

type model struct {
	state     sessionState
	ctx       context.Context
	game      *engine.Game
	textInput textinput.Model
	viewport  viewport.Model
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

	roomTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00D7D7")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

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

func NewModel(ctx context.Context, game *engine.Game) model {
	ti := textinput.New()
	ti.Placeholder = "What do you do?"
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	m := model{
		state:     statePlaying,
		ctx:       ctx,
		game:      game,
		textInput: ti,
	}
	m.gameLog = titleStyle.Render("Welcome to: "+game.Title()) + "\n\n"
	m.appendRoom()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.game.Stop()
			m.state = stateTerminated
			return m, tea.Quit

		case tea.KeyEnter:
			if m.state != statePlaying {
				return m, tea.Quit
			}
			line := m.textInput.Value()
			if strings.TrimSpace(line) == "" {
				return m, nil
			}
			m.textInput.Reset()
			return m.play(line)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.logWidth()
		m.viewport.Height = msg.Height - 6
		m.viewport.SetContent(m.renderLog())
		m.viewport.GotoBottom()
	}

	if m.state == statePlaying {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// play runs one turn and appends what happened to the log.
func (m model) play(line string) (tea.Model, tea.Cmd) {
	m.gameLog += userStyle.Width(m.logWidth()).Render("> "+line) + "\n\n"

	outcome := m.game.Step(m.ctx, line)
	if outcome.Quit {
		m.state = stateTerminated
		m.gameLog += gameStyle.Render("Thanks for playing! :D") + "\n"
		m.refresh()
		return m, tea.Quit
	}

	switch {
	case outcome.Err != nil:
		m.gameLog += errorStyle.Render("Error: "+outcome.Err.Error()) + "\n\n"
	case outcome.Output != "":
		m.gameLog += gameStyle.Width(m.logWidth()).Render(strings.TrimLeft(outcome.Output, "\n")) + "\n\n"
	}
	if outcome.ShowRoom {
		m.appendRoom()
	}

	m.refresh()
	return m, nil
}

func (m *model) appendRoom() {
	room, err := m.game.Session().CurrentRoom()
	if err != nil {
		m.gameLog += errorStyle.Render("Error: "+err.Error()) + "\n\n"
		return
	}
	m.gameLog += roomTitleStyle.Render(room.Title) + "\n" +
		gameStyle.Width(m.logWidth()).Render(room.Description) + "\n\n"
}

func (m *model) refresh() {
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
}

func (m model) logWidth() int {
	if m.width == 0 {
		return 80
	}
	return int(float64(m.width) * 0.75)
}

func (m model) View() string {
	logView := m.viewport.View()
	stateView := m.renderState()

	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		logView,
		stateView,
	)

	if m.state == stateTerminated {
		return "\n" + mainView + "\n"
	}

	help := helpStyle.Render("Type 'help' for commands, 'quit' to leave. Esc exits.")

	s := lipgloss.JoinVertical(lipgloss.Left,
		mainView,
		"\n"+m.textInput.View(),
		"\n"+help,
	)
	return "\n" + s + "\n"
}

func (m model) renderState() string {
	session := m.game.Session()
	world := session.World()

	location := titleStyle.Render("LOCATION") + "\n"
	var exits []string
	if room, err := session.CurrentRoom(); err == nil {
		location += room.Title + "\n\n"
		exits = room.Directions()
	} else {
		location += "(nowhere)\n\n"
	}

	exitsView := titleStyle.Render("EXITS") + "\n"
	if len(exits) == 0 {
		exitsView += "(none)\n\n"
	} else {
		exitsView += strings.Join(exits, ", ") + "\n\n"
	}

	invTitle := titleStyle.Render("INVENTORY") + "\n"
	inventory := ""
	for _, id := range session.Inventory() {
		if item := world.Item(id); item != nil {
			inventory += "- " + item.Name + "\n"
		}
	}
	if inventory == "" {
		inventory = "(empty)"
	}

	turns := fmt.Sprintf("\n\nTurns: %d", m.game.Turns())

	content := location + exitsView + invTitle + inventory + turns

	stateWidth := int(float64(m.width) * 0.23)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(content)
}

func (m model) renderLog() string {
	return m.gameLog
}

// Run plays game full screen until the player quits.
func Run(ctx context.Context, game *engine.Game) error {
	p := tea.NewProgram(NewModel(ctx, game), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
