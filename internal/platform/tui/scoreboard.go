package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-scene/internal/registry"
	"github.com/vovakirdan/tui-scene/internal/storage"
)

const boardRows = 50

// boardView selects what the scoreboard table lists.
type boardView int

const (
	viewScores boardView = iota // Best scores with the run behind each
	viewRuns                    // Most recent runs, scored or not
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var boardFrameStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Toggle key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Toggle, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Next, k.Prev}, {k.Toggle, k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next demo")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev demo")),
		Toggle: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "scores/runs")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists stored scores and runs, one demo at a time.
type ScoreboardModel struct {
	demos  []registry.DemoInfo
	cursor int
	view   boardView
	store  *storage.Store
	stats  map[string]*storage.DemoStats
	err    error
	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		demos:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	if store != nil {
		m.stats, m.err = store.GetAllDemoStats()
	}
	m.reload()
	return m
}

func (m *ScoreboardModel) demoID() string {
	if len(m.demos) == 0 {
		return ""
	}
	return m.demos[m.cursor].ID
}

// reload rebuilds the table for the current demo and view.
func (m *ScoreboardModel) reload() {
	var cols []table.Column
	var rows []table.Row
	if m.view == viewRuns {
		cols, rows = m.runRows()
	} else {
		cols, rows = m.scoreRows()
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(st)
	m.table = t
}

func (m *ScoreboardModel) scoreRows() ([]table.Column, []table.Row) {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Steps", Width: 8},
		{Title: "FPS", Width: 6},
		{Title: "Time", Width: 8},
		{Title: "End", Width: 10},
		{Title: "When", Width: 12},
	}
	if m.store == nil || m.demoID() == "" {
		return cols, nil
	}
	scored, err := m.store.TopScoredRuns(m.demoID(), boardRows)
	if err != nil {
		m.err = err
		return cols, nil
	}

	rows := make([]table.Row, len(scored))
	for i, s := range scored {
		steps, fps, played, end := "-", "-", "-", "-"
		if r := s.Run; r != nil {
			steps = fmt.Sprint(r.Steps)
			fps = fmt.Sprintf("%.1f", r.AvgFPS)
			played = clock(r.Duration())
			end = r.Status()
		}
		rows[i] = table.Row{
			fmt.Sprint(i + 1),
			fmt.Sprint(s.Score),
			steps,
			fps,
			played,
			end,
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return cols, rows
}

func (m *ScoreboardModel) runRows() ([]table.Column, []table.Row) {
	cols := []table.Column{
		{Title: "Run", Width: 8},
		{Title: "Player", Width: 10},
		{Title: "Steps", Width: 8},
		{Title: "Frames", Width: 8},
		{Title: "FPS", Width: 6},
		{Title: "Time", Width: 8},
		{Title: "End", Width: 10},
	}
	if m.store == nil || m.demoID() == "" {
		return cols, nil
	}
	runs, err := m.store.RecentRuns(m.demoID(), boardRows)
	if err != nil {
		m.err = err
		return cols, nil
	}

	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			r.ID[:min(8, len(r.ID))],
			r.Session,
			fmt.Sprint(r.Steps),
			fmt.Sprint(r.Frames),
			fmt.Sprintf("%.1f", r.AvgFPS),
			clock(r.Duration()),
			r.Status(),
		}
	}
	return cols, rows
}

// clock formats a run length as m:ss, or "-" when unknown.
func clock(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.view = 1 - m.view
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) step(d int) {
	if len(m.demos) == 0 {
		return
	}
	m.cursor = (m.cursor + d + len(m.demos)) % len(m.demos)
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	heading := "SCORES"
	if m.view == viewRuns {
		heading = "RUNS"
	}
	if len(m.demos) > 0 {
		heading = fmt.Sprintf("%s  < %s >", heading, m.demos[m.cursor].Title)
	}

	var b strings.Builder
	b.WriteString(centerText(boardTitleStyle.Render(heading), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(boardDimStyle.Render(m.summary()), m.width))
	b.WriteString("\n\n")

	body := m.table.View()
	switch {
	case m.err != nil:
		body = fmt.Sprintf("Cannot read scores: %v", m.err)
	case len(m.table.Rows()) == 0:
		body = boardDimStyle.Italic(true).Padding(1, 2).Render("Nothing recorded yet.\nPlay a demo to fill this board!")
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardFrameStyle.Render(body)))
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// summary is the one-line aggregate for the current demo.
func (m ScoreboardModel) summary() string {
	st := m.stats[m.demoID()]
	if st == nil {
		return "no games yet"
	}
	line := fmt.Sprintf("%d games  best %d  avg %.0f", st.GamesCount, st.HighScore, st.AvgScore)
	if !st.LastPlayed.IsZero() {
		line += "  last " + st.LastPlayed.Local().Format("Jan 02 15:04")
	}
	return line
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
