// Package tui is the interactive terminal front end: a menu of screens, each
// with an input line and a scrolling output history.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const menuIndex = -1

// resultMsg carries the outcome of a submission back to its screen.
type resultMsg struct {
	screen int
	text   string
	err    error
}

// Model is the bubbletea model of the application.
type Model struct {
	ctx          context.Context
	screens      []*screenState
	active       int
	historyLimit int

	spinner  spinner.Model
	ticking  bool // a spinner tick is scheduled
	viewport viewport.Model
	styles   styles

	width  int
	height int
}

// NewModel creates the model. Screens are bound to keys "1", "2", ... in order.
func NewModel(ctx context.Context, historyLimit int, screens ...Screen) Model {
	states := make([]*screenState, len(screens))
	for i, s := range screens {
		states[i] = newScreenState(s)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:          ctx,
		screens:      states,
		active:       menuIndex,
		historyLimit: historyLimit,
		spinner:      sp,
		viewport:     viewport.New(80, 20),
		styles:       defaultStyles(),
		width:        80,
		height:       24,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.active == menuIndex {
			return m.updateMenu(msg)
		}
		return m.updateScreen(msg)

	case resultMsg:
		if msg.screen < 0 || msg.screen >= len(m.screens) {
			return m, nil
		}
		s := m.screens[msg.screen]
		s.busy = false
		if msg.err != nil {
			s.push(entryError, fmt.Sprintf("%s: %v", s.def.ErrorPrefix, msg.err), m.historyLimit)
		} else {
			s.push(entryResult, msg.text, m.historyLimit)
		}
		m.refreshViewport()
		return m, nil

	case tea.MouseMsg:
		if m.active == menuIndex {
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		if !m.anyBusy() {
			m.ticking = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "q" {
		return m, tea.Quit
	}
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 || n > len(m.screens) {
		return m, nil
	}

	m.active = n - 1
	cmd := m.screens[m.active].input.Focus()
	m.resize()
	m.refreshViewport()
	return m, cmd
}

func (m Model) updateScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.screens[m.active]

	switch msg.Type {
	case tea.KeyEsc:
		s.input.Blur()
		m.active = menuIndex
		return m, nil
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	index := m.active
	s := m.screens[index]

	value := strings.TrimSpace(s.input.Value())
	if value == "" || s.busy {
		return m, nil
	}

	s.push(entryPreview, fmt.Sprintf("> %s %s", s.def.Command, value), m.historyLimit)
	s.input.Reset()
	s.busy = true
	m.refreshViewport()

	ctx := m.ctx
	execute := s.def.Execute
	run := func() tea.Msg {
		text, err := execute(ctx, value)
		return resultMsg{screen: index, text: text, err: err}
	}
	if m.ticking {
		return m, run
	}
	m.ticking = true
	return m, tea.Batch(m.spinner.Tick, run)
}

func (m Model) anyBusy() bool {
	for _, s := range m.screens {
		if s.busy {
			return true
		}
	}
	return false
}

// resize fits the viewport between the header and the input panel.
func (m *Model) resize() {
	// header, blank line, two bordered panels with a title row each, input row
	chrome := 1 + 1 + 3 + 3 + 1
	width := m.width - 4
	height := m.height - chrome
	if width < 10 {
		width = 10
	}
	if height < 3 {
		height = 3
	}
	m.viewport.Width = width
	m.viewport.Height = height
	for _, s := range m.screens {
		s.input.Width = width - 3
	}
}

func (m *Model) refreshViewport() {
	if m.active == menuIndex {
		return
	}
	s := m.screens[m.active]
	parts := make([]string, len(s.output))
	for i, e := range s.output {
		switch e.kind {
		case entryPreview:
			parts[i] = m.styles.preview.Render(e.text)
		case entryError:
			parts[i] = m.styles.errorText.Render(e.text)
		default:
			parts[i] = lipgloss.NewStyle().Width(m.viewport.Width).Render(e.text)
		}
	}
	m.viewport.SetContent(strings.Join(parts, "\n\n"))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	if m.active == menuIndex {
		return m.menuView()
	}
	return m.screenView()
}

func (m Model) menuView() string {
	var b strings.Builder
	b.WriteString(m.styles.header.Render("you tui | Mode: Menu | q: quit"))
	b.WriteString("\n\n")
	for i, s := range m.screens {
		line := fmt.Sprintf("%s  %s", m.styles.menuKey.Render(strconv.Itoa(i+1)), s.def.Title)
		if s.def.Description != "" {
			line += m.styles.menuItem.Render("  " + s.def.Description)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.hint.Render("Press a number to open a screen."))
	return b.String()
}

func (m Model) screenView() string {
	s := m.screens[m.active]

	header := m.styles.header.Render(fmt.Sprintf("you tui | Mode: %s | Esc: menu | Ctrl+C: quit", s.def.Title))

	output := m.styles.panel.Width(m.viewport.Width + 2).Render(
		m.styles.panelName.Render("Output") + "\n" + m.viewport.View(),
	)

	prompt := s.def.Prompt
	if s.busy {
		prompt = m.spinner.View() + " waiting for response..."
	}
	input := m.styles.panel.Width(m.viewport.Width + 2).Render(
		m.styles.panelName.Render(prompt) + "\n" + s.input.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, "", output, input)
}
