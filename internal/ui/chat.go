package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// exitDelay keeps the goodbye message on screen before the program quits.
const exitDelay = 1500 * time.Millisecond

const (
	defaultWidth  = 80
	defaultHeight = 24
	// header, separator, input and help lines
	chromeHeight = 5
)

type role int

const (
	roleUser role = iota
	roleBot
)

type chatMessage struct {
	role role
	text string
}

// exitMsg fires exitDelay after bye.
type exitMsg struct{}

type chatModel struct {
	session  Submitter
	title    string
	input    textinput.Model
	viewport viewport.Model
	messages []chatMessage
	exiting  bool
	width    int
	height   int
}

func newChatModel(s Submitter, title string) *chatModel {
	ti := textinput.New()
	ti.Placeholder = "Type a command, e.g. todo read book"
	ti.Prompt = "> "
	ti.CharLimit = 500
	ti.Width = defaultWidth - 4
	ti.Focus()

	m := &chatModel{
		session:  s,
		title:    title,
		input:    ti,
		viewport: viewport.New(defaultWidth, defaultHeight-chromeHeight),
		messages: []chatMessage{{role: roleBot, text: s.Startup()}},
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.refresh()
	return m
}

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case exitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m, m.submit()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	if m.exiting {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the input line to the session and appends both sides of the
// exchange to the transcript.
func (m *chatModel) submit() tea.Cmd {
	if m.exiting {
		return nil
	}
	line := m.input.Value()
	m.input.Reset()

	reply, exit := m.session.Submit(line)
	if strings.TrimSpace(line) != "" {
		m.messages = append(m.messages, chatMessage{role: roleUser, text: line})
	}
	m.messages = append(m.messages, chatMessage{role: roleBot, text: reply})
	m.refresh()

	if !exit {
		return nil
	}
	m.exiting = true
	m.input.Blur()
	return tea.Tick(exitDelay, func(time.Time) tea.Msg {
		return exitMsg{}
	})
}

func (m *chatModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-4, 10)
	m.viewport.Width = width
	m.viewport.Height = max(height-chromeHeight, 3)
	m.refresh()
}

// refresh re-renders the transcript and scrolls to the newest message.
func (m *chatModel) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m *chatModel) renderTranscript() string {
	wrap := lipgloss.NewStyle().Width(max(m.width-2, 10))
	var sections []string
	for _, msg := range m.messages {
		switch msg.role {
		case roleUser:
			sections = append(sections, userLabelStyle.Render("You:"))
			sections = append(sections, contentStyle.Inherit(wrap).Render(msg.text))
		default:
			sections = append(sections, botLabelStyle.Render(m.title+":"))
			style := contentStyle
			if isWarning(msg.text) {
				style = warningStyle
			}
			sections = append(sections, style.Inherit(wrap).Render(msg.text))
		}
		sections = append(sections, "")
	}
	return strings.Join(sections, "\n")
}

// isWarning reports whether a reply is an error or a save warning.
func isWarning(text string) bool {
	return strings.HasPrefix(text, "Invalid") ||
		strings.HasPrefix(text, "Input cannot") ||
		strings.HasPrefix(text, "Empty list") ||
		strings.Contains(text, "Warning:")
}

func (m *chatModel) View() string {
	help := "enter: send · pgup/pgdown: scroll · esc: quit"
	if m.exiting {
		help = "closing..."
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(m.title),
		m.viewport.View(),
		separatorStyle.Render(strings.Repeat("─", max(min(m.width, 80), 1))),
		m.input.View(),
		helpStyle.Render(help),
	)
}
