// Package tui holds the interactive support-chat panel.
package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"storefront/internal/support"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	botStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))
	userStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	chipStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#111827")).Background(lipgloss.Color("#E5E7EB")).Padding(0, 1)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

type chatLine struct {
	fromUser bool
	text     string
}

// chatEvent carries support.Chat callbacks into the bubbletea loop.
type chatEvent struct {
	typing      *bool
	botLine     string
	userLine    string
	suggestions []string
}

// ChatModel is the support-chat panel: scripted greeting on first open, a
// spinner as the typing indicator, suggestion chips selectable by number.
type ChatModel struct {
	chat   *support.Chat
	ctx    context.Context
	cancel context.CancelFunc

	input       textinput.Model
	spinner     spinner.Model
	events      chan chatEvent
	lines       []chatLine
	suggestions []string
	typing      bool
	quitting    bool
}

func NewChatModel(chat *support.Chat) ChatModel {
	input := textinput.New()
	input.Placeholder = "Ask a question..."
	input.Focus()
	input.CharLimit = 300

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = botStyle

	ctx, cancel := context.WithCancel(context.Background())
	return ChatModel{
		chat:    chat,
		ctx:     ctx,
		cancel:  cancel,
		input:   input,
		spinner: s,
		events:  make(chan chatEvent, 16),
	}
}

func (m ChatModel) eventSink() support.Events {
	return support.Events{
		Typing: func(on bool) {
			v := on
			m.events <- chatEvent{typing: &v}
		},
		BotLine: func(text string) {
			m.events <- chatEvent{botLine: text}
		},
		UserLine: func(text string) {
			m.events <- chatEvent{userLine: text}
		},
		Suggestions: func(items []string) {
			m.events <- chatEvent{suggestions: items}
		},
	}
}

func waitForEvent(events chan chatEvent) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

func (m ChatModel) Init() tea.Cmd {
	m.chat.Open(m.ctx, m.eventSink())
	return tea.Batch(m.spinner.Tick, waitForEvent(m.events), textinput.Blink)
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.cancel()
			m.chat.Close()
			return m, tea.Quit
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			return m, m.sendCmd(text)
		default:
			// Bare digits pick a suggestion chip when the input is empty.
			if m.input.Value() == "" && len(msg.String()) == 1 {
				if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(m.suggestions) {
					return m, m.sendCmd(m.suggestions[n-1])
				}
			}
		}

	case chatEvent:
		switch {
		case msg.typing != nil:
			m.typing = *msg.typing
		case msg.botLine != "":
			m.lines = append(m.lines, chatLine{text: msg.botLine})
		case msg.userLine != "":
			m.lines = append(m.lines, chatLine{fromUser: true, text: msg.userLine})
		case msg.suggestions != nil:
			m.suggestions = msg.suggestions
		}
		return m, waitForEvent(m.events)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ChatModel) sendCmd(text string) tea.Cmd {
	sink := m.eventSink()
	ctx := m.ctx
	chat := m.chat
	return func() tea.Msg {
		go chat.Send(ctx, text, sink)
		return nil
	}
}

func (m ChatModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Support chat") + faintStyle.Render("  (esc to close)") + "\n\n")

	for _, line := range m.lines {
		if line.fromUser {
			b.WriteString(userStyle.Render("you: ") + line.text + "\n")
		} else {
			b.WriteString(botStyle.Render("assistant: ") + line.text + "\n")
		}
	}
	if m.typing {
		b.WriteString(m.spinner.View() + faintStyle.Render("assistant is typing...") + "\n")
	}

	if len(m.suggestions) > 0 && !m.typing {
		b.WriteString("\n")
		for i, suggestion := range m.suggestions {
			b.WriteString(chipStyle.Render(strconv.Itoa(i+1)+" "+suggestion) + " ")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + m.input.View())
	return b.String()
}

// Run opens the chat panel and blocks until the user closes it.
func Run(chat *support.Chat) error {
	program := tea.NewProgram(NewChatModel(chat))
	_, err := program.Run()
	return err
}
