// Package tui is the terminal front-end of the chat widget.
package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"pioneering-site/internal/widget"
)

const (
	panelTitle  = "Pioneering AI"
	inputHeight = 3

	// title, blank line, footer
	chromeHeight = 3
)

// replyMsg carries the outcome of one relay call back into Update.
type replyMsg struct {
	reply string
	err   error
}

// Model renders a widget.Session. It must be used through a pointer.
type Model struct {
	session *widget.Session
	relay   widget.Relay
	timeout time.Duration

	input      textarea.Model
	transcript viewport.Model

	width  int
	height int

	// set by the session's append hook, consumed on the next refresh
	follow bool
}

func New(session *widget.Session, relay widget.Relay, timeout time.Duration) *Model {
	input := textarea.New()
	input.Placeholder = "Ask about our services..."
	input.ShowLineNumbers = false
	input.SetHeight(inputHeight)
	input.KeyMap.InsertNewline.SetEnabled(false)

	m := &Model{
		session:    session,
		relay:      relay,
		timeout:    timeout,
		input:      input,
		transcript: viewport.New(),
	}
	session.OnAppend(func(widget.Entry) { m.follow = true })
	m.resize(80, 24)
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case replyMsg:
		if msg.err != nil {
			slog.Warn("chat_relay_failed", "error", msg.err)
		}
		m.session.Finish(msg.reply, msg.err)
		m.refresh()
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "esc":
		return tea.Quit
	case "ctrl+o":
		if m.session.Toggle() {
			m.refresh()
			return m.input.Focus()
		}
		m.input.Blur()
		return nil
	}

	if !m.session.IsOpen() {
		return nil
	}

	switch msg.String() {
	case "enter":
		return m.submit()
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// submit starts a turn. Enter does nothing while a reply is pending or the
// input is blank.
func (m *Model) submit() tea.Cmd {
	if !m.session.SubmitEnabled() {
		return nil
	}
	query, err := m.session.Begin(m.input.Value())
	if err != nil {
		return nil
	}
	m.input.Reset()
	m.refresh()
	return m.ask(query)
}

func (m *Model) ask(query string) tea.Cmd {
	relay, timeout := m.relay, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		reply, err := relay.Ask(ctx, query)
		return replyMsg{reply: reply, err: err}
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	m.input.SetWidth(width)
	vpHeight := height - inputHeight - chromeHeight
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.transcript.SetWidth(width)
	m.transcript.SetHeight(vpHeight)
	m.refresh()
}

func (m *Model) refresh() {
	m.transcript.SetContent(m.renderRows())
	if m.follow {
		m.transcript.GotoBottom()
		m.follow = false
	}
}

func (m *Model) renderRows() string {
	bubbleWidth := m.width * 3 / 4
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}

	var sb strings.Builder
	for _, row := range m.session.Rows() {
		var line string
		switch row.Sender {
		case widget.SenderUser:
			w := min(bubbleWidth, lipgloss.Width(row.Text)+2)
			line = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, userStyle.Width(w).Render(row.Text))
		case widget.SenderAI:
			line = aiStyle.Width(bubbleWidth).Render(row.Text)
		case widget.SenderTyping:
			line = typingStyle.Render(row.Text)
		}
		sb.WriteString(line)
		sb.WriteString("\n\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m *Model) footer() string {
	if !m.session.SubmitEnabled() {
		return disabledStyle.Render("Send") + footerStyle.Render(" • waiting for reply • ctrl+o close • esc quit")
	}
	return footerStyle.Render("enter send • pgup/pgdown scroll • ctrl+o close • esc quit")
}

func (m *Model) render() string {
	if !m.session.IsOpen() {
		return launcherStyle.Render("Chat with "+panelTitle) + "\n" +
			footerStyle.Render("ctrl+o open • esc quit")
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(panelTitle))
	sb.WriteString("\n")
	sb.WriteString(m.transcript.View())
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(m.footer())
	return sb.String()
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.WindowTitle = panelTitle
	return v
}
