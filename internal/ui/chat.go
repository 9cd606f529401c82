package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"TeleChat/internal/backend"
	"TeleChat/internal/chatbot"
	"TeleChat/internal/config"
	"TeleChat/internal/session"
)

// Model is the bubbletea model for the chat widget
type Model struct {
	bot    *chatbot.ChatBot
	cfg    config.Config
	styles Styles

	textinput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	renderer  *glamour.TermRenderer

	width   int
	height  int
	ready   bool
	loading bool

	notice      string
	showHelp    bool
	showWelcome bool
}

// Messages for tea updates
type (
	replyMsg         session.Message
	dispatchErrMsg   struct{ err error }
	bootstrapDoneMsg struct{ err error }
	newSessionMsg    struct{ err error }
	healthMsg        struct {
		resp *backend.HealthResponse
		err  error
	}
)

// NewModel builds the widget model around a controller
func NewModel(bot *chatbot.ChatBot, cfg config.Config) Model {
	styles := NewStyles(ThemeByName(cfg.Theme))

	ti := textinput.New()
	ti.Placeholder = "Ask about plans, coverage or offers… (Enter to send)"
	ti.Focus()
	ti.Prompt = "│ "
	ti.CharLimit = 2048
	ti.Width = 80
	ti.PromptStyle = styles.Prompt
	ti.TextStyle = styles.UserText

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	vp := viewport.New(80, 20)
	vp.SetContent("")

	renderer := newRenderer(styles, 80)

	// The welcome effect fires at most once; persist the flag as soon as
	// we decide to show it.
	showWelcome := bot.FirstVisit()
	if showWelcome {
		_ = bot.MarkWelcomed()
	}

	return Model{
		bot:         bot,
		cfg:         cfg,
		styles:      styles,
		textinput:   ti,
		viewport:    vp,
		spinner:     sp,
		renderer:    renderer,
		showWelcome: showWelcome,
	}
}

func newRenderer(styles Styles, width int) *glamour.TermRenderer {
	var renderer *glamour.TermRenderer
	if styles.Theme.IsDark {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath("dark"),
			glamour.WithWordWrap(width),
		)
	} else {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(width),
		)
	}
	return renderer
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.bootstrapCmd(),
	)
}

// bootstrapCmd requests the session identifier in the background; the
// widget stays usable either way.
func (m Model) bootstrapCmd() tea.Cmd {
	return func() tea.Msg {
		return bootstrapDoneMsg{err: m.bot.Bootstrap(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if !m.loading {
				return m.handleSubmit()
			}
			m.notice = "Hold on — the assistant is still replying."
			return m, nil

		default:
			// Number keys on an empty input select a quick action: the
			// phrase is put into the input and submitted exactly like a
			// typed message.
			if !m.loading && strings.TrimSpace(m.textinput.Value()) == "" {
				if i, err := strconv.Atoi(msg.String()); err == nil && i >= 1 && i <= len(chatbot.QuickActions) {
					m.textinput.SetValue(chatbot.QuickActions[i-1])
					return m.handleSubmit()
				}
			}
		}

		if !m.loading {
			m.textinput, tiCmd = m.textinput.Update(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		footerHeight := 3
		inputHeight := 3

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-headerHeight-footerHeight-inputHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - headerHeight - footerHeight - inputHeight
		}

		m.textinput.Width = msg.Width - 4
		m.renderer = newRenderer(m.styles, msg.Width-8)
		m.refreshTranscript()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}

	case bootstrapDoneMsg:
		if msg.err != nil {
			m.notice = "Could not reach the assistant — continuing without a session."
		}

	case replyMsg:
		m.loading = false
		m.notice = ""
		m.refreshTranscript()

	case dispatchErrMsg:
		// The fallback message is already in the transcript; the notice
		// is the transient part.
		m.loading = false
		m.notice = "Connection issue — that message didn't get through. Try again."
		m.refreshTranscript()

	case newSessionMsg:
		m.loading = false
		if msg.err != nil {
			m.notice = "New conversation started, but the assistant is unreachable."
		} else {
			m.notice = "New conversation started."
		}
		m.refreshTranscript()

	case healthMsg:
		if msg.err != nil {
			m.notice = "Health check failed: " + msg.err.Error()
		} else {
			m.notice = fmt.Sprintf("Backend: %s (orchestrator ready: %v)", msg.resp.Status, msg.resp.Orchestrator)
		}
	}

	m.viewport, vpCmd = m.viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textinput.Value())
	if input == "" {
		m.notice = "Type a message first."
		return m, nil
	}

	if strings.HasPrefix(input, "/") {
		return m.handleCommand(input)
	}

	if _, err := m.bot.Begin(input); err != nil {
		switch err {
		case chatbot.ErrBusy:
			m.notice = "Hold on — the assistant is still replying."
		case chatbot.ErrEmptyMessage:
			m.notice = "Type a message first."
		default:
			m.notice = err.Error()
		}
		return m, nil
	}

	m.textinput.Reset()
	m.notice = ""
	m.showWelcome = false
	m.loading = true
	m.refreshTranscript()

	return m, tea.Batch(
		m.spinner.Tick,
		m.dispatchCmd(input),
	)
}

// dispatchCmd finishes the turn in the background and reports back as a
// single tea message, so the whole five-step sequence is one task.
func (m Model) dispatchCmd(text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.bot.Finish(context.Background(), text)
		if err != nil {
			return dispatchErrMsg{err: err}
		}
		return replyMsg(reply)
	}
}

func (m Model) handleCommand(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	m.textinput.Reset()

	switch parts[0] {
	case "/quit", "/exit", "/q":
		return m, tea.Quit

	case "/help":
		m.showHelp = !m.showHelp
		return m, nil

	case "/status":
		return m, func() tea.Msg {
			resp, err := m.bot.Health(context.Background())
			return healthMsg{resp: resp, err: err}
		}

	case "/new-session":
		return m, func() tea.Msg {
			return newSessionMsg{err: m.bot.NewTranscript(context.Background())}
		}

	case "/theme":
		if len(parts) < 2 || (parts[1] != config.ThemeLight && parts[1] != config.ThemeDark) {
			m.notice = "Usage: /theme light|dark"
			return m, nil
		}
		m.styles = NewStyles(ThemeByName(parts[1]))
		m.renderer = newRenderer(m.styles, m.width-8)
		if err := config.SavePrefs(m.cfg.DataDir, config.Prefs{Theme: parts[1]}); err != nil {
			m.notice = "Theme applied but not saved: " + err.Error()
		} else {
			m.notice = "Theme set to " + parts[1] + "."
		}
		m.refreshTranscript()
		return m, nil

	default:
		m.notice = "Unknown command. /help lists the available ones."
		return m, nil
	}
}

func (m *Model) refreshTranscript() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	var sb strings.Builder

	for _, msg := range m.bot.Transcript().Messages() {
		if msg.Role == session.RoleUser {
			sb.WriteString(m.styles.UserLabel.Render("You") + "\n")
			sb.WriteString(m.styles.UserText.Render(msg.Content))
			sb.WriteString("\n")
			continue
		}

		sb.WriteString(m.styles.AssistantLabel.Render("✦ Assistant") + "\n")
		if msg.IsError {
			sb.WriteString(m.styles.ErrorText.Render("⚠ " + msg.Content))
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(m.safeRenderMarkdown(msg.Content))
		sb.WriteString("\n")
	}

	return sb.String()
}

// safeRenderMarkdown renders markdown with panic recovery
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return rendered
		}
	}
	return content
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderHeader()

	var body string
	if m.showWelcome && m.bot.Transcript().Len() == 0 {
		body = m.styles.Banner.Render("🎉 Welcome to TeleChat! Ask about plans, coverage or offers.") + "\n"
	}
	body += m.viewport.View()

	if m.loading {
		body += "\n" + m.styles.Spinner.Render(m.spinner.View()) + m.styles.Muted.Render(" Assistant is typing…")
	}

	if m.notice != "" {
		body += "\n" + m.styles.Notice.Render(m.notice)
	}

	if m.showHelp {
		body += "\n" + m.renderHelp()
	}

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Theme.Border).
		Padding(0, 1)
	inputArea := inputStyle.Render(m.textinput.View())

	footer := m.renderFooter()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		body,
		inputArea,
		footer,
	)
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render(" TeleChat ")
	badge := m.styles.Badge.Render("5G")

	var status string
	if m.loading {
		status = m.styles.StatusBusy.Render("● Typing")
	} else {
		status = m.styles.StatusOK.Render("● Ready")
	}

	var sessionNote string
	if sid := m.bot.Transcript().SessionID(); sid != "" {
		short := sid
		if len(short) > 8 {
			short = short[:8]
		}
		sessionNote = m.styles.Muted.Render("  session " + short)
	} else {
		sessionNote = m.styles.Muted.Render("  no session")
	}

	headerLine := lipgloss.JoinHorizontal(
		lipgloss.Center,
		title,
		" ",
		badge,
		"  ",
		status,
		sessionNote,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		headerLine,
		m.styles.RenderDivider(m.width),
	)
}

func (m Model) renderFooter() string {
	var quick []string
	for i, qa := range chatbot.QuickActions {
		quick = append(quick, fmt.Sprintf("%d·%s", i+1, qa))
	}

	keys := m.styles.Muted.Render("Enter: send • 1-" + strconv.Itoa(len(chatbot.QuickActions)) + ": quick actions • /help: commands • Ctrl+C: exit")
	actions := m.styles.Muted.Render(strings.Join(quick, "  "))

	return lipgloss.JoinVertical(lipgloss.Left, actions, keys)
}

func (m Model) renderHelp() string {
	help := `Commands:
  /new-session   start a new conversation
  /status        check backend health
  /theme <mode>  switch light/dark theme
  /quit          exit

Quick actions (press the number on an empty input):`
	for i, qa := range chatbot.QuickActions {
		help += fmt.Sprintf("\n  %d. %s", i+1, qa)
	}
	return m.styles.Muted.Render(help)
}

// Run starts the interactive widget and blocks until it exits
func Run(bot *chatbot.ChatBot, cfg config.Config) error {
	p := tea.NewProgram(NewModel(bot, cfg), tea.WithAltScreen())
	_, err := p.Run()
	if cerr := bot.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
