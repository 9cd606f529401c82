package ui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TeleChat/internal/chatbot"
	"TeleChat/internal/config"
	"TeleChat/internal/session"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	cfg := config.Config{
		BaseURL: srv.URL,
		DataDir: t.TempDir(),
		Theme:   config.ThemeLight,
	}
	bot, err := chatbot.NewChatBot(cfg)
	require.NoError(t, err)

	return NewModel(bot, cfg)
}

func TestRenderTranscriptLabelsRoles(t *testing.T) {
	m := newTestModel(t)
	m.bot.Transcript().Append(session.NewMessage(session.RoleUser, "Show me 5G plans"))
	m.bot.Transcript().Append(session.NewMessage(session.RoleAssistant, "Here they are"))

	out := m.renderTranscript()
	assert.Contains(t, out, "You")
	assert.Contains(t, out, "Assistant")
	assert.Contains(t, out, "Show me 5G plans")
}

func TestRenderTranscriptFlagsErrors(t *testing.T) {
	m := newTestModel(t)
	fallback := session.NewMessage(session.RoleAssistant, chatbot.FallbackReply)
	fallback.IsError = true
	m.bot.Transcript().Append(fallback)

	assert.Contains(t, m.renderTranscript(), "⚠")
}

func TestSubmitEmptyInputShowsNotice(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.handleSubmit()
	assert.Nil(t, cmd)
	assert.NotEmpty(t, next.(Model).notice)
	assert.Zero(t, m.bot.Transcript().Len())
}

func TestQuickActionKeyPopulatesAndDispatches(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	nm := next.(Model)

	assert.NotNil(t, cmd)
	assert.True(t, nm.loading)

	msgs := m.bot.Transcript().Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, session.RoleUser, msgs[0].Role)
	assert.Equal(t, chatbot.QuickActions[0], msgs[0].Content)
}

func TestQuickActionKeyIgnoredWhenTyping(t *testing.T) {
	m := newTestModel(t)
	m.textinput.SetValue("129")

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	assert.Zero(t, m.bot.Transcript().Len())
}

func TestSafeRenderMarkdownFallsBackToPlainText(t *testing.T) {
	m := newTestModel(t)
	m.renderer = nil

	content := "• plain bullet text"
	assert.Equal(t, content, m.safeRenderMarkdown(content))
}

func TestHelpListsQuickActions(t *testing.T) {
	m := newTestModel(t)
	help := m.renderHelp()
	for _, qa := range chatbot.QuickActions {
		assert.True(t, strings.Contains(help, qa))
	}
}
