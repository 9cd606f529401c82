package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessageAssignsIDAndTimestamp(t *testing.T) {
	a := NewMessage(RoleUser, "hello")
	b := NewMessage(RoleUser, "hello")

	require.NotEmpty(t, a.ID)
	require.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Timestamp.IsZero())
}

func TestAppendPreservesOrder(t *testing.T) {
	tr := New()
	tr.Append(NewMessage(RoleUser, "first"))
	tr.Append(NewMessage(RoleAssistant, "second"))

	msgs := tr.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Content)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, "second", msgs[1].Content)
	assert.Equal(t, RoleAssistant, msgs[1].Role)
}

func TestMessagesReturnsCopy(t *testing.T) {
	tr := New()
	tr.Append(NewMessage(RoleUser, "original"))

	msgs := tr.Messages()
	msgs[0].Content = "mutated"

	assert.Equal(t, "original", tr.Messages()[0].Content)
}

func TestSetSessionIsWriteOnce(t *testing.T) {
	tr := New()
	assert.Empty(t, tr.SessionID())

	assert.True(t, tr.SetSession("abc-123"))
	assert.Equal(t, "abc-123", tr.SessionID())

	assert.False(t, tr.SetSession("other"))
	assert.Equal(t, "abc-123", tr.SessionID())
}

func TestSetSessionIgnoresEmpty(t *testing.T) {
	tr := New()
	assert.False(t, tr.SetSession(""))
	assert.Empty(t, tr.SessionID())
}

func TestTypingFlag(t *testing.T) {
	tr := New()
	assert.False(t, tr.Typing())

	tr.SetTyping(true)
	assert.True(t, tr.Typing())

	tr.SetTyping(false)
	assert.False(t, tr.Typing())
}

func TestTranscriptsHaveDistinctIDs(t *testing.T) {
	assert.NotEqual(t, New().ID(), New().ID())
}
