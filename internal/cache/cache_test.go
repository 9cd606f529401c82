package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"TeleChat/internal/session"
)

func history(contents ...string) []session.Message {
	var msgs []session.Message
	role := session.RoleUser
	for _, c := range contents {
		msgs = append(msgs, session.Message{Role: role, Content: c})
		if role == session.RoleUser {
			role = session.RoleAssistant
		} else {
			role = session.RoleUser
		}
	}
	return msgs
}

func TestKeyIsDeterministic(t *testing.T) {
	a := Key(history("show me plans", "here they are"))
	b := Key(history("show me plans", "here they are"))
	assert.Equal(t, a, b)
}

func TestKeyChangesWithHistory(t *testing.T) {
	base := Key(history("show me plans"))
	grown := Key(history("show me plans", "here they are"))
	other := Key(history("check coverage"))

	assert.NotEqual(t, base, grown)
	assert.NotEqual(t, base, other)
}

func TestKeyIgnoresTimestamps(t *testing.T) {
	msgs := history("hello")
	a := Key(msgs)
	msgs[0].ID = "different-id"
	b := Key(msgs)
	assert.Equal(t, a, b)
}
