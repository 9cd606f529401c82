package cache

import (
	"crypto/sha256"
	"fmt"
	"time"

	"TeleChat/internal/session"
)

// CachedReply represents a cached assistant reply
type CachedReply struct {
	Response  string
	Timestamp time.Time
}

// Key derives a cache key from the full prompt history, including the
// pending user message. Any difference in history (including follow-up
// turns) yields a different key, so a hit means the assistant saw the
// exact same conversation before.
func Key(messages []session.Message) string {
	h := sha256.New()
	for _, msg := range messages {
		h.Write([]byte(msg.Role))
		h.Write([]byte(msg.Content))
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
