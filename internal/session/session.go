package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single chat message
type Message struct {
	ID         string         `json:"id"`
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	Timestamp  time.Time      `json:"timestamp"`
	IsError    bool           `json:"is_error,omitempty"`
	IsFollowUp bool           `json:"is_follow_up,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// NewMessage creates a message with a fresh id and timestamp
func NewMessage(role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// Transcript holds the conversation state for a single run: the message
// list, the typing indicator and the backend session identifier. All
// transitions go through its methods; messages are append-only and the
// session identifier is write-once.
type Transcript struct {
	mu        sync.Mutex
	id        string
	sessionID string
	startTime time.Time
	messages  []Message
	typing    bool
}

// New creates an empty transcript with no session identifier
func New() *Transcript {
	return &Transcript{
		id:        uuid.NewString(),
		startTime: time.Now(),
	}
}

// ID returns the local transcript id used as the archive key
func (t *Transcript) ID() string {
	return t.id
}

// StartTime returns when the transcript was created
func (t *Transcript) StartTime() time.Time {
	return t.startTime
}

// SetSession stores the backend session identifier. The identifier is
// write-once: once set, later calls are ignored and return false.
func (t *Transcript) SetSession(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sessionID != "" || id == "" {
		return false
	}
	t.sessionID = id
	return true
}

// SessionID returns the backend session identifier, or "" when the
// bootstrap failed or has not completed yet.
func (t *Transcript) SessionID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessionID
}

// Append adds a message to the transcript
func (t *Transcript) Append(msg Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, msg)
}

// Messages returns a copy of the message list
func (t *Transcript) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}

// SetTyping flips the typing indicator. The indicator is true only between
// dispatch of a chat request and arrival of the reply or failure.
func (t *Transcript) SetTyping(v bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.typing = v
}

// Typing reports whether an assistant reply is pending
func (t *Transcript) Typing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.typing
}
