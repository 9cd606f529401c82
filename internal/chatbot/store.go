package chatbot

import (
	"database/sql"
	"fmt"
)

const welcomedKey = "welcomed"

// saveTranscript archives the active transcript to the local store.
// Message ids are primary keys, so repeated saves are idempotent.
func (cb *ChatBot) saveTranscript() error {
	t := cb.Transcript()
	messages := t.Messages()
	if len(messages) == 0 {
		return nil
	}

	tx, err := cb.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO transcripts (id, session_id, start_time) VALUES (?, ?, ?)",
		t.ID(), t.SessionID(), t.StartTime(),
	)
	if err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}

	for _, msg := range messages {
		_, err = tx.Exec(
			"INSERT OR REPLACE INTO messages (id, transcript_id, role, content, is_error, timestamp) VALUES (?, ?, ?, ?, ?, ?)",
			msg.ID, t.ID(), msg.Role, msg.Content, msg.IsError, msg.Timestamp,
		)
		if err != nil {
			cb.logger.Warn("failed to save message", "error", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	cb.logger.Info("transcript archived", "transcript_id", t.ID(), "message_count", len(messages))
	return nil
}

// FirstVisit reports whether the one-time welcome effect has not fired yet
func (cb *ChatBot) FirstVisit() bool {
	var value string
	err := cb.db.QueryRow("SELECT value FROM app_state WHERE key = ?", welcomedKey).Scan(&value)
	if err == sql.ErrNoRows {
		return true
	}
	if err != nil {
		cb.logger.Warn("failed to read app state", "key", welcomedKey, "error", err)
		return false
	}
	return value != "true"
}

// MarkWelcomed persists the first-visit flag so the welcome effect fires
// at most once across runs.
func (cb *ChatBot) MarkWelcomed() error {
	_, err := cb.db.Exec(
		"INSERT OR REPLACE INTO app_state (key, value) VALUES (?, ?)",
		welcomedKey, "true",
	)
	if err != nil {
		return fmt.Errorf("failed to persist first-visit flag: %w", err)
	}
	return nil
}
