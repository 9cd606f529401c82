package chatbot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"TeleChat/internal/cache"
	"TeleChat/internal/session"

	"go.opentelemetry.io/otel/metric"
)

// Begin validates the input and applies the optimistic transcript
// transitions: the user message is appended before any network round-trip
// and the typing indicator is set. On success the caller must follow up
// with exactly one Finish call for the same text.
func (cb *ChatBot) Begin(text string) (session.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return session.Message{}, ErrEmptyMessage
	}

	if !cb.inFlight.CompareAndSwap(false, true) {
		return session.Message{}, ErrBusy
	}

	msg := session.NewMessage(session.RoleUser, text)
	t := cb.Transcript()
	t.Append(msg)
	t.SetTyping(true)

	counter, err := cb.meter.Int64Counter(
		"chat.messages.sent",
		metric.WithDescription("User messages dispatched to the assistant"),
	)
	if err == nil {
		counter.Add(context.Background(), 1)
	}

	return msg, nil
}

// Finish runs the network half of a dispatch started by Begin: it sends
// the message, waits out the pacing delay and appends the assistant reply.
// On failure the typing indicator clears immediately, one error-flagged
// fallback message is appended, and the error is returned so the caller
// can surface a transient notice. No retries; the turn is over either way.
func (cb *ChatBot) Finish(ctx context.Context, text string) (session.Message, error) {
	defer cb.inFlight.Store(false)

	text = strings.TrimSpace(text)
	t := cb.Transcript()

	cacheKey := cache.Key(t.Messages())
	if cached, ok := cb.checkCache(cacheKey); ok {
		reply := session.NewMessage(session.RoleAssistant, cached)
		t.Append(reply)
		t.SetTyping(false)
		return reply, nil
	}

	resp, err := cb.callChat(ctx, text, t.SessionID())
	if err != nil {
		t.SetTyping(false)
		cb.countFailure(ctx, "chat")
		cb.logger.Error("chat request failed", "error", err)

		fallback := session.NewMessage(session.RoleAssistant, FallbackReply)
		fallback.IsError = true
		t.Append(fallback)
		return fallback, fmt.Errorf("chat request failed: %w", err)
	}

	// The backend echoes a session id on every reply and mints one when
	// the request carried none; adopt it if bootstrap never delivered.
	if t.SetSession(resp.SessionID) {
		cb.logger.Info("adopted session from chat reply", "session_id", resp.SessionID)
	}

	if resp.Fallback {
		cb.logger.Warn("backend answered from its fallback path", "error", resp.Error)
	}

	// Artificial pacing so replies land with a natural rhythm. Applied
	// only on success; failures surface immediately.
	select {
	case <-time.After(cb.pacing()):
	case <-ctx.Done():
		t.SetTyping(false)
		return session.Message{}, ctx.Err()
	}

	reply := session.NewMessage(session.RoleAssistant, resp.Response)
	reply.IsFollowUp = resp.IsFollowUp
	reply.Metadata = resp.Metadata

	cb.storeCache(cacheKey, resp.Response)

	t.Append(reply)
	t.SetTyping(false)

	go func() {
		if err := cb.saveTranscript(); err != nil {
			cb.logger.Error("failed to archive transcript", "error", err)
		}
	}()

	return reply, nil
}

// Send dispatches one chat turn end to end
func (cb *ChatBot) Send(ctx context.Context, text string) (session.Message, error) {
	if _, err := cb.Begin(text); err != nil {
		return session.Message{}, err
	}
	return cb.Finish(ctx, text)
}

// SendQuickAction dispatches the canned phrase at index i exactly as if
// the user had typed it.
func (cb *ChatBot) SendQuickAction(ctx context.Context, i int) (session.Message, error) {
	if i < 0 || i >= len(QuickActions) {
		return session.Message{}, fmt.Errorf("unknown quick action: %d", i)
	}
	return cb.Send(ctx, QuickActions[i])
}

// checkCache checks if a reply is cached
func (cb *ChatBot) checkCache(cacheKey string) (string, bool) {
	if val, ok := cb.cache.Load(cacheKey); ok {
		cached := val.(cache.CachedReply)
		cb.logger.Info("cache hit", "key", cacheKey[:16])
		return cached.Response, true
	}
	return "", false
}

// storeCache stores a reply in cache
func (cb *ChatBot) storeCache(cacheKey, response string) {
	cb.cache.Store(cacheKey, cache.CachedReply{
		Response:  response,
		Timestamp: time.Now(),
	})
	cb.logger.Info("cached reply", "key", cacheKey[:16])
}
