package chatbot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"TeleChat/internal/config"
	"TeleChat/internal/session"
	"TeleChat/internal/telemetry"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrEmptyMessage is returned when the input is empty or whitespace-only.
	// Nothing is appended and no network call is made.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrBusy is returned when a chat dispatch is already in flight.
	// In-flight dispatches are serialized so the transcript cannot
	// interleave out of request order.
	ErrBusy = errors.New("a message is already in flight")
)

// FallbackReply is appended locally when the backend cannot be reached or
// returns garbage. It is never sent to the backend.
const FallbackReply = "Sorry, we're having a connection issue right now. Please try sending your message again in a moment."

// QuickActions is the fixed set of canned phrases offered as shortcuts.
// Selecting one dispatches through the same path as typed input.
var QuickActions = []string{
	"Show me 5G plans",
	"Compare ₹299 vs ₹399",
	"Best plan for students",
	"Check 5G availability",
}

// ChatBot owns the client-side state: the transcript, the backend
// collaborator, the local store and the reply cache.
type ChatBot struct {
	config     config.Config
	db         *sql.DB
	cache      sync.Map
	logger     *slog.Logger
	tracer     trace.Tracer
	meter      metric.Meter
	httpClient *http.Client

	mu      sync.Mutex
	current *session.Transcript

	inFlight atomic.Bool

	// pacing returns the artificial delay applied before a successful
	// reply is appended, to keep the widget's rhythm natural. Injectable
	// for tests.
	pacing func() time.Duration
}

// NewChatBot creates a new ChatBot instance
func NewChatBot(cfg config.Config) (*ChatBot, error) {
	logger, err := telemetry.InitLogger(cfg.DataDir, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx := context.Background()
	tracer, meter, _, err := telemetry.InitTelemetry(ctx, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	db, err := telemetry.InitDB(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.Debug {
		logger.Info("Debug mode enabled")
	}

	cb := &ChatBot{
		config: cfg,
		db:     db,
		logger: logger,
		tracer: tracer,
		meter:  meter,
		// No client-side timeout: a slow backend just keeps the typing
		// indicator up until it answers or the context is cancelled.
		httpClient: &http.Client{},
		current:    session.New(),
		pacing:     defaultPacing,
	}

	logger.Info("started new transcript", "transcript_id", cb.current.ID(), "base_url", cfg.BaseURL)

	return cb, nil
}

// defaultPacing returns a uniformly random delay between 1.0 and 2.0 seconds
func defaultPacing() time.Duration {
	return time.Second + time.Duration(rand.Int63n(int64(time.Second)))
}

// Transcript returns the active transcript
func (cb *ChatBot) Transcript() *session.Transcript {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.current
}

// Bootstrap requests a session identifier from the backend and stores it
// in the transcript. Failure is non-fatal: the error is returned so the
// caller can surface a notice, and chat proceeds session-less.
func (cb *ChatBot) Bootstrap(ctx context.Context) error {
	resp, err := cb.callNewSession(ctx)
	if err != nil {
		cb.countFailure(ctx, "session_bootstrap")
		cb.logger.Warn("session bootstrap failed, continuing without session", "error", err)
		return err
	}

	t := cb.Transcript()
	if t.SetSession(resp.SessionID) {
		cb.logger.Info("session established", "session_id", resp.SessionID)
	}
	return nil
}

// NewTranscript archives the current transcript, starts a fresh one and
// bootstraps a new session for it.
func (cb *ChatBot) NewTranscript(ctx context.Context) error {
	if err := cb.saveTranscript(); err != nil {
		cb.logger.Error("failed to archive transcript", "error", err)
	}

	cb.mu.Lock()
	cb.current = session.New()
	id := cb.current.ID()
	cb.mu.Unlock()

	cb.logger.Info("started new transcript", "transcript_id", id)
	return cb.Bootstrap(ctx)
}

// Close archives the transcript and releases the local store
func (cb *ChatBot) Close() error {
	if err := cb.saveTranscript(); err != nil {
		cb.logger.Error("failed to archive transcript on close", "error", err)
	}
	return cb.db.Close()
}

func (cb *ChatBot) countFailure(ctx context.Context, kind string) {
	counter, err := cb.meter.Int64Counter(
		fmt.Sprintf("chat.failures.%s", kind),
		metric.WithDescription(fmt.Sprintf("Failed %s requests", kind)),
	)
	if err != nil {
		cb.logger.Warn("failed to create counter", "kind", kind, "error", err)
		return
	}
	counter.Add(ctx, 1)
}
