package chatbot

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// RunPlain starts the line-oriented mode, for pipes and terminals where
// the interactive widget is unwanted.
func (cb *ChatBot) RunPlain() error {
	defer cb.Close()

	ctx := context.Background()

	fmt.Println("=== TeleChat ===")
	if err := cb.Bootstrap(ctx); err != nil {
		fmt.Println("Note: could not reach the assistant; continuing without a session.")
	}
	if sid := cb.Transcript().SessionID(); sid != "" {
		fmt.Printf("Session: %s\n", sid)
	}
	fmt.Println("Type /help for commands, /quit to exit")
	fmt.Println()

	if cb.FirstVisit() {
		fmt.Println("🎉 Welcome! Ask about plans, coverage or offers to get started.")
		fmt.Println()
		if err := cb.MarkWelcomed(); err != nil {
			cb.logger.Warn("failed to persist first-visit flag", "error", err)
		}
	}

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			fmt.Println("Please type a message first.")
			continue
		}

		if strings.HasPrefix(input, "/") {
			shouldQuit, err := cb.handleCommand(ctx, input)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				cb.logger.Error("command error", "error", err)
			}
			if shouldQuit {
				break
			}
			continue
		}

		reply, err := cb.Send(ctx, input)
		if err != nil {
			if errors.Is(err, ErrEmptyMessage) {
				fmt.Println("Please type a message first.")
				continue
			}
			// The fallback message is already in the transcript; show it
			// along with the transient notice.
			fmt.Printf("Note: %v\n", err)
		}
		if reply.Content != "" {
			fmt.Printf("Assistant: %s\n\n", reply.Content)
		}
	}

	fmt.Println("Goodbye!")
	return nil
}

// handleCommand handles special commands
func (cb *ChatBot) handleCommand(ctx context.Context, cmd string) (bool, error) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return false, nil
	}

	switch parts[0] {
	case "/quit", "/exit":
		return true, nil

	case "/new-session":
		if err := cb.NewTranscript(ctx); err != nil {
			fmt.Println("Started new conversation (no session; the assistant is unreachable).")
			return false, nil
		}
		fmt.Println("Started new conversation:", cb.Transcript().SessionID())
		return false, nil

	case "/status":
		health, err := cb.Health(ctx)
		if err != nil {
			return false, fmt.Errorf("health check failed: %w", err)
		}
		fmt.Printf("Backend: %s (orchestrator ready: %v)\n", health.Status, health.Orchestrator)
		return false, nil

	case "/quick":
		if len(parts) < 2 {
			return false, fmt.Errorf("usage: /quick <1-%d>", len(QuickActions))
		}
		var i int
		if _, err := fmt.Sscanf(parts[1], "%d", &i); err != nil || i < 1 || i > len(QuickActions) {
			return false, fmt.Errorf("usage: /quick <1-%d>", len(QuickActions))
		}
		fmt.Printf("You: %s\n", QuickActions[i-1])
		reply, err := cb.SendQuickAction(ctx, i-1)
		if err != nil {
			fmt.Printf("Note: %v\n", err)
		}
		if reply.Content != "" {
			fmt.Printf("Assistant: %s\n\n", reply.Content)
		}
		return false, nil

	case "/help":
		fmt.Println("Available commands:")
		fmt.Println("  /quit, /exit        - Exit TeleChat")
		fmt.Println("  /new-session        - Start a new conversation")
		fmt.Println("  /status             - Check backend health")
		fmt.Println("  /quick <n>          - Send a quick action:")
		for i, qa := range QuickActions {
			fmt.Printf("      %d. %s\n", i+1, qa)
		}
		fmt.Println("  /help               - Show this help message")
		return false, nil

	default:
		return false, nil
	}
}
