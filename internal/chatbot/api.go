package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"TeleChat/internal/backend"

	"go.opentelemetry.io/otel/metric"
)

// callNewSession calls GET /session/new on the assistant backend
func (cb *ChatBot) callNewSession(ctx context.Context) (*backend.SessionResponse, error) {
	ctx, span := cb.tracer.Start(ctx, "session_new_call")
	defer span.End()

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, "GET", cb.config.BaseURL+"/session/new", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := cb.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error: %s - %s", resp.Status, string(body))
	}

	var apiResp backend.SessionResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	cb.recordDuration(ctx, time.Since(start))

	if apiResp.SessionID == "" {
		return nil, fmt.Errorf("empty session id from backend")
	}

	return &apiResp, nil
}

// callChat calls POST /chat on the assistant backend. An empty sessionID
// is sent as JSON null so the backend mints one.
func (cb *ChatBot) callChat(ctx context.Context, message, sessionID string) (*backend.ChatResponse, error) {
	ctx, span := cb.tracer.Start(ctx, "chat_api_call")
	defer span.End()

	start := time.Now()

	reqBody := backend.ChatRequest{
		Message: message,
	}
	if sessionID != "" {
		reqBody.SessionID = &sessionID
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", cb.config.BaseURL+"/chat", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("content-type", "application/json")

	resp, err := cb.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error: %s - %s", resp.Status, string(body))
	}

	var apiResp backend.ChatResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	cb.recordDuration(ctx, time.Since(start))

	if apiResp.Response == "" {
		return nil, fmt.Errorf("empty response from assistant")
	}

	return &apiResp, nil
}

// Health calls GET /health on the assistant backend
func (cb *ChatBot) Health(ctx context.Context) (*backend.HealthResponse, error) {
	ctx, span := cb.tracer.Start(ctx, "health_call")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, "GET", cb.config.BaseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := cb.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error: %s - %s", resp.Status, string(body))
	}

	var apiResp backend.HealthResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &apiResp, nil
}

// recordDuration records the request duration histogram
func (cb *ChatBot) recordDuration(ctx context.Context, duration time.Duration) {
	histogram, err := cb.meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
	)
	if err == nil {
		histogram.Record(ctx, float64(duration.Milliseconds()))
	}
}
