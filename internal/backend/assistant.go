package backend

// ChatRequest represents the request body for the assistant chat endpoint.
// SessionID is a pointer so that an absent session serializes as null
// rather than an empty string; the backend mints a new session in that case.
type ChatRequest struct {
	Message   string  `json:"message"`
	SessionID *string `json:"session_id"`
}

// ChatResponse represents the response from the assistant chat endpoint
type ChatResponse struct {
	Response        string           `json:"response"`
	SessionID       string           `json:"session_id"`
	Success         bool             `json:"success"`
	IsFollowUp      bool             `json:"is_follow_up"`
	Fallback        bool             `json:"fallback"`
	Error           string           `json:"error"`
	Metadata        map[string]any   `json:"metadata"`
	FollowUpContext *FollowUpContext `json:"follow_up_context,omitempty"`
}

// FollowUpContext describes what the assistant is waiting for when it
// answers with a clarifying question
type FollowUpContext struct {
	WaitingFor    string `json:"waiting_for"`
	OriginalQuery string `json:"original_query"`
}

// SessionResponse represents the response from the session endpoint
type SessionResponse struct {
	SessionID string `json:"session_id"`
	Timestamp string `json:"timestamp"`
}

// HealthResponse represents the response from the health endpoint
type HealthResponse struct {
	Status       string `json:"status"`
	Orchestrator bool   `json:"orchestrator"`
	Timestamp    string `json:"timestamp"`
}
