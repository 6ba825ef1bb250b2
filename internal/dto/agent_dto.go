package dto

// RunAgentInput is the AG-UI shaped request driving one agent turn.
type RunAgentInput struct {
	ThreadId string         `json:"threadId" validate:"required"`
	RunId    string         `json:"runId"`
	Messages []MessageInput `json:"messages" validate:"required,min=1,dive"`
}

// MessageInput is one incoming chat message.
type MessageInput struct {
	Id      string `json:"id"`
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

// ConfigResponse describes the running backend.
type ConfigResponse struct {
	Version           string `json:"version"`
	LLMProvider       string `json:"llm_provider"`
	CheckpointBackend string `json:"checkpoint_backend"`
}

// HealthCheckResponse is the /healthz payload.
type HealthCheckResponse struct {
	Status string `json:"status"`
}
