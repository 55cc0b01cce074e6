package services

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"
)

// ChatReply is the assistant's answer to a nutrition question.
type ChatReply struct {
	Response   string  `json:"response"`
	Confidence float64 `json:"confidence"`
	Urgency    string  `json:"urgency"` // "low" | "medium" | "high"
}

const chatFallbackText = "I'm currently unable to process your request. Please try again later."

// AssistantService forwards free-text nutrition questions to the inference
// service's chat endpoint.
type AssistantService struct {
	baseURL string
	client  *http.Client
}

func NewAssistantService() *AssistantService {
	base := os.Getenv("ML_SERVICE_URL")
	if base == "" {
		base = "http://localhost:8001"
	}
	return &AssistantService{
		baseURL: base,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Ask never fails outwardly: any transport, status or decode problem collapses
// into the fixed fallback reply.
func (s *AssistantService) Ask(message string, context map[string]any) ChatReply {
	fallback := ChatReply{Response: chatFallbackText, Confidence: 0.5, Urgency: "low"}
	if message == "" {
		return fallback
	}

	body, err := json.Marshal(map[string]any{"message": message, "context": context})
	if err != nil {
		return fallback
	}

	resp, err := s.client.Post(s.baseURL+"/nutrition-chat", "application/json", bytes.NewReader(body))
	if err != nil {
		return fallback
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		return fallback
	}

	var reply ChatReply
	if err := json.Unmarshal(raw, &reply); err != nil || reply.Response == "" {
		return fallback
	}
	return reply
}
