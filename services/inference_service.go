package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"
)

// Dish is one recognized item from the inference service.
type Dish struct {
	Name     string `json:"name"`
	Kcal     int    `json:"kcal"`
	ProteinG int    `json:"protein_g"`
	CarbsG   int    `json:"carbs_g"`
	FatG     int    `json:"fat_g"`
	WeightG  *int   `json:"weight_g,omitempty"`
}

// InferenceResult carries the inference response as received. The service
// replies with either a dish list or a single flat object (quick-log does the
// latter), so both shapes live here and the caller decides which one is set.
type InferenceResult struct {
	Dishes   []Dish `json:"dishes"`
	Name     string `json:"name"`
	Kcal     *int   `json:"kcal"`
	ProteinG int    `json:"protein_g"`
	CarbsG   int    `json:"carbs_g"`
	FatG     int    `json:"fat_g"`
	WeightG  *int   `json:"weight_g"`
}

// InferenceService is the client for the external nutrition-inference service.
// It forwards raw input and parses the response; it does not retry and it does
// not interpret confidence; gating is the capture flow's job.
type InferenceService struct {
	baseURL string
	client  *http.Client
}

func NewInferenceService() *InferenceService {
	base := os.Getenv("ML_SERVICE_URL")
	if base == "" {
		base = "http://localhost:8001"
	}
	return &InferenceService{
		baseURL: base,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// InferImage sends a meal photo for recognition.
func (s *InferenceService) InferImage(data []byte, filename string) (*InferenceResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no image provided", ErrInvalidInput)
	}
	if filename == "" {
		filename = "capture.jpg"
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}

	req, err := http.NewRequest("POST", s.baseURL+"/infer", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create inference request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return s.do(req)
}

// QuickLog analyzes a single short food phrase such as "1 apple".
func (s *InferenceService) QuickLog(description string, weightG *int) (*InferenceResult, error) {
	return s.postText("/quick-log", description, weightG)
}

// AnalyzeText analyzes a free-form, possibly multi-item meal description.
func (s *InferenceService) AnalyzeText(description string, weightG *int) (*InferenceResult, error) {
	return s.postText("/analyze-text", description, weightG)
}

type textMealRequest struct {
	Description string `json:"description"`
	WeightG     *int   `json:"weight_g,omitempty"`
}

func (s *InferenceService) postText(path, description string, weightG *int) (*InferenceResult, error) {
	if description == "" {
		return nil, fmt.Errorf("%w: no description provided", ErrInvalidInput)
	}

	b, err := json.Marshal(textMealRequest{Description: description, WeightG: weightG})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", s.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return s.do(req)
}

func (s *InferenceService) do(req *http.Request) (*InferenceResult, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrServiceUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: inference service error %d", ErrServiceUnavailable, resp.StatusCode)
	}

	var res InferenceResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrServiceUnavailable, err)
	}
	return &res, nil
}
