package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssistant(t *testing.T, baseURL string) *AssistantService {
	t.Helper()
	t.Setenv("ML_SERVICE_URL", baseURL)
	return NewAssistantService()
}

func TestAskPassesThroughReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nutrition-chat", r.URL.Path)
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Is grapefruit safe with my statin?", req["message"])
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":"Avoid grapefruit with atorvastatin.","confidence":0.92,"urgency":"medium"}`))
	}))
	defer srv.Close()

	reply := newAssistant(t, srv.URL).Ask("Is grapefruit safe with my statin?", nil)
	assert.Equal(t, "Avoid grapefruit with atorvastatin.", reply.Response)
	assert.Equal(t, 0.92, reply.Confidence)
	assert.Equal(t, "medium", reply.Urgency)
}

func TestAskFallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	reply := newAssistant(t, srv.URL).Ask("hello", nil)
	assert.Equal(t, chatFallbackText, reply.Response)
	assert.Equal(t, 0.5, reply.Confidence)
	assert.Equal(t, "low", reply.Urgency)
}

func TestAskFallsBackWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	reply := newAssistant(t, srv.URL).Ask("hello", nil)
	assert.Equal(t, chatFallbackText, reply.Response)
}

func TestAskFallsBackOnMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	reply := newAssistant(t, srv.URL).Ask("hello", nil)
	assert.Equal(t, chatFallbackText, reply.Response)
}

func TestAskFallsBackOnEmptyResponseField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":"","confidence":0.9,"urgency":"high"}`))
	}))
	defer srv.Close()

	reply := newAssistant(t, srv.URL).Ask("hello", nil)
	assert.Equal(t, chatFallbackText, reply.Response)
	assert.Equal(t, "low", reply.Urgency)
}
