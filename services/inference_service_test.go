package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInferenceClient(t *testing.T, baseURL string) *InferenceService {
	t.Helper()
	t.Setenv("ML_SERVICE_URL", baseURL)
	return NewInferenceService()
}

func TestQuickLogDecodesSingleObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quick-log", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"Apple","kcal":95,"protein_g":0,"carbs_g":25,"fat_g":0,"weight_g":182}`))
	}))
	defer srv.Close()

	res, err := newInferenceClient(t, srv.URL).QuickLog("1 apple", nil)
	require.NoError(t, err)
	assert.Equal(t, "Apple", res.Name)
	require.NotNil(t, res.Kcal)
	assert.Equal(t, 95, *res.Kcal)
	require.NotNil(t, res.WeightG)
	assert.Equal(t, 182, *res.WeightG)
	assert.Empty(t, res.Dishes)
}

func TestAnalyzeTextDecodesDishList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze-text", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"dishes":[{"name":"Chicken","kcal":330,"protein_g":40},{"name":"Rice","kcal":200,"carbs_g":45}]}`))
	}))
	defer srv.Close()

	res, err := newInferenceClient(t, srv.URL).AnalyzeText("chicken with rice", nil)
	require.NoError(t, err)
	require.Len(t, res.Dishes, 2)
	assert.Equal(t, "Chicken", res.Dishes[0].Name)
	assert.Equal(t, 330, res.Dishes[0].Kcal)
}

func TestInferImageSendsMultipartFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/infer", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "lunch.jpg", header.Filename)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"dishes":[{"name":"Salad","kcal":150}]}`))
	}))
	defer srv.Close()

	res, err := newInferenceClient(t, srv.URL).InferImage([]byte{0xFF, 0xD8, 0xFF}, "lunch.jpg")
	require.NoError(t, err)
	require.Len(t, res.Dishes, 1)
	assert.Equal(t, "Salad", res.Dishes[0].Name)
}

func TestInferenceRejectsEmptyInputWithoutCalling(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("server must not be called for empty input")
	}))
	defer srv.Close()
	svc := newInferenceClient(t, srv.URL)

	_, err := svc.QuickLog("", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.InferImage(nil, "x.jpg")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestInferenceMapsServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newInferenceClient(t, srv.URL).QuickLog("1 apple", nil)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestInferenceMapsTransportErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	_, err := newInferenceClient(t, srv.URL).QuickLog("1 apple", nil)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestInferenceMapsMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := newInferenceClient(t, srv.URL).QuickLog("1 apple", nil)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}
