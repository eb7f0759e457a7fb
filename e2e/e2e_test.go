//go:build e2e

// Package e2e drives a running vaddid over HTTP. Point VADDI_URL at it and set
// VADDI_TOKEN when the server requires a bearer token.
package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	baseURL string
	token   string
)

func TestMain(m *testing.M) {
	baseURL = os.Getenv("VADDI_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	token = os.Getenv("VADDI_TOKEN")

	// Wait for the service to be ready
	for i := 0; i < 30; i++ {
		resp, err := http.Get(baseURL + "/readyz")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		time.Sleep(2 * time.Second)
	}

	os.Exit(m.Run())
}

func TestHealthCheck(t *testing.T) {
	resp, err := http.Get(baseURL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestSimpleInterestFlow(t *testing.T) {
	resp := postJSON(t, "/api/v1/calculations", map[string]any{
		"interest_type": "simple",
		"rate_type":     "rupee",
		"amount":        "10000",
		"interest_rate": "2",
		"duration_type": "period",
		"years":         2,
		"months":        6,
	})
	defer resp.Body.Close()
	require.Contains(t, []int{http.StatusCreated, http.StatusOK}, resp.StatusCode)

	var created map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	// 2 per 100 per month is 24% a year; 10000 * 0.24 * 2.5.
	assert.Equal(t, "6000", created["interest"])

	got := getJSON(t, "/api/v1/calculations/"+created["id"].(string))
	defer got.Body.Close()
	assert.Equal(t, http.StatusOK, got.StatusCode)
}

func TestCompoundInterestFlow(t *testing.T) {
	resp := postJSON(t, "/api/v1/calculations", map[string]any{
		"interest_type":      "compound",
		"rate_type":          "percent",
		"amount":             "1000",
		"interest_rate":      "10",
		"duration_type":      "dates",
		"start_date":         "2023-01-01",
		"end_date":           "2025-01-01",
		"compound_frequency": "annually",
	})
	defer resp.Body.Close()
	require.Contains(t, []int{http.StatusCreated, http.StatusOK}, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "210", body["interest"])
}

func TestInvalidFrequencyRejected(t *testing.T) {
	resp := postJSON(t, "/api/v1/calculations", map[string]any{
		"interest_type":             "compound",
		"rate_type":                 "percent",
		"amount":                    "1000",
		"interest_rate":             "10",
		"duration_type":             "period",
		"years":                     1,
		"compound_frequency":        "custom",
		"compound_frequency_months": 0,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func postJSON(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	jsonBody, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewBuffer(jsonBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return do(t, req)
}

func getJSON(t *testing.T, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	require.NoError(t, err)
	return do(t, req)
}

func do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}
