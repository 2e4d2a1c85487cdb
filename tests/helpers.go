package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/lithammer/shortuuid/v3"
	"github.com/stretchr/testify/require"
)

const serviceAddr = "http://localhost:8090"

func waitForHttpServer(t *testing.T) {
	t.Helper()

	require.Eventually(t, func() bool {
		resp, err := http.Get(serviceAddr + "/health")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 10*time.Second, 50*time.Millisecond)
}

func doJSON(t *testing.T, method, path string, body any, out any, headers map[string]string) int {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req, err := http.NewRequest(method, serviceAddr+path, &payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Correlation-ID", shortuuid.New())
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}

// getJSON never fails the test, it is meant for polling assertions.
func getJSON(path string, out any) int {
	resp, err := http.Get(serviceAddr + path)
	if err != nil {
		return 0
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return 0
		}
	}

	return resp.StatusCode
}

func money(amount, currency string) map[string]string {
	return map[string]string{"amount": amount, "currency": currency}
}

func searchCriteria() map[string]any {
	return map[string]any{
		"origin_id":      "KHI",
		"destination_id": "dest-1",
		"departure_date": time.Now().AddDate(0, 1, 0).UTC().Format(time.RFC3339),
		"cabin_class":    "economy",
		"flight_budget":  money("50000.00", "PKR"),
		"hotel_budget":   money("30000.00", "PKR"),
		"stay_nights":    3,
		"trip_type":      "return",
	}
}

func idempotencyKey() string {
	return fmt.Sprintf("component-%s", uuid.NewString())
}
