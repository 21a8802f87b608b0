package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/cinema-tickets/api"
	"github.com/stretchr/testify/require"
)

// keys whose values differ on every run
var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"bookingId": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k, v := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}

		cleanValue(v)
	}
}

func cleanValue(v any) {
	switch val := v.(type) {
	case map[string]any:
		cleanMap(val)
	case []any:
		for _, item := range val {
			cleanValue(item)
		}
	}
}

func decodePurchase(t testing.TB, res *http.Response) api.PurchaseTicketsResponse {
	var resp api.PurchaseTicketsResponse

	require.NoError(t, json.NewDecoder(res.Body).Decode(&resp))

	return resp
}

func resetState(t testing.TB, app *TestApp) {
	ctx := context.Background()

	_, err := app.DB.Exec(ctx, "TRUNCATE tickets RESTART IDENTITY CASCADE")
	require.NoError(t, err)

	err = app.Redis.FlushAll(ctx).Err()
	require.NoError(t, err)
}

func countTickets(t testing.TB, app *TestApp, accountID int64) int {
	var count int

	err := app.DB.QueryRow(context.Background(), "SELECT count(*) FROM tickets WHERE account_id = $1", accountID).Scan(&count)
	require.NoError(t, err)

	return count
}

func reservedSeats(t testing.TB, app *TestApp, accountID int64) int {
	seats, err := app.Seating.ReservedSeats(context.Background(), accountID)
	require.NoError(t, err)

	return seats
}

func executeRequest(t testing.TB, app *TestApp, method, url, body string) *http.Response {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := prepareRequest(method, url, reader, nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	return rec.Result()
}
