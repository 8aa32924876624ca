package apps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/featured/internal/config"
)

func newTestClient(endpoint string) *Client {
	cfg := config.TestConfig()
	cfg.Source.Endpoint = endpoint
	c := NewClient(cfg)
	c.SetClock(func() time.Time { return time.UnixMilli(1700000000123) })
	return c
}

func TestClient_FetchApps(t *testing.T) {
	tests := []struct {
		name           string
		serverResponse func(w http.ResponseWriter, r *http.Request)
		expectCount    int
		expectError    bool
	}{
		{
			name: "successful fetch",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("action") != "getApps" {
					t.Errorf("expected action=getApps, got %s", r.URL.Query().Get("action"))
				}
				if r.URL.Query().Get("t") != "1700000000123" {
					t.Errorf("expected cache-busting t=1700000000123, got %s", r.URL.Query().Get("t"))
				}
				if r.Header.Get("User-Agent") != "featured-test/1.0" {
					t.Errorf("expected User-Agent featured-test/1.0, got %s", r.Header.Get("User-Agent"))
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"success":true,"data":[{"id":1,"name":"One"},{"id":"2","name":"Two","categories":["games"]}]}`))
			},
			expectCount: 2,
		},
		{
			name: "success false",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":false}`))
			},
			expectError: true,
		},
		{
			name: "success false with message",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":false,"error":"sheet locked"}`))
			},
			expectError: true,
		},
		{
			name: "server error",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectError: true,
		},
		{
			name: "malformed json",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>not json</html>`))
			},
			expectError: true,
		},
		{
			name: "empty data",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":true,"data":[]}`))
			},
			expectCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResponse))
			defer server.Close()

			apps, err := newTestClient(server.URL).FetchApps(context.Background())

			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrFetchFailed), "error should wrap ErrFetchFailed: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, apps, tt.expectCount)
			for _, app := range apps {
				assert.NotEmpty(t, app.Categories, "records must be normalized")
			}
		})
	}
}

func TestClient_FetchAppsNormalizesCategories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[{"id":1,"name":"Bare"}]}`))
	}))
	defer server.Close()

	apps, err := newTestClient(server.URL).FetchApps(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, Categories{"other"}, apps[0].Categories)
}

func TestClient_RequestURLKeepsEndpointQuery(t *testing.T) {
	c := newTestClient("https://script.google.com/macros/s/abc/exec?sheet=Apps")

	got, err := c.RequestURL()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "https://script.google.com/macros/s/abc/exec?"))
	assert.Contains(t, got, "sheet=Apps")
	assert.Contains(t, got, "action=getApps")
	assert.Contains(t, got, "t=1700000000123")
}

func TestClient_NoEndpoint(t *testing.T) {
	_, err := newTestClient("").FetchApps(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server.URL).FetchApps(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecode(t *testing.T) {
	apps, err := Decode(strings.NewReader(`{"success":true}`))
	require.NoError(t, err)
	assert.NotNil(t, apps)
	assert.Empty(t, apps)
}

func TestDecode_MixedCellTypes(t *testing.T) {
	body := `{"success":true,"data":[
		{"id":1,"name":"A","updatedate":1700000000000},
		{"id":2,"name":12345,"updatedate":"2024-03-05","categories":[7,"tools"]},
		{"id":true,"name":"C"}
	]}`

	apps, err := Decode(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, apps, 3)

	assert.Equal(t, "1700000000000", apps[0].UpdateDate)
	assert.Equal(t, Categories{"other"}, apps[0].Categories)
	assert.Equal(t, "12345", apps[1].Name)
	assert.Equal(t, Categories{"7", "tools"}, apps[1].Categories)
	assert.Equal(t, AppID("true"), apps[2].ID)
	assert.Equal(t, int64(0), apps[2].ID.Int())
}
