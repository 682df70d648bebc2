package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spritzen-labs/simply-staking/internal/observability/metrics"
	"github.com/spritzen-labs/simply-staking/internal/types"
)

type testClient struct {
	baseURL string
	timeout time.Duration
}

func (c *testClient) GetBaseURL() string {
	return c.baseURL
}

func (c *testClient) GetDefaultRequestTimeout() time.Duration {
	return c.timeout
}

func (c *testClient) GetHttpClient() *http.Client {
	return &http.Client{}
}

type echo struct {
	Value string `json:"value"`
}

func TestSendRequest(t *testing.T) {
	metrics.Init(9994)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/echo":
			var in echo
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			assert.Equal(t, "0xabc", r.Header.Get("X-Caller-Address"))
			json.NewEncoder(w).Encode(types.Response[echo]{Data: in})
		case "/conflict":
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(types.ErrorResponse{ErrorCode: "LOCK_ACTIVE", Message: "unstake is not available"})
		case "/slow":
			time.Sleep(200 * time.Millisecond)
			json.NewEncoder(w).Encode(types.Response[echo]{})
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer server.Close()

	c := &testClient{baseURL: server.URL, timeout: time.Second}

	t.Run("ok", func(t *testing.T) {
		resp, err := SendRequest[echo, echo](t.Context(), c, http.MethodPost, &HttpClientOptions{
			Path:         "/echo",
			TemplatePath: "/echo",
			Headers:      map[string]string{"X-Caller-Address": "0xabc"},
		}, &echo{Value: "hello"})
		require.Nil(t, err)
		assert.Equal(t, "hello", resp.Value)
	})
	t.Run("error body", func(t *testing.T) {
		_, err := SendRequest[echo, echo](t.Context(), c, http.MethodGet, &HttpClientOptions{Path: "/conflict"}, nil)
		require.NotNil(t, err)
		assert.Equal(t, http.StatusConflict, err.StatusCode)
		assert.Equal(t, types.LockActive, err.ErrorCode)
		assert.Equal(t, "unstake is not available", err.Error())
	})
	t.Run("no error body", func(t *testing.T) {
		_, err := SendRequest[echo, echo](t.Context(), c, http.MethodGet, &HttpClientOptions{Path: "/missing"}, nil)
		require.NotNil(t, err)
		assert.Equal(t, http.StatusBadGateway, err.StatusCode)
		assert.Equal(t, types.InternalServiceError, err.ErrorCode)
	})
	t.Run("timeout", func(t *testing.T) {
		_, err := SendRequest[echo, echo](t.Context(), c, http.MethodGet, &HttpClientOptions{
			Path:    "/slow",
			Timeout: 20 * time.Millisecond,
		}, nil)
		require.NotNil(t, err)
		assert.Equal(t, http.StatusRequestTimeout, err.StatusCode)
	})
}
