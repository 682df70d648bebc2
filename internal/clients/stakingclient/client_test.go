package stakingclient

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spritzen-labs/simply-staking/internal/config"
	"github.com/spritzen-labs/simply-staking/internal/observability/metrics"
	"github.com/spritzen-labs/simply-staking/internal/types"
	"github.com/spritzen-labs/simply-staking/pkg"
)

const caller = "0x00000000000000000000000000000000000000aa"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.ClientConfig{
		BaseURL:       server.URL + "/",
		MaxRetryTimes: 3,
		RetryInterval: time.Millisecond,
	}
	require.NoError(t, cfg.Validate())

	return NewClient(cfg)
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(types.Response[any]{Data: data})
}

func writeError(w http.ResponseWriter, status int, code types.ErrorCode, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(types.ErrorResponse{ErrorCode: string(code), Message: msg})
}

func TestMain(m *testing.M) {
	metrics.Init(9992)
	m.Run()
}

func TestNilConfig(t *testing.T) {
	assert.Nil(t, NewClient(nil))
}

func TestReads(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		switch r.URL.Path {
		case "/v1/tokens/LUX":
			writeData(w, types.TokenResponse{Symbol: "LUX", Decimals: 18, TotalSupply: "1000"})
		case "/v1/tokens/LUX/balances/" + caller:
			writeData(w, types.BalanceResponse{Token: "LUX", Account: caller, Balance: "7"})
		case "/v1/tokens/LQT/allowances/" + caller + "/" + caller:
			writeData(w, types.AllowanceResponse{Token: "LQT", Allowance: "3"})
		case "/v1/staking/position":
			assert.Equal(t, caller, r.Header.Get(config.DefaultCallerHeader))
			writeData(w, types.PositionResponse{Account: caller, Staked: "5", State: "staked_unlocked"})
		case "/v1/events":
			assert.Equal(t, caller, r.URL.Query().Get("account"))
			assert.Equal(t, "2", r.URL.Query().Get("limit"))
			assert.Empty(t, r.URL.Query().Get("source"))
			writeData(w, []types.Event{{ID: "1", Type: types.EventTransfer, Source: "LUX"}})
		default:
			writeError(w, http.StatusNotFound, types.NotFound, "not found")
		}
	})
	ctx := t.Context()

	token, err := c.Token(ctx, "LUX")
	require.NoError(t, err)
	assert.Equal(t, "1000", token.TotalSupply)
	assert.Equal(t, uint8(18), token.Decimals)

	balance, err := c.Balance(ctx, "LUX", caller)
	require.NoError(t, err)
	assert.Equal(t, "7", balance.Balance)

	allowance, err := c.Allowance(ctx, "LQT", caller, caller)
	require.NoError(t, err)
	assert.Equal(t, "3", allowance.Allowance)

	position, err := c.Position(ctx, caller)
	require.NoError(t, err)
	assert.Equal(t, "5", position.Staked)

	evs, err := c.Events(ctx, EventsQuery{Account: caller, Limit: 2})
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, types.EventTransfer, evs[0].Type)

	_, err = c.Token(ctx, "NOPE")
	var apiErr *types.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestWrites(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, caller, r.Header.Get(config.DefaultCallerHeader))
		switch r.URL.Path {
		case "/v1/tokens/LQT/approve":
			var req types.ApproveRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "10", req.Amount)
			writeData(w, nil)
		case "/v1/staking/params":
			assert.Equal(t, http.MethodPut, r.Method)
			var req types.StakingParamsRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.NotNil(t, req.RewardRate)
			assert.Nil(t, req.UnstakeLockDuration)
			writeData(w, types.StakingParamsResponse{RewardRate: *req.RewardRate, UnstakeLockDuration: "5m0s"})
		case "/v1/staking/stake":
			var req types.AmountRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeData(w, types.PositionResponse{Account: caller, Staked: req.Amount})
		case "/v1/staking/claim":
			writeData(w, types.ClaimResponse{Claimed: "42"})
		case "/v1/staking/unstake":
			writeError(w, http.StatusConflict, types.LockActive, "unstake is not available")
		default:
			writeError(w, http.StatusNotFound, types.NotFound, "not found")
		}
	})
	ctx := t.Context()

	require.NoError(t, c.Approve(ctx, caller, "LQT", types.ApproveRequest{Spender: caller, Amount: "10"}))

	params, err := c.SetParams(ctx, caller, types.StakingParamsRequest{RewardRate: pkg.Ptr(uint64(3))})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), params.RewardRate)

	position, err := c.Stake(ctx, caller, "10")
	require.NoError(t, err)
	assert.Equal(t, "10", position.Staked)

	claim, err := c.Claim(ctx, caller)
	require.NoError(t, err)
	assert.Equal(t, "42", claim.Claimed)

	_, err = c.Unstake(ctx, caller, "1")
	var apiErr *types.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, types.LockActive, apiErr.ErrorCode)
}

func TestRetries(t *testing.T) {
	var gets, posts atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			if gets.Add(1) < 3 {
				writeError(w, http.StatusServiceUnavailable, types.InternalServiceError, "unavailable")
				return
			}
			writeData(w, types.StakingParamsResponse{RewardRate: 1})
			return
		}
		posts.Add(1)
		writeError(w, http.StatusInternalServerError, types.InternalServiceError, "internal error")
	})

	params, err := c.Params(t.Context())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), params.RewardRate)
	assert.Equal(t, int32(3), gets.Load())

	_, err = c.Claim(t.Context(), caller)
	require.Error(t, err)
	assert.Equal(t, int32(1), posts.Load())
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeError(w, http.StatusBadRequest, types.ValidationError, "bad")
	})

	_, err := c.Params(t.Context())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
