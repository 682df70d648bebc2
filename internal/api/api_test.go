package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spritzen-labs/simply-staking/internal/clock"
	"github.com/spritzen-labs/simply-staking/internal/config"
	"github.com/spritzen-labs/simply-staking/internal/db"
	"github.com/spritzen-labs/simply-staking/internal/db/model"
	"github.com/spritzen-labs/simply-staking/internal/observability/metrics"
	"github.com/spritzen-labs/simply-staking/internal/services"
	"github.com/spritzen-labs/simply-staking/internal/types"
	"github.com/spritzen-labs/simply-staking/testutil"
	"github.com/spritzen-labs/simply-staking/tests/mocks"
)

const (
	adminHex  = "0x1000000000000000000000000000000000000001"
	engineHex = "0x2000000000000000000000000000000000000002"
)

type testAPI struct {
	server *httptest.Server
	clock  *clock.ManualClock
	db     *mocks.DbInterface
}

func setup(t *testing.T) *testAPI {
	metrics.Init(9995)

	cfg := &config.Config{
		Poller:    config.PollerConfig{StatsPollingInterval: time.Minute},
		Token:     config.TokenConfig{Name: "Spritzen", Symbol: "SPR", Decimals: 18},
		Liquidity: config.TokenConfig{Name: "Liquidity", Symbol: "LP", Decimals: 18},
		Staking: config.StakingConfig{
			AdminAddress:    adminHex,
			EngineAddress:   engineHex,
			RewardRate:      10,
			UnavailableTime: 10 * time.Minute,
			UnstakeTime:     10 * time.Minute,
		},
	}

	dbMock := mocks.NewDbInterface(t)
	for _, method := range []string{"SaveEvents", "UpsertBalance", "UpsertAllowance", "UpsertSupply", "UpsertPosition", "UpsertStakingParams"} {
		dbMock.On(method, mock.Anything, mock.Anything).Return(nil).Maybe()
	}

	clk := clock.NewManualClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	srv, err := services.NewService(cfg, dbMock, nil, clk)
	require.NoError(t, err)

	server := httptest.NewServer(NewHandler(srv, "").Routes())
	t.Cleanup(server.Close)

	return &testAPI{server: server, clock: clk, db: dbMock}
}

// call sends a request and decodes the data field of a successful response
// into out, or the error body otherwise.
func (a *testAPI) call(t *testing.T, method, path, caller string, body any, out any) (int, types.ErrorResponse) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(t.Context(), method, a.server.URL+path, reader)
	require.NoError(t, err)
	if caller != "" {
		req.Header.Set(config.DefaultCallerHeader, caller)
	}

	resp, err := a.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var errResp types.ErrorResponse
	if resp.StatusCode != http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
		return resp.StatusCode, errResp
	}

	if out != nil {
		wrapped := types.Response[json.RawMessage]{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&wrapped))
		require.NoError(t, json.Unmarshal(wrapped.Data, out))
	}
	return resp.StatusCode, errResp
}

func TestTokenEndpoints(t *testing.T) {
	a := setup(t)
	alice := testutil.RandomAddress().String()
	bob := testutil.RandomAddress().String()

	status, _ := a.call(t, http.MethodPost, "/v1/tokens/SPR/mint", adminHex, types.MintRequest{To: alice, Amount: "100"}, nil)
	require.Equal(t, http.StatusOK, status)

	var token types.TokenResponse
	status, _ = a.call(t, http.MethodGet, "/v1/tokens/SPR", "", nil, &token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "100", token.TotalSupply)
	assert.Equal(t, "Spritzen", token.Name)
	assert.Equal(t, uint8(18), token.Decimals)
	assert.Equal(t, 1, token.Holders)

	status, _ = a.call(t, http.MethodPost, "/v1/tokens/SPR/transfer", alice, types.TransferRequest{To: bob, Amount: "30"}, nil)
	require.Equal(t, http.StatusOK, status)

	var balance types.BalanceResponse
	a.call(t, http.MethodGet, "/v1/tokens/SPR/balances/"+bob, "", nil, &balance)
	assert.Equal(t, "30", balance.Balance)

	status, _ = a.call(t, http.MethodPost, "/v1/tokens/SPR/approve", alice, types.ApproveRequest{Spender: bob, Amount: "50"}, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = a.call(t, http.MethodPost, "/v1/tokens/SPR/transfer-from", bob,
		types.TransferFromRequest{From: alice, To: bob, Amount: "20"}, nil)
	require.Equal(t, http.StatusOK, status)

	var allowance types.AllowanceResponse
	a.call(t, http.MethodGet, "/v1/tokens/SPR/allowances/"+alice+"/"+bob, "", nil, &allowance)
	assert.Equal(t, "30", allowance.Allowance)

	status, _ = a.call(t, http.MethodPost, "/v1/tokens/SPR/burn", adminHex, types.BurnRequest{From: bob, Amount: "50"}, nil)
	require.Equal(t, http.StatusOK, status)
	a.call(t, http.MethodGet, "/v1/tokens/SPR", "", nil, &token)
	assert.Equal(t, "50", token.TotalSupply)
}

func TestErrors(t *testing.T) {
	a := setup(t)
	alice := testutil.RandomAddress().String()

	cases := []struct {
		name   string
		method string
		path   string
		caller string
		body   any
		status int
		code   types.ErrorCode
	}{
		{"missing caller", http.MethodPost, "/v1/tokens/SPR/transfer", "", types.TransferRequest{To: alice, Amount: "1"}, http.StatusUnauthorized, types.Unauthorized},
		{"malformed caller", http.MethodPost, "/v1/tokens/SPR/transfer", "0x12", types.TransferRequest{To: alice, Amount: "1"}, http.StatusBadRequest, types.ValidationError},
		{"zero caller", http.MethodPost, "/v1/tokens/SPR/transfer", types.ZeroAddress.String(), types.TransferRequest{To: alice, Amount: "1"}, http.StatusBadRequest, types.BadRequest},
		{"negative amount", http.MethodPost, "/v1/tokens/SPR/transfer", alice, types.TransferRequest{To: adminHex, Amount: "-1"}, http.StatusBadRequest, types.ValidationError},
		{"insufficient balance", http.MethodPost, "/v1/tokens/SPR/transfer", alice, types.TransferRequest{To: adminHex, Amount: "1"}, http.StatusUnprocessableEntity, types.InsufficientFunds},
		{"allowance exceeded", http.MethodPost, "/v1/tokens/SPR/transfer-from", alice, types.TransferFromRequest{From: adminHex, To: alice, Amount: "1"}, http.StatusUnprocessableEntity, types.AllowanceExceeded},
		{"not minter", http.MethodPost, "/v1/tokens/SPR/mint", alice, types.MintRequest{To: alice, Amount: "1"}, http.StatusForbidden, types.Forbidden},
		{"unknown token", http.MethodGet, "/v1/tokens/DOGE", "", nil, http.StatusNotFound, types.NotFound},
		{"unknown field", http.MethodPost, "/v1/staking/stake", alice, map[string]string{"amount": "1", "extra": "x"}, http.StatusBadRequest, types.ValidationError},
		{"nothing to claim", http.MethodPost, "/v1/staking/claim", alice, nil, http.StatusUnprocessableEntity, types.NothingToClaim},
		{"stake without approval", http.MethodPost, "/v1/staking/stake", alice, types.AmountRequest{Amount: "1"}, http.StatusUnprocessableEntity, types.TransferFailed},
		{"unstake zero", http.MethodPost, "/v1/staking/unstake", alice, types.AmountRequest{Amount: "0"}, http.StatusBadRequest, types.BadRequest},
		{"params by non admin", http.MethodPut, "/v1/staking/params", alice, types.StakingParamsRequest{RewardRate: new(uint64)}, http.StatusForbidden, types.Forbidden},
		{"bad duration", http.MethodPut, "/v1/staking/params", adminHex, map[string]string{"unstake_lock_duration": "soon"}, http.StatusBadRequest, types.ValidationError},
		{"bad limit", http.MethodGet, "/v1/events?limit=0", "", nil, http.StatusBadRequest, types.ValidationError},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			status, errResp := a.call(t, c.method, c.path, c.caller, c.body, nil)
			assert.Equal(t, c.status, status)
			assert.Equal(t, c.code.String(), errResp.ErrorCode)
			assert.NotEmpty(t, errResp.Message)
		})
	}
}

func TestStakingEndpoints(t *testing.T) {
	a := setup(t)
	alice := testutil.RandomAddress().String()

	a.call(t, http.MethodPost, "/v1/tokens/LP/mint", adminHex, types.MintRequest{To: alice, Amount: "100"}, nil)
	a.call(t, http.MethodPost, "/v1/tokens/SPR/mint", adminHex, types.MintRequest{To: engineHex, Amount: "1000"}, nil)
	a.call(t, http.MethodPost, "/v1/tokens/LP/approve", alice, types.ApproveRequest{Spender: engineHex, Amount: "20"}, nil)

	var position types.PositionResponse
	status, _ := a.call(t, http.MethodPost, "/v1/staking/stake", alice, types.AmountRequest{Amount: "10"}, &position)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "10", position.Staked)
	assert.Equal(t, "1", position.UnavailableReward)
	assert.Equal(t, types.StateStakedLocked.String(), position.State)
	require.NotNil(t, position.LockedUntil)

	status, errResp := a.call(t, http.MethodPost, "/v1/staking/unstake", alice, types.AmountRequest{Amount: "10"}, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, types.LockActive.String(), errResp.ErrorCode)

	a.clock.Advance(6 * time.Minute)
	a.call(t, http.MethodPost, "/v1/staking/stake", alice, types.AmountRequest{Amount: "10"}, &position)
	assert.Equal(t, "20", position.Staked)
	assert.Equal(t, "0", position.AvailableReward)
	assert.Equal(t, "2", position.UnavailableReward)

	a.clock.Advance(12 * time.Minute)
	a.call(t, http.MethodGet, "/v1/staking/position", alice, nil, &position)
	assert.Equal(t, "2", position.AvailableReward)
	assert.Equal(t, types.StateStakedUnlocked.String(), position.State)
	assert.Nil(t, position.LockedUntil)

	var claim types.ClaimResponse
	status, _ = a.call(t, http.MethodPost, "/v1/staking/claim", alice, nil, &claim)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2", claim.Claimed)

	status, errResp = a.call(t, http.MethodPost, "/v1/staking/unstake", alice, types.AmountRequest{Amount: "21"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, types.InsufficientFunds.String(), errResp.ErrorCode)

	status, _ = a.call(t, http.MethodPost, "/v1/staking/unstake", alice, types.AmountRequest{Amount: "20"}, &position)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "0", position.Staked)
	assert.Equal(t, types.StateUnstaked.String(), position.State)
}

func TestParamsEndpoints(t *testing.T) {
	a := setup(t)

	var params types.StakingParamsResponse
	a.call(t, http.MethodGet, "/v1/staking/params", "", nil, &params)
	assert.Equal(t, uint64(10), params.RewardRate)
	assert.Equal(t, "10m0s", params.RewardMaturationWindow)
	assert.Equal(t, "10m0s", params.UnstakeLockDuration)

	window := "1h"
	status, _ := a.call(t, http.MethodPut, "/v1/staking/params", adminHex,
		types.StakingParamsRequest{RewardMaturationWindow: &window}, &params)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, uint64(10), params.RewardRate)
	assert.Equal(t, "1h0m0s", params.RewardMaturationWindow)
	assert.Equal(t, "10m0s", params.UnstakeLockDuration)
}

func TestEventsEndpoint(t *testing.T) {
	a := setup(t)
	alice := testutil.RandomAddress()
	now := a.clock.Now()

	stored := model.FromEvent(types.Event{
		ID:        "ev-1",
		Type:      types.EventTransfer,
		Source:    "SPR",
		To:        alice,
		Amount:    sdkmath.NewInt(5),
		Timestamp: now,
	}, 1)
	a.db.On("GetEvents", mock.Anything, mock.MatchedBy(func(f db.EventFilter) bool {
		return f.Account == alice.String() && f.Limit == 5
	})).Return([]*model.EventDocument{stored}, nil)

	var evs []types.Event
	status, _ := a.call(t, http.MethodGet, "/v1/events?account="+alice.String()+"&limit=5", "", nil, &evs)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, evs, 1)
	assert.Equal(t, alice, evs[0].To)
	assert.Equal(t, "5", evs[0].Amount.String())
	assert.True(t, evs[0].From.IsZero())
}

func TestHealthcheck(t *testing.T) {
	a := setup(t)
	a.db.On("Ping", mock.Anything).Return(nil)

	var health types.HealthResponse
	status, _ := a.call(t, http.MethodGet, "/healthcheck", "", nil, &health)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", health.Status)
}
