package types

import "time"

// Response wraps every successful API payload.
type Response[T any] struct {
	Data T `json:"data"`
}

type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

type TokenResponse struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    uint8  `json:"decimals"`
	TotalSupply string `json:"total_supply"`
	Minter      string `json:"minter"`
	Holders     int    `json:"holders"`
}

type BalanceResponse struct {
	Token   string `json:"token"`
	Account string `json:"account"`
	Balance string `json:"balance"`
}

type AllowanceResponse struct {
	Token     string `json:"token"`
	Owner     string `json:"owner"`
	Spender   string `json:"spender"`
	Allowance string `json:"allowance"`
}

type TransferRequest struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type ApproveRequest struct {
	Spender string `json:"spender"`
	Amount  string `json:"amount"`
}

type TransferFromRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type MintRequest struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type BurnRequest struct {
	From   string `json:"from"`
	Amount string `json:"amount"`
}

type AmountRequest struct {
	Amount string `json:"amount"`
}

type ClaimResponse struct {
	Claimed string `json:"claimed"`
}

// StakingParamsResponse carries durations in time.Duration string form, e.g. "10m0s".
type StakingParamsResponse struct {
	RewardRate             uint64 `json:"reward_rate"`
	RewardMaturationWindow string `json:"reward_maturation_window"`
	UnstakeLockDuration    string `json:"unstake_lock_duration"`
}

// StakingParamsRequest updates only the fields that are set.
type StakingParamsRequest struct {
	RewardRate             *uint64 `json:"reward_rate,omitempty"`
	RewardMaturationWindow *string `json:"reward_maturation_window,omitempty"`
	UnstakeLockDuration    *string `json:"unstake_lock_duration,omitempty"`
}

type PositionResponse struct {
	Account           string     `json:"account"`
	Staked            string     `json:"staked"`
	AvailableReward   string     `json:"available_reward"`
	UnavailableReward string     `json:"unavailable_reward"`
	State             string     `json:"state"`
	LockedUntil       *time.Time `json:"locked_until,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
