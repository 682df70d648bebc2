package api

import (
	"net/http"

	"github.com/spritzen-labs/simply-staking/internal/services"
	"github.com/spritzen-labs/simply-staking/internal/staking"
	"github.com/spritzen-labs/simply-staking/internal/types"
)

func paramsResponse(p staking.Params) types.StakingParamsResponse {
	return types.StakingParamsResponse{
		RewardRate:             p.RewardRate,
		RewardMaturationWindow: p.RewardMaturationWindow.String(),
		UnstakeLockDuration:    p.UnstakeLockDuration.String(),
	}
}

func (h *Handler) getParams(r *http.Request) (any, *types.Error) {
	return paramsResponse(h.service.Params()), nil
}

func (h *Handler) setParams(r *http.Request) (any, *types.Error) {
	caller, apiErr := h.caller(r)
	if apiErr != nil {
		return nil, apiErr
	}
	body, apiErr := decodeBody[types.StakingParamsRequest](r)
	if apiErr != nil {
		return nil, apiErr
	}

	update := services.ParamsUpdate{RewardRate: body.RewardRate}
	if update.UnavailableTime, apiErr = parseDuration("reward_maturation_window", body.RewardMaturationWindow); apiErr != nil {
		return nil, apiErr
	}
	if update.UnstakeTime, apiErr = parseDuration("unstake_lock_duration", body.UnstakeLockDuration); apiErr != nil {
		return nil, apiErr
	}

	params, err := h.service.SetParams(r.Context(), caller, update)
	if err != nil {
		return nil, types.FromDomainError(err)
	}

	return paramsResponse(params), nil
}

func (h *Handler) stake(r *http.Request) (any, *types.Error) {
	caller, apiErr := h.caller(r)
	if apiErr != nil {
		return nil, apiErr
	}
	body, apiErr := decodeBody[types.AmountRequest](r)
	if apiErr != nil {
		return nil, apiErr
	}
	amount, apiErr := parseAmount(body.Amount)
	if apiErr != nil {
		return nil, apiErr
	}

	if err := h.service.Stake(r.Context(), caller, amount); err != nil {
		return nil, types.FromDomainError(err)
	}
	return h.position(caller)
}

func (h *Handler) unstake(r *http.Request) (any, *types.Error) {
	caller, apiErr := h.caller(r)
	if apiErr != nil {
		return nil, apiErr
	}
	body, apiErr := decodeBody[types.AmountRequest](r)
	if apiErr != nil {
		return nil, apiErr
	}
	amount, apiErr := parseAmount(body.Amount)
	if apiErr != nil {
		return nil, apiErr
	}

	if err := h.service.Unstake(r.Context(), caller, amount); err != nil {
		return nil, types.FromDomainError(err)
	}
	return h.position(caller)
}

func (h *Handler) claim(r *http.Request) (any, *types.Error) {
	caller, apiErr := h.caller(r)
	if apiErr != nil {
		return nil, apiErr
	}

	claimed, err := h.service.Claim(r.Context(), caller)
	if err != nil {
		return nil, types.FromDomainError(err)
	}
	return types.ClaimResponse{Claimed: claimed.String()}, nil
}

func (h *Handler) getPosition(r *http.Request) (any, *types.Error) {
	caller, apiErr := h.caller(r)
	if apiErr != nil {
		return nil, apiErr
	}
	return h.position(caller)
}

func (h *Handler) position(account types.Address) (any, *types.Error) {
	view, err := h.service.Position(account)
	if err != nil {
		return nil, types.FromDomainError(err)
	}

	resp := types.PositionResponse{
		Account:           view.Account.String(),
		Staked:            view.Staked.String(),
		AvailableReward:   view.AvailableReward.String(),
		UnavailableReward: view.UnavailableReward.String(),
		State:             view.State.String(),
	}
	if !view.LockedUntil.IsZero() {
		lockedUntil := view.LockedUntil
		resp.LockedUntil = &lockedUntil
	}

	return resp, nil
}
