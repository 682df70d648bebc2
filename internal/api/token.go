package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spritzen-labs/simply-staking/internal/types"
)

type empty struct{}

func (h *Handler) healthcheck(r *http.Request) (any, *types.Error) {
	if err := h.service.Ping(r.Context()); err != nil {
		return nil, types.NewError(http.StatusServiceUnavailable, types.InternalServiceError, err)
	}
	return types.HealthResponse{Status: "ok"}, nil
}

func (h *Handler) getToken(r *http.Request) (any, *types.Error) {
	info, err := h.service.TokenInfo(chi.URLParam(r, "token"))
	if err != nil {
		return nil, types.FromDomainError(err)
	}

	return types.TokenResponse{
		Name:        info.Name,
		Symbol:      info.Symbol,
		Decimals:    info.Decimals,
		TotalSupply: info.TotalSupply.String(),
		Minter:      info.Minter,
		Holders:     info.Holders,
	}, nil
}

func (h *Handler) getBalance(r *http.Request) (any, *types.Error) {
	token := chi.URLParam(r, "token")
	account, apiErr := parseAddress("account", chi.URLParam(r, "account"))
	if apiErr != nil {
		return nil, apiErr
	}

	balance, err := h.service.BalanceOf(token, account)
	if err != nil {
		return nil, types.FromDomainError(err)
	}

	return types.BalanceResponse{
		Token:   token,
		Account: account.String(),
		Balance: balance.String(),
	}, nil
}

func (h *Handler) getAllowance(r *http.Request) (any, *types.Error) {
	token := chi.URLParam(r, "token")
	owner, apiErr := parseAddress("owner", chi.URLParam(r, "owner"))
	if apiErr != nil {
		return nil, apiErr
	}
	spender, apiErr := parseAddress("spender", chi.URLParam(r, "spender"))
	if apiErr != nil {
		return nil, apiErr
	}

	allowance, err := h.service.Allowance(token, owner, spender)
	if err != nil {
		return nil, types.FromDomainError(err)
	}

	return types.AllowanceResponse{
		Token:     token,
		Owner:     owner.String(),
		Spender:   spender.String(),
		Allowance: allowance.String(),
	}, nil
}

func (h *Handler) transfer(r *http.Request) (any, *types.Error) {
	caller, apiErr := h.caller(r)
	if apiErr != nil {
		return nil, apiErr
	}
	body, apiErr := decodeBody[types.TransferRequest](r)
	if apiErr != nil {
		return nil, apiErr
	}
	to, apiErr := parseAddress("to", body.To)
	if apiErr != nil {
		return nil, apiErr
	}
	amount, apiErr := parseAmount(body.Amount)
	if apiErr != nil {
		return nil, apiErr
	}

	err := h.service.Transfer(r.Context(), chi.URLParam(r, "token"), caller, to, amount)
	return empty{}, types.FromDomainError(err)
}

func (h *Handler) approve(r *http.Request) (any, *types.Error) {
	caller, apiErr := h.caller(r)
	if apiErr != nil {
		return nil, apiErr
	}
	body, apiErr := decodeBody[types.ApproveRequest](r)
	if apiErr != nil {
		return nil, apiErr
	}
	spender, apiErr := parseAddress("spender", body.Spender)
	if apiErr != nil {
		return nil, apiErr
	}
	amount, apiErr := parseAmount(body.Amount)
	if apiErr != nil {
		return nil, apiErr
	}

	err := h.service.Approve(r.Context(), chi.URLParam(r, "token"), caller, spender, amount)
	return empty{}, types.FromDomainError(err)
}

func (h *Handler) transferFrom(r *http.Request) (any, *types.Error) {
	caller, apiErr := h.caller(r)
	if apiErr != nil {
		return nil, apiErr
	}
	body, apiErr := decodeBody[types.TransferFromRequest](r)
	if apiErr != nil {
		return nil, apiErr
	}
	from, apiErr := parseAddress("from", body.From)
	if apiErr != nil {
		return nil, apiErr
	}
	to, apiErr := parseAddress("to", body.To)
	if apiErr != nil {
		return nil, apiErr
	}
	amount, apiErr := parseAmount(body.Amount)
	if apiErr != nil {
		return nil, apiErr
	}

	err := h.service.TransferFrom(r.Context(), chi.URLParam(r, "token"), caller, from, to, amount)
	return empty{}, types.FromDomainError(err)
}

func (h *Handler) mint(r *http.Request) (any, *types.Error) {
	caller, apiErr := h.caller(r)
	if apiErr != nil {
		return nil, apiErr
	}
	body, apiErr := decodeBody[types.MintRequest](r)
	if apiErr != nil {
		return nil, apiErr
	}
	to, apiErr := parseAddress("to", body.To)
	if apiErr != nil {
		return nil, apiErr
	}
	amount, apiErr := parseAmount(body.Amount)
	if apiErr != nil {
		return nil, apiErr
	}

	err := h.service.Mint(r.Context(), chi.URLParam(r, "token"), caller, to, amount)
	return empty{}, types.FromDomainError(err)
}

func (h *Handler) burn(r *http.Request) (any, *types.Error) {
	caller, apiErr := h.caller(r)
	if apiErr != nil {
		return nil, apiErr
	}
	body, apiErr := decodeBody[types.BurnRequest](r)
	if apiErr != nil {
		return nil, apiErr
	}
	from, apiErr := parseAddress("from", body.From)
	if apiErr != nil {
		return nil, apiErr
	}
	amount, apiErr := parseAmount(body.Amount)
	if apiErr != nil {
		return nil, apiErr
	}

	err := h.service.Burn(r.Context(), chi.URLParam(r, "token"), caller, from, amount)
	return empty{}, types.FromDomainError(err)
}
