package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/spritzen-labs/simply-staking/internal/config"
	"github.com/spritzen-labs/simply-staking/internal/services"
	"github.com/spritzen-labs/simply-staking/internal/staking"
	"github.com/spritzen-labs/simply-staking/internal/types"
)

// Service is the part of services.Service the API needs.
type Service interface {
	Ping(ctx context.Context) error

	TokenInfo(symbol string) (*services.TokenInfo, error)
	BalanceOf(symbol string, account types.Address) (sdkmath.Int, error)
	Allowance(symbol string, owner, spender types.Address) (sdkmath.Int, error)
	Transfer(ctx context.Context, symbol string, caller, to types.Address, amount sdkmath.Int) error
	Approve(ctx context.Context, symbol string, caller, spender types.Address, amount sdkmath.Int) error
	TransferFrom(ctx context.Context, symbol string, caller, from, to types.Address, amount sdkmath.Int) error
	Mint(ctx context.Context, symbol string, caller, to types.Address, amount sdkmath.Int) error
	Burn(ctx context.Context, symbol string, caller, from types.Address, amount sdkmath.Int) error

	Params() staking.Params
	SetParams(ctx context.Context, caller types.Address, update services.ParamsUpdate) (staking.Params, error)
	Stake(ctx context.Context, caller types.Address, amount sdkmath.Int) error
	Unstake(ctx context.Context, caller types.Address, amount sdkmath.Int) error
	Claim(ctx context.Context, caller types.Address) (sdkmath.Int, error)
	Position(account types.Address) (*services.PositionView, error)

	Events(ctx context.Context, q services.EventQuery) ([]types.Event, error)
}

type Handler struct {
	service      Service
	callerHeader string
}

func NewHandler(service Service, callerHeader string) *Handler {
	if callerHeader == "" {
		callerHeader = config.DefaultCallerHeader
	}
	return &Handler{
		service:      service,
		callerHeader: callerHeader,
	}
}

type handlerFunc func(r *http.Request) (any, *types.Error)

// wrap turns a handlerFunc into an http.HandlerFunc writing the result as
// {"data": ...} or the error as an ErrorResponse.
func wrap(status int, f handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := f(r)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, status, types.Response[any]{Data: result})
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err *types.Error) {
	if err.StatusCode >= http.StatusInternalServerError {
		log.Ctx(ctx).Error().Err(err).Str("error_code", err.ErrorCode.String()).Msg("Request failed")
	} else {
		log.Ctx(ctx).Debug().Err(err).Str("error_code", err.ErrorCode.String()).Msg("Request rejected")
	}

	message := err.Error()
	if err.StatusCode >= http.StatusInternalServerError {
		message = "internal service error"
	}
	writeJSON(ctx, w, err.StatusCode, types.ErrorResponse{
		ErrorCode: err.ErrorCode.String(),
		Message:   message,
	})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to write response")
	}
}

func decodeBody[T any](r *http.Request) (*T, *types.Error) {
	var body T
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		return nil, types.NewValidationFailedError(fmt.Errorf("invalid request body: %w", err))
	}
	return &body, nil
}

// caller returns the address from the caller header.
func (h *Handler) caller(r *http.Request) (types.Address, *types.Error) {
	value := r.Header.Get(h.callerHeader)
	if value == "" {
		return types.Address{}, types.NewErrorWithMsg(
			http.StatusUnauthorized, types.Unauthorized, fmt.Sprintf("missing %s header", h.callerHeader),
		)
	}
	return parseAddress(h.callerHeader, value)
}

func parseAddress(field, value string) (types.Address, *types.Error) {
	a, err := types.ParseAddress(value)
	if err != nil {
		return types.Address{}, types.NewValidationFailedError(fmt.Errorf("%s: %w", field, err))
	}
	return a, nil
}

func parseAmount(value string) (sdkmath.Int, *types.Error) {
	amount, err := types.ParseAmount(value)
	if err != nil {
		return sdkmath.Int{}, types.NewValidationFailedError(fmt.Errorf("amount: %w", err))
	}
	return amount, nil
}

func parseDuration(field string, value *string) (*time.Duration, *types.Error) {
	if value == nil {
		return nil, nil
	}
	d, err := time.ParseDuration(*value)
	if err != nil {
		return nil, types.NewValidationFailedError(fmt.Errorf("%s: %w", field, err))
	}
	return &d, nil
}
