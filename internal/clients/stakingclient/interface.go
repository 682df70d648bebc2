package stakingclient

import (
	"context"

	"github.com/spritzen-labs/simply-staking/internal/types"
)

//go:generate mockery --name=StakingInterface --output=../../../tests/mocks --outpkg=mocks --filename=mock_staking_client.go
type StakingInterface interface {
	Token(ctx context.Context, symbol string) (*types.TokenResponse, error)
	Balance(ctx context.Context, symbol, account string) (*types.BalanceResponse, error)
	Allowance(ctx context.Context, symbol, owner, spender string) (*types.AllowanceResponse, error)
	Transfer(ctx context.Context, caller, symbol string, req types.TransferRequest) error
	Approve(ctx context.Context, caller, symbol string, req types.ApproveRequest) error
	TransferFrom(ctx context.Context, caller, symbol string, req types.TransferFromRequest) error
	Mint(ctx context.Context, caller, symbol string, req types.MintRequest) error
	Burn(ctx context.Context, caller, symbol string, req types.BurnRequest) error

	Params(ctx context.Context) (*types.StakingParamsResponse, error)
	SetParams(ctx context.Context, caller string, req types.StakingParamsRequest) (*types.StakingParamsResponse, error)
	Stake(ctx context.Context, caller, amount string) (*types.PositionResponse, error)
	Unstake(ctx context.Context, caller, amount string) (*types.PositionResponse, error)
	Claim(ctx context.Context, caller string) (*types.ClaimResponse, error)
	Position(ctx context.Context, account string) (*types.PositionResponse, error)
	Events(ctx context.Context, query EventsQuery) ([]types.Event, error)
}
