package model

import (
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/spritzen-labs/simply-staking/internal/ledger"
	"github.com/spritzen-labs/simply-staking/internal/types"
)

type BalanceDocument struct {
	ID        string    `bson:"_id"` // token:account
	Token     string    `bson:"token"`
	Account   string    `bson:"account"`
	Amount    string    `bson:"amount"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type AllowanceDocument struct {
	ID        string    `bson:"_id"` // token:owner:spender
	Token     string    `bson:"token"`
	Owner     string    `bson:"owner"`
	Spender   string    `bson:"spender"`
	Amount    string    `bson:"amount"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type SupplyDocument struct {
	Token       string    `bson:"_id"`
	TotalSupply string    `bson:"total_supply"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func NewBalanceDocument(token string, account types.Address, amount sdkmath.Int, now time.Time) *BalanceDocument {
	return &BalanceDocument{
		ID:        BalanceID(token, account.String()),
		Token:     token,
		Account:   account.String(),
		Amount:    amount.String(),
		UpdatedAt: now,
	}
}

func NewAllowanceDocument(token string, key ledger.AllowanceKey, amount sdkmath.Int, now time.Time) *AllowanceDocument {
	return &AllowanceDocument{
		ID:        AllowanceID(token, key.Owner.String(), key.Spender.String()),
		Token:     token,
		Owner:     key.Owner.String(),
		Spender:   key.Spender.String(),
		Amount:    amount.String(),
		UpdatedAt: now,
	}
}

func NewSupplyDocument(token string, supply sdkmath.Int, now time.Time) *SupplyDocument {
	return &SupplyDocument{
		Token:       token,
		TotalSupply: supply.String(),
		UpdatedAt:   now,
	}
}

func BalanceID(token, account string) string {
	return token + ":" + account
}

func AllowanceID(token, owner, spender string) string {
	return token + ":" + owner + ":" + spender
}

// LedgerState groups every persisted row of a single token.
type LedgerState struct {
	Supply     *SupplyDocument
	Balances   []*BalanceDocument
	Allowances []*AllowanceDocument
}

// ToState converts the stored rows back into a ledger state. Zero rows are
// skipped, the ledger does not keep them.
func (s *LedgerState) ToState() (ledger.State, error) {
	state := ledger.State{
		Balances:   make(map[types.Address]sdkmath.Int, len(s.Balances)),
		Allowances: make(map[ledger.AllowanceKey]sdkmath.Int, len(s.Allowances)),
	}

	supply, err := types.ParseAmount(s.Supply.TotalSupply)
	if err != nil {
		return ledger.State{}, fmt.Errorf("supply of %s: %w", s.Supply.Token, err)
	}
	state.TotalSupply = supply

	for _, b := range s.Balances {
		account, err := types.ParseAddress(b.Account)
		if err != nil {
			return ledger.State{}, fmt.Errorf("balance %s: %w", b.ID, err)
		}
		amount, err := types.ParseAmount(b.Amount)
		if err != nil {
			return ledger.State{}, fmt.Errorf("balance %s: %w", b.ID, err)
		}
		if !amount.IsZero() {
			state.Balances[account] = amount
		}
	}

	for _, a := range s.Allowances {
		owner, err := types.ParseAddress(a.Owner)
		if err != nil {
			return ledger.State{}, fmt.Errorf("allowance %s: %w", a.ID, err)
		}
		spender, err := types.ParseAddress(a.Spender)
		if err != nil {
			return ledger.State{}, fmt.Errorf("allowance %s: %w", a.ID, err)
		}
		amount, err := types.ParseAmount(a.Amount)
		if err != nil {
			return ledger.State{}, fmt.Errorf("allowance %s: %w", a.ID, err)
		}
		if !amount.IsZero() {
			state.Allowances[ledger.AllowanceKey{Owner: owner, Spender: spender}] = amount
		}
	}

	return state, nil
}
