package types

import (
	"time"

	sdkmath "cosmossdk.io/math"
)

type EventType string

func (e EventType) String() string {
	return string(e)
}

const (
	EventTransfer EventType = "Transfer"
	EventApproval EventType = "Approval"
	EventStake    EventType = "Stake"
	EventUnstake  EventType = "Unstake"
	EventClaim    EventType = "Claim"
)

// Event is an externally observable record of a committed state change.
// Transfer uses From/To, Approval uses Owner/Spender, staking events use Account.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Source    string      `json:"source"`
	From      Address     `json:"from"`
	To        Address     `json:"to"`
	Owner     Address     `json:"owner"`
	Spender   Address     `json:"spender"`
	Account   Address     `json:"account"`
	Amount    sdkmath.Int `json:"amount"`
	Timestamp time.Time   `json:"timestamp"`
}

// Participants returns every non-zero address the event touches.
func (e Event) Participants() []Address {
	var out []Address
	for _, a := range []Address{e.From, e.To, e.Owner, e.Spender, e.Account} {
		if !a.IsZero() {
			out = append(out, a)
		}
	}
	return out
}
