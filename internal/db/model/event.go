package model

import (
	"fmt"
	"time"

	"github.com/spritzen-labs/simply-staking/internal/types"
)

type EventDocument struct {
	ID           string    `bson:"_id"`
	Sequence     int64     `bson:"sequence"`
	Type         string    `bson:"type"`
	Source       string    `bson:"source"`
	From         string    `bson:"from,omitempty"`
	To           string    `bson:"to,omitempty"`
	Owner        string    `bson:"owner,omitempty"`
	Spender      string    `bson:"spender,omitempty"`
	Account      string    `bson:"account,omitempty"`
	Participants []string  `bson:"participants"`
	Amount       string    `bson:"amount"`
	Timestamp    time.Time `bson:"timestamp"`
}

func FromEvent(ev types.Event, sequence int64) *EventDocument {
	addr := func(a types.Address) string {
		if a.IsZero() {
			return ""
		}
		return a.String()
	}

	participants := make([]string, 0, 2)
	for _, p := range ev.Participants() {
		participants = append(participants, p.String())
	}

	return &EventDocument{
		ID:           ev.ID,
		Sequence:     sequence,
		Type:         ev.Type.String(),
		Source:       ev.Source,
		From:         addr(ev.From),
		To:           addr(ev.To),
		Owner:        addr(ev.Owner),
		Spender:      addr(ev.Spender),
		Account:      addr(ev.Account),
		Participants: participants,
		Amount:       ev.Amount.String(),
		Timestamp:    ev.Timestamp,
	}
}

func (d *EventDocument) ToEvent() (types.Event, error) {
	addr := func(s string) (types.Address, error) {
		if s == "" {
			return types.ZeroAddress, nil
		}
		return types.ParseAddress(s)
	}

	ev := types.Event{
		ID:        d.ID,
		Type:      types.EventType(d.Type),
		Source:    d.Source,
		Timestamp: d.Timestamp,
	}

	var err error
	for _, f := range []struct {
		dst *types.Address
		src string
	}{
		{&ev.From, d.From},
		{&ev.To, d.To},
		{&ev.Owner, d.Owner},
		{&ev.Spender, d.Spender},
		{&ev.Account, d.Account},
	} {
		if *f.dst, err = addr(f.src); err != nil {
			return types.Event{}, fmt.Errorf("event %s: %w", d.ID, err)
		}
	}

	if ev.Amount, err = types.ParseAmount(d.Amount); err != nil {
		return types.Event{}, fmt.Errorf("event %s: %w", d.ID, err)
	}

	return ev, nil
}
