package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spritzen-labs/simply-staking/internal/services"
	"github.com/spritzen-labs/simply-staking/internal/types"
)

// getEvents serves the event log. Query params: account, source, type, limit.
func (h *Handler) getEvents(r *http.Request) (any, *types.Error) {
	query := r.URL.Query()

	q := services.EventQuery{
		Source: query.Get("source"),
		Type:   types.EventType(query.Get("type")),
	}
	if account := query.Get("account"); account != "" {
		a, apiErr := parseAddress("account", account)
		if apiErr != nil {
			return nil, apiErr
		}
		q.Account = a
	}
	if limit := query.Get("limit"); limit != "" {
		n, err := strconv.ParseInt(limit, 10, 64)
		if err != nil || n <= 0 {
			return nil, types.NewValidationFailedError(fmt.Errorf("limit must be a positive integer, got %q", limit))
		}
		q.Limit = n
	}

	evs, err := h.service.Events(r.Context(), q)
	if err != nil {
		return nil, types.FromDomainError(err)
	}
	return evs, nil
}
