package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(traceMiddleware)
	r.Use(metricsMiddleware)

	r.Get("/healthcheck", wrap(http.StatusOK, h.healthcheck))

	r.Route("/v1", func(r chi.Router) {
		r.Route("/tokens/{token}", func(r chi.Router) {
			r.Get("/", wrap(http.StatusOK, h.getToken))
			r.Get("/balances/{account}", wrap(http.StatusOK, h.getBalance))
			r.Get("/allowances/{owner}/{spender}", wrap(http.StatusOK, h.getAllowance))
			r.Post("/transfer", wrap(http.StatusOK, h.transfer))
			r.Post("/approve", wrap(http.StatusOK, h.approve))
			r.Post("/transfer-from", wrap(http.StatusOK, h.transferFrom))
			r.Post("/mint", wrap(http.StatusOK, h.mint))
			r.Post("/burn", wrap(http.StatusOK, h.burn))
		})

		r.Route("/staking", func(r chi.Router) {
			r.Get("/params", wrap(http.StatusOK, h.getParams))
			r.Put("/params", wrap(http.StatusOK, h.setParams))
			r.Post("/stake", wrap(http.StatusOK, h.stake))
			r.Post("/unstake", wrap(http.StatusOK, h.unstake))
			r.Post("/claim", wrap(http.StatusOK, h.claim))
			r.Get("/position", wrap(http.StatusOK, h.getPosition))
		})

		r.Get("/events", wrap(http.StatusOK, h.getEvents))
	})

	return r
}
