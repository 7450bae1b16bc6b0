package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"rate_audit/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/categories", handler(s.getV1Categories))
		r.Get("/reference-rates/{category}", handler(s.getV1ReferenceRate))

		r.Post("/evaluations", handler(s.postV1Evaluations))
		r.Post("/implied-rate", handler(s.postV1ImpliedRate))
		r.Post("/fair-installment", handler(s.postV1FairInstallment))
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
