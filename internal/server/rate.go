package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"rate_audit/internal/domain/entity"
	"rate_audit/internal/domain/value"
	"rate_audit/pkg/httpx/reply"
	"rate_audit/pkg/rest"
)

type rateService interface {
	Source(value.Category) (entity.RateSource, bool)
	GetReferenceRate(context.Context, value.Category) (entity.ReferenceRate, error)
}

type RateServer struct {
	rateService rateService
}

func NewRateServer(rateService rateService) RateServer {
	return RateServer{
		rateService: rateService,
	}
}

func (s RateServer) getV1Categories(w http.ResponseWriter, r *http.Request) error {
	categories := lo.FilterMap(value.Categories(), func(category value.Category, _ int) (rest.Category, bool) {
		source, ok := s.rateService.Source(category)
		return newRESTCategory(category, source), ok
	})

	reply.JSON(r.Context(), w, http.StatusOK, categories)

	return nil
}

func (s RateServer) getV1ReferenceRate(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	category, err := value.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		return fmt.Errorf("value.ParseCategory: %w", err)
	}

	rate, err := s.rateService.GetReferenceRate(ctx, category)
	if err != nil {
		return fmt.Errorf("rateService.GetReferenceRate: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTReferenceRate(rate))

	return nil
}
