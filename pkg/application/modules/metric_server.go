package modules

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"rate_audit/pkg/metrics"
)

// MetricServer serves /metrics and publishes the build info gauge.
type MetricServer struct {
	ListenAddress string
	Version       string
}

func (m MetricServer) Run(ctx context.Context, g *errgroup.Group) {
	metrics.SetBuildInfo(m.Version)

	prometheusServer := metrics.NewPrometheusServer(m.ListenAddress)

	g.Go(func() error {
		if err := prometheusServer.Run(ctx); err != nil {
			return fmt.Errorf("prometheusServer.Run: %w", err)
		}

		return nil
	})
}
