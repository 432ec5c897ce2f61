package gerrit

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus/push"
)

const metricsJob = "gerritforge"

// PushMetrics sends the request metrics collected during this run to a
// Prometheus Pushgateway.
func PushMetrics(ctx context.Context, gatewayURL string) error {
	if err := push.New(gatewayURL, metricsJob).
		Collector(mRequestCount).
		Collector(mRequestDuration).
		Collector(mCacheHits).
		PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", gatewayURL, err)
	}
	return nil
}
