package gerrit

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

var (
	mRequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gerritforge_gerrit_request_count",
			Help: "The total number of requests sent to the Gerrit REST API",
		},
		[]string{"code", "method"},
	)
	mRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gerritforge_gerrit_request_duration_seconds",
			Help:    "The duration of requests sent to the Gerrit REST API",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"code", "method"},
	)
	mCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gerritforge_gerrit_cache_hits_total",
			Help: "The number of GET requests answered from the response cache",
		},
	)
)

// limitedTransport waits for the limiter before every request.
type limitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// newTransport wraps base with request metrics and a client-side rate limit.
// A non-positive requestsPerSecond disables the limit.
func newTransport(base http.RoundTripper, requestsPerSecond float64) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}

	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	burst := max(int(requestsPerSecond), 1)

	return promhttp.InstrumentRoundTripperCounter(mRequestCount,
		promhttp.InstrumentRoundTripperDuration(mRequestDuration,
			&limitedTransport{base: base, limiter: rate.NewLimiter(limit, burst)}))
}
