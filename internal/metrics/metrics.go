// AngelaMos | 2026
// metrics.go

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "jeopardy"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route pattern, method and status",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	// checkouts counts completed checkouts. Labels: membership
	checkouts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "purchase",
		Name:      "checkouts_total",
		Help:      "Completed checkouts by membership tier",
	}, []string{"membership"})

	revenue = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "purchase",
		Name:      "revenue_minor_units_total",
		Help:      "Sum of price paid in minor currency units",
	}, []string{"membership"})

	// notifications counts download notifications. Labels: channel, status
	notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "notify",
		Name:      "deliveries_total",
		Help:      "Purchase download notifications by channel and outcome",
	}, []string{"channel", "status"})

	quizAnswers = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "quiz",
		Name:      "answers_total",
		Help:      "Submitted quiz answers by correctness",
	}, []string{"correct"})

	cartAdds = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cart",
		Name:      "adds_total",
		Help:      "Cart add attempts by outcome",
	}, []string{"result"})

	pointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "score",
		Name:      "points_awarded_total",
		Help:      "Points added to player totals",
	})

	membershipChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "membership",
		Name:      "changes_total",
		Help:      "Membership activations by tier and source",
	}, []string{"tier", "source"})
)

func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request count and latency keyed by the chi route
// pattern so path parameters do not explode label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// ObserveCheckout counts one purchase record. Negative amounts are not
// added to revenue since counters only grow.
func ObserveCheckout(membership string, pricePaid int64) {
	checkouts.WithLabelValues(membership).Inc()
	if pricePaid > 0 {
		revenue.WithLabelValues(membership).Add(float64(pricePaid))
	}
}

func ObserveNotification(channel string, err error) {
	status := "sent"
	if err != nil {
		status = "failed"
	}
	notifications.WithLabelValues(channel, status).Inc()
}

func ObserveQuizAnswer(correct bool) {
	quizAnswers.WithLabelValues(strconv.FormatBool(correct)).Inc()
}

func ObserveMembershipChange(tier, source string) {
	membershipChanges.WithLabelValues(tier, source).Inc()
}

// ObserveCartAdd labels an add as "added", "duplicate" or "error".
func ObserveCartAdd(result string) {
	cartAdds.WithLabelValues(result).Inc()
}

func ObservePoints(delta int64) {
	pointsAwarded.Add(float64(delta))
}
