package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "site_comments_created_total",
	Help: "Number of comments stored",
})

var LoginsCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "site_logins_completed_total",
	Help: "Number of finished OAuth logins",
})

var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "site_http_requests_total",
	Help: "HTTP requests by route and status code",
}, []string{"method", "route", "status"})

var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "site_http_request_duration_seconds",
	Help:    "HTTP request latency by route",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route"})
