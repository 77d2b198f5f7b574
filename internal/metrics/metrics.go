package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache names used as the "cache" label.
const (
	CacheExchangeRate = "exchange_rate"
	CacheCurrencyList = "currency_list"
)

// Lookup results and upstream outcomes used as label values.
const (
	ResultHit      = "hit"
	ResultMiss     = "miss"
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	CacheLookupsTotal     *prometheus.CounterVec
	UpstreamRequestsTotal *prometheus.CounterVec
	LoanApplicationsTotal *prometheus.CounterVec
}

// NewMetrics registers the application collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_cache_lookups_total",
				Help: "Exchange rate service cache lookups by cache and result",
			},
			[]string{"cache", "result"},
		),

		UpstreamRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "currency_api_requests_total",
				Help: "Requests sent to the third-party currency API by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),

		LoanApplicationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_applications_submitted_total",
				Help: "Loan applications stored, by origin currency",
			},
			[]string{"currency"},
		),
	}
}

// ObserveCacheLookup records a cache hit or miss. Safe on a nil receiver.
func (m *Metrics) ObserveCacheLookup(cache string, hit bool) {
	if m == nil {
		return
	}
	result := ResultMiss
	if hit {
		result = ResultHit
	}
	m.CacheLookupsTotal.WithLabelValues(cache, result).Inc()
}

// ObserveUpstreamRequest records one call to the currency API. Safe on a nil receiver.
func (m *Metrics) ObserveUpstreamRequest(endpoint string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
}

// ObserveLoanApplication records a stored loan application. Safe on a nil receiver.
func (m *Metrics) ObserveLoanApplication(currency string) {
	if m == nil {
		return
	}
	m.LoanApplicationsTotal.WithLabelValues(currency).Inc()
}
