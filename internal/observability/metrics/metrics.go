package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once                           sync.Once
	metricsRouter                  *chi.Mux
	operationLatency               *prometheus.HistogramVec
	httpRequestDurationHistogram   *prometheus.HistogramVec
	queueSendErrorCounter          prometheus.Counter
	clientRequestDurationHistogram *prometheus.HistogramVec
	pollerDurationHistogram        *prometheus.HistogramVec
	eventsCounter                  *prometheus.CounterVec
	totalSupplyGauge               *prometheus.GaugeVec
	holdersGauge                   *prometheus.GaugeVec
	rewardPoolGauge                prometheus.Gauge
	totalStakedGauge               prometheus.Gauge
	positionsGauge                 prometheus.Gauge
	dbLatency                      *prometheus.HistogramVec
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	operationLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "operation_latency_seconds",
			Help:    "Histogram of ledger and staking operation durations in seconds.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation", "status"},
	)

	httpRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of incoming http request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "route", "status"},
	)

	// client requests are the ones sending to other service
	clientRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outgoing client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"baseurl", "method", "path", "status"},
	)

	// add a counter for the number of errors from the fail to push message into queue
	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	eventsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_total",
			Help: "Number of committed events split by source and type",
		},
		[]string{"source", "type"},
	)

	totalSupplyGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "token_total_supply",
			Help: "Total supply of a token in base units",
		},
		[]string{"token"},
	)

	holdersGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "token_holders",
			Help: "Number of accounts holding a non-zero balance",
		},
		[]string{"token"},
	)

	rewardPoolGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "staking_reward_pool",
			Help: "Reward token balance of the staking engine account",
		},
	)

	totalStakedGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "staking_total_staked",
			Help: "Liquidity staked across all positions",
		},
	)

	positionsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "staking_positions",
			Help: "Number of staking positions ever opened",
		},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)

	prometheus.MustRegister(
		operationLatency,
		httpRequestDurationHistogram,
		queueSendErrorCounter,
		clientRequestDurationHistogram,
		pollerDurationHistogram,
		eventsCounter,
		totalSupplyGauge,
		holdersGauge,
		rewardPoolGauge,
		totalStakedGauge,
		positionsGauge,
		dbLatency,
	)
}

func RecordOperationLatency(d time.Duration, operation string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	operationLatency.WithLabelValues(operation, status.String()).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	dbLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

// RecordHttpRequestDuration records an incoming request once its route and status are known.
func RecordHttpRequestDuration(d time.Duration, method, route string, statusCode int) {
	httpRequestDurationHistogram.WithLabelValues(
		method,
		route,
		fmt.Sprintf("%d", statusCode),
	).Observe(d.Seconds())
}

// StartClientRequestDurationTimer starts a timer to measure outgoing client request duration.
func StartClientRequestDurationTimer(baseUrl, method, path string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		clientRequestDurationHistogram.WithLabelValues(
			baseUrl,
			method,
			path,
			fmt.Sprintf("%d", statusCode),
		).Observe(duration)
	}
}

func RecordQueueSendError() {
	queueSendErrorCounter.Inc()
}

func RecordEvent(source, typ string) {
	eventsCounter.WithLabelValues(source, typ).Inc()
}

func RecordTotalSupply(token string, supply sdkmath.Int) {
	totalSupplyGauge.WithLabelValues(token).Set(toFloat(supply))
}

func RecordHolders(token string, count int) {
	holdersGauge.WithLabelValues(token).Set(float64(count))
}

func RecordRewardPool(amount sdkmath.Int) {
	rewardPoolGauge.Set(toFloat(amount))
}

func RecordTotalStaked(amount sdkmath.Int) {
	totalStakedGauge.Set(toFloat(amount))
}

func RecordPositions(count int) {
	positionsGauge.Set(float64(count))
}

// toFloat loses precision for large amounts, gauges only need the magnitude.
func toFloat(v sdkmath.Int) float64 {
	f, _ := v.BigInt().Float64()
	return f
}
