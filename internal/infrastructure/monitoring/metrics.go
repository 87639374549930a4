package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type LeaderboardMetrics struct {
	TopCustomerReservations *prometheus.GaugeVec
	LastRefresh             prometheus.Gauge
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lunchly_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Leaderboard = LeaderboardMetrics{
		TopCustomerReservations: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lunchly_top_customer_reservations",
				Help: "Reservation count of each customer in the current top-customers ranking.",
			},
			[]string{"customer_id", "rank"},
		),
		LastRefresh: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "lunchly_leaderboard_last_refresh_timestamp_seconds",
				Help: "Unix time of the last successful leaderboard refresh.",
			},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

// ObserveQuery is meant to be deferred with a pointer to the caller's named
// error result.
func ObserveQuery(queryName string, start time.Time, err *error) {
	status := StatusSuccess
	if err != nil && *err != nil {
		status = StatusError
	}
	RecordDBQuery(queryName, status, time.Since(start))
}

type RankedCustomer struct {
	CustomerID      int64
	NumReservations int64
}

// SetLeaderboard replaces the published ranking with ranked, in order.
func SetLeaderboard(ranked []RankedCustomer, at time.Time) {
	Leaderboard.TopCustomerReservations.Reset()
	for i, rc := range ranked {
		Leaderboard.TopCustomerReservations.
			WithLabelValues(strconv.FormatInt(rc.CustomerID, 10), strconv.Itoa(i+1)).
			Set(float64(rc.NumReservations))
	}
	Leaderboard.LastRefresh.Set(float64(at.Unix()))
}
