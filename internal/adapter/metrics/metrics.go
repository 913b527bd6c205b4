package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AttendanceMetrics holds all Prometheus metrics for the attendance service.
type AttendanceMetrics struct {
	CheckinsTotal  *prometheus.CounterVec
	CheckoutsTotal *prometheus.CounterVec
	OpenSessions   prometheus.Gauge
	LoginsTotal    *prometheus.CounterVec
}

// NewAttendanceMetrics initializes and registers the Prometheus metrics.
func NewAttendanceMetrics() *AttendanceMetrics {
	return &AttendanceMetrics{
		CheckinsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrsfera",
			Subsystem: "attendance",
			Name:      "checkins_total",
			Help:      "Total number of check-in attempts by status.",
		}, []string{"status"}), // status: ok, conflict, error
		CheckoutsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrsfera",
			Subsystem: "attendance",
			Name:      "checkouts_total",
			Help:      "Total number of check-out attempts by status.",
		}, []string{"status"}),
		OpenSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "hrsfera",
			Subsystem: "attendance",
			Name:      "open_sessions",
			Help:      "Number of currently open attendance sessions.",
		}),
		LoginsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrsfera",
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Total number of login attempts by status.",
		}, []string{"status"}), // status: ok, invalid, error
	}
}
