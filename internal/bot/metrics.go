package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CommandsProcessed    *prometheus.CounterVec
	ErrorsTotal          prometheus.Counter
	UpdateProcessingTime prometheus.Histogram
	BookingsCreated      *prometheus.CounterVec
	BookingsCanceled     *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		CommandsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "telegram_bot_commands_processed_total",
			Help: "Total number of commands processed",
		}, []string{"command"}),

		ErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "telegram_bot_errors_total",
			Help: "Total number of handler errors and panics",
		}),

		UpdateProcessingTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "telegram_bot_update_processing_time_seconds",
			Help:    "Time spent processing updates",
			Buckets: prometheus.DefBuckets,
		}),

		BookingsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "telegram_bot_bookings_created_total",
			Help: "Total number of duty bookings created",
		}, []string{"duty"}),

		BookingsCanceled: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "telegram_bot_bookings_canceled_total",
			Help: "Total number of duty bookings canceled",
		}, []string{"duty"}),
	}
}
