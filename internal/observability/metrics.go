package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	commandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tpgctl",
			Subsystem: "protocol",
			Name:      "commands_total",
			Help:      "Completed command handshakes.",
		},
		[]string{"mnemonic", "result"},
	)
	commandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tpgctl",
			Subsystem: "protocol",
			Name:      "command_duration_seconds",
			Help:      "Full handshake duration per command, error retrieval included.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"mnemonic", "result"},
	)
	pressureReading = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "tpgctl",
			Subsystem: "gauge",
			Name:      "pressure",
			Help:      "Last valid pressure reading per channel, in the controller's configured unit.",
		},
		[]string{"channel"},
	)
	invalidReadings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tpgctl",
			Subsystem: "gauge",
			Name:      "readings_invalid_total",
			Help:      "Pressure reads flagged invalid by measurement status.",
		},
		[]string{"channel", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(commandsTotal, commandDuration, pressureReading, invalidReadings)
	})
}

func RecordCommand(mnemonic, result string, duration time.Duration) {
	RegisterMetrics()
	commandsTotal.WithLabelValues(mnemonic, result).Inc()
	commandDuration.WithLabelValues(mnemonic, result).Observe(duration.Seconds())
}

func RecordPressure(channel int, pressure float64) {
	RegisterMetrics()
	pressureReading.WithLabelValues(strconv.Itoa(channel)).Set(pressure)
}

func RecordInvalidReading(channel int, status string) {
	RegisterMetrics()
	invalidReadings.WithLabelValues(strconv.Itoa(channel), status).Inc()
}
