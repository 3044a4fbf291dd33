package observability

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/danmuck/disctl/internal/protocol/pdu"
	"github.com/danmuck/disctl/internal/protocol/record"
	"github.com/danmuck/disctl/internal/protocol/wire"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "disctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "disctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	pduDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "disctl",
			Subsystem: "pdu",
			Name:      "decoded_total",
			Help:      "PDUs decoded, by type and protocol family.",
		},
		[]string{"type", "family"},
	)
	pduDecodeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "disctl",
			Subsystem: "pdu",
			Name:      "decode_errors_total",
			Help:      "Datagrams rejected by the decoder, by reason.",
		},
		[]string{"reason"},
	)
	pduEncodedBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "disctl",
			Subsystem: "pdu",
			Name:      "encoded_bytes_total",
			Help:      "Bytes of PDUs encoded for sending, by type.",
		},
		[]string{"type"},
	)
	datagramBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "disctl",
			Subsystem: "receiver",
			Name:      "datagram_bytes",
			Help:      "Size of received datagrams in bytes.",
			Buckets:   prometheus.ExponentialBuckets(16, 2, 10),
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, pduDecoded, pduDecodeErrors, pduEncodedBytes, datagramBytes)
	})
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

func RecordDecoded(h pdu.Header) {
	RegisterMetrics()
	pduDecoded.WithLabelValues(h.PduType.String(), h.ProtocolFamily.String()).Inc()
}

func RecordDecodeError(err error) {
	RegisterMetrics()
	pduDecodeErrors.WithLabelValues(DecodeErrorReason(err)).Inc()
}

func RecordEncoded(t pdu.Type, n int) {
	RegisterMetrics()
	pduEncodedBytes.WithLabelValues(t.String()).Add(float64(n))
}

func RecordDatagram(n int) {
	RegisterMetrics()
	datagramBytes.Observe(float64(n))
}

// DecodeErrorReason maps a decode failure to a low-cardinality label.
func DecodeErrorReason(err error) string {
	switch {
	case errors.Is(err, pdu.ErrUnknownType):
		return "unknown_type"
	case errors.Is(err, pdu.ErrInvalidLength):
		return "invalid_length"
	case errors.Is(err, pdu.ErrPduTooLarge):
		return "too_large"
	case errors.Is(err, record.ErrTooManyElements):
		return "too_many_elements"
	case errors.Is(err, wire.ErrTruncated):
		return "truncated"
	default:
		return "other"
	}
}
