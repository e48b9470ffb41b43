package tenantdex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation names reported in logs and metric labels.
const (
	opLoad       = "load"
	opLoadFolder = "load_folder"
	opReset      = "reset"
	opQuery      = "query"
)

// sdkMetrics holds the collectors registered for the SDK.
type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	documents  *prometheus.CounterVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tenantdex",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "SDK operations by name and outcome.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tenantdex",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation latency, rebuild included for mutations.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"operation"}),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tenantdex",
			Subsystem: "sdk",
			Name:      "documents_total",
			Help:      "Documents loaded by mutations or returned by queries.",
		}, []string{"operation"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.documents); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers c, or swaps in the collector already registered
// under the same descriptor so several clients can share one registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("tenantdex: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("tenantdex: metric already registered with incompatible type: %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// opEvent describes one finished SDK call.
type opEvent struct {
	op     string
	tenant string
	// documents is the number loaded by a mutation or returned by a query.
	documents int
	start     time.Time
	err       error
}

// observer reports SDK calls to an optional slog logger and Prometheus registry.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

func (o *observer) observe(ctx context.Context, ev opEvent) {
	if o == nil {
		return
	}
	dur := time.Since(ev.start)

	if o.metrics != nil {
		status := "ok"
		if ev.err != nil {
			status = "error"
		}
		o.metrics.operations.WithLabelValues(ev.op, status).Inc()
		o.metrics.duration.WithLabelValues(ev.op).Observe(dur.Seconds())
		if ev.err == nil && ev.documents > 0 {
			o.metrics.documents.WithLabelValues(ev.op).Add(float64(ev.documents))
		}
	}

	if o.logger == nil {
		return
	}
	attrs := []slog.Attr{slog.String("op", ev.op), slog.Duration("duration", dur)}
	if ev.tenant != "" {
		attrs = append(attrs, slog.String("tenant", ev.tenant))
	}
	if ev.err != nil {
		o.logger.LogAttrs(ctx, slog.LevelWarn, "tenantdex operation failed", append(attrs, slog.Any("error", ev.err))...)
		return
	}
	o.logger.LogAttrs(ctx, slog.LevelDebug, "tenantdex operation completed", append(attrs, slog.Int("documents", ev.documents))...)
}
