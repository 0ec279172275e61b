// Package metrics expone la instrumentación Prometheus del punto de venta.
//
// Se conecta una sola vez en cmd/api:
//
//	m := metrics.New()
//	app.Use(m.Middleware())
//	app.Get("/metrics", m.Handler())
//
// y se pasa al checkout con checkout.WithMetrics(m).
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "accupos"

// Metrics agrupa los colectores sobre un registry propio (no el global),
// así cada test puede crear el suyo.
type Metrics struct {
	Registry *prometheus.Registry

	CheckoutTotal    *prometheus.CounterVec
	CheckoutDuration *prometheus.HistogramVec
	RequestTotal     *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestInFlight  prometheus.Gauge
}

// New crea y registra los colectores.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		CheckoutTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checkout_total",
				Help:      "Checkouts procesados por medio de pago y resultado.",
			},
			[]string{"payment_method", "outcome"},
		),
		CheckoutDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "checkout_duration_seconds",
				Help:      "Duración del checkout completo (validación + transacción).",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"outcome"},
		),
		RequestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total de requests HTTP.",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duración de los requests HTTP en segundos.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		RequestInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Requests HTTP en curso.",
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.CheckoutTotal,
		m.CheckoutDuration,
		m.RequestTotal,
		m.RequestDuration,
		m.RequestInFlight,
	)
	return m
}

// ObserveCheckout implementa checkout.Metrics.
func (m *Metrics) ObserveCheckout(paymentMethod, outcome string, elapsed time.Duration) {
	m.CheckoutTotal.WithLabelValues(paymentMethod, outcome).Inc()
	m.CheckoutDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// Middleware registra conteo y latencia por ruta (el patrón, no la URL concreta,
// para no disparar la cardinalidad con IDs).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		m.RequestInFlight.Inc()
		defer m.RequestInFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		route := c.Route().Path
		labels := []string{c.Method(), route, strconv.Itoa(status)}
		m.RequestTotal.WithLabelValues(labels...).Inc()
		m.RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{
		Registry: m.Registry,
	}))
}
