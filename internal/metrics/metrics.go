// Package metrics instruments the gateway HTTP transport with prometheus collectors
package metrics

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// register registers c with reg, returning the already registered collector
// when an identical one exists
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return c, fmt.Errorf("collector registered with a different type: %T", are.ExistingCollector)
			}
			return existing, nil
		}
		return c, err
	}
	return c, nil
}

// InstrumentRoundTripper wraps next to capture the number of in-flight
// requests, request totals by code and method, and request latency
func InstrumentRoundTripper(reg prometheus.Registerer, service string, next http.RoundTripper) (http.RoundTripper, error) {
	if next == nil {
		next = http.DefaultTransport
	}

	inFlight, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "checkout_client_in_flight_requests",
		Help:        "A gauge of in-flight requests to the checkout gateway.",
		ConstLabels: prometheus.Labels{"service": service},
	}))
	if err != nil {
		return nil, err
	}

	counter, err := register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "checkout_client_requests_total",
			Help:        "A counter for requests to the checkout gateway.",
			ConstLabels: prometheus.Labels{"service": service},
		},
		[]string{"code", "method"},
	))
	if err != nil {
		return nil, err
	}

	duration, err := register(reg, prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "checkout_client_request_duration_seconds",
			Help:        "A histogram of checkout gateway request latencies.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: prometheus.Labels{"service": service},
		},
		[]string{"method"},
	))
	if err != nil {
		return nil, err
	}

	return promhttp.InstrumentRoundTripperInFlight(inFlight,
		promhttp.InstrumentRoundTripperCounter(counter,
			promhttp.InstrumentRoundTripperDuration(duration, next),
		),
	), nil
}

// Summary flattens the counters and gauges gathered from g into name{labels} -> value
func Summary(g prometheus.Gatherer) (map[string]float64, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "service" {
					continue
				}
				key += fmt.Sprintf("{%s=%s}", lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[key] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				out[key+"_count"] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out, nil
}
