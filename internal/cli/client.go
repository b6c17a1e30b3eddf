package cli

import (
	"net/http"

	"github.com/alexbotov/rdcheckout/internal/metrics"
	"github.com/alexbotov/rdcheckout/pkg/checkout"
	"github.com/prometheus/client_golang/prometheus"
)

// newClient builds a gateway client from the loaded configuration. The
// returned registry is nil unless metrics are enabled.
func (a *app) newClient() (*checkout.Client, *prometheus.Registry, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, nil, err
	}

	httpClient := &http.Client{Timeout: a.cfg.Gateway.Timeout}

	var registry *prometheus.Registry
	if a.cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		rt, err := metrics.InstrumentRoundTripper(registry, a.cfg.Metrics.Service, http.DefaultTransport)
		if err != nil {
			return nil, nil, err
		}
		httpClient.Transport = rt
	}

	clientCfg := a.cfg.Gateway.ClientConfig()
	clientCfg.HTTPClient = httpClient
	clientCfg.Logger = checkout.NewZerologLogger(a.logger)

	client, err := checkout.NewClient(clientCfg)
	if err != nil {
		return nil, nil, err
	}
	return client, registry, nil
}

// logMetrics writes the collected request metrics at info level
func (a *app) logMetrics(registry *prometheus.Registry) {
	if registry == nil {
		return
	}
	summary, err := metrics.Summary(registry)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to gather metrics")
		return
	}
	event := a.logger.Info()
	for name, value := range summary {
		event = event.Float64(name, value)
	}
	event.Msg("gateway request metrics")
}
