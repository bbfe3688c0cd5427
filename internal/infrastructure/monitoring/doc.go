/*
Package monitoring provides metrics collection for the HTTP client and its
tool provider.

# Overview

Collectors are registered on a registry owned by each Metrics value rather
than on the global default registry.

# Metrics

- Outbound requests (count by status, latency, response size, errors, retries)
- Header lines serialized and parsed
- Provider tool calls (count by status, latency)

# Usage

	metrics := monitoring.NewMetrics()
	c := client.New(cfg.Client, logger, client.WithMetrics(metrics))

	timer := monitoring.NewTimer(metrics, "http.buildURL")
	// ... perform operation ...
	timer.Stop("success")

# Metrics Endpoint

	import "github.com/prometheus/client_golang/prometheus/promhttp"
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
*/
package monitoring
