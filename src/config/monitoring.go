package config

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const metricsNamespace = "staffdesk"

type Metrics struct {
	Registry        *prometheus.Registry
	RequestDuration *prometheus.HistogramVec
	Employees       prometheus.Gauge
}

func NewMetrics() *Metrics {
	self := &Metrics{
		Registry: prometheus.NewRegistry(),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests by route template.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		Employees: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "employees",
			Help:      "Number of employees as of the last statistics summary.",
		}),
	}

	self.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		self.RequestDuration,
		self.Employees,
	)

	return self
}
