package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "storefront"

// CounterFunc exports load as a Prometheus counter.
func CounterFunc(subsystem, name, help string, load func() uint64) prometheus.Collector {
	return prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, func() float64 {
		return float64(load())
	})
}

// GaugeFunc exports load as a Prometheus gauge.
func GaugeFunc(subsystem, name, help string, load func() float64) prometheus.Collector {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, load)
}

// Collector exports c as a Prometheus counter.
func (c *Counter) Collector(subsystem, name, help string) prometheus.Collector {
	return CounterFunc(subsystem, name, help, c.Load)
}

// Collector exports g in seconds as a Prometheus gauge.
func (g *DurationGauge) Collector(subsystem, name, help string) prometheus.Collector {
	return GaugeFunc(subsystem, name, help, func() float64 {
		return g.Load().Seconds()
	})
}
