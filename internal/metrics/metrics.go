// Package metrics exports layout engine measurements to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "bondgraph"

// Collector records engine metrics in its own registry.
type Collector struct {
	registry *prometheus.Registry

	nodes    prometheus.Gauge
	edges    prometheus.Gauge
	fps      prometheus.Gauge
	rebuild  prometheus.Histogram
	commands *prometheus.CounterVec
}

// NewCollector creates and registers every metric.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "nodes",
			Help:      "Number of particles in the layout.",
		}),
		edges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "edges",
			Help:      "Number of active bonds.",
		}),
		fps: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "average_fps",
			Help:      "Smoothed simulation frame rate.",
		}),
		rebuild: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rebuild_duration_seconds",
			Help:      "Time spent rebuilding the bond graph.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Topology and velocity commands applied, by command.",
		}, []string{"command"}),
	}
	c.registry.MustRegister(c.nodes, c.edges, c.fps, c.rebuild, c.commands)
	return c
}

// ObserveRebuild records one bond rebuild.
func (c *Collector) ObserveRebuild(d time.Duration) {
	c.rebuild.Observe(d.Seconds())
}

// SetPopulation records node and edge counts.
func (c *Collector) SetPopulation(nodes, edges int) {
	c.nodes.Set(float64(nodes))
	c.edges.Set(float64(edges))
}

// SetAverageFPS records the smoothed frame rate.
func (c *Collector) SetAverageFPS(fps float64) {
	c.fps.Set(fps)
}

// IncCommand counts one applied command.
func (c *Collector) IncCommand(name string) {
	c.commands.WithLabelValues(name).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (c *Collector) Serve(ctx context.Context, addr string, log *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("serving metrics", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
