package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sarchlab/astk/timecontrol"
)

type metrics struct {
	registry    *prometheus.Registry
	steps       prometheus.Counter
	activeSteps *prometheus.CounterVec
	stepHours   *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "astk_steps_total",
			Help: "Total count of joint steps handled.",
		}),
		activeSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "astk_active_steps_total",
			Help: "Total count of steps with a non-zero dt, by stream.",
		}, []string{"stream"}),
		stepHours: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "astk_step_hours_total",
			Help: "Sum of the dt of the steps, by stream.",
		}, []string{"stream"}),
	}

	m.registry.MustRegister(m.steps, m.activeSteps, m.stepHours)

	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveFrame counts a handled frame in the metrics served on /metrics.
func (m *Monitor) ObserveFrame(frame timecontrol.Frame) {
	m.metrics.steps.Inc()

	for name := range frame {
		step, ok := frame.Step(name)
		if !ok || !step.IsActive() {
			continue
		}

		m.metrics.activeSteps.WithLabelValues(name).Inc()
		m.metrics.stepHours.WithLabelValues(name).Add(step.DT())
	}
}
