package appirater

import "github.com/prometheus/client_golang/prometheus"

// metrics receives tracker events. The default implementation does nothing.
type metrics interface {
	launchRecorded()
	promptShown()
	promptSkipped()
	responseApplied(Response)
}

type promMetrics struct {
	launches  prometheus.Counter
	shown     prometheus.Counter
	skipped   prometheus.Counter
	responses *prometheus.CounterVec
}

func newPromMetrics(reg prometheus.Registerer) (*promMetrics, error) {
	m := &promMetrics{
		launches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "appirater_launches_total",
			Help: "Total number of recorded application launches",
		}),
		shown: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "appirater_prompts_shown_total",
			Help: "Total number of rating prompts presented",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "appirater_prompts_skipped_total",
			Help: "Total number of evaluations where the policy declined to prompt",
		}),
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appirater_responses_total",
			Help: "Total number of applied prompt responses",
		}, []string{"response"}),
	}

	for _, c := range []prometheus.Collector{m.launches, m.shown, m.skipped, m.responses} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *promMetrics) launchRecorded() { m.launches.Inc() }
func (m *promMetrics) promptShown()    { m.shown.Inc() }
func (m *promMetrics) promptSkipped()  { m.skipped.Inc() }

func (m *promMetrics) responseApplied(r Response) {
	m.responses.WithLabelValues(r.String()).Inc()
}

// noopMetrics is used when no registerer is configured.
type noopMetrics struct{}

func (noopMetrics) launchRecorded()          {}
func (noopMetrics) promptShown()             {}
func (noopMetrics) promptSkipped()           {}
func (noopMetrics) responseApplied(Response) {}
