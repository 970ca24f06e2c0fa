// ABOUTME: Prometheus metrics for connect attempts, session restores, and discovery.
// ABOUTME: Optional; a nil *Metrics disables instrumentation entirely.

package wallet

import "github.com/prometheus/client_golang/prometheus"

// Connect and restore outcome label values.
const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
	outcomeSkipped = "skipped"
)

// Metrics holds the kit's instrumentation. Construct with NewMetrics; a nil
// Metrics pointer is valid and records nothing.
type Metrics struct {
	connectAttempts   *prometheus.CounterVec
	restoreAttempts   *prometheus.CounterVec
	discoveredWallets prometheus.Gauge
}

// NewMetrics creates the kit metrics and registers them with reg when reg is
// non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		connectAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coven_wallet",
			Name:      "connect_attempts_total",
			Help:      "Connect attempts by outcome.",
		}, []string{"outcome"}),
		restoreAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coven_wallet",
			Name:      "restore_attempts_total",
			Help:      "Session restore attempts by outcome.",
		}, []string{"outcome"}),
		discoveredWallets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "coven_wallet",
			Name:      "discovered_wallets",
			Help:      "Wallets currently passing the capability filter.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.connectAttempts, m.restoreAttempts, m.discoveredWallets)
	}
	return m
}

func (m *Metrics) connectOutcome(outcome string) {
	if m == nil {
		return
	}
	m.connectAttempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) restoreOutcome(outcome string) {
	if m == nil {
		return
	}
	m.restoreAttempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) setDiscovered(n int) {
	if m == nil {
		return
	}
	m.discoveredWallets.Set(float64(n))
}
