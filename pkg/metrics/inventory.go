package metrics

import "github.com/prometheus/client_golang/prometheus"

// InventoryMetrics counts domain events worth alerting on.
type InventoryMetrics struct {
	purchases  prometheus.Counter
	deliveries prometheus.Counter
	conflicts  *prometheus.CounterVec
}

// NewInventoryMetrics registers the inventory domain metrics.
func NewInventoryMetrics(reg prometheus.Registerer) *InventoryMetrics {
	if reg == nil {
		return &InventoryMetrics{}
	}
	purchases := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inventory_purchases_total",
		Help: "Purchase orders recorded.",
	})
	deliveries := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inventory_deliveries_total",
		Help: "Orders marked delivered.",
	})
	conflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_state_conflicts_total",
		Help: "Rejected state transitions by reason.",
	}, []string{"reason"})
	reg.MustRegister(purchases, deliveries, conflicts)
	return &InventoryMetrics{
		purchases:  purchases,
		deliveries: deliveries,
		conflicts:  conflicts,
	}
}

// IncPurchase counts one recorded purchase.
func (m *InventoryMetrics) IncPurchase() {
	if m == nil || m.purchases == nil {
		return
	}
	m.purchases.Inc()
}

// IncDelivery counts one delivery.
func (m *InventoryMetrics) IncDelivery() {
	if m == nil || m.deliveries == nil {
		return
	}
	m.deliveries.Inc()
}

// IncStateConflict counts a rejected transition.
func (m *InventoryMetrics) IncStateConflict(reason string) {
	if m == nil || m.conflicts == nil {
		return
	}
	m.conflicts.WithLabelValues(normalizeLabel(reason)).Inc()
}
