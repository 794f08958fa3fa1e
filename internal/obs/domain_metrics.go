package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// OrderCreateTotal counts provider order creation outcomes.
	OrderCreateTotal *prometheus.CounterVec
	// PaymentVerifyTotal counts payment verification outcomes, including
	// signature mismatches worth alerting on.
	PaymentVerifyTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		OrderCreateTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_create_total",
			Help:      "Count of provider order creation outcomes.",
		}, []string{"result"})
		PaymentVerifyTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_verify_total",
			Help:      "Count of payment verification outcomes.",
		}, []string{"result"})

		OrderCreateTotal = registerCounterVec(reg, OrderCreateTotal)
		PaymentVerifyTotal = registerCounterVec(reg, PaymentVerifyTotal)
	})
}
