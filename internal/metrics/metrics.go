// Package metrics содержит счётчики Prometheus для операций магазина.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Результаты покупки для метки result.
const (
	PurchaseSuccess        = "success"
	PurchaseOutOfStock     = "out_of_stock"
	PurchasePaymentFailure = "payment_failure"
)

// Metrics хранит счётчики операций со счётом и покупок.
type Metrics struct {
	registry    *prometheus.Registry
	withdrawals *prometheus.CounterVec
	deposits    prometheus.Counter
	purchases   *prometheus.CounterVec
}

// New создаёт счётчики и регистрирует их в собственном реестре.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		withdrawals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "retailstore",
			Name:      "withdrawals_total",
			Help:      "Total number of withdrawals by outcome.",
		}, []string{"outcome"}),
		deposits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "retailstore",
			Name:      "deposits_total",
			Help:      "Total number of deposits.",
		}),
		purchases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "retailstore",
			Name:      "purchases_total",
			Help:      "Total number of purchases by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(m.withdrawals, m.deposits, m.purchases)
	return m
}

// ObserveWithdrawal учитывает списание с указанным результатом.
func (m *Metrics) ObserveWithdrawal(outcome string) {
	if m == nil {
		return
	}
	m.withdrawals.WithLabelValues(outcome).Inc()
}

// ObserveDeposit учитывает пополнение счёта.
func (m *Metrics) ObserveDeposit() {
	if m == nil {
		return
	}
	m.deposits.Inc()
}

// ObservePurchase учитывает покупку с указанным результатом.
func (m *Metrics) ObservePurchase(result string) {
	if m == nil {
		return
	}
	m.purchases.WithLabelValues(result).Inc()
}

// Handler возвращает HTTP-обработчик для выгрузки метрик.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
