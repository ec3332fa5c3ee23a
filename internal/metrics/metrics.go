// Package metrics содержит prometheus-метрики проверок доступа.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/readiness-entitlements/internal/models"
)

// Metrics собирает счётчики решений о доступе, ошибок хранилищ и обращений к кешу.
// Методы безопасно вызывать на nil.
type Metrics struct {
	decisions   *prometheus.CounterVec
	storeErrors *prometheus.CounterVec
	cacheLookup *prometheus.CounterVec
}

// New создаёт метрики и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "entitlements",
			Name:      "decisions_total",
			Help:      "Access decisions by resolved state.",
		}, []string{"state"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "entitlements",
			Name:      "store_errors_total",
			Help:      "Failed reads from payment and profile stores.",
		}, []string{"store"}),
		cacheLookup: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "entitlements",
			Name:      "cache_lookups_total",
			Help:      "Status cache lookups by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.decisions, m.storeErrors, m.cacheLookup)
	return m
}

// Decision учитывает решение о доступе.
func (m *Metrics) Decision(state models.AccessState) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(string(state)).Inc()
}

// StoreError учитывает ошибку чтения из хранилища store.
func (m *Metrics) StoreError(store string) {
	if m == nil {
		return
	}
	m.storeErrors.WithLabelValues(store).Inc()
}

// CacheLookup учитывает обращение к кешу: hit, miss или error.
func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookup.WithLabelValues(result).Inc()
}
