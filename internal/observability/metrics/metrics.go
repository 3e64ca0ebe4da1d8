package metrics

import "github.com/prometheus/client_golang/prometheus"

// SiteMetrics exposes counters for the public API flows.
type SiteMetrics struct {
	slotFetches *prometheus.CounterVec
	bookings    *prometheus.CounterVec
	contacts    *prometheus.CounterVec
}

func NewSiteMetrics(reg prometheus.Registerer) *SiteMetrics {
	m := &SiteMetrics{
		slotFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "booking",
			Name:      "slot_fetch_total",
			Help:      "Total slot-availability fetches",
		}, []string{"outcome", "cache"}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "booking",
			Name:      "bookings_total",
			Help:      "Total booking creation attempts",
		}, []string{"outcome"}),
		contacts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "contact",
			Name:      "submissions_total",
			Help:      "Total contact-form submissions",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.slotFetches, m.bookings, m.contacts)
	return m
}

func (m *SiteMetrics) ObserveSlotFetch(outcome string, cached bool) {
	if m == nil {
		return
	}
	label := "miss"
	if cached {
		label = "hit"
	}
	m.slotFetches.WithLabelValues(outcome, label).Inc()
}

func (m *SiteMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(outcome).Inc()
}

func (m *SiteMetrics) ObserveContact(outcome string) {
	if m == nil {
		return
	}
	m.contacts.WithLabelValues(outcome).Inc()
}
