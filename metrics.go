// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package tabeph

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts store and solver activity. A nil *Metrics records nothing.
type Metrics struct {
	records    *prometheus.CounterVec
	lookups    *prometheus.CounterVec
	exactHits  prometheus.Counter
	solves     *prometheus.CounterVec
	iterations prometheus.Histogram
}

// NewMetrics creates the collectors and registers them to reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		records: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabeph_records_total",
				Help: "Ephemeris records stored, by kind.",
			},
			[]string{"kind"},
		),
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabeph_lookups_total",
				Help: "Satellite state lookups, by outcome.",
			},
			[]string{"outcome"},
		),
		exactHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tabeph_lookup_exact_total",
				Help: "Lookups answered from a stored sample without interpolation.",
			},
		),
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabeph_range_solves_total",
				Help: "Corrected range computations, by mode and outcome.",
			},
			[]string{"mode", "outcome"},
		),
		iterations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tabeph_range_iterations",
				Help:    "Ephemeris lookups per successful range computation.",
				Buckets: []float64{1, 2, 3, 4, 5, 6},
			},
		),
	}
	reg.MustRegister(m.records, m.lookups, m.exactHits, m.solves, m.iterations)
	return m
}

func (m *Metrics) addRecord(kind RecordKind) {
	if m == nil {
		return
	}
	m.records.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) observeLookup(err error, exact bool) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(errorKind(err)).Inc()
	if exact {
		m.exactHits.Inc()
	}
}

func (m *Metrics) observeSolve(mode Mode, iter int, err error) {
	if m == nil {
		return
	}
	m.solves.WithLabelValues(mode.String(), errorKind(err)).Inc()
	if err == nil {
		m.iterations.Observe(float64(iter))
	}
}
