// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the prometheus collectors updated by Pipeline.Run.
type Metrics struct {
	Subjects *prometheus.CounterVec
	Duration prometheus.Histogram
	Accuracy *prometheus.GaugeVec
}

// NewMetrics creates the pipeline collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Subjects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "splithalf_subjects_total",
				Help: "Subjects processed, by status (ok or failed)",
			},
			[]string{"status"},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "splithalf_subject_duration_seconds",
				Help:    "Time to load and analyze one subject",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
			},
		),
		Accuracy: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "splithalf_subject_accuracy_percent",
				Help: "Split-half decoding accuracy of each subject",
			},
			[]string{"subject"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Subjects, m.Duration, m.Accuracy)
	}
	return m
}

func (m *Metrics) observe(oc *Outcome) {
	if m == nil {
		return
	}
	m.Duration.Observe(oc.Duration.Seconds())
	if oc.Err != nil {
		m.Subjects.WithLabelValues("failed").Inc()
		return
	}
	m.Subjects.WithLabelValues("ok").Inc()
	m.Accuracy.WithLabelValues(oc.Subject).Set(oc.Result.Accuracy)
}
