package siteconfig

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "siteconfig",
		Name:      "generations_total",
		Help:      "Content generation calls by mode and outcome.",
	}, []string{"mode", "outcome"})

	recordsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "siteconfig",
		Name:      "records_created_total",
		Help:      "Site config records inserted.",
	})

	recordsUpdatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "siteconfig",
		Name:      "records_updated_total",
		Help:      "Site config records updated.",
	})

	validationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "siteconfig",
		Name:      "validation_failures_total",
		Help:      "Candidates rejected by validation, by operation.",
	}, []string{"op"})

	duplicateIdentityTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "siteconfig",
		Name:      "duplicate_identity_total",
		Help:      "Create calls rejected because the slug already exists.",
	})
)
