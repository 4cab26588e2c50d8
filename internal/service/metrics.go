package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	assignmentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salondesk_package_assignments_total",
		Help: "Number of customer packages assigned.",
	})
	redemptionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salondesk_redemptions_total",
		Help: "Number of successful redemption batches.",
	})
	redemptionConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salondesk_redemption_conflicts_total",
		Help: "Number of redemptions rejected for insufficient balance.",
	})
	payrollComputationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salondesk_payroll_computations_total",
		Help: "Number of payroll statements computed.",
	})
)
