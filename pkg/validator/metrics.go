/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	validationErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "confmodel_validation_errors_total",
			Help: "Total number of validation error tokens reported",
		},
	)
	validationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "confmodel_validation_runs_total",
			Help: "Total number of validation runs by outcome",
		},
		[]string{"status"},
	)
)
