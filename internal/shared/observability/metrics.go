package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ImportAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docscope_import_attempts_total",
		Help: "Total number of module import attempts, by outcome.",
	}, []string{"outcome"})

	MockModulesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docscope_mock_modules_created_total",
		Help: "Total number of mock modules synthesized for unavailable dependencies.",
	})

	MockedModules = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "docscope_mocked_modules",
		Help: "Current number of mocked module names held in the module cache.",
	})

	ResolutionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "docscope_resolution_seconds",
		Help:    "Time spent resolving a dotted symbol path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	MemberEnumerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "docscope_member_enumeration_seconds",
		Help:    "Time spent enumerating members of a resolved object.",
		Buckets: prometheus.DefBuckets,
	})

	AttributeLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docscope_attribute_lookups_total",
		Help: "Total number of attribute lookups during resolution, by outcome.",
	}, []string{"outcome"})
)

const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
	OutcomeCached = "cached"
	OutcomeMocked = "mocked"
)
