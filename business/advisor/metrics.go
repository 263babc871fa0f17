package advisor

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecommendationRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_recommendation_runs_total",
			Help: "Count of recommendation engine runs by outcome (scored or fallback).",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(RecommendationRunsTotal)
}
