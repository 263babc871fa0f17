package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the chat message handler, end to end
	ChatMessageLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "chat_message_latency_seconds",
		Help:    "Latency of the chat send-message handler",
		Buckets: prometheus.DefBuckets,
	})

	// Sessions started since process launch
	SessionsStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chat_sessions_started_total",
		Help: "Total number of chat sessions started",
	})

	// Profiles that reached completeness and triggered recommendation runs
	ProfilesCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chat_profiles_completed_total",
		Help: "Total number of profiles that reached completeness",
	})

	// Phrasing provider outcomes, labeled by provider name and result
	PhrasingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phrasing_requests_total",
			Help: "Count of phrasing provider calls by provider and outcome.",
		},
		[]string{"provider", "outcome"},
	)
)

func Init() {
	prometheus.MustRegister(
		ChatMessageLatency,
		SessionsStarted,
		ProfilesCompleted,
		PhrasingRequestsTotal,
	)
}
