package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ChatMetrics exposes counters/histograms for the chat, booking and LLM flows.
type ChatMetrics struct {
	messagesTotal    *prometheus.CounterVec
	transitionsTotal *prometheus.CounterVec
	handleLatency    prometheus.Histogram
	bookingsTotal    *prometheus.CounterVec
	llmRequests      *prometheus.CounterVec
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medchat",
			Subsystem: "chat",
			Name:      "messages_total",
			Help:      "Chat messages handled, by stage after handling and outcome",
		}, []string{"stage", "outcome"}),
		transitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medchat",
			Subsystem: "chat",
			Name:      "stage_transitions_total",
			Help:      "Dialogue stage changes",
		}, []string{"from", "to"}),
		handleLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "medchat",
			Subsystem: "chat",
			Name:      "handle_seconds",
			Help:      "Time spent handling one chat message, collaborator calls included",
			Buckets:   prometheus.DefBuckets,
		}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medchat",
			Name:      "booking_total",
			Help:      "Appointment booking attempts",
		}, []string{"status"}),
		llmRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medchat",
			Name:      "llm_requests_total",
			Help:      "Medical question completions, by provider and status",
		}, []string{"provider", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.messagesTotal, m.transitionsTotal, m.handleLatency, m.bookingsTotal, m.llmRequests)
	return m
}

func (m *ChatMetrics) ObserveMessage(stage, outcome string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(stage, outcome).Inc()
}

// ObserveTransition counts a stage change; unchanged stages are ignored.
func (m *ChatMetrics) ObserveTransition(from, to string) {
	if m == nil || from == to {
		return
	}
	m.transitionsTotal.WithLabelValues(from, to).Inc()
}

func (m *ChatMetrics) ObserveHandleLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.handleLatency.Observe(d.Seconds())
}

func (m *ChatMetrics) ObserveBooking(status string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(status).Inc()
}

func (m *ChatMetrics) ObserveLLMRequest(provider, status string) {
	if m == nil {
		return
	}
	m.llmRequests.WithLabelValues(provider, status).Inc()
}
