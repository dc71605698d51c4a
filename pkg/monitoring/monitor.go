package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	AssessmentsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessments_created_total",
			Help: "Assessments issued, by topic",
		},
		[]string{"topic"},
	)

	AssessmentsSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessments_submitted_total",
			Help: "Assessments submitted for review, by topic",
		},
		[]string{"topic"},
	)

	AssessmentsGraded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessments_graded_total",
			Help: "Assessments graded to completion, by topic",
		},
		[]string{"topic"},
	)

	ResumeScans = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "resume_mailbox_scans_total",
			Help: "Resume mailbox scan runs",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(AssessmentsCreated)
	prometheus.MustRegister(AssessmentsSubmitted)
	prometheus.MustRegister(AssessmentsGraded)
	prometheus.MustRegister(ResumeScans)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
