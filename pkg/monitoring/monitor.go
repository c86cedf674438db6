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

	// 判定流水线指标：按难度统计判定次数与结果，按阶段统计拒绝原因
	JudgementCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "judgements_total",
			Help: "Total number of AI judgements by difficulty and result",
		},
		[]string{"difficulty", "result"},
	)

	JudgementRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "judgement_rejections_total",
			Help: "Submissions rejected before judgement by pipeline stage",
		},
		[]string{"stage"},
	)

	JudgementDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "judgement_duration_seconds",
			Help:    "Duration of external AI judge calls",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30},
		},
		[]string{"model"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(JudgementCounter)
	prometheus.MustRegister(JudgementRejections)
	prometheus.MustRegister(JudgementDuration)
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
