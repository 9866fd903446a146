// Package metrics Prometheus指标定义
//
// 指标类型选择：
//   - 计数用Counter：请求数、发布图书数、评分数
//   - 瞬时值用Gauge：处理中的请求、熔断器状态
//   - 分布用Histogram：请求耗时、列表查询耗时
//
// 所有指标在InitMetrics中注册到默认Registry，由/metrics暴露。
// 未初始化时辅助函数为空操作，单元测试无需注册指标。
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookcatalog"

var (
	once sync.Once

	// HTTP

	// HTTPRequestsTotal 标签：method、path（路由模板，如/books/:id）、status
	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	HTTPRequestsInProgress prometheus.Gauge

	// 业务

	BooksPublishedTotal   prometheus.Counter
	BooksUpdatedTotal     prometheus.Counter
	BooksDeletedTotal     prometheus.Counter
	RatingsSubmittedTotal prometheus.Counter
	CommentsCreatedTotal  prometheus.Counter
	UsersRegisteredTotal  prometheus.Counter
	// LoginsTotal 标签：result（success/failure）
	LoginsTotal *prometheus.CounterVec
	// BookSearchDuration 列表页查询耗时（计数+分页+评分聚合）
	BookSearchDuration prometheus.Histogram

	// 熔断器

	// CircuitBreakerState 0=closed 1=open 2=half_open
	CircuitBreakerState *prometheus.GaugeVec
	// CircuitBreakerRequests 标签：name、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// Saga

	// SagaExecutionsTotal 标签：saga、result（success/failure）
	SagaExecutionsTotal    *prometheus.CounterVec
	SagaCompensationsTotal *prometheus.CounterVec

	// 事件

	// EventsPublishedTotal 标签：event（如book.published）、result（success/failure/dropped）
	EventsPublishedTotal *prometheus.CounterVec
)

// InitMetrics 注册所有指标，重复调用无副作用
func InitMetrics() {
	once.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP请求总数",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP请求耗时（秒）",
		Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
	}, []string{"method", "path"})

	HTTPRequestsInProgress = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_requests_in_progress",
		Help:      "正在处理的HTTP请求数",
	})

	BooksPublishedTotal = newCounter("books_published_total", "发布图书总数")
	BooksUpdatedTotal = newCounter("books_updated_total", "修改图书总数")
	BooksDeletedTotal = newCounter("books_deleted_total", "删除图书总数")
	RatingsSubmittedTotal = newCounter("ratings_submitted_total", "提交评分总数（含覆盖）")
	CommentsCreatedTotal = newCounter("comments_created_total", "发表评论总数")
	UsersRegisteredTotal = newCounter("users_registered_total", "注册用户总数")

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "登录次数",
	}, []string{"result"})

	BookSearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "book_search_duration_seconds",
		Help:      "图书列表查询耗时（秒）",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})

	CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_state",
		Help:      "熔断器状态（0=closed 1=open 2=half_open）",
	}, []string{"name"})

	CircuitBreakerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_requests_total",
		Help:      "经过熔断器的请求数",
	}, []string{"name", "result"})

	SagaExecutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "saga_executions_total",
		Help:      "Saga执行次数",
	}, []string{"saga", "result"})

	SagaCompensationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "saga_compensations_total",
		Help:      "Saga补偿步骤执行次数",
	}, []string{"saga"})

	EventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "领域事件发布次数",
	}, []string{"event", "result"})
}

func newCounter(name, help string) prometheus.Counter {
	return promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
}

// =========================================
// 辅助函数（指标未初始化时为空操作）
// =========================================

func IncCounter(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}

func IncCounterVec(c *prometheus.CounterVec, labels ...string) {
	if c != nil {
		c.WithLabelValues(labels...).Inc()
	}
}

func SetGaugeVec(g *prometheus.GaugeVec, value float64, labels ...string) {
	if g != nil {
		g.WithLabelValues(labels...).Set(value)
	}
}

// ObserveSince 记录从start到现在的耗时
func ObserveSince(h prometheus.Observer, start time.Time) {
	if h != nil {
		h.Observe(time.Since(start).Seconds())
	}
}

// TrackInProgress 处理中计数+1，返回的函数-1
func TrackInProgress() func() {
	if HTTPRequestsInProgress == nil {
		return func() {}
	}
	HTTPRequestsInProgress.Inc()
	return HTTPRequestsInProgress.Dec
}

// ObserveHTTP 记录一次HTTP请求
func ObserveHTTP(method, path, status string, elapsed time.Duration) {
	if HTTPRequestsTotal == nil {
		return
	}
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}
