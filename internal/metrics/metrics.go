// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層とHTTPミドルウェアから利用する。
type MetricsCollector interface {
	RecordBulkItemCreated(entity string)
	RecordBulkItemAdopted(entity string)
	RecordBulkItemFailed(entity string)
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	bulkCreated    *prometheus.CounterVec
	bulkAdopted    *prometheus.CounterVec
	bulkFailed     *prometheus.CounterVec
	httpStatus     *prometheus.CounterVec
	requestLatency prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		bulkCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "saiyo_bulk_created_total",
			Help: "バルク処理で新規作成された項目のエンティティ別合計数",
		}, []string{"entity"}),
		bulkAdopted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "saiyo_bulk_adopted_total",
			Help: "バルク処理で重複リカバリにより既存行を採用した項目のエンティティ別合計数",
		}, []string{"entity"}),
		bulkFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "saiyo_bulk_failed_total",
			Help: "バルク処理で失敗した項目のエンティティ別合計数",
		}, []string{"entity"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "saiyo_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "saiyo_request_latency_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.bulkCreated,
		c.bulkAdopted,
		c.bulkFailed,
		c.httpStatus,
		c.requestLatency,
	)

	return c
}

// RecordBulkItemCreated はバルク処理での新規作成を記録する。
func (c *Collector) RecordBulkItemCreated(entity string) {
	c.bulkCreated.WithLabelValues(entity).Inc()
}

// RecordBulkItemAdopted はバルク処理での既存行採用を記録する。
func (c *Collector) RecordBulkItemAdopted(entity string) {
	c.bulkAdopted.WithLabelValues(entity).Inc()
}

// RecordBulkItemFailed はバルク処理での項目失敗を記録する。
func (c *Collector) RecordBulkItemFailed(entity string) {
	c.bulkFailed.WithLabelValues(entity).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
