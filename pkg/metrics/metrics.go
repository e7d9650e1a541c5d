// Package metrics 提供基于Prometheus的管道指标暴露
//
// 教学要点:
// 1. 进程内的Aggregator(internal/metrics)负责dashboard端点的按需汇总,
//    本包负责把同样的事件暴露为Prometheus可抓取的时序指标——两者各司其职:
//    前者是应用自己的仪表盘,后者接入Prometheus+Grafana体系
// 2. Counter记录结果计数(按outcome区分),Histogram记录各阶段耗时分布
//    (自动可查询P50/P90/P99,这是日志统计做不到的)
// 3. 指标通过promhttp在/metrics端点暴露
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 阶段名常量(Histogram的stage标签)
const (
	StageValidation = "validation"
	StagePersist    = "persist"
	StageTotal      = "total"
)

// 结果名常量(Counter的outcome标签)
const (
	OutcomeCreated  = "created"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

var (
	// ordersProcessedTotal 单条管道处理总数(按结果分类)
	ordersProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orderlab_orders_processed_total",
		Help: "Total order profile creations by outcome (created/rejected/failed).",
	}, []string{"outcome"})

	// stageDurationSeconds 管道各阶段耗时分布
	stageDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orderlab_pipeline_stage_duration_seconds",
		Help:    "Duration of order creation pipeline stages.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	// batchItemsTotal 批量管道逐项结果总数
	batchItemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orderlab_batch_items_total",
		Help: "Total batch items by outcome (created/rejected).",
	}, []string{"outcome"})
)

// CountOutcome 递增单条管道结果计数
func CountOutcome(outcome string) {
	ordersProcessedTotal.WithLabelValues(outcome).Inc()
}

// ObserveStage 记录某阶段耗时
func ObserveStage(stage string, d time.Duration) {
	stageDurationSeconds.WithLabelValues(stage).Observe(d.Seconds())
}

// CountBatchItem 递增批量逐项结果计数
func CountBatchItem(outcome string) {
	batchItemsTotal.WithLabelValues(outcome).Inc()
}

// Handler 返回/metrics端点的HTTP处理器
func Handler() http.Handler {
	return promhttp.Handler()
}
