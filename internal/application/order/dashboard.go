package order

import (
	"github.com/xiebiao/orderlab/internal/metrics"
)

// DashboardUseCase 处理指标看板查询
// 聚合器内部自己快照并计算,这里只做薄薄一层转发,
// 方便接口层统一通过use case访问
type DashboardUseCase struct {
	aggregator *metrics.Aggregator
}

// NewDashboardUseCase 创建看板用例
func NewDashboardUseCase(aggregator *metrics.Aggregator) *DashboardUseCase {
	return &DashboardUseCase{aggregator: aggregator}
}

// Execute 返回当前指标汇总(无样本时全为零值,错误列表为空数组)
func (uc *DashboardUseCase) Execute() metrics.Summary {
	return uc.aggregator.Summarize()
}
