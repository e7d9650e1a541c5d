// Package metrics 提供订单创建管道的进程内指标聚合
//
// 设计说明:
// 1. 每次管道执行(无论通过还是拒绝)都追加一条Sample,样本只追加、不修改、不删除
// 2. 存储是容量固定的环形缓冲:写满后覆盖最旧样本,给无界增长一个明确的内存上界
// 3. Record必须支持任意数量的并发调用;Summarize在锁内取一致快照后计算,
//    快照期间的并发追加可能不被本次统计包含,但不会破坏读取
package metrics

import (
	"sync"
	"time"
)

// DefaultCapacity 环形缓冲默认容量
const DefaultCapacity = 1024

// Sample 一次管道执行的指标样本
type Sample struct {
	OperationID        string        // 操作标识(调用方提供或生成)
	Title              string        // 提交的标题
	ISBN               string        // 提交的ISBN
	Category           string        // 提交的分类
	ValidationDuration time.Duration // 校验耗时
	PersistDuration    time.Duration // 持久化耗时
	TotalDuration      time.Duration // 总耗时
	Success            bool          // 是否成功
	ErrorReason        string        // 失败原因(成功时为空)
	RecordedAt         time.Time     // 记录时刻(用于"最近错误"的真实时序排序)
}

// Summary 按需计算的汇总统计
type Summary struct {
	TotalProcessed      int      `json:"total_processed"`       // 样本总数(保留窗口内)
	SuccessRate         float64  `json:"success_rate"`          // 成功率(%)
	AvgTotalMs          float64  `json:"avg_total_ms"`          // 平均总耗时(毫秒)
	AvgValidationMs     float64  `json:"avg_validation_ms"`     // 平均校验耗时(毫秒)
	AvgPersistenceMs    float64  `json:"avg_persistence_ms"`    // 平均持久化耗时(毫秒)
	LastErrors          []string `json:"last_errors"`           // 最近5条失败(标题: 原因)
}

// Aggregator 线程安全的指标聚合器
// 教学要点:明确归属、显式注入的实例,不做进程级全局可变状态
type Aggregator struct {
	mu       sync.Mutex
	samples  []Sample // 环形缓冲
	next     int      // 下一个写入位置
	size     int      // 当前样本数(≤capacity)
	capacity int
}

// NewAggregator 创建聚合器
// capacity≤0时使用DefaultCapacity
func NewAggregator(capacity int) *Aggregator {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Aggregator{
		samples:  make([]Sample, capacity),
		capacity: capacity,
	}
}

// Record 追加一条样本(线程安全,不会无限阻塞)
// RecordedAt未设置时补当前时间
func (a *Aggregator) Record(s Sample) {
	if s.RecordedAt.IsZero() {
		s.RecordedAt = time.Now().UTC()
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.samples[a.next] = s
	a.next = (a.next + 1) % a.capacity
	if a.size < a.capacity {
		a.size++
	}
}

// Summarize 基于当前全量样本计算汇总
// 零样本时返回全零汇总(空错误列表),不会出现除零错误
func (a *Aggregator) Summarize() Summary {
	snapshot := a.snapshot()

	summary := Summary{LastErrors: []string{}}
	total := len(snapshot)
	if total == 0 {
		return summary
	}

	var successCount int
	var sumTotal, sumValidation, sumPersist time.Duration
	for _, s := range snapshot {
		if s.Success {
			successCount++
		}
		sumTotal += s.TotalDuration
		sumValidation += s.ValidationDuration
		sumPersist += s.PersistDuration
	}

	summary.TotalProcessed = total
	summary.SuccessRate = float64(successCount) / float64(total) * 100
	summary.AvgTotalMs = float64(sumTotal.Microseconds()) / 1000 / float64(total)
	summary.AvgValidationMs = float64(sumValidation.Microseconds()) / 1000 / float64(total)
	summary.AvgPersistenceMs = float64(sumPersist.Microseconds()) / 1000 / float64(total)

	// 最近5条失败:按记录时序从新到旧
	// (快照已是从旧到新,逆序遍历即可;不按OperationID字符串排序——
	// 对不透明标识做字典序排序不是真实的时间顺序)
	for i := total - 1; i >= 0 && len(summary.LastErrors) < 5; i-- {
		if !snapshot[i].Success {
			summary.LastErrors = append(summary.LastErrors, snapshot[i].Title+": "+snapshot[i].ErrorReason)
		}
	}

	return summary
}

// snapshot 锁内复制当前样本(按写入顺序从旧到新)
func (a *Aggregator) snapshot() []Sample {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Sample, 0, a.size)
	start := a.next - a.size
	for i := 0; i < a.size; i++ {
		out = append(out, a.samples[((start+i)%a.capacity+a.capacity)%a.capacity])
	}
	return out
}
