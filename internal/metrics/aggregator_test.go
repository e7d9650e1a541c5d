package metrics

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestSummarize_Empty 零样本时返回全零汇总,不出现除零
func TestSummarize_Empty(t *testing.T) {
	a := NewAggregator(0)

	s := a.Summarize()

	assert.Equal(t, 0, s.TotalProcessed)
	assert.Equal(t, float64(0), s.SuccessRate)
	assert.Equal(t, float64(0), s.AvgTotalMs)
	assert.NotNil(t, s.LastErrors, "空错误列表应为[]而非nil")
	assert.Empty(t, s.LastErrors)
}

// TestSummarize_Basic 成功率与平均耗时
func TestSummarize_Basic(t *testing.T) {
	a := NewAggregator(16)

	a.Record(Sample{
		OperationID:        "op-1",
		Title:              "Book A",
		Success:            true,
		ValidationDuration: 10 * time.Millisecond,
		PersistDuration:    20 * time.Millisecond,
		TotalDuration:      30 * time.Millisecond,
	})
	a.Record(Sample{
		OperationID:        "op-2",
		Title:              "Book B",
		Success:            false,
		ErrorReason:        "Validation failed",
		ValidationDuration: 6 * time.Millisecond,
		TotalDuration:      6 * time.Millisecond,
	})

	s := a.Summarize()

	assert.Equal(t, 2, s.TotalProcessed)
	assert.InDelta(t, 50.0, s.SuccessRate, 0.001)
	assert.InDelta(t, 18.0, s.AvgTotalMs, 0.001)
	assert.InDelta(t, 8.0, s.AvgValidationMs, 0.001)
	assert.InDelta(t, 10.0, s.AvgPersistenceMs, 0.001)
	assert.Equal(t, []string{"Book B: Validation failed"}, s.LastErrors)
}

// TestSummarize_Idempotent 汇总是只读计算,重复调用结果一致
func TestSummarize_Idempotent(t *testing.T) {
	a := NewAggregator(16)
	a.Record(Sample{Title: "Book A", Success: true, TotalDuration: 10 * time.Millisecond})
	a.Record(Sample{Title: "Book B", Success: false, ErrorReason: "boom"})

	first := a.Summarize()
	second := a.Summarize()

	assert.Equal(t, first, second)
}

// TestSummarize_LastErrorsOrder 最近失败按记录时序从新到旧,最多5条
func TestSummarize_LastErrorsOrder(t *testing.T) {
	a := NewAggregator(32)

	// 故意让OperationID的字典序与记录顺序相反,
	// 验证排序依据是记录时间而不是标识的字符串顺序
	for i := 0; i < 7; i++ {
		a.Record(Sample{
			OperationID: fmt.Sprintf("op-%d", 9-i),
			Title:       fmt.Sprintf("Book %d", i),
			Success:     false,
			ErrorReason: "failed",
		})
	}

	s := a.Summarize()

	assert.Len(t, s.LastErrors, 5)
	assert.Equal(t, "Book 6: failed", s.LastErrors[0], "最新失败排第一")
	assert.Equal(t, "Book 2: failed", s.LastErrors[4])
}

// TestAggregator_RingBuffer 写满后覆盖最旧样本
func TestAggregator_RingBuffer(t *testing.T) {
	a := NewAggregator(4)

	for i := 0; i < 10; i++ {
		a.Record(Sample{Title: fmt.Sprintf("Book %d", i), Success: i%2 == 0})
	}

	s := a.Summarize()

	// 只保留最后4条(Book 6..9)
	assert.Equal(t, 4, s.TotalProcessed)
	assert.Equal(t, []string{"Book 9: ", "Book 7: "}, s.LastErrors)
}

// TestAggregator_ConcurrentRecord 并发Record不丢样本、不竞态
func TestAggregator_ConcurrentRecord(t *testing.T) {
	const goroutines = 8
	const perGoroutine = 100

	a := NewAggregator(goroutines * perGoroutine)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				a.Record(Sample{
					OperationID: fmt.Sprintf("g%d-%d", g, i),
					Success:     true,
				})
			}
		}(g)
	}
	wg.Wait()

	s := a.Summarize()

	assert.Equal(t, goroutines*perGoroutine, s.TotalProcessed)
	assert.InDelta(t, 100.0, s.SuccessRate, 0.001)
}

// TestRecord_FillsRecordedAt 未设置记录时间时自动补当前时间
func TestRecord_FillsRecordedAt(t *testing.T) {
	a := NewAggregator(4)

	before := time.Now().UTC()
	a.Record(Sample{Title: "Book A", Success: true})

	snap := a.snapshot()
	assert.Len(t, snap, 1)
	assert.False(t, snap[0].RecordedAt.IsZero())
	assert.False(t, snap[0].RecordedAt.Before(before))
}
