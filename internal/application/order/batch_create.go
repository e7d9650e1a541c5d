package order

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/xiebiao/orderlab/internal/domain/order"
	"github.com/xiebiao/orderlab/internal/metrics"
	apperrors "github.com/xiebiao/orderlab/pkg/errors"
	prommetrics "github.com/xiebiao/orderlab/pkg/metrics"
	"github.com/xiebiao/orderlab/pkg/mq"
)

// ErrBatchCommitFailed 批量原子写入失败(整批已回滚)
var ErrBatchCommitFailed = apperrors.New(apperrors.ErrCodeBatchCommitError,
	"batch processing failed due to an internal error")

// TxManager 事务边界接口
// 由infrastructure层的mysql.TxManager实现;定义在应用层便于测试时注入假实现
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// BatchItemResult 批内单项结果(保持输入顺序)
type BatchItemResult struct {
	Title   string `json:"title"`
	Success bool   `json:"success"`
	OrderID string `json:"order_id,omitempty"`
	Message string `json:"message,omitempty"`
}

// BatchResult 批量处理汇总
type BatchResult struct {
	BatchID        string            `json:"batch_id"`
	TotalRequested int               `json:"total_requested"`
	SuccessCount   int               `json:"success_count"`
	FailedCount    int               `json:"failed_count"`
	Message        string            `json:"message,omitempty"`
	Results        []BatchItemResult `json:"results"`
}

// BatchCreateUseCase 批量创建管道
// 教学要点:
// 1. 逐项走与单条管道相同的Rule Evaluator,再叠加一层批内ISBN去重——
//    单项被拒绝只记入该项结果,绝不中止整批
// 2. 通过的子集缓存在内存中,最后一次性在事务内落库:
//    要么全部持久化,要么全部回滚(all-or-nothing)
// 3. 提交失败时整批报告失败,但逐项判定结果仍然返回,
//    让调用方知道每一项"本来会"成功还是失败
type BatchCreateUseCase struct {
	repo       order.Repository
	validator  *order.Validator
	txManager  TxManager
	aggregator *metrics.Aggregator
	clock      order.Clock
	publisher  *mq.Publisher
}

// NewBatchCreateUseCase 创建批量管道用例
func NewBatchCreateUseCase(
	repo order.Repository,
	validator *order.Validator,
	txManager TxManager,
	aggregator *metrics.Aggregator,
	clock order.Clock,
	publisher *mq.Publisher,
) *BatchCreateUseCase {
	return &BatchCreateUseCase{
		repo:       repo,
		validator:  validator,
		txManager:  txManager,
		aggregator: aggregator,
		clock:      clock,
		publisher:  publisher,
	}
}

// Execute 执行批量创建
// 返回值约定:
// - (result, nil): 正常结束(部分成功是正常结果,不是异常)
// - (result, ErrBatchCommitFailed): 原子提交失败,整批已回滚,result仍携带逐项判定
// - (nil, error): 校验阶段基础设施故障
func (uc *BatchCreateUseCase) Execute(ctx context.Context, reqs []CreateProfileRequest) (*BatchResult, error) {
	batchID := uuid.NewString()
	result := &BatchResult{
		BatchID:        batchID,
		TotalRequested: len(reqs),
		Results:        make([]BatchItemResult, 0, len(reqs)),
	}

	log.Printf("[batch] batch=%s 开始批量处理,共%d项", batchID, len(reqs))

	// ========================================
	// 阶段1:逐项分类(校验 + 批内去重)
	// ========================================
	var pending []*order.OrderProfile
	seenISBN := make(map[string]bool) // 批内去重:规范化ISBN

	for _, req := range reqs {
		sub := req.submission()

		verrs, err := uc.validator.Validate(ctx, sub)
		if err != nil {
			// 存在性检查不可用:整批按基础设施故障处理
			log.Printf("[batch] batch=%s 存在性检查失败: %v", batchID, err)
			return nil, err
		}

		if verrs.Has() {
			result.FailedCount++
			result.Results = append(result.Results, BatchItemResult{
				Title:   req.Title,
				Success: false,
				Message: "Validation Failed: " + verrs.Summary(),
			})
			continue
		}

		// 批内唯一性:同一批内不允许重复ISBN
		normalized := order.NormalizeISBN(req.ISBN)
		if seenISBN[normalized] {
			result.FailedCount++
			result.Results = append(result.Results, BatchItemResult{
				Title:   req.Title,
				Success: false,
				Message: "Duplicate ISBN within batch",
			})
			continue
		}
		seenISBN[normalized] = true

		profile := order.NewOrderProfile(sub, uuid.NewString(), uc.clock.Now())
		pending = append(pending, profile)
		result.Results = append(result.Results, BatchItemResult{
			Title:   req.Title,
			Success: true,
			OrderID: profile.ID,
		})
	}

	if len(pending) == 0 {
		result.Message = "No valid orders to process."
		log.Printf("[batch] batch=%s 无可处理项,失败%d项", batchID, result.FailedCount)
		return result, nil
	}

	// ========================================
	// 阶段2:原子提交(事务内一次性写入)
	// ========================================
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		return uc.repo.CreateBatch(txCtx, pending)
	})
	if err != nil {
		// 整批回滚:不留任何部分写入;逐项判定结果原样返回供调用方排查
		result.SuccessCount = 0
		result.Message = "Batch commit failed, no items were persisted."
		log.Printf("[batch] batch=%s 事务提交失败,已回滚: %v", batchID, err)
		return result, ErrBatchCommitFailed
	}

	result.SuccessCount = len(pending)
	log.Printf("[batch] batch=%s 提交完成 成功=%d 失败=%d", batchID, result.SuccessCount, result.FailedCount)

	// 每个已提交项记录一条指标样本(批量路径不计阶段耗时)
	orderIDs := make([]string, 0, len(pending))
	for _, p := range pending {
		orderIDs = append(orderIDs, p.ID)
		uc.aggregator.Record(metrics.Sample{
			OperationID: "BATCH-" + batchID,
			Title:       p.Title,
			ISBN:        p.ISBN,
			Category:    string(p.Category),
			Success:     true,
		})
		prommetrics.CountBatchItem(prommetrics.OutcomeCreated)
	}
	for i := 0; i < result.FailedCount; i++ {
		prommetrics.CountBatchItem(prommetrics.OutcomeRejected)
	}

	if err := uc.publisher.Publish(ctx, mq.KeyOrderBatchCommitted, mq.BatchCommittedEvent{
		BatchID:      batchID,
		OrderIDs:     orderIDs,
		SuccessCount: result.SuccessCount,
		FailedCount:  result.FailedCount,
	}); err != nil {
		log.Printf("[batch] batch=%s 事件发布失败(忽略): %v", batchID, err)
	}

	return result, nil
}
