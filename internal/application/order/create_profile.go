package order

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/xiebiao/orderlab/internal/domain/order"
	"github.com/xiebiao/orderlab/internal/metrics"
	prommetrics "github.com/xiebiao/orderlab/pkg/metrics"
	"github.com/xiebiao/orderlab/pkg/mq"
)

// CreateProfileRequest 创建订单档案请求DTO
type CreateProfileRequest struct {
	Title         string
	Author        string
	ISBN          string
	Category      string
	Price         int64 // 价格(分)
	PublishedDate time.Time
	CoverImageURL *string
	StockQuantity int
	Locale        string // 展示locale(由中间件解析,显式传递)
}

// submission 转换为领域层Submission
func (r CreateProfileRequest) submission() order.Submission {
	return order.Submission{
		Title:         r.Title,
		Author:        r.Author,
		ISBN:          r.ISBN,
		Category:      order.Category(r.Category),
		Price:         r.Price,
		PublishedDate: r.PublishedDate,
		CoverImageURL: r.CoverImageURL,
		StockQuantity: r.StockQuantity,
	}
}

// CreateProfileResult 创建结果
// 二选一:Rejected非空表示校验拒绝(400语义),否则View+Location为创建成功(201语义)
type CreateProfileResult struct {
	View     *order.ProfileView
	Location string
	Rejected order.ValidationErrors
}

// CreateProfileUseCase 单条创建管道
// 教学要点:这是整个项目最核心的用例
// 状态机:Started → Validating → (Rejected | Validated) → Persisting → Persisted
//        → Projected → Completed;Validated之后的任何基础设施故障进入Failed
// 每次执行无论结果如何都向聚合器记录一条带三段耗时的指标样本
type CreateProfileUseCase struct {
	repo       order.Repository
	validator  *order.Validator
	projector  *order.Projector
	aggregator *metrics.Aggregator
	clock      order.Clock
	publisher  *mq.Publisher // 可选,nil时跳过事件发布
}

// NewCreateProfileUseCase 创建单条管道用例
func NewCreateProfileUseCase(
	repo order.Repository,
	validator *order.Validator,
	projector *order.Projector,
	aggregator *metrics.Aggregator,
	clock order.Clock,
	publisher *mq.Publisher,
) *CreateProfileUseCase {
	return &CreateProfileUseCase{
		repo:       repo,
		validator:  validator,
		projector:  projector,
		aggregator: aggregator,
		clock:      clock,
		publisher:  publisher,
	}
}

// Execute 执行创建管道
// 返回值约定:
// - (result.Rejected非空, nil): 校验拒绝,不尝试持久化
// - (result.View非空, nil): 创建成功
// - (nil, error): 基础设施故障(查询或写入不可用),本次请求致命,不重试
func (uc *CreateProfileUseCase) Execute(ctx context.Context, req CreateProfileRequest) (*CreateProfileResult, error) {
	// 操作标识:取UUID前8位,进日志和指标样本
	operationID := uuid.NewString()[:8]
	totalStart := time.Now()

	log.Printf("[order] op=%s title=%q author=%q isbn=%s 开始创建订单档案",
		operationID, req.Title, req.Author, req.ISBN)

	sub := req.submission()

	// ========================================
	// 阶段1:校验(Validating)
	// ========================================
	validationStart := time.Now()
	verrs, err := uc.validator.Validate(ctx, sub)
	validationDur := time.Since(validationStart)

	if err != nil {
		// 存在性检查本身失败:基础设施错误,不是校验拒绝
		uc.record(operationID, req, validationDur, 0, time.Since(totalStart), false, err.Error())
		prommetrics.CountOutcome(prommetrics.OutcomeFailed)
		log.Printf("[order] op=%s 存在性检查失败: %v", operationID, err)
		return nil, err
	}

	if verrs.Has() {
		// 拒绝是正常结果:记录样本后把完整错误集返回给调用方
		uc.record(operationID, req, validationDur, 0, time.Since(totalStart), false, "Validation failed")
		prommetrics.CountOutcome(prommetrics.OutcomeRejected)
		log.Printf("[order] op=%s 校验拒绝: %s", operationID, verrs.Summary())
		return &CreateProfileResult{Rejected: verrs}, nil
	}

	// ========================================
	// 阶段2:持久化(Persisting)
	// ========================================
	profile := order.NewOrderProfile(sub, uuid.NewString(), uc.clock.Now())

	persistStart := time.Now()
	err = uc.repo.Create(ctx, profile)
	persistDur := time.Since(persistStart)

	if err != nil {
		totalDur := time.Since(totalStart)
		uc.record(operationID, req, validationDur, persistDur, totalDur, false, err.Error())
		prommetrics.CountOutcome(prommetrics.OutcomeFailed)
		log.Printf("[order] op=%s 持久化失败: %v", operationID, err)
		return nil, err
	}

	// ========================================
	// 阶段3:投影 + 完成(Projected → Completed)
	// ========================================
	totalDur := time.Since(totalStart)
	uc.record(operationID, req, validationDur, persistDur, totalDur, true, "")

	prommetrics.CountOutcome(prommetrics.OutcomeCreated)
	prommetrics.ObserveStage(prommetrics.StageValidation, validationDur)
	prommetrics.ObserveStage(prommetrics.StagePersist, persistDur)
	prommetrics.ObserveStage(prommetrics.StageTotal, totalDur)

	// 事件发布:尽力而为,失败只记日志
	if err := uc.publisher.Publish(ctx, mq.KeyOrderCreated, mq.OrderCreatedEvent{
		OrderID:   profile.ID,
		Title:     profile.Title,
		ISBN:      profile.ISBN,
		Category:  string(profile.Category),
		CreatedAt: profile.CreatedAt.Format(time.RFC3339),
	}); err != nil {
		log.Printf("[order] op=%s 事件发布失败(忽略): %v", operationID, err)
	}

	log.Printf("[order] op=%s id=%s 创建完成 validation=%v persist=%v total=%v",
		operationID, profile.ID, validationDur, persistDur, totalDur)

	return &CreateProfileResult{
		View:     uc.projector.View(profile, req.Locale),
		Location: "/api/v1/orders/" + profile.ID,
	}, nil
}

// record 向聚合器追加一条指标样本
func (uc *CreateProfileUseCase) record(operationID string, req CreateProfileRequest,
	validation, persist, total time.Duration, success bool, reason string) {
	uc.aggregator.Record(metrics.Sample{
		OperationID:        operationID,
		Title:              req.Title,
		ISBN:               req.ISBN,
		Category:           req.Category,
		ValidationDuration: validation,
		PersistDuration:    persist,
		TotalDuration:      total,
		Success:            success,
		ErrorReason:        reason,
	})
}
