package order

import (
	"context"
	"time"
)

// Lookup 只读存在性检查接口
// 设计说明:
// 1. Rule Evaluator只需要读取能力,单独拆出窄接口(接口隔离原则)
// 2. 这些查询是潜在阻塞的I/O操作,全部接收context以支持取消
type Lookup interface {
	// ExistsByTitleAndAuthor 检查(标题,作者)组合是否已存在
	ExistsByTitleAndAuthor(ctx context.Context, title, author string) (bool, error)

	// ExistsByISBN 检查ISBN是否已存在
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)

	// CountCreatedSince 统计指定时刻之后创建的档案数(用于当日限额规则)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

// Repository 订单档案仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. CreateBatch是批量管道的原子写入:配合TxManager在同一事务内执行,
//    要么全部落库,要么全部回滚
type Repository interface {
	Lookup

	// Create 创建单个订单档案
	Create(ctx context.Context, p *OrderProfile) error

	// CreateBatch 批量创建(调用方需置于事务中以保证all-or-nothing)
	CreateBatch(ctx context.Context, ps []*OrderProfile) error

	// FindByID 根据ID查找订单档案
	FindByID(ctx context.Context, id string) (*OrderProfile, error)

	// ListByCategory 按分类查询(创建时间降序)
	ListByCategory(ctx context.Context, category Category) ([]*OrderProfile, error)
}
