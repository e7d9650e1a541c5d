package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/orderlab/internal/domain/order"
	apperrors "github.com/xiebiao/orderlab/pkg/errors"
)

// orderRepository 订单档案仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/order/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如唯一索引冲突),转换为业务错误
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单档案仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建单个订单档案
func (r *orderRepository) Create(ctx context.Context, p *order.OrderProfile) error {
	model := toOrderProfileModel(p)

	db := getDB(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return order.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建订单档案失败")
	}
	return nil
}

// CreateBatch 批量创建订单档案
// 教学要点:
// 1. 调用方通过TxManager将本方法置于事务中,任一条失败整批回滚
// 2. 逐条Create而不是批量INSERT,便于把冲突错误定位到业务错误
func (r *orderRepository) CreateBatch(ctx context.Context, ps []*order.OrderProfile) error {
	db := getDB(ctx, r.db)
	for _, p := range ps {
		if err := db.Create(toOrderProfileModel(p)).Error; err != nil {
			if isDuplicateError(err) {
				return order.ErrISBNDuplicate
			}
			return apperrors.Wrap(err, "批量创建订单档案失败")
		}
	}
	return nil
}

// FindByID 根据ID查找订单档案
func (r *orderRepository) FindByID(ctx context.Context, id string) (*order.OrderProfile, error) {
	var model OrderProfileModel
	err := getDB(ctx, r.db).Where("id = ?", id).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单档案失败")
	}

	return toOrderProfileEntity(&model), nil
}

// ListByCategory 按分类查询(创建时间降序)
func (r *orderRepository) ListByCategory(ctx context.Context, category order.Category) ([]*order.OrderProfile, error) {
	var models []OrderProfileModel
	err := getDB(ctx, r.db).
		Where("category = ?", string(category)).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单档案列表失败")
	}

	profiles := make([]*order.OrderProfile, len(models))
	for i := range models {
		profiles[i] = toOrderProfileEntity(&models[i])
	}
	return profiles, nil
}

// ExistsByTitleAndAuthor 检查(标题,作者)组合是否已存在
func (r *orderRepository) ExistsByTitleAndAuthor(ctx context.Context, title, author string) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&OrderProfileModel{}).
		Where("title = ? AND author = ?", title, author).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询标题作者重复性失败")
	}
	return count > 0, nil
}

// ExistsByISBN 检查ISBN是否已存在
// 按规范化形式比较,"978-7-115"与"9787115"视为同一ISBN
func (r *orderRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&OrderProfileModel{}).
		Where("isbn_normalized = ?", order.NormalizeISBN(isbn)).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询ISBN重复性失败")
	}
	return count > 0, nil
}

// CountCreatedSince 统计指定时刻之后创建的档案数
func (r *orderRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&OrderProfileModel{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计当日创建数失败")
	}
	return count, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toOrderProfileModel 领域实体 → GORM模型
func toOrderProfileModel(p *order.OrderProfile) *OrderProfileModel {
	return &OrderProfileModel{
		ID:             p.ID,
		Title:          p.Title,
		Author:         p.Author,
		ISBN:           p.ISBN,
		ISBNNormalized: order.NormalizeISBN(p.ISBN),
		Category:       string(p.Category),
		Price:          p.Price,
		PublishedDate:  p.PublishedDate,
		CoverImageURL:  p.CoverImageURL,
		IsAvailable:    p.IsAvailable,
		StockQuantity:  p.StockQuantity,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// toOrderProfileEntity GORM模型 → 领域实体
func toOrderProfileEntity(model *OrderProfileModel) *order.OrderProfile {
	return &order.OrderProfile{
		ID:            model.ID,
		Title:         model.Title,
		Author:        model.Author,
		ISBN:          model.ISBN,
		Category:      order.Category(model.Category),
		Price:         model.Price,
		PublishedDate: model.PublishedDate,
		CoverImageURL: model.CoverImageURL,
		IsAvailable:   model.IsAvailable,
		StockQuantity: model.StockQuantity,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
