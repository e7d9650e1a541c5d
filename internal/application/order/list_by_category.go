package order

import (
	"context"

	"github.com/xiebiao/orderlab/internal/domain/order"
	"github.com/xiebiao/orderlab/pkg/errors"
)

// ViewCache 分类视图缓存接口
// 教学要点:应用层只依赖接口,Redis实现放在infrastructure层
// 缓存键包含locale,不同语言的视图互不污染
type ViewCache interface {
	GetCategoryViews(ctx context.Context, category, locale string) ([]*order.ProfileView, error)
	SetCategoryViews(ctx context.Context, category, locale string, views []*order.ProfileView) error
}

// ListByCategoryUseCase 按分类查询订单列表用例
// 采用Cache-Aside模式:先查缓存,未命中再查库并回填
type ListByCategoryUseCase struct {
	repo      order.Repository
	projector *order.Projector
	cache     ViewCache
}

// NewListByCategoryUseCase 创建分类查询用例
// cache可以为nil,此时退化为直查数据库
func NewListByCategoryUseCase(repo order.Repository, projector *order.Projector, cache ViewCache) *ListByCategoryUseCase {
	return &ListByCategoryUseCase{repo: repo, projector: projector, cache: cache}
}

// Execute 查询指定分类下的全部订单视图
func (uc *ListByCategoryUseCase) Execute(ctx context.Context, category, locale string) ([]*order.ProfileView, error) {
	cat := order.Category(category)
	if !cat.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidParams, "unknown category: "+category)
	}

	// 1. 先查缓存,缓存故障只记作未命中,不影响主流程
	if uc.cache != nil {
		if views, err := uc.cache.GetCategoryViews(ctx, category, locale); err == nil && views != nil {
			return views, nil
		}
	}

	// 2. 缓存未命中,查数据库并投影
	profiles, err := uc.repo.ListByCategory(ctx, cat)
	if err != nil {
		return nil, err
	}
	views := make([]*order.ProfileView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, uc.projector.View(p, locale))
	}

	// 3. 回填缓存,失败不影响返回
	if uc.cache != nil {
		_ = uc.cache.SetCategoryViews(ctx, category, locale, views)
	}
	return views, nil
}
