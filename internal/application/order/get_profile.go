package order

import (
	"context"

	"github.com/xiebiao/orderlab/internal/domain/order"
)

// GetProfileUseCase 查询单条订单档案用例
// 读路径与创建响应共用同一个Projector,派生字段公式只有一份
type GetProfileUseCase struct {
	repo      order.Repository
	projector *order.Projector
}

// NewGetProfileUseCase 创建查询用例
func NewGetProfileUseCase(repo order.Repository, projector *order.Projector) *GetProfileUseCase {
	return &GetProfileUseCase{repo: repo, projector: projector}
}

// Execute 根据ID查询并投影为展示视图
func (uc *GetProfileUseCase) Execute(ctx context.Context, id, locale string) (*order.ProfileView, error) {
	profile, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.projector.View(profile, locale), nil
}
