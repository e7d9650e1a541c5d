package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/orderlab/internal/domain/order"
)

// OrderViewCache 分类视图缓存(Redis实现)
// 教学要点:
// 1. Cache-Aside策略:应用层先查缓存,未命中查库后回填
// 2. 缓存键包含分类和locale两个维度,不同语言的视图各缓存一份
// 3. 视图整组序列化为JSON存储,一次GET即可还原整个列表
type OrderViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOrderViewCache 创建分类视图缓存
// ttl<=0时使用默认5分钟
func NewOrderViewCache(client *redis.Client, ttl time.Duration) *OrderViewCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &OrderViewCache{client: client, ttl: ttl}
}

// GetCategoryViews 读取分类视图缓存
// 未命中返回(nil, nil),调用方据此回源数据库
func (c *OrderViewCache) GetCategoryViews(ctx context.Context, category, locale string) ([]*order.ProfileView, error) {
	data, err := c.client.Get(ctx, cacheKey(category, locale)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // 缓存未命中
		}
		return nil, err
	}

	var views []*order.ProfileView
	if err := json.Unmarshal(data, &views); err != nil {
		// 缓存数据损坏,当作未命中处理
		return nil, nil
	}
	return views, nil
}

// SetCategoryViews 写入分类视图缓存
func (c *OrderViewCache) SetCategoryViews(ctx context.Context, category, locale string, views []*order.ProfileView) error {
	data, err := json.Marshal(views)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(category, locale), data, c.ttl).Err()
}

// cacheKey 生成缓存键,如orderlab:views:Technical:en-US
func cacheKey(category, locale string) string {
	return fmt.Sprintf("orderlab:views:%s:%s", category, locale)
}
