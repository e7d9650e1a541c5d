package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/orderlab/internal/domain/order"
	"github.com/xiebiao/orderlab/internal/i18n"
)

// fakeViewCache 分类视图缓存测试替身
type fakeViewCache struct {
	store map[string][]*order.ProfileView
	gets  int
	sets  int
}

func newFakeViewCache() *fakeViewCache {
	return &fakeViewCache{store: make(map[string][]*order.ProfileView)}
}

func (f *fakeViewCache) GetCategoryViews(ctx context.Context, category, locale string) ([]*order.ProfileView, error) {
	f.gets++
	return f.store[category+":"+locale], nil
}

func (f *fakeViewCache) SetCategoryViews(ctx context.Context, category, locale string, views []*order.ProfileView) error {
	f.sets++
	f.store[category+":"+locale] = views
	return nil
}

func newListUseCase(repo *fakeRepo, cache ViewCache) *ListByCategoryUseCase {
	localizer := i18n.NewLocalizer(i18n.LocaleEnUS)
	projector := order.NewProjector(localizer, fixedClock{now: testNow})
	return NewListByCategoryUseCase(repo, projector, cache)
}

func seedProfile(repo *fakeRepo, title string, category order.Category) {
	repo.created = append(repo.created, &order.OrderProfile{
		ID:            "id-" + title,
		Title:         title,
		Author:        "Jane Doe",
		ISBN:          "9780134190440",
		Category:      category,
		Price:         1999,
		PublishedDate: time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC),
		IsAvailable:   true,
		StockQuantity: 10,
		CreatedAt:     testNow,
	})
}

// TestListByCategory_CacheAside 未命中查库回填,命中直接返回
func TestListByCategory_CacheAside(t *testing.T) {
	repo := &fakeRepo{}
	cache := newFakeViewCache()
	uc := newListUseCase(repo, cache)
	seedProfile(repo, "Tech Handbook", order.CategoryTechnical)
	seedProfile(repo, "A Novel", order.CategoryFiction)

	// 第一次:未命中,查库并回填
	views, err := uc.Execute(context.Background(), "Technical", i18n.LocaleEnUS)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Tech Handbook", views[0].Title)
	assert.Equal(t, "Technical & Professional", views[0].CategoryDisplayName)
	assert.Equal(t, 1, cache.sets)

	// 第二次:命中缓存,不再有回填
	views, err = uc.Execute(context.Background(), "Technical", i18n.LocaleEnUS)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 1, cache.sets, "命中后不应再次回填")
	assert.Equal(t, 2, cache.gets)
}

// TestListByCategory_LocaleKeyedCache 不同locale的缓存互不污染
func TestListByCategory_LocaleKeyedCache(t *testing.T) {
	repo := &fakeRepo{}
	cache := newFakeViewCache()
	uc := newListUseCase(repo, cache)
	seedProfile(repo, "Tech Handbook", order.CategoryTechnical)

	en, err := uc.Execute(context.Background(), "Technical", i18n.LocaleEnUS)
	require.NoError(t, err)
	es, err := uc.Execute(context.Background(), "Technical", i18n.LocaleEsES)
	require.NoError(t, err)

	assert.Equal(t, "Technical & Professional", en[0].CategoryDisplayName)
	assert.Equal(t, "Técnico y Profesional", es[0].CategoryDisplayName)
	assert.Equal(t, 2, cache.sets, "两个locale各回填一份")
}

// TestListByCategory_InvalidCategory 未知分类是参数错误
func TestListByCategory_InvalidCategory(t *testing.T) {
	uc := newListUseCase(&fakeRepo{}, newFakeViewCache())

	views, err := uc.Execute(context.Background(), "Cooking", i18n.LocaleEnUS)

	require.Error(t, err)
	assert.Nil(t, views)
}

// TestListByCategory_NoCache cache为nil时退化为直查
func TestListByCategory_NoCache(t *testing.T) {
	repo := &fakeRepo{}
	uc := newListUseCase(repo, nil)
	seedProfile(repo, "A Novel", order.CategoryFiction)

	views, err := uc.Execute(context.Background(), "Fiction", i18n.LocaleEnUS)

	require.NoError(t, err)
	assert.Len(t, views, 1)
}
