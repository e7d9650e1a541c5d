package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/orderlab/internal/i18n"
)

// TestEffectivePrice 少儿折扣:9折,四舍五入到分
func TestEffectivePrice(t *testing.T) {
	cases := []struct {
		name     string
		category Category
		price    int64
		want     int64
	}{
		{"少儿类整除", CategoryChildren, 1000, 900},
		{"少儿类四舍五入进位", CategoryChildren, 1995, 1796}, // 1795.5 → 1796
		{"少儿类向下舍", CategoryChildren, 1999, 1799},     // 1799.1 → 1799
		{"小说类原价", CategoryFiction, 1999, 1999},
		{"技术类原价", CategoryTechnical, 50_000, 50_000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EffectivePrice(tc.category, tc.price))
		})
	}
}

// TestFormatPrice 货币格式化固定en-US,含千分位分组
func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$5.00", FormatPrice(500))
	assert.Equal(t, "$19.99", FormatPrice(1999))
	assert.Equal(t, "$1,234.50", FormatPrice(123_450))
	assert.Equal(t, "$0.05", FormatPrice(5))
}

// TestPublishedAge 出版年龄分档边界
func TestPublishedAge(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"10天为新品", 10 * 24 * time.Hour, "New Release"},
		{"29天仍是新品", 29 * 24 * time.Hour, "New Release"},
		{"30天进入月档", 30 * 24 * time.Hour, "1 months old"},
		{"半年", 180 * 24 * time.Hour, "6 months old"},
		{"一年进入年档", 365 * 24 * time.Hour, "1 years old"},
		{"两年", 730 * 24 * time.Hour, "2 years old"},
		{"满五年成经典", 1825 * 24 * time.Hour, "Classic"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PublishedAge(now.Add(-tc.ago), now))
		})
	}
}

// TestAuthorInitials 作者姓名缩写
func TestAuthorInitials(t *testing.T) {
	cases := []struct {
		author string
		want   string
	}{
		{"Jane Doe", "JD"},
		{"Madonna", "M"},
		{"", "?"},
		{"   ", "?"},
		{"john ronald reuel tolkien", "JT"}, // 首词+末词,且大写
		{"élodie moreau", "ÉM"},             // 非ASCII首字母
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, AuthorInitials(tc.author), "author=%q", tc.author)
	}
}

// TestProjector_View 投影器整体行为
func TestProjector_View(t *testing.T) {
	localizer := i18n.NewLocalizer(i18n.LocaleEnUS)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	projector := NewProjector(localizer, fixedClock{now: now})

	cover := "https://cdn.example.com/a.jpg"
	base := &OrderProfile{
		ID:            "11111111-2222-3333-4444-555555555555",
		Title:         "A Quiet Evening",
		Author:        "Jane Doe",
		ISBN:          "9780134190440",
		Category:      CategoryFiction,
		Price:         1999,
		PublishedDate: time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC),
		CoverImageURL: &cover,
		IsAvailable:   true,
		StockQuantity: 10,
		CreatedAt:     now,
	}

	t.Run("小说类英文视图", func(t *testing.T) {
		view := projector.View(base, i18n.LocaleEnUS)

		assert.Equal(t, "Fiction & Literature", view.CategoryDisplayName)
		assert.Equal(t, int64(1999), view.Price)
		assert.Equal(t, "$19.99", view.FormattedPrice)
		assert.Equal(t, "2020-05-01", view.PublishedDate)
		assert.Equal(t, "JD", view.AuthorInitials)
		assert.Equal(t, "In Stock", view.AvailabilityStatus)
		assert.NotNil(t, view.CoverImageURL)
		assert.Nil(t, view.UpdatedAt)
	})

	t.Run("西班牙语视图", func(t *testing.T) {
		view := projector.View(base, i18n.LocaleEsES)

		assert.Equal(t, "Ficción y Literatura", view.CategoryDisplayName)
		assert.Equal(t, "En Stock", view.AvailabilityStatus)
		// 货币格式不随locale变化,固定en-US
		assert.Equal(t, "$19.99", view.FormattedPrice)
	})

	t.Run("少儿类折扣且封面置空", func(t *testing.T) {
		child := *base
		child.Category = CategoryChildren
		child.Price = 1000

		view := projector.View(&child, i18n.LocaleEnUS)

		assert.Equal(t, int64(900), view.Price, "数值价格应为折后价")
		assert.Equal(t, "$9.00", view.FormattedPrice, "格式化价格必须与数值一致")
		assert.Nil(t, view.CoverImageURL, "少儿类封面图必须为null")
		// 原实体不被修改
		assert.NotNil(t, child.CoverImageURL)
		assert.Equal(t, int64(1000), child.Price)
	})

	t.Run("库存状态分档", func(t *testing.T) {
		cases := []struct {
			stock     int
			available bool
			want      string
		}{
			{0, false, "Out of Stock"},
			{1, true, "Last Copy"},
			{5, true, "Limited Stock"},
			{6, true, "In Stock"},
			{50, true, "In Stock"},
			{10, false, "Out of Stock"}, // 不可用优先于库存数
		}
		for _, tc := range cases {
			p := *base
			p.StockQuantity = tc.stock
			p.IsAvailable = tc.available

			view := projector.View(&p, i18n.LocaleEnUS)

			assert.Equal(t, tc.want, view.AvailabilityStatus, "stock=%d available=%v", tc.stock, tc.available)
		}
	})
}
