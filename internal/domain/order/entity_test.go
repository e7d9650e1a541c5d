package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestNewOrderProfile 提交数据→持久化记录的派生投影
func TestNewOrderProfile(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.FixedZone("CST", 8*3600))
	sub := validSubmission()

	p := NewOrderProfile(sub, "some-uuid", now)

	assert.Equal(t, "some-uuid", p.ID)
	assert.Equal(t, sub.Title, p.Title)
	assert.True(t, p.IsAvailable, "库存>0时可用")
	assert.Equal(t, time.UTC, p.CreatedAt.Location(), "创建时间必须归一化为UTC")
	assert.Nil(t, p.UpdatedAt, "创建时UpdatedAt必须为nil")

	t.Run("零库存不可用", func(t *testing.T) {
		sub := validSubmission()
		sub.StockQuantity = 0

		p := NewOrderProfile(sub, "id-2", now)

		assert.False(t, p.IsAvailable)
	})
}

// TestCategoryValid 分类枚举合法性
func TestCategoryValid(t *testing.T) {
	for _, c := range []Category{CategoryFiction, CategoryNonFiction, CategoryTechnical, CategoryChildren} {
		assert.True(t, c.Valid(), "category=%s", c)
	}
	assert.False(t, Category("Cooking").Valid())
	assert.False(t, Category("").Valid())
	assert.False(t, Category("fiction").Valid(), "枚举大小写敏感")
}
