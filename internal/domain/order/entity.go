package order

import (
	"time"
)

// Category 订单档案分类枚举
// 设计说明:
// 1. 使用字符串枚举(而非int),JSON和数据库中都直接可读
// 2. 分类合法性由Validator校验,实体层不做二次校验
type Category string

const (
	CategoryFiction    Category = "Fiction"    // 小说文学
	CategoryNonFiction Category = "NonFiction" // 非虚构
	CategoryTechnical  Category = "Technical"  // 技术专业
	CategoryChildren   Category = "Children"   // 少儿读物
)

// Valid 检查分类是否为四个合法枚举值之一
func (c Category) Valid() bool {
	switch c {
	case CategoryFiction, CategoryNonFiction, CategoryTechnical, CategoryChildren:
		return true
	}
	return false
}

// Submission 订单档案提交数据(创建请求,校验前)
// 设计说明:
// 1. 这是Rule Evaluator的输入,构造后不再修改
// 2. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 3. CoverImageURL可选,nil表示未提供
type Submission struct {
	Title         string    // 标题
	Author        string    // 作者
	ISBN          string    // ISBN号(允许带连字符/空格)
	Category      Category  // 分类
	Price         int64     // 价格(分)
	PublishedDate time.Time // 出版日期
	CoverImageURL *string   // 封面图URL(可选)
	StockQuantity int       // 库存数量
}

// OrderProfile 订单档案实体(聚合根,已持久化记录)
// 设计说明:
// 1. ID在创建时生成(UUID),全局唯一
// 2. IsAvailable是创建时派生的可用标志(库存>0)
// 3. UpdatedAt在创建时为nil,仅更新操作时写入
type OrderProfile struct {
	ID            string
	Title         string
	Author        string
	ISBN          string
	Category      Category
	Price         int64 // 价格(分)
	PublishedDate time.Time
	CoverImageURL *string
	StockQuantity int
	IsAvailable   bool
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// NewOrderProfile 从校验通过的Submission创建订单档案(工厂方法)
// 教学要点:
// 1. 这是"提交数据→持久化记录"方向的派生字段投影
// 2. id和now由调用方传入(纯函数,便于确定性测试)
// 3. 可用标志在创建时派生:库存>0即可用
func NewOrderProfile(sub Submission, id string, now time.Time) *OrderProfile {
	return &OrderProfile{
		ID:            id,
		Title:         sub.Title,
		Author:        sub.Author,
		ISBN:          sub.ISBN,
		Category:      sub.Category,
		Price:         sub.Price,
		PublishedDate: sub.PublishedDate,
		CoverImageURL: sub.CoverImageURL,
		StockQuantity: sub.StockQuantity,
		IsAvailable:   sub.StockQuantity > 0,
		CreatedAt:     now.UTC(),
		UpdatedAt:     nil,
	}
}

// Clock 时钟接口
// 设计说明:所有"当前时间"判断(出版年龄、未来日期、当日限额)都通过Clock获取,
// 便于测试时注入固定时间
type Clock interface {
	Now() time.Time
}

// SystemClock 系统时钟(生产环境实现)
type SystemClock struct{}

// Now 返回当前UTC时间
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
