package order

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/xiebiao/orderlab/internal/i18n"
)

// 本文件是所有派生展示字段的唯一计算点。
//
// 教学要点:
// 少儿折扣、可用状态分档这类公式在创建响应和读取投影两条路径上都会用到,
// 如果两处各写一份,公式漂移只是时间问题。这里收敛为一组纯函数,
// 两条路径共用同一个Projector,任何一处的行为差异都视为缺陷。

// ProfileView 订单档案展示视图(读优化,每次响应新构造,永不缓存为实体)
type ProfileView struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Author              string   `json:"author"`
	ISBN                string   `json:"isbn"`
	Category            Category `json:"category"`
	CategoryDisplayName string   `json:"category_display_name"` // 本地化分类文案
	Price               int64    `json:"price"`                 // 有效价格(分,少儿类已含9折)
	FormattedPrice      string   `json:"formatted_price"`       // 货币格式化字符串(固定en-US)
	PublishedDate       string   `json:"published_date"`
	CoverImageURL       *string  `json:"cover_image_url"` // 少儿类强制为null
	IsAvailable         bool     `json:"is_available"`
	StockQuantity       int      `json:"stock_quantity"`
	PublishedAge        string   `json:"published_age"`       // 出版年龄分档
	AuthorInitials      string   `json:"author_initials"`     // 作者姓名缩写
	AvailabilityStatus  string   `json:"availability_status"` // 本地化库存状态文案
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           *string  `json:"updated_at,omitempty"`
}

// Projector 派生字段投影器:OrderProfile → ProfileView
// locale作为显式参数传入View,不从任何环境状态读取
type Projector struct {
	localizer *i18n.Localizer
	clock     Clock
}

// NewProjector 创建投影器
func NewProjector(localizer *i18n.Localizer, clock Clock) *Projector {
	return &Projector{localizer: localizer, clock: clock}
}

// View 构造展示视图(纯投影,不修改实体)
func (pr *Projector) View(p *OrderProfile, locale string) *ProfileView {
	now := pr.clock.Now()

	// 少儿类:封面图置空
	cover := p.CoverImageURL
	if p.Category == CategoryChildren {
		cover = nil
	}

	// 少儿折扣同时作用于数值价格和格式化价格(两者必须一致)
	effective := EffectivePrice(p.Category, p.Price)

	var updatedAt *string
	if p.UpdatedAt != nil {
		s := p.UpdatedAt.Format("2006-01-02 15:04:05")
		updatedAt = &s
	}

	return &ProfileView{
		ID:                  p.ID,
		Title:               p.Title,
		Author:              p.Author,
		ISBN:                p.ISBN,
		Category:            p.Category,
		CategoryDisplayName: pr.localizer.Translate(categoryKey(p.Category), locale),
		Price:               effective,
		FormattedPrice:      FormatPrice(effective),
		PublishedDate:       p.PublishedDate.Format("2006-01-02"),
		CoverImageURL:       cover,
		IsAvailable:         p.IsAvailable,
		StockQuantity:       p.StockQuantity,
		PublishedAge:        PublishedAge(p.PublishedDate, now),
		AuthorInitials:      AuthorInitials(p.Author),
		AvailabilityStatus:  pr.localizer.Translate(availabilityKey(p.IsAvailable, p.StockQuantity), locale),
		CreatedAt:           p.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:           updatedAt,
	}
}

// EffectivePrice 有效价格:少儿类打9折(四舍五入到分),其余分类原价
func EffectivePrice(category Category, priceCents int64) int64 {
	if category == CategoryChildren {
		return (priceCents*9 + 5) / 10
	}
	return priceCents
}

// usPrinter 货币格式化固定使用en-US(含千分位分组)
var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatPrice 格式化价格(分→"$1,234.50")
func FormatPrice(cents int64) string {
	return usPrinter.Sprintf("$%v", number.Decimal(float64(cents)/100,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// PublishedAge 出版年龄分档
// <30天 "New Release";<365天 "{n} months old"(n=天/30向下取整);
// <1825天 "{n} years old"(n=天/365向下取整);否则 "Classic"
func PublishedAge(published, now time.Time) string {
	days := int(now.Sub(published).Hours() / 24)

	switch {
	case days < 30:
		return "New Release"
	case days < 365:
		return usPrinter.Sprintf("%d months old", days/30)
	case days < 1825:
		return usPrinter.Sprintf("%d years old", days/365)
	default:
		return "Classic"
	}
}

// AuthorInitials 作者姓名缩写
// ≥2个空格分隔词:首词首字母+末词首字母;恰好1个词:首字母;空白:"?"
func AuthorInitials(author string) string {
	names := strings.Fields(author)
	switch {
	case len(names) >= 2:
		return upperFirstRune(names[0]) + upperFirstRune(names[len(names)-1])
	case len(names) == 1:
		return upperFirstRune(names[0])
	default:
		return "?"
	}
}

// upperFirstRune 取首个rune并大写(支持非ASCII)
func upperFirstRune(s string) string {
	for _, r := range s {
		return string(unicode.ToUpper(r))
	}
	return ""
}

// categoryKey 分类 → 本地化资源key
func categoryKey(c Category) string {
	switch c {
	case CategoryFiction:
		return "Cat_Fiction"
	case CategoryNonFiction:
		return "Cat_NonFiction"
	case CategoryTechnical:
		return "Cat_Technical"
	case CategoryChildren:
		return "Cat_Children"
	default:
		return "Uncategorized"
	}
}

// availabilityKey 库存状态分档 → 本地化资源key
// 不可用或库存0为缺货;1为最后一件;≤5为库存有限;其余为有货
func availabilityKey(isAvailable bool, stock int) string {
	switch {
	case !isAvailable || stock == 0:
		return "Status_OutOfStock"
	case stock == 1:
		return "Status_LastCopy"
	case stock <= 5:
		return "Status_Limited"
	default:
		return "Status_InStock"
	}
}
