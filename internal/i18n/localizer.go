// Package i18n 提供简单的本地化字符串查找
//
// 设计说明:
// 1. 本质是"locale → (key → 文案)"的两级字典查找,带双重回退:
//    locale不存在 → 回退到默认locale;key未翻译 → 回退到key本身
// 2. locale始终作为显式参数传递,不读取任何全局/线程级的文化状态
//    (环境文化状态是全局可变状态反模式,这里刻意避免)
package i18n

// 支持的locale常量
const (
	LocaleEnUS = "en-US"
	LocaleEsES = "es-ES"
)

// Localizer 本地化查找器
type Localizer struct {
	defaultLocale string
	resources     map[string]map[string]string
}

// NewLocalizer 创建本地化查找器
// defaultLocale非法时回退到en-US
func NewLocalizer(defaultLocale string) *Localizer {
	l := &Localizer{
		defaultLocale: defaultLocale,
		resources:     builtinResources(),
	}
	if _, ok := l.resources[defaultLocale]; !ok {
		l.defaultLocale = LocaleEnUS
	}
	return l
}

// Translate 查找key在指定locale下的文案
// 回退链:locale字典 → 默认locale字典 → key本身
func (l *Localizer) Translate(key, locale string) string {
	dict, ok := l.resources[locale]
	if !ok {
		dict = l.resources[l.defaultLocale]
	}
	if value, ok := dict[key]; ok {
		return value
	}
	return key
}

// Supported 检查locale是否有对应字典
func (l *Localizer) Supported(locale string) bool {
	_, ok := l.resources[locale]
	return ok
}

// SupportedLocales 返回全部支持的locale(固定顺序)
func (l *Localizer) SupportedLocales() []string {
	return []string{LocaleEnUS, LocaleEsES}
}

// DefaultLocale 返回默认locale
func (l *Localizer) DefaultLocale() string {
	return l.defaultLocale
}

// builtinResources 内置文案字典
// 文案与原始课程实验的资源表保持一致
func builtinResources() map[string]map[string]string {
	return map[string]map[string]string{
		LocaleEnUS: {
			"Cat_Fiction":       "Fiction & Literature",
			"Cat_NonFiction":    "Non-Fiction",
			"Cat_Technical":     "Technical & Professional",
			"Cat_Children":      "Children's Orders",
			"Status_OutOfStock": "Out of Stock",
			"Status_InStock":    "In Stock",
			"Status_Limited":    "Limited Stock",
			"Status_LastCopy":   "Last Copy",
		},
		LocaleEsES: {
			"Cat_Fiction":       "Ficción y Literatura",
			"Cat_NonFiction":    "No Ficción",
			"Cat_Technical":     "Técnico y Profesional",
			"Cat_Children":      "Pedidos Infantiles",
			"Status_OutOfStock": "Agotado",
			"Status_InStock":    "En Stock",
			"Status_Limited":    "Stock Limitado",
			"Status_LastCopy":   "Última Copia",
		},
	}
}
