package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTranslate_FallbackChain 回退链:locale字典 → 默认locale字典 → key本身
func TestTranslate_FallbackChain(t *testing.T) {
	l := NewLocalizer(LocaleEnUS)

	t.Run("命中目标locale", func(t *testing.T) {
		assert.Equal(t, "Ficción y Literatura", l.Translate("Cat_Fiction", LocaleEsES))
	})

	t.Run("未知locale回退到默认字典", func(t *testing.T) {
		assert.Equal(t, "Fiction & Literature", l.Translate("Cat_Fiction", "fr-FR"))
	})

	t.Run("未翻译的key回退到key本身", func(t *testing.T) {
		assert.Equal(t, "Cat_Unknown", l.Translate("Cat_Unknown", LocaleEnUS))
	})
}

// TestNewLocalizer_InvalidDefault 非法默认locale回退到en-US
func TestNewLocalizer_InvalidDefault(t *testing.T) {
	l := NewLocalizer("zz-ZZ")
	assert.Equal(t, LocaleEnUS, l.DefaultLocale())
	assert.Equal(t, "In Stock", l.Translate("Status_InStock", "zz-ZZ"))
}

// TestSupported locale支持判定
func TestSupported(t *testing.T) {
	l := NewLocalizer(LocaleEnUS)

	assert.True(t, l.Supported(LocaleEnUS))
	assert.True(t, l.Supported(LocaleEsES))
	assert.False(t, l.Supported("fr-FR"))
	assert.False(t, l.Supported("en"), "只接受完整的locale标识")

	assert.Equal(t, []string{LocaleEnUS, LocaleEsES}, l.SupportedLocales())
}
