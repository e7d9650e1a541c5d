package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/orderlab/internal/i18n"
)

// TestResolveLocale Accept-Language协商
func TestResolveLocale(t *testing.T) {
	localizer := i18n.NewLocalizer(i18n.LocaleEnUS)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"精确匹配", "es-ES", i18n.LocaleEsES},
		{"带q权重的标准头", "es-ES,es;q=0.9,en;q=0.8", i18n.LocaleEsES},
		{"只有语言不带地区", "es", i18n.LocaleEsES},
		{"大小写不敏感", "ES-es", i18n.LocaleEsES},
		{"第一项不支持取后续项", "fr-FR,es-ES;q=0.9", i18n.LocaleEsES},
		{"全都不支持用缺省值", "fr-FR,de-DE", i18n.LocaleEnUS},
		{"空头用缺省值", "", i18n.LocaleEnUS},
		{"通配符用缺省值", "*", i18n.LocaleEnUS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveLocale(tt.header, localizer))
		})
	}
}
