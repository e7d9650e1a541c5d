package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/orderlab/internal/i18n"
)

// localeKey 展示locale在gin.Context中的键
const localeKey = "locale"

// Locale 语言协商中间件
//
// 教学要点：
// 1. 解析Accept-Language头,匹配到支持的locale,匹配不到用配置的缺省值
// 2. locale一旦解析,后续所有投影调用都显式传递它,
//    本地化行为只由这个参数决定,不读取任何进程级全局状态
func Locale(localizer *i18n.Localizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(localeKey, resolveLocale(c.GetHeader("Accept-Language"), localizer))
		c.Next()
	}
}

// GetLocale 从gin.Context读取展示locale
func GetLocale(c *gin.Context) string {
	return c.GetString(localeKey)
}

// resolveLocale 从Accept-Language头解析locale
// 简化实现:按逗号切分后取第一个能匹配上的支持项,忽略q权重
// 例如"es-ES,es;q=0.9,en;q=0.8" → es-ES
func resolveLocale(header string, localizer *i18n.Localizer) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		for _, supported := range localizer.SupportedLocales() {
			if strings.EqualFold(tag, supported) {
				return supported
			}
			// 只给语言不给地区时(如"es"),匹配到该语言的支持项
			if strings.EqualFold(tag, strings.SplitN(supported, "-", 2)[0]) {
				return supported
			}
		}
	}
	return localizer.DefaultLocale()
}
