package order

// RuleConfig 校验规则的可配置数据
// 设计说明:
// 1. 词表类规则(标题违禁词、技术关键词、少儿不当词)作为配置数据注入,
//    而不是写死在校验代码里——调整词表无需改动核心逻辑
// 2. 从config.yaml的validation段加载,缺省时使用DefaultRuleConfig
type RuleConfig struct {
	// TitleDenylist 标题违禁词(大小写不敏感的子串匹配)
	TitleDenylist []string

	// TechnicalKeywords 技术类订单标题必须包含的关键词(至少命中一个)
	TechnicalKeywords []string

	// ChildrenDenylist 少儿类订单标题不当词
	ChildrenDenylist []string

	// DailyCreateLimit 当日(UTC自然日)创建上限
	DailyCreateLimit int64
}

// DefaultRuleConfig 默认规则数据
// 词表与原始课程实验保持一致,仅作为配置缺失时的兜底
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		TitleDenylist:     []string{"badword", "profanity"},
		TechnicalKeywords: []string{"programming", "engineering", "software", "algorithm", "guide", "handbook", "reference"},
		ChildrenDenylist:  []string{"inappropriate", "horror"},
		DailyCreateLimit:  500,
	}
}
