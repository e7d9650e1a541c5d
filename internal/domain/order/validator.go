package order

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Validator 订单档案规则评估器(Rule Evaluator)
// 设计说明:
// 1. 对一个Submission执行有序的字段级规则和整体业务规则,
//    产出"空错误集=通过"或"字段→消息列表=拒绝"
// 2. 错误累积语义:跨字段不短路,同一字段内前序规则失败后,后续规则仍然执行;
//    唯一例外是When条件门控的规则,条件不满足时整组跳过
// 3. 部分规则需要查询已持久化状态(标题+作者唯一性、ISBN唯一性、当日限额),
//    这些是异步I/O,查询本身失败时才返回error(基础设施错误)
type Validator struct {
	lookup Lookup
	clock  Clock
	rules  RuleConfig
}

// NewValidator 创建规则评估器
func NewValidator(lookup Lookup, clock Clock, rules RuleConfig) *Validator {
	return &Validator{
		lookup: lookup,
		clock:  clock,
		rules:  rules,
	}
}

// authorNamePattern 作者名合法字符:任意语言字母、空格、连字符、撇号、句点
// 教学要点:\p{L}匹配Unicode字母类别,天然支持非ASCII作者名(如"威廉·肯尼迪"不含间隔号则合法)
var authorNamePattern = regexp.MustCompile(`^[\p{L}\s\-'.]+$`)

// imageExtensions 封面图允许的扩展名
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// Validate 执行全部校验规则
// 返回值:
// - (空集, nil): 通过
// - (非空集, nil): 拒绝,错误集完整描述所有违反的规则
// - (_, error): 存在性检查无法完成(数据库不可用等),属于基础设施错误
func (v *Validator) Validate(ctx context.Context, sub Submission) (ValidationErrors, error) {
	errs := ValidationErrors{}
	now := v.clock.Now()

	// ---------- 字段级规则(声明顺序执行,全部累积) ----------
	if err := v.validateTitle(ctx, sub, errs); err != nil {
		return nil, err
	}
	v.validateAuthor(sub, errs)
	if err := v.validateISBN(ctx, sub, errs); err != nil {
		return nil, err
	}
	v.validateCategory(sub, errs)
	v.validatePrice(sub, errs)
	v.validatePublishedDate(sub, now, errs)
	v.validateStock(sub, errs)
	v.validateCoverImageURL(sub, errs)

	// ---------- 整体业务规则 ----------
	if err := v.validateBusinessRules(ctx, sub, now, errs); err != nil {
		return nil, err
	}

	// ---------- 条件规则(When门控:条件不满足则整组跳过) ----------
	if sub.Category == CategoryTechnical {
		v.validateTechnicalRules(sub, now, errs)
	}
	if sub.Category == CategoryChildren {
		v.validateChildrenRules(sub, errs)
	}

	// 跨字段规则:高价订单限库存
	if sub.Price > 10_000 {
		if sub.StockQuantity > 20 {
			errs.Add("stock_quantity", "Expensive orders (>$100) must have a stock of 20 or less.")
		}
	}

	return errs, nil
}

// validateTitle 标题规则:非空、长度1-200、违禁词、(标题,作者)唯一
func (v *Validator) validateTitle(ctx context.Context, sub Submission, errs ValidationErrors) error {
	if sub.Title == "" {
		errs.Add("title", "Title must not be empty.")
	}
	if n := utf8.RuneCountInString(sub.Title); n < 1 || n > 200 {
		errs.Add("title", "Title must be between 1 and 200 characters.")
	}
	if containsAny(sub.Title, v.rules.TitleDenylist) {
		errs.Add("title", "Title contains inappropriate content.")
	}

	// 异步存在性检查:同一作者下标题必须唯一
	exists, err := v.lookup.ExistsByTitleAndAuthor(ctx, sub.Title, sub.Author)
	if err != nil {
		return err
	}
	if exists {
		errs.Add("title", "This title already exists for this author.")
	}
	return nil
}

// validateAuthor 作者规则:非空、长度2-100、字符合法
func (v *Validator) validateAuthor(sub Submission, errs ValidationErrors) {
	if sub.Author == "" {
		errs.Add("author", "Author must not be empty.")
	}
	if n := utf8.RuneCountInString(sub.Author); n < 2 || n > 100 {
		errs.Add("author", "Author must be between 2 and 100 characters.")
	}
	if !authorNamePattern.MatchString(sub.Author) {
		errs.Add("author", "Author name contains invalid characters.")
	}
}

// validateISBN ISBN规则:非空、规范化后10或13位数字、全局唯一
func (v *Validator) validateISBN(ctx context.Context, sub Submission, errs ValidationErrors) error {
	if sub.ISBN == "" {
		errs.Add("isbn", "ISBN must not be empty.")
	}
	if !validISBN(sub.ISBN) {
		errs.Add("isbn", "ISBN format is invalid. It must be 10 or 13 digits, optionally with hyphens.")
	}

	exists, err := v.lookup.ExistsByISBN(ctx, sub.ISBN)
	if err != nil {
		return err
	}
	if exists {
		errs.Add("isbn", "An order with this ISBN already exists.")
	}
	return nil
}

// validateCategory 分类必须是四个枚举值之一
func (v *Validator) validateCategory(sub Submission, errs ValidationErrors) {
	if !sub.Category.Valid() {
		errs.Add("category", "A valid category is required.")
	}
}

// validatePrice 价格:(0, 10000美元)开区间,内部以分存储
func (v *Validator) validatePrice(sub Submission, errs ValidationErrors) {
	if sub.Price <= 0 {
		errs.Add("price", "Price must be greater than 0.")
	}
	if sub.Price >= 1_000_000 {
		errs.Add("price", "Price must be less than 10000.")
	}
}

// validatePublishedDate 出版日期:严格早于当前时间,严格晚于1400年
func (v *Validator) validatePublishedDate(sub Submission, now time.Time, errs ValidationErrors) {
	if !sub.PublishedDate.Before(now) {
		errs.Add("published_date", "Published date cannot be in the future.")
	}
	if !sub.PublishedDate.After(time.Date(1400, 1, 1, 0, 0, 0, 0, time.UTC)) {
		errs.Add("published_date", "Published date cannot be before the year 1400.")
	}
}

// validateStock 库存:0-100000(含)
func (v *Validator) validateStock(sub Submission, errs ValidationErrors) {
	if sub.StockQuantity < 0 {
		errs.Add("stock_quantity", "Stock quantity cannot be negative.")
	}
	if sub.StockQuantity > 100_000 {
		errs.Add("stock_quantity", "Stock quantity is unreasonably high.")
	}
}

// validateCoverImageURL 封面图URL(可选):存在时必须是http/https绝对URL且路径以图片扩展名结尾
func (v *Validator) validateCoverImageURL(sub Submission, errs ValidationErrors) {
	if sub.CoverImageURL == nil || *sub.CoverImageURL == "" {
		return // When条件:未提供时整组跳过
	}
	if !validImageURL(*sub.CoverImageURL) {
		errs.Add("cover_image_url", "CoverImageUrl must be a valid HTTP/HTTPS URL pointing to a common image format.")
	}
}

// validateBusinessRules 整体业务规则:
// 1. 当日(UTC自然日)创建数达到上限则拒绝
// 2. 价格>500美元且库存>10则拒绝
func (v *Validator) validateBusinessRules(ctx context.Context, sub Submission, now time.Time, errs ValidationErrors) error {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	createdToday, err := v.lookup.CountCreatedSince(ctx, midnight)
	if err != nil {
		return err
	}

	violated := createdToday >= v.rules.DailyCreateLimit ||
		(sub.Price > 50_000 && sub.StockQuantity > 10)
	if violated {
		errs.Add("order", "The order violates one or more business rules.")
	}
	return nil
}

// validateTechnicalRules 技术类条件规则(Category=Technical时激活)
func (v *Validator) validateTechnicalRules(sub Submission, now time.Time, errs ValidationErrors) {
	if sub.Price < 2_000 {
		errs.Add("price", "Technical orders must have a minimum price of $20.00.")
	}
	if !sub.PublishedDate.After(now.AddDate(-5, 0, 0)) {
		errs.Add("published_date", "Technical orders must be published within the last 5 years.")
	}
	if !containsAny(sub.Title, v.rules.TechnicalKeywords) {
		errs.Add("title", "Technical orders must mention a recognized technical topic in the title.")
	}
}

// validateChildrenRules 少儿类条件规则(Category=Children时激活)
func (v *Validator) validateChildrenRules(sub Submission, errs ValidationErrors) {
	if sub.Price > 5_000 {
		errs.Add("price", "Children's orders cannot exceed $50.00.")
	}
	if containsAny(sub.Title, v.rules.ChildrenDenylist) {
		errs.Add("title", "Title is not appropriate for children.")
	}
}

// =========================================
// 辅助函数
// =========================================

// NormalizeISBN 规范化ISBN:去除连字符和空格
// 批量管道的批内去重也使用规范化后的ISBN比较
func NormalizeISBN(isbn string) string {
	s := strings.ReplaceAll(isbn, "-", "")
	return strings.ReplaceAll(s, " ", "")
}

// validISBN 规范化后必须是恰好10或13位数字
func validISBN(isbn string) bool {
	s := NormalizeISBN(isbn)
	if len(s) != 10 && len(s) != 13 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// validImageURL http/https绝对URL,路径以常见图片扩展名结尾
func validImageURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	path := strings.ToLower(u.Path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// containsAny 大小写不敏感的子串匹配:s包含words中任意一个则返回true
func containsAny(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, w := range words {
		if w != "" && strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}
