package dto

// BookRequest HTTP图书创建/更新请求
// validator tag说明:
// - required: 必填字段
// - min/max: 数值或长度范围校验
// 年份上界(当前年份)依赖运行时时钟,由领域服务校验
type BookRequest struct {
	Title  string `json:"title" binding:"required,max=200" example:"The Pragmatic Programmer"`
	Author string `json:"author" binding:"required,max=100" example:"David Thomas"`
	Year   int    `json:"year" binding:"required,min=1000" example:"2019"`
}

// ListBooksRequest HTTP图书列表请求
type ListBooksRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword  string `form:"keyword" binding:"omitempty,max=100" example:"Go"`
}
