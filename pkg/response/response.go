package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/xiebiao/orderlab/pkg/errors"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码（非HTTP状态码），方便客户端判断错误类型
// 2. Message是用户友好的提示信息
// 3. Data是业务数据，成功时返回，失败时为null（校验拒绝时携带字段错误集）
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应（Code=0表示成功）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应（201 + Location头）
// 用于单条订单档案创建:201语义 + 新资源的位置引用
func Created(c *gin.Context, location string, data interface{}) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "created",
		Data:    data,
	})
}

// ValidationError 校验拒绝响应（400语义）
// 设计说明:
// 1. 校验拒绝是可恢复的正常结果,响应枚举每个违反字段的全部消息,绝不只给第一条
// 2. errors为"字段名 → 消息列表"
func ValidationError(c *gin.Context, errors map[string][]string) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    apperrors.ErrCodeValidationFailed,
		Message: "validation failed",
		Data:    gin.H{"errors": errors},
	})
}

// Error 错误响应（自动处理AppError）
// 错误码映射HTTP状态:404类→404,5xxxx→500,其余客户端错误→400
// 内部错误细节(appErr.Err)只进日志,不出现在响应体
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	c.JSON(httpStatus(appErr.Code), Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    nil,
	})
}

// ErrorWithData 错误响应并携带数据
// 用于批量提交失败:整批回滚后仍返回逐项结果,让调用方看到每项的判定
func ErrorWithData(c *gin.Context, err error, data interface{}) {
	appErr := apperrors.GetAppError(err)
	c.JSON(httpStatus(appErr.Code), Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    data,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(httpStatus(code), Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// httpStatus 业务错误码 → HTTP状态码
func httpStatus(code int) int {
	switch {
	case code == 0:
		return http.StatusOK
	case code >= 50000:
		return http.StatusInternalServerError
	case code >= 40400 && code < 40500:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// =========================================
// 分页响应结构
// =========================================

// PageData 分页数据封装
type PageData struct {
	List       interface{} `json:"list"`        // 数据列表
	Total      int64       `json:"total"`       // 总记录数
	Page       int         `json:"page"`        // 当前页码
	PageSize   int         `json:"page_size"`   // 每页大小
	TotalPages int         `json:"total_pages"` // 总页数
}

// NewPageData 创建分页数据
func NewPageData(list interface{}, total int64, page, pageSize int) *PageData {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return &PageData{
		List:       list,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
