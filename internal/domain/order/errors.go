package order

import (
	apperrors "github.com/xiebiao/orderlab/pkg/errors"
)

// 订单档案领域错误定义
var (
	// ErrProfileNotFound 订单档案不存在
	ErrProfileNotFound = apperrors.New(apperrors.ErrCodeNotFound, "order profile not found")

	// ErrISBNDuplicate ISBN已存在(数据库唯一索引兜底)
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "an order with this ISBN already exists")

	// ErrLookupUnavailable 存在性检查失败(基础设施错误,非校验拒绝)
	ErrLookupUnavailable = apperrors.New(apperrors.ErrCodeDatabaseError, "uniqueness lookup unavailable")
)

// ValidationErrors 校验错误集合:字段名 → 该字段所有违反规则的消息
// 设计说明:
// 1. 校验拒绝是正常的、完整描述的业务结果,不是error——
//    Evaluator返回非空的ValidationErrors表示拒绝,返回error仅表示基础设施故障
// 2. 不短路:所有字段的所有适用规则都执行,错误全部累积
type ValidationErrors map[string][]string

// Add 追加一条字段错误消息
func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

// Has 是否存在任何错误
func (v ValidationErrors) Has() bool {
	return len(v) > 0
}

// Summary 拼接所有消息(用于批量结果和日志)
func (v ValidationErrors) Summary() string {
	s := ""
	for _, msgs := range v {
		for _, m := range msgs {
			if s != "" {
				s += ", "
			}
			s += m
		}
	}
	return s
}
