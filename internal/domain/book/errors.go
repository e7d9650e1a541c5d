package book

import (
	apperrors "github.com/xiebiao/orderlab/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "book not found")

	// ErrTitleRequired 书名不能为空
	ErrTitleRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "title is required")

	// ErrTitleTooLong 书名过长
	ErrTitleTooLong = apperrors.New(apperrors.ErrCodeInvalidParams, "title must be at most 200 characters")

	// ErrAuthorRequired 作者不能为空
	ErrAuthorRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "author is required")

	// ErrInvalidYear 出版年份超出合法区间
	ErrInvalidYear = apperrors.New(apperrors.ErrCodeInvalidParams, "year must be between 1000 and the current year")
)
