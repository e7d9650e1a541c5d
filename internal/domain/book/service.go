package book

import (
	"context"
	"strings"
	"time"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装字段校验规则,应用层只做流程编排
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateBook 创建图书
	// 业务规则:
	// - 书名不能为空,且不超过200字符
	// - 作者不能为空
	// - 出版年份在1000到当前年份之间
	CreateBook(ctx context.Context, title, author string, year int) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 更新图书信息(整体替换,校验规则与创建一致)
	UpdateBook(ctx context.Context, id uint, title, author string, year int) (*Book, error)

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, id uint) error

	// ListBooks 分页查询图书列表
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, title, author string, year int) (*Book, error) {
	if err := validateFields(title, author, year); err != nil {
		return nil, err
	}

	book := NewBook(strings.TrimSpace(title), strings.TrimSpace(author), year)
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBook 更新图书信息
func (s *service) UpdateBook(ctx context.Context, id uint, title, author string, year int) (*Book, error) {
	if err := validateFields(title, author, year); err != nil {
		return nil, err
	}

	// 先查询,不存在直接返回ErrBookNotFound
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	book.UpdateInfo(strings.TrimSpace(title), strings.TrimSpace(author), year)
	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	// 先确认存在,保证删除不存在的ID返回404而不是静默成功
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	return s.repo.List(ctx, params)
}

// validateFields 字段校验
// 出版年份的上界取服务器本地时间的当前年份
func validateFields(title, author string, year int) error {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	if title == "" {
		return ErrTitleRequired
	}
	if len([]rune(title)) > 200 {
		return ErrTitleTooLong
	}
	if author == "" {
		return ErrAuthorRequired
	}
	if year < 1000 || year > time.Now().Year() {
		return ErrInvalidYear
	}
	return nil
}
