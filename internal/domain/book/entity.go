package book

import (
	"time"
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. 图书目录实验的数据模型刻意精简:标题、作者、出版年份三个业务字段
// 2. ID由数据库自增生成,作为资源定位符出现在URL中
type Book struct {
	ID        uint
	Title     string // 书名
	Author    string // 作者
	Year      int    // 出版年份
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBook 创建新图书(工厂方法)
func NewBook(title, author string, year int) *Book {
	now := time.Now()
	return &Book{
		Title:     title,
		Author:    author,
		Year:      year,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateInfo 更新图书信息(领域行为)
// 调用方需先通过Service完成字段校验
func (b *Book) UpdateInfo(title, author string, year int) {
	b.Title = title
	b.Author = author
	b.Year = year
	b.UpdatedAt = time.Now()
}
