package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/orderlab/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 学习要点：AutoMigrate只会创建表、添加字段,不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&OrderProfileModel{},
		&BookModel{},
	)
}

// OrderProfileModel GORM订单档案模型
// 设计说明:
// 1. 这是infrastructure层的数据模型,包含GORM tag
// 2. domain/order/entity.go是领域实体,不依赖GORM
// 3. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 4. ISBNNormalized存储去连字符后的形式并加唯一索引,
//    使"978-7-115"与"9787115"视为同一ISBN
// 5. (Title, Author)加复合索引,支撑重复性检查
type OrderProfileModel struct {
	ID             string         `gorm:"primaryKey;size:36;comment:UUID"`
	Title          string         `gorm:"index:idx_title_author;size:200;not null;comment:标题"`
	Author         string         `gorm:"index:idx_title_author;size:100;not null;comment:作者"`
	ISBN           string         `gorm:"size:20;not null;comment:ISBN(原始输入)"`
	ISBNNormalized string         `gorm:"uniqueIndex;size:13;not null;comment:ISBN(去连字符)"`
	Category       string         `gorm:"index;size:20;not null;comment:分类"`
	Price          int64          `gorm:"not null;comment:价格(分)"`
	PublishedDate  time.Time      `gorm:"not null;comment:出版日期"`
	CoverImageURL  *string        `gorm:"size:500;comment:封面图片URL"`
	IsAvailable    bool           `gorm:"not null;comment:是否可售"`
	StockQuantity  int            `gorm:"not null;comment:库存数量"`
	CreatedAt      time.Time      `gorm:"index;not null;comment:创建时间"`
	UpdatedAt      *time.Time     `gorm:"comment:更新时间(创建时为NULL)"`
	DeletedAt      gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (OrderProfileModel) TableName() string {
	return "order_profiles"
}

// BookModel GORM图书模型(图书目录实验)
type BookModel struct {
	ID        uint           `gorm:"primaryKey"`
	Title     string         `gorm:"index:idx_book_search;size:200;not null;comment:书名"`
	Author    string         `gorm:"index:idx_book_search;size:100;not null;comment:作者"`
	Year      int            `gorm:"not null;comment:出版年份"`
	CreatedAt time.Time      `gorm:"index;comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}
