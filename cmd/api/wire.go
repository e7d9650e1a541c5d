//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入不同，Wire在编译期生成代码
// 3. 优势：零运行时开销、类型安全、编译期检测循环依赖
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appbook "github.com/xiebiao/orderlab/internal/application/book"
	apporder "github.com/xiebiao/orderlab/internal/application/order"
	"github.com/xiebiao/orderlab/internal/domain/book"
	"github.com/xiebiao/orderlab/internal/domain/order"
	"github.com/xiebiao/orderlab/internal/i18n"
	"github.com/xiebiao/orderlab/internal/infrastructure/config"
	"github.com/xiebiao/orderlab/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/orderlab/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/orderlab/internal/interface/http/handler"
	"github.com/xiebiao/orderlab/internal/interface/http/middleware"
	"github.com/xiebiao/orderlab/internal/metrics"
	pkgmetrics "github.com/xiebiao/orderlab/pkg/metrics"
	"github.com/xiebiao/orderlab/pkg/mq"
)

// ========================================
// Wire Provider Sets (依赖分组)
// ========================================

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,     // 加载配置文件
	mysql.NewDB,     // 创建MySQL连接
	redis.NewClient, // 创建Redis连接
	provideMQPublisher,
	provideViewCache,
	wire.Bind(new(apporder.ViewCache), new(*redis.OrderViewCache)),
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewOrderRepository, // 订单档案仓储
	mysql.NewBookRepository,  // 图书仓储
	mysql.NewTxManager,       // 事务管理器
	wire.Bind(new(apporder.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	provideLocalizer,
	provideClock,
	provideValidator,
	order.NewProjector, // 展示投影器
	book.NewService,    // 图书领域服务
	provideAggregator,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	apporder.NewCreateProfileUseCase,  // 单条创建管道
	apporder.NewBatchCreateUseCase,    // 批量创建管道
	apporder.NewGetProfileUseCase,     // 单条查询
	apporder.NewListByCategoryUseCase, // 分类查询
	apporder.NewDashboardUseCase,      // 指标看板
	appbook.NewCreateBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewListBooksUseCase,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewOrderHandler, // 订单档案处理器
	handler.NewBookHandler,  // 图书处理器
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================

// provideMQPublisher 从配置创建MQ发布器
// 未启用时返回nil,Publisher的方法对nil接收者是空操作
func provideMQPublisher(cfg *config.Config) (*mq.Publisher, error) {
	if !cfg.MQ.Enabled {
		return nil, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
}

// provideViewCache 从Redis客户端创建分类视图缓存
func provideViewCache(cfg *config.Config, client *goredis.Client) *redis.OrderViewCache {
	return redis.NewOrderViewCache(client, cfg.Redis.CacheTTL)
}

// provideLocalizer 从配置创建本地化查找器
func provideLocalizer(cfg *config.Config) *i18n.Localizer {
	return i18n.NewLocalizer(cfg.I18N.DefaultLocale)
}

// provideClock 提供系统时钟
func provideClock() order.Clock {
	return order.SystemClock{}
}

// provideValidator 创建Rule Evaluator
// 词表规则来自配置,缺省项回退到默认词表
func provideValidator(cfg *config.Config, repo order.Repository, clock order.Clock) *order.Validator {
	rules := order.DefaultRuleConfig()
	if len(cfg.Validation.TitleDenylist) > 0 {
		rules.TitleDenylist = cfg.Validation.TitleDenylist
	}
	if len(cfg.Validation.TechnicalKeywords) > 0 {
		rules.TechnicalKeywords = cfg.Validation.TechnicalKeywords
	}
	if len(cfg.Validation.ChildrenDenylist) > 0 {
		rules.ChildrenDenylist = cfg.Validation.ChildrenDenylist
	}
	if cfg.Validation.DailyCreateLimit > 0 {
		rules.DailyCreateLimit = int64(cfg.Validation.DailyCreateLimit)
	}
	return order.NewValidator(repo, clock, rules)
}

// provideAggregator 从配置创建指标聚合器
func provideAggregator(cfg *config.Config) *metrics.Aggregator {
	return metrics.NewAggregator(cfg.Metrics.SampleCapacity)
}

// provideGinEngine 创建并配置Gin引擎
// 教学要点：路由注册需要所有Handler,Wire会自动注入
func provideGinEngine(
	cfg *config.Config,
	localizer *i18n.Localizer,
	orderHandler *handler.OrderHandler,
	bookHandler *handler.BookHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.Correlation())
	r.Use(middleware.Locale(localizer))

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(pkgmetrics.Handler()))

	// Swagger文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		orders := v1.Group("/orders")
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.POST("/batch", orderHandler.BatchCreateOrders)
			orders.GET("/metrics", orderHandler.MetricsDashboard)
			orders.GET("/category/:category", orderHandler.ListOrdersByCategory)
			orders.GET("/:id", orderHandler.GetOrder)
		}

		books := v1.Group("/books")
		{
			books.POST("", bookHandler.CreateBook)
			books.GET("", bookHandler.ListBooks)
			books.GET("/:id", bookHandler.GetBook)
			books.PUT("/:id", bookHandler.UpdateBook)
			books.DELETE("/:id", bookHandler.DeleteBook)
		}
	}

	return r
}

// ========================================
// Wire Injector (依赖注入器)
// ========================================

// InitializeApp 初始化整个应用
// 返回：配置好的Gin引擎
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
