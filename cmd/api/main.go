package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
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
	"github.com/xiebiao/orderlab/pkg/response"
)

// main 主程序入口
// 说明：手动依赖注入（wire.go提供Wire版本的等价组装）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 3. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 4. 初始化MQ(可选组件,未启用时publisher为nil,发布调用变为空操作)
	var publisher *mq.Publisher
	if cfg.MQ.Enabled {
		publisher, err = mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			log.Fatalf("初始化MQ失败: %v", err)
		}
		defer publisher.Close()
	}

	// 5. 依赖注入（手动组装）
	// 学习要点：依赖注入链
	// Repository ← Validator/Service ← UseCase ← Handler

	// 基础设施层
	orderRepo := mysql.NewOrderRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	txManager := mysql.NewTxManager(db)
	viewCache := redis.NewOrderViewCache(redisClient, cfg.Redis.CacheTTL)

	// 领域层
	localizer := i18n.NewLocalizer(cfg.I18N.DefaultLocale)
	clock := order.SystemClock{}
	validator := order.NewValidator(orderRepo, clock, ruleConfig(cfg))
	projector := order.NewProjector(localizer, clock)
	aggregator := metrics.NewAggregator(cfg.Metrics.SampleCapacity)
	bookService := book.NewService(bookRepo)

	// 应用层
	createOrderUseCase := apporder.NewCreateProfileUseCase(orderRepo, validator, projector, aggregator, clock, publisher)
	batchCreateUseCase := apporder.NewBatchCreateUseCase(orderRepo, validator, txManager, aggregator, clock, publisher)
	getOrderUseCase := apporder.NewGetProfileUseCase(orderRepo, projector)
	listOrdersUseCase := apporder.NewListByCategoryUseCase(orderRepo, projector, viewCache)
	dashboardUseCase := apporder.NewDashboardUseCase(aggregator)

	createBookUseCase := appbook.NewCreateBookUseCase(bookService)
	getBookUseCase := appbook.NewGetBookUseCase(bookService)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)

	// 接口层
	orderHandler := handler.NewOrderHandler(createOrderUseCase, batchCreateUseCase,
		getOrderUseCase, listOrdersUseCase, dashboardUseCase)
	bookHandler := handler.NewBookHandler(createBookUseCase, getBookUseCase,
		updateBookUseCase, deleteBookUseCase, listBooksUseCase)

	// 6. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Correlation())
	r.Use(middleware.Locale(localizer))

	// 7. 注册路由
	registerRoutes(r, orderHandler, bookHandler)

	// 8. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   创建订单档案: POST http://localhost%s/api/v1/orders\n", addr)
	fmt.Printf("   批量创建: POST http://localhost%s/api/v1/orders/batch\n", addr)
	fmt.Printf("   指标看板: GET http://localhost%s/api/v1/orders/metrics\n", addr)
	fmt.Printf("   API文档: http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// ruleConfig 从配置构建校验规则数据,缺省时使用默认词表
func ruleConfig(cfg *config.Config) order.RuleConfig {
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
	return rules
}

// registerRoutes 注册路由
func registerRoutes(r *gin.Engine, orderHandler *handler.OrderHandler, bookHandler *handler.BookHandler) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
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
		// 订单档案模块
		orders := v1.Group("/orders")
		{
			orders.POST("", orderHandler.CreateOrder)                             // 单条创建管道
			orders.POST("/batch", orderHandler.BatchCreateOrders)                 // 批量创建(原子提交)
			orders.GET("/metrics", orderHandler.MetricsDashboard)                 // 指标看板
			orders.GET("/category/:category", orderHandler.ListOrdersByCategory) // 分类查询(带缓存)
			orders.GET("/:id", orderHandler.GetOrder)                             // 单条查询
		}

		// 图书目录模块
		books := v1.Group("/books")
		{
			books.POST("", bookHandler.CreateBook)
			books.GET("", bookHandler.ListBooks)
			books.GET("/:id", bookHandler.GetBook)
			books.PUT("/:id", bookHandler.UpdateBook)
			books.DELETE("/:id", bookHandler.DeleteBook)
		}
	}
}
