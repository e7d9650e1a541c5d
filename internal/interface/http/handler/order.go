package handler

import (
	"errors"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/orderlab/internal/application/order"
	"github.com/xiebiao/orderlab/internal/interface/http/dto"
	"github.com/xiebiao/orderlab/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/orderlab/pkg/errors"
	"github.com/xiebiao/orderlab/pkg/response"
)

// publishedDateLayout 请求中出版日期的格式
const publishedDateLayout = "2006-01-02"

// OrderHandler 订单档案HTTP处理器
type OrderHandler struct {
	createUseCase    *apporder.CreateProfileUseCase
	batchUseCase     *apporder.BatchCreateUseCase
	getUseCase       *apporder.GetProfileUseCase
	listUseCase      *apporder.ListByCategoryUseCase
	dashboardUseCase *apporder.DashboardUseCase
}

// NewOrderHandler 创建订单档案处理器
func NewOrderHandler(
	createUseCase *apporder.CreateProfileUseCase,
	batchUseCase *apporder.BatchCreateUseCase,
	getUseCase *apporder.GetProfileUseCase,
	listUseCase *apporder.ListByCategoryUseCase,
	dashboardUseCase *apporder.DashboardUseCase,
) *OrderHandler {
	return &OrderHandler{
		createUseCase:    createUseCase,
		batchUseCase:     batchUseCase,
		getUseCase:       getUseCase,
		listUseCase:      listUseCase,
		dashboardUseCase: dashboardUseCase,
	}
}

// CreateOrder 创建订单档案
// @Summary      创建订单档案
// @Description  校验→持久化→投影管道;校验拒绝返回400并携带完整的字段错误集
// @Tags         订单
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateOrderProfileRequest true "订单档案信息"
// @Success      201 {object} response.Response{data=order.ProfileView} "创建成功,Location头携带新资源位置"
// @Failure      400 {object} response.Response "校验拒绝(data.errors为字段→消息列表)"
// @Failure      500 {object} response.Response "基础设施故障"
// @Router       /api/v1/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	// 1. 参数绑定(只管结构,业务校验交给Rule Evaluator)
	var req dto.CreateOrderProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "malformed request body: "+err.Error())
		return
	}

	// 2. 解析出版日期(格式错误属于绑定错误;空串传零值时间,走领域校验)
	publishedDate, ok := parsePublishedDate(c, req.PublishedDate)
	if !ok {
		return
	}

	// 3. 调用应用层管道
	result, err := h.createUseCase.Execute(c.Request.Context(),
		req.ToUseCaseRequest(publishedDate, middleware.GetLocale(c)))
	if err != nil {
		log.Printf("[http] correlation=%s 创建订单档案失败: %v", middleware.GetCorrelationID(c), err)
		response.Error(c, err)
		return
	}

	// 4. 校验拒绝:400 + 完整字段错误集
	if result.Rejected != nil {
		response.ValidationError(c, result.Rejected)
		return
	}

	// 5. 创建成功:201 + Location头
	response.Created(c, result.Location, result.View)
}

// BatchCreateOrders 批量创建订单档案
// @Summary      批量创建订单档案
// @Description  逐项校验后原子提交:要么全部落库,要么全部回滚;部分项被拒绝是正常结果
// @Tags         订单
// @Accept       json
// @Produce      json
// @Param        request body dto.BatchCreateOrdersRequest true "订单档案列表"
// @Success      200 {object} response.Response{data=order.BatchResult}
// @Failure      400 {object} response.Response "请求体格式错误"
// @Failure      500 {object} response.Response "原子提交失败(data仍携带逐项判定)"
// @Router       /api/v1/orders/batch [post]
func (h *OrderHandler) BatchCreateOrders(c *gin.Context) {
	var req dto.BatchCreateOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "malformed request body: "+err.Error())
		return
	}

	locale := middleware.GetLocale(c)
	reqs := make([]apporder.CreateProfileRequest, 0, len(req.Orders))
	for _, item := range req.Orders {
		publishedDate, ok := parsePublishedDate(c, item.PublishedDate)
		if !ok {
			return
		}
		reqs = append(reqs, item.ToUseCaseRequest(publishedDate, locale))
	}

	result, err := h.batchUseCase.Execute(c.Request.Context(), reqs)
	if err != nil {
		log.Printf("[http] correlation=%s 批量创建失败: %v", middleware.GetCorrelationID(c), err)
		if errors.Is(err, apporder.ErrBatchCommitFailed) && result != nil {
			// 整批回滚:500,但逐项判定结果仍返回给调用方
			response.ErrorWithData(c, err, result)
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetOrder 查询订单档案
// @Summary      查询订单档案
// @Description  按ID查询,返回本地化的展示视图
// @Tags         订单
// @Produce      json
// @Param        id path string true "订单档案ID(UUID)"
// @Success      200 {object} response.Response{data=order.ProfileView}
// @Failure      404 {object} response.Response "档案不存在"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	view, err := h.getUseCase.Execute(c.Request.Context(), c.Param("id"), middleware.GetLocale(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// ListOrdersByCategory 按分类查询订单档案
// @Summary      按分类查询订单档案
// @Description  返回指定分类下的全部展示视图(Redis缓存,按locale分键)
// @Tags         订单
// @Produce      json
// @Param        category path string true "分类" Enums(Fiction, NonFiction, Technical, Children)
// @Success      200 {object} response.Response{data=[]order.ProfileView}
// @Failure      400 {object} response.Response "未知分类"
// @Router       /api/v1/orders/category/{category} [get]
func (h *OrderHandler) ListOrdersByCategory(c *gin.Context) {
	views, err := h.listUseCase.Execute(c.Request.Context(), c.Param("category"), middleware.GetLocale(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, views)
}

// MetricsDashboard 指标看板
// @Summary      指标看板
// @Description  返回管道指标汇总:总数、成功率、分段平均耗时、最近5条失败
// @Tags         订单
// @Produce      json
// @Success      200 {object} response.Response{data=metrics.Summary}
// @Router       /api/v1/orders/metrics [get]
func (h *OrderHandler) MetricsDashboard(c *gin.Context) {
	response.Success(c, h.dashboardUseCase.Execute())
}

// parsePublishedDate 解析YYYY-MM-DD格式的出版日期
// 解析失败时写入绑定错误响应并返回ok=false
func parsePublishedDate(c *gin.Context, value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true // 空值交给领域校验处理
	}
	t, err := time.Parse(publishedDateLayout, value)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError,
			"published_date must be in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return t, true
}
