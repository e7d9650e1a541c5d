package dto

import (
	"time"

	apporder "github.com/xiebiao/orderlab/internal/application/order"
)

// CreateOrderProfileRequest HTTP创建订单档案请求
// 设计说明:
// 1. 字段级业务校验全部交给领域层的Rule Evaluator(累积所有错误),
//    这里刻意不加binding:"required"等tag,避免gin在第一个错误就短路
// 2. published_date使用YYYY-MM-DD字符串,格式非法属于绑定错误(40901)
// 3. price以"分"为单位(5900 = $59.00)
type CreateOrderProfileRequest struct {
	Title         string  `json:"title" example:"The Go Programming Language"`
	Author        string  `json:"author" example:"Alan Donovan"`
	ISBN          string  `json:"isbn" example:"978-0-13-419044-0"`
	Category      string  `json:"category" example:"Technical"`
	Price         int64   `json:"price" example:"3999"` // 价格(分)
	PublishedDate string  `json:"published_date" example:"2022-03-15"`
	CoverImageURL *string `json:"cover_image_url,omitempty" example:"https://example.com/cover.jpg"`
	StockQuantity int     `json:"stock_quantity" example:"25"`
}

// ToUseCaseRequest 转换为应用层请求
// publishedDate已在handler中解析完成
func (r CreateOrderProfileRequest) ToUseCaseRequest(publishedDate time.Time, locale string) apporder.CreateProfileRequest {
	return apporder.CreateProfileRequest{
		Title:         r.Title,
		Author:        r.Author,
		ISBN:          r.ISBN,
		Category:      r.Category,
		Price:         r.Price,
		PublishedDate: publishedDate,
		CoverImageURL: r.CoverImageURL,
		StockQuantity: r.StockQuantity,
		Locale:        locale,
	}
}

// BatchCreateOrdersRequest HTTP批量创建请求
// orders必须存在(可以为空数组,空批是正常结果而非绑定错误)
type BatchCreateOrdersRequest struct {
	Orders []CreateOrderProfileRequest `json:"orders" binding:"required"`
}
