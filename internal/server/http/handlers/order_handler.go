package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subediaakash/zomato-mcp/internal/domain/model"
	"github.com/subediaakash/zomato-mcp/internal/server/http/dto"
	"github.com/subediaakash/zomato-mcp/internal/usecase"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response := dto.OrdersResponse{Orders: make([]dto.OrderResponse, 0, len(orders))}
	for _, o := range orders {
		response.Orders = append(response.Orders, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Recent handles GET /api/orders/recent?amount=N&unit=hours.
func (h *OrderHandler) Recent(c *gin.Context) {
	var query dto.RecentOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, "amount must be a positive integer")
		return
	}

	summaries, err := h.facade.RecentOrders(c.Request.Context(), CurrentUserID(c), query.Amount, model.WindowUnit(query.Unit))
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.OrderSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		response = append(response, dto.OrderSummaryResponse{
			ID:        s.ID,
			CreatedAt: s.CreatedAt,
			Status:    string(s.Status),
			ItemCount: s.ItemCount,
		})
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:orderId.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), c.Param("orderId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: items must be a non-empty list")
		return
	}

	items := make([]usecase.ItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.ItemRequest{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		})
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentUserID(c), items)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// Cancel handles PATCH /api/orders/:orderId.
func (h *OrderHandler) Cancel(c *gin.Context) {
	order, err := h.facade.CancelOrder(c.Request.Context(), CurrentUserID(c), c.Param("orderId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Delete handles DELETE /api/orders/:orderId.
func (h *OrderHandler) Delete(c *gin.Context) {
	order, err := h.facade.DeleteOrder(c.Request.Context(), CurrentUserID(c), c.Param("orderId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteOrderResponse{Success: true, Order: toOrderResponse(*order)})
}
