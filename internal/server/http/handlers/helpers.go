package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/subediaakash/zomato-mcp/internal/domain/errors"
	"github.com/subediaakash/zomato-mcp/internal/domain/model"
	"github.com/subediaakash/zomato-mcp/internal/server/http/dto"
	"github.com/subediaakash/zomato-mcp/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(middleware.UserIDContextKey)
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidInput), errors.Is(err, domainErrors.ErrIllegalTransition):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps domain errors to status codes; storage failures never leak their cause.
func writeError(c *gin.Context, err error) {
	status := errorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "internal server error"
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: message})
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: message})
}

func toProductResponse(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		ProductName: p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Category:    string(p.Category),
		Price:       p.Price.InexactFloat64(),
		ListerID:    p.ListerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			ImageURL:        item.ImageURL,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase.InexactFloat64(),
		})
	}
	return dto.OrderResponse{
		ID:        order.ID,
		UserID:    order.UserID,
		Status:    string(order.Status),
		Delivered: order.Delivered,
		CreatedAt: order.CreatedAt,
		Total:     order.Total().InexactFloat64(),
		Items:     items,
	}
}
