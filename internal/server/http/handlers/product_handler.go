package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subediaakash/zomato-mcp/internal/server/http/dto"
)

// ProductHandler serves catalog reads.
type ProductHandler struct {
	facade CatalogFacade
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade CatalogFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.facade.Products(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response := dto.ProductsResponse{Products: make([]dto.ProductResponse, 0, len(products))}
	for _, p := range products {
		response.Products = append(response.Products, toProductResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/products/:productId.
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.facade.Product(c.Request.Context(), c.Param("productId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}
