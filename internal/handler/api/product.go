package api

import (
	"net/http"

	"quoteflow/internal/handler/httperr"
	"quoteflow/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductHandler struct {
	productQueries queries.ProductQueries
}

func NewProductHandler(productQueries queries.ProductQueries) *ProductHandler {
	return &ProductHandler{productQueries: productQueries}
}

// @Summary List products
// @Description List the orderable catalogue
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.ProductView
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productQueries.List(c.Request.Context())
	if err != nil {
		handleUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// @Summary Get product
// @Description Get one catalogue product by ID
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} queries.ProductView
// @Failure 404 {object} httperr.Response
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid ID format", nil)
		return
	}

	product, err := h.productQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		handleUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
