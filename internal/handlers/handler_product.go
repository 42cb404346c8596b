package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/marioapg/cipher-test/internal/core/ports/services"
	"github.com/marioapg/cipher-test/internal/dto"
	"github.com/marioapg/cipher-test/internal/middleware"
)

const msgProductNotFound = "Product not found"

// productHandler handles HTTP requests related to products and their prices.
type productHandler struct {
	productService portssvc.ProductSvcFacade
}

// newProductHandler creates a new productHandler.
func newProductHandler(ps portssvc.ProductSvcFacade) *productHandler {
	return &productHandler{
		productService: ps,
	}
}

// registerProductRoutes registers product routes, including the nested price routes.
func registerProductRoutes(rg *gin.RouterGroup, productService portssvc.ProductSvcFacade) {
	h := newProductHandler(productService)

	products := rg.Group("/products")
	{
		products.GET("", h.listProducts)
		products.POST("", h.createProduct)
		products.GET("/:id", h.getProduct)
		products.PUT("/:id", h.updateProduct)
		products.DELETE("/:id", h.deleteProduct)
		products.GET("/:id/prices", h.listPrices)
		products.POST("/:id/prices", h.addPrice)
	}
}

// listProducts godoc
// @Summary List products
// @Description Retrieves all products ordered by id
// @Tags products
// @Produce  json
// @Success 200 {array} dto.ProductResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to list products"
// @Router /products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err, msgProductNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.ToListProductResponse(products))
}

// createProduct godoc
// @Summary Create a product
// @Description Creates a product together with its initial price set
// @Tags products
// @Accept  json
// @Produce  json
// @Param   product body dto.ProductRequest true "Product details"
// @Success 201 {object} dto.ProductDetailResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed request"
// @Failure 422 {object} dto.ValidationErrorResponse "Validation failed"
// @Failure 500 {object} dto.ErrorResponse "Failed to create product"
// @Router /products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	logger.Info("Received request to create product", slog.String("name", req.Name), slog.Int("price_count", len(req.Prices)))

	product, err := h.productService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, msgProductNotFound)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProductDetailResponse(product))
}

// getProduct godoc
// @Summary Get a product
// @Description Retrieves a product with its price set
// @Tags products
// @Produce  json
// @Param   id path int true "Product ID"
// @Success 200 {object} dto.ProductDetailResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid product ID"
// @Failure 404 {object} dto.ErrorResponse "Product not found"
// @Router /products/{id} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, msgProductNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.ToProductDetailResponse(product))
}

// updateProduct godoc
// @Summary Replace a product
// @Description Replaces every field of a product and synchronizes its price set to the given list.
// @Description Prices for currencies missing from the list are deleted.
// @Tags products
// @Accept  json
// @Produce  json
// @Param   id path int true "Product ID"
// @Param   product body dto.ProductRequest true "Full product representation"
// @Success 200 {object} dto.ProductDetailResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed request"
// @Failure 404 {object} dto.ErrorResponse "Product not found"
// @Failure 422 {object} dto.ValidationErrorResponse "Validation failed"
// @Router /products/{id} [put]
func (h *productHandler) updateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	logger.Info("Received request to update product", slog.Int64("product_id", id), slog.Int("price_count", len(req.Prices)))

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, msgProductNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.ToProductDetailResponse(product))
}

// deleteProduct godoc
// @Summary Delete a product
// @Description Deletes a product and all of its prices
// @Tags products
// @Produce  json
// @Param   id path int true "Product ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid product ID"
// @Failure 404 {object} dto.ErrorResponse "Product not found"
// @Router /products/{id} [delete]
func (h *productHandler) deleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err, msgProductNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Product deleted successfully"})
}

// listPrices godoc
// @Summary List product prices
// @Description Retrieves the price set of a product
// @Tags prices
// @Produce  json
// @Param   id path int true "Product ID"
// @Success 200 {array} dto.ProductPriceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid product ID"
// @Failure 404 {object} dto.ErrorResponse "Product not found"
// @Router /products/{id}/prices [get]
func (h *productHandler) listPrices(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	prices, err := h.productService.ListPrices(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, msgProductNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.ToListProductPriceResponse(prices))
}

// addPrice godoc
// @Summary Add a product price
// @Description Adds a price in a new currency. A currency that already has a price is rejected.
// @Tags prices
// @Accept  json
// @Produce  json
// @Param   id path int true "Product ID"
// @Param   price body dto.AddPriceRequest true "Price details"
// @Success 201 {object} dto.ProductPriceResponse
// @Failure 400 {object} dto.ErrorResponse "Duplicate currency or malformed request"
// @Failure 404 {object} dto.ErrorResponse "Product not found"
// @Failure 422 {object} dto.ValidationErrorResponse "Validation failed"
// @Router /products/{id}/prices [post]
func (h *productHandler) addPrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AddPriceRequest
	if !bindJSON(c, &req) {
		return
	}

	price, err := h.productService.AddPrice(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, msgProductNotFound)
		return
	}

	logger.Info("Product price added", slog.Int64("product_id", id), slog.Int64("currency_id", price.CurrencyID))
	c.JSON(http.StatusCreated, dto.ToProductPriceResponse(price))
}
