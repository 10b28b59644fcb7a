package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
)

// inventoryHandler handles HTTP requests for products and stock movements.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func newInventoryHandler(is portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: is}
}

// registerInventoryRoutes registers routes related to the inventory ledger.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:id", h.getProduct)
		products.GET("/:id/valuation", h.getValuation)
		products.GET("/:id/movements", h.listMovements)
	}

	stock := rg.Group("/stock")
	{
		stock.POST("/in", h.stockIn)
		stock.POST("/out", h.stockOut)
	}
}

func (h *inventoryHandler) createProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	product, err := h.inventoryService.CreateProduct(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "create product")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

func (h *inventoryHandler) listProducts(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"
	products, err := h.inventoryService.ListProducts(c.Request.Context(), includeInactive)
	if err != nil {
		respondError(c, err, "list products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": dto.ToProductResponses(products)})
}

func (h *inventoryHandler) getProduct(c *gin.Context) {
	product, err := h.inventoryService.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "get product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

func (h *inventoryHandler) stockIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.StockInRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	movement, err := h.inventoryService.StockIn(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "record stock in")
		return
	}

	logger.Info("Stock in", slog.String("movement_id", movement.MovementID))
	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}

func (h *inventoryHandler) stockOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.StockOutRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.inventoryService.StockOut(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "record stock out")
		return
	}

	logger.Info("Stock out", slog.String("movement_id", result.MovementID), slog.String("cogs", result.COGS.String()))
	c.JSON(http.StatusCreated, dto.ToStockOutResponse(result))
}

func (h *inventoryHandler) getValuation(c *gin.Context) {
	valuation, err := h.inventoryService.GetValuation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "get valuation")
		return
	}
	c.JSON(http.StatusOK, dto.ToValuationResponse(valuation))
}

func (h *inventoryHandler) listMovements(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	movements, err := h.inventoryService.ListMovements(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		respondError(c, err, "list movements")
		return
	}
	c.JSON(http.StatusOK, gin.H{"movements": dto.ToMovementResponses(movements)})
}
