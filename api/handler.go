package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"sales_manager/internal/sales"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// salesHandler holds the sales service and implements HTTP handlers for sales operations.
type salesHandler struct {
	salesService *sales.Service
	logger       *zap.Logger
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(salesService *sales.Service, logger *zap.Logger) *salesHandler {
	return &salesHandler{
		salesService: salesService,
		logger:       logger,
	}
}

// rawValue accepts "valor" either as a JSON string or a JSON number and keeps
// the text so the service can validate it like form input.
type rawValue string

func (v *rawValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = rawValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = rawValue(n.String())
	return nil
}

type saleRequest struct {
	Name  string   `json:"nome"`
	Value rawValue `json:"valor"`
}

// handleListSales handles GET /sales.
func (h *salesHandler) handleListSales(ctx *gin.Context) {
	list, err := h.salesService.Load()
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	ctx.Header("X-Total-Count", strconv.Itoa(len(list)))
	ctx.JSON(http.StatusOK, gin.H{"results": list, "metadata": sales.Summarize(list)})
}

// handleGetSale handles GET /sales/:id.
func (h *salesHandler) handleGetSale(ctx *gin.Context) {
	sale, err := h.salesService.Get(ctx.Param("id"))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sale)
}

// handleCreateSale handles POST /sales.
func (h *salesHandler) handleCreateSale(ctx *gin.Context) {
	var req saleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err), zap.String("request_id", requestID(ctx)))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	list, err := h.salesService.CreateSale(req.Name, string(req.Value))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, list)
}

// handleUpdateSale handles PUT /sales/:id.
func (h *salesHandler) handleUpdateSale(ctx *gin.Context) {
	var req saleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err), zap.String("request_id", requestID(ctx)))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	list, err := h.salesService.UpdateSale(ctx.Param("id"), req.Name, string(req.Value))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// handleDeleteSale handles DELETE /sales/:id.
func (h *salesHandler) handleDeleteSale(ctx *gin.Context) {
	list, err := h.salesService.DeleteSale(ctx.Param("id"))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

func (h *salesHandler) handleResetSales(ctx *gin.Context) {
	list, err := h.salesService.Reset()
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

func (h *salesHandler) writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, sales.ErrValidation):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, sales.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
	default:
		h.logger.Error("sales request failed",
			zap.String("path", ctx.FullPath()),
			zap.String("request_id", requestID(ctx)),
			zap.Error(err),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func requestID(ctx *gin.Context) string {
	return ctx.GetString(requestIDKey)
}
