package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/apperrors"
	portssvc "github.com/LeaseFlowHQ/leaseflow_backend/internal/core/ports/services"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/dto"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/middleware"
)

// voucherHandler handles HTTP requests related to payment vouchers.
type voucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
}

func newVoucherHandler(vs portssvc.VoucherSvcFacade) *voucherHandler {
	return &voucherHandler{voucherService: vs}
}

// registerVoucherRoutes registers routes related to payment vouchers.
func registerVoucherRoutes(rg *gin.RouterGroup, voucherService portssvc.VoucherSvcFacade) {
	h := newVoucherHandler(voucherService)

	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("", h.createVoucher)
		vouchers.GET("", h.listVouchers)
		vouchers.POST("/validate", h.validateVoucherBalance)
		vouchers.GET("/:voucherNo", h.getVoucher)
		vouchers.PUT("/:voucherNo", h.updateVoucher)
		vouchers.PUT("/:voucherNo/status", h.updateVoucherStatus)
		vouchers.POST("/:voucherNo/reverse", h.reverseVoucher)
	}
}

// mapVoucherError translates service errors shared across voucher handlers.
// Returns true when it wrote a response.
func mapVoucherError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var oob *apperrors.OutOfBalanceError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
	case errors.As(err, &oob):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      err.Error(),
			"difference": oob.Difference.String(),
		})
	case errors.Is(err, apperrors.ErrFrozen), errors.Is(err, apperrors.ErrStaleVersion):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidParent), errors.Is(err, apperrors.ErrInvalidRate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// createVoucher godoc
// @Summary Create a payment voucher
// @Description Creates a Draft voucher; lines must sum to the header total within one minor unit
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   voucher body dto.CreateVoucherRequest true "Voucher details"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid input, instrument or cost-center chain"
// @Failure 422 {object} map[string]string "Lines do not balance against the header total"
// @Failure 500 {object} map[string]string "Failed to create voucher"
// @Router /vouchers [post]
func (h *voucherHandler) createVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Operator-ID header is required"})
		return
	}

	created, err := h.voucherService.CreateVoucher(c.Request.Context(), req, operatorID)
	if err != nil {
		mapVoucherError(c, logger, err, "Failed to create voucher")
		return
	}

	c.JSON(http.StatusCreated, dto.ToVoucherResponse(created))
}

// validateVoucherBalance godoc
// @Summary Dry-run the voucher balance check
// @Description Verifies the lines sum to the header total without saving anything
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   voucher body dto.CreateVoucherRequest true "Voucher details"
// @Success 200 {object} map[string]bool
// @Failure 422 {object} map[string]string "Lines do not balance against the header total"
// @Router /vouchers/validate [post]
func (h *voucherHandler) validateVoucherBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.voucherService.ValidateVoucherBalance(c.Request.Context(), req); err != nil {
		mapVoucherError(c, logger, err, "Failed to validate voucher")
		return
	}

	c.JSON(http.StatusOK, gin.H{"balanced": true})
}

// getVoucher godoc
// @Summary Get a payment voucher
// @Tags vouchers
// @Produce  json
// @Param   voucherNo path string true "Voucher number"
// @Success 200 {object} dto.VoucherResponse
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 500 {object} map[string]string "Failed to retrieve voucher"
// @Router /vouchers/{voucherNo} [get]
func (h *voucherHandler) getVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherNo := c.Param("voucherNo")

	voucher, err := h.voucherService.GetVoucherByNo(c.Request.Context(), voucherNo)
	if err != nil {
		mapVoucherError(c, logger, err, "Failed to retrieve voucher")
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// listVouchers godoc
// @Summary List payment vouchers
// @Tags vouchers
// @Produce  json
// @Param   limit  query int false "Page size (default 50)"
// @Param   offset query int false "Offset (default 0)"
// @Success 200 {array} dto.VoucherResponse
// @Failure 500 {object} map[string]string "Failed to list vouchers"
// @Router /vouchers [get]
func (h *voucherHandler) listVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	vouchers, err := h.voucherService.ListVouchers(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list vouchers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list vouchers"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListVoucherResponse(vouchers))
}

// updateVoucher godoc
// @Summary Edit a payment voucher
// @Description Replaces the mutable portion of a Draft/Pending voucher; Paid and Reversed vouchers are frozen
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   voucherNo path string true "Voucher number"
// @Param   voucher body dto.UpdateVoucherRequest true "Voucher changes"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher is frozen or was modified concurrently"
// @Failure 422 {object} map[string]string "Lines do not balance against the header total"
// @Failure 500 {object} map[string]string "Failed to update voucher"
// @Router /vouchers/{voucherNo} [put]
func (h *voucherHandler) updateVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherNo := c.Param("voucherNo")

	var req dto.UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Operator-ID header is required"})
		return
	}

	updated, err := h.voucherService.UpdateVoucher(c.Request.Context(), voucherNo, req, operatorID)
	if err != nil {
		mapVoucherError(c, logger, err, "Failed to update voucher")
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponse(updated))
}

// updateVoucherStatus godoc
// @Summary Change a voucher's status
// @Description Moves a voucher through its payment states; frozen vouchers reject any change
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   voucherNo path string true "Voucher number"
// @Param   status body dto.UpdateVoucherStatusRequest true "Target status"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher is frozen or was modified concurrently"
// @Failure 500 {object} map[string]string "Failed to update voucher"
// @Router /vouchers/{voucherNo}/status [put]
func (h *voucherHandler) updateVoucherStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherNo := c.Param("voucherNo")

	var req dto.UpdateVoucherStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Operator-ID header is required"})
		return
	}

	updated, err := h.voucherService.UpdateVoucherStatus(c.Request.Context(), voucherNo, req.Status, operatorID)
	if err != nil {
		mapVoucherError(c, logger, err, "Failed to update voucher")
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponse(updated))
}

// reverseVoucher godoc
// @Summary Reverse a paid voucher
// @Description Creates a reversal document with negated amounts and marks the source Reversed
// @Tags vouchers
// @Produce  json
// @Param   voucherNo path string true "Voucher number"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Voucher is not paid"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 500 {object} map[string]string "Failed to reverse voucher"
// @Router /vouchers/{voucherNo}/reverse [post]
func (h *voucherHandler) reverseVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherNo := c.Param("voucherNo")

	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Operator-ID header is required"})
		return
	}

	reversal, err := h.voucherService.ReverseVoucher(c.Request.Context(), voucherNo, operatorID)
	if err != nil {
		mapVoucherError(c, logger, err, "Failed to reverse voucher")
		return
	}

	c.JSON(http.StatusCreated, dto.ToVoucherResponse(reversal))
}
