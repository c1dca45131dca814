package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/apperrors"
	portssvc "github.com/LeaseFlowHQ/leaseflow_backend/internal/core/ports/services"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/dto"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/middleware"
)

// receiptHandler handles HTTP requests related to receipts and reconciliation.
type receiptHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReceiptHandler(rs portssvc.ReconciliationSvcFacade) *receiptHandler {
	return &receiptHandler{reconciliationService: rs}
}

// registerReceiptRoutes registers receipt and reconciliation routes. Receipt
// creation and reconciliation hang off the invoice they belong to.
func registerReceiptRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReceiptHandler(reconciliationService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("/:invoiceID/receipts", h.addReceipt)
		invoices.GET("/:invoiceID/receipts", h.listReceipts)
		invoices.POST("/:invoiceID/reconcile", h.reconcileInvoice)
	}

	receipts := rg.Group("/receipts")
	{
		receipts.PUT("/:receiptID/status", h.updateReceiptStatus)
	}
}

// addReceipt godoc
// @Summary Record a receipt against an invoice
// @Description Records an incoming payment; the invoice balance moves only on reconciliation
// @Tags receipts
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   receipt body dto.CreateReceiptRequest true "Receipt details"
// @Success 201 {object} dto.ReceiptResponse
// @Failure 400 {object} map[string]string "Invalid input or cancelled invoice"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to record receipt"
// @Router /invoices/{invoiceID}/receipts [post]
func (h *receiptHandler) addReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	var req dto.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Operator-ID header is required"})
		return
	}

	receipt, err := h.reconciliationService.AddReceipt(c.Request.Context(), invoiceID, req, operatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record receipt", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record receipt"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToReceiptResponse(receipt))
}

// listReceipts godoc
// @Summary List receipts for an invoice
// @Tags receipts
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {array} dto.ReceiptResponse
// @Failure 500 {object} map[string]string "Failed to list receipts"
// @Router /invoices/{invoiceID}/receipts [get]
func (h *receiptHandler) listReceipts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	receipts, err := h.reconciliationService.ListReceipts(c.Request.Context(), invoiceID)
	if err != nil {
		logger.Error("Failed to list receipts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list receipts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListReceiptResponse(receipts))
}

// reconcileInvoiceResponse bundles the updated invoice with the payment
// aggregates the reconciliation produced.
type reconcileInvoiceResponse struct {
	Invoice dto.InvoiceResponse        `json:"invoice"`
	Summary dto.PaymentSummaryResponse `json:"summary"`
}

// reconcileInvoice godoc
// @Summary Reconcile an invoice against its receipts
// @Description Applies cleared receipts to the paid amount, re-derives the balance and the automatic Partial/Paid status; safe to re-run
// @Tags receipts
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} reconcileInvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice was modified concurrently"
// @Failure 500 {object} map[string]string "Failed to reconcile invoice"
// @Router /invoices/{invoiceID}/reconcile [post]
func (h *receiptHandler) reconcileInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Operator-ID header is required"})
		return
	}

	invoice, summary, err := h.reconciliationService.ReconcileInvoice(c.Request.Context(), invoiceID, operatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		case errors.Is(err, apperrors.ErrStaleVersion):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reconcile invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile invoice"})
		}
		return
	}

	c.JSON(http.StatusOK, reconcileInvoiceResponse{
		Invoice: dto.ToInvoiceResponse(invoice, invoice.LastUpdatedAt),
		Summary: dto.ToPaymentSummaryResponse(summary),
	})
}

// updateReceiptStatus godoc
// @Summary Change a receipt's status
// @Description Moves a receipt through RECEIVED, DEPOSITED, CLEARED, BOUNCED, CANCELLED or REVERSED
// @Tags receipts
// @Accept  json
// @Produce  json
// @Param   receiptID path string true "Receipt ID"
// @Param   status body dto.UpdateReceiptStatusRequest true "Target status"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 404 {object} map[string]string "Receipt not found"
// @Failure 409 {object} map[string]string "Receipt was modified concurrently"
// @Failure 500 {object} map[string]string "Failed to update receipt"
// @Router /receipts/{receiptID}/status [put]
func (h *receiptHandler) updateReceiptStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("receiptID")

	var req dto.UpdateReceiptStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Operator-ID header is required"})
		return
	}

	receipt, err := h.reconciliationService.UpdateReceiptStatus(c.Request.Context(), receiptID, req.Status, operatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		case errors.Is(err, apperrors.ErrStaleVersion):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update receipt status", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update receipt"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}
