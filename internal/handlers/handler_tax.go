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

// taxHandler handles HTTP requests related to tax definitions.
type taxHandler struct {
	taxService portssvc.TaxSvcFacade
}

func newTaxHandler(ts portssvc.TaxSvcFacade) *taxHandler {
	return &taxHandler{taxService: ts}
}

// registerTaxRoutes registers routes related to tax definitions.
func registerTaxRoutes(rg *gin.RouterGroup, taxService portssvc.TaxSvcFacade) {
	h := newTaxHandler(taxService)

	taxes := rg.Group("/taxes")
	{
		taxes.POST("", h.createTax)
		taxes.GET("", h.listTaxes)
		taxes.GET("/:taxID", h.getTaxByID)
	}
}

// createTax godoc
// @Summary Create a tax definition
// @Description Adds a new percentage tax rate, inclusive or exclusive
// @Tags taxes
// @Accept  json
// @Produce  json
// @Param   tax body dto.CreateTaxRequest true "Tax details"
// @Success 201 {object} dto.TaxResponse
// @Failure 400 {object} map[string]string "Invalid input or negative rate"
// @Failure 500 {object} map[string]string "Failed to create tax"
// @Router /taxes [post]
func (h *taxHandler) createTax(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTax", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Operator-ID header is required"})
		return
	}

	createdTax, err := h.taxService.CreateTax(c.Request.Context(), req, operatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidRate) || errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create tax in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tax"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaxResponse(createdTax))
}

// getTaxByID godoc
// @Summary Get a tax definition
// @Tags taxes
// @Produce  json
// @Param   taxID path string true "Tax ID"
// @Success 200 {object} dto.TaxResponse
// @Failure 404 {object} map[string]string "Tax not found"
// @Failure 500 {object} map[string]string "Failed to retrieve tax"
// @Router /taxes/{taxID} [get]
func (h *taxHandler) getTaxByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taxID := c.Param("taxID")

	tax, err := h.taxService.GetTaxByID(c.Request.Context(), taxID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tax not found"})
		} else {
			logger.Error("Failed to get tax from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tax"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxResponse(tax))
}

// listTaxes godoc
// @Summary List all tax definitions
// @Tags taxes
// @Produce  json
// @Success 200 {array} dto.TaxResponse
// @Failure 500 {object} map[string]string "Failed to list taxes"
// @Router /taxes [get]
func (h *taxHandler) listTaxes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	taxes, err := h.taxService.ListTaxes(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list taxes from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list taxes"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListTaxResponse(taxes))
}
