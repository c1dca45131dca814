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

// costCenterHandler handles HTTP requests related to the cost-center hierarchy.
type costCenterHandler struct {
	costCenterService portssvc.CostCenterSvcFacade
}

func newCostCenterHandler(ccs portssvc.CostCenterSvcFacade) *costCenterHandler {
	return &costCenterHandler{costCenterService: ccs}
}

// registerCostCenterRoutes registers routes related to cost centers.
func registerCostCenterRoutes(rg *gin.RouterGroup, costCenterService portssvc.CostCenterSvcFacade) {
	h := newCostCenterHandler(costCenterService)

	costCenters := rg.Group("/costcenters")
	{
		costCenters.POST("", h.createCostCenter)
		costCenters.GET("/options", h.resolveOptions)
	}
}

// createCostCenter godoc
// @Summary Create a cost center node
// @Description Adds a node to the 4-level hierarchy; levels above 1 need a parent one level up
// @Tags costcenters
// @Accept  json
// @Produce  json
// @Param   costcenter body dto.CreateCostCenterRequest true "Cost center details"
// @Success 201 {object} dto.CostCenterResponse
// @Failure 400 {object} map[string]string "Invalid input or broken parent chain"
// @Failure 500 {object} map[string]string "Failed to create cost center"
// @Router /costcenters [post]
func (h *costCenterHandler) createCostCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCostCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCostCenter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Operator-ID header is required"})
		return
	}

	created, err := h.costCenterService.CreateCostCenter(c.Request.Context(), req, operatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidParent) || errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create cost center in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cost center"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCostCenterResponse(created))
}

// resolveOptions godoc
// @Summary Resolve selectable cost centers for a level
// @Description Lists the cost centers selectable at a level given the parent chain above it (repeat the parent query param in order, e.g. ?level=3&parent=L1&parent=L2)
// @Tags costcenters
// @Produce  json
// @Param   level  query int    true  "Level (1..4)"
// @Param   parent query string false "Parent chain IDs, one per level above"
// @Success 200 {array} dto.CostCenterResponse
// @Failure 400 {object} map[string]string "Invalid level or broken parent chain"
// @Failure 500 {object} map[string]string "Failed to resolve options"
// @Router /costcenters/options [get]
func (h *costCenterHandler) resolveOptions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	level, err := strconv.Atoi(c.Query("level"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "level must be an integer"})
		return
	}
	parentChain := c.QueryArray("parent")

	options, err := h.costCenterService.ResolveOptions(c.Request.Context(), level, parentChain)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidParent) || errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to resolve cost center options", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve options"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListCostCenterResponse(options))
}
