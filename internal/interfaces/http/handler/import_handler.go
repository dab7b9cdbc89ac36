package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ordersync/backend/internal/infrastructure/scheduler"
	"github.com/ordersync/backend/internal/interfaces/http/dto"
)

// ImportService is the scheduler surface the import endpoints need
type ImportService interface {
	// TriggerNow starts a manual import pass and returns its pass id
	TriggerNow() (string, error)
	// History returns retained pass records, newest first
	History() []scheduler.PassRecord
}

// ImportHandler handles order import API endpoints
type ImportHandler struct {
	service ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(service ImportService) *ImportHandler {
	return &ImportHandler{service: service}
}

// RegisterRoutes registers import routes on the given group
func (h *ImportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	imports := rg.Group("/import")
	imports.POST("/trigger", h.TriggerImport)
	imports.GET("/passes", h.ListPasses)
}

// TriggerImport starts a manual import pass. The pass runs in the
// background; progress lands in the pass history.
func (h *ImportHandler) TriggerImport(c *gin.Context) {
	passID, err := h.service.TriggerNow()
	if err != nil {
		if errors.Is(err, scheduler.ErrPassInProgress) {
			c.JSON(http.StatusConflict, dto.NewErrorResponse(dto.ErrCodePassInProgress, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrCodeInternal, err.Error()))
		return
	}

	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(dto.TriggerImportResponse{
		PassID: passID,
		Status: "started",
	}))
}

// ListPasses returns retained import pass outcomes, newest first
func (h *ImportHandler) ListPasses(c *gin.Context) {
	records := h.service.History()
	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromPassRecords(records)))
}
