package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/services"
)

// SetupHandler handles first-run seeding.
type SetupHandler struct {
	setupService services.SetupServicer
	auditService services.AuditServicer
}

// NewSetupHandler creates a new SetupHandler.
func NewSetupHandler(setupService services.SetupServicer, auditService services.AuditServicer) *SetupHandler {
	return &SetupHandler{setupService: setupService, auditService: auditService}
}

// CreateDefaultCategories seeds the default categories
// @Summary     Seed default categories
// @Description Create the default income, expense and saving categories. Existing names are skipped, so the call can be repeated.
// @Tags        setup
// @Produce     json
// @Success     200 {object} services.SetupResult "Created and skipped names"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /setup/default-categories [post]
func (h *SetupHandler) CreateDefaultCategories(c *gin.Context) {
	result, err := h.setupService.CreateDefaultCategories()
	if err != nil {
		respondWithError(c, err)
		return
	}

	if len(result.Created) > 0 {
		h.auditService.Log("SEED_CATEGORIES", "category", 0, c.ClientIP(),
			map[string]interface{}{"created": result.Created})
	}

	c.JSON(http.StatusOK, result)
}
