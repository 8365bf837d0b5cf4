package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// CreateBudgetRequest represents the request payload for creating a budget.
type CreateBudgetRequest struct {
	Year       int              `json:"year" binding:"required"`
	Month      int              `json:"month" binding:"required"`
	CategoryID uint             `json:"category_id" binding:"required"`
	Amount     *decimal.Decimal `json:"amount" binding:"required" swaggertype:"string" example:"300.00"`
}

// UpdateBudgetRequest represents the request payload for updating a budget.
type UpdateBudgetRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required" swaggertype:"string" example:"300.00"`
}

// BudgetListQuery holds the optional filters for listing budgets.
type BudgetListQuery struct {
	Year       *int  `form:"year" binding:"omitempty,min=1,max=9999"`
	Month      *int  `form:"month" binding:"omitempty,min=1,max=12"`
	CategoryID *uint `form:"category_id" binding:"omitempty,min=1"`
}

// CreateBudget handles the creation of a new budget.
// @Summary     Create a budget
// @Description Plan an amount for a category in one month. One budget per category and month.
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input or period"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Budget already defined for this month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	budget, err := h.budgetService.CreateBudget(req.CategoryID, req.Year, req.Month, *req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_BUDGET", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"category_id": req.CategoryID, "year": req.Year, "month": req.Month, "amount": budget.Amount})

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets handles listing budgets.
// @Summary     List budgets
// @Description Get a paginated list of budgets, most recent month first
// @Tags        budgets
// @Produce     json
// @Param       year        query int false "Filter by year"
// @Param       month       query int false "Filter by month (1-12)"
// @Param       category_id query int false "Filter by category"
// @Param       page        query int false "Page number (default 1)"
// @Param       page_size   query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Budget] "Paginated budgets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	var query BudgetListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	result, err := h.budgetService.GetBudgets(page, services.BudgetFilter{
		Year:       query.Year,
		Month:      query.Month,
		CategoryID: query.CategoryID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBudget handles retrieving a specific budget.
// @Summary     Get budget by ID
// @Tags        budgets
// @Produce     json
// @Param       id path int true "Budget ID"
// @Success     200 {object} models.Budget "Budget details"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudgetByID(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// UpdateBudget handles changing the planned amount of a budget.
// @Summary     Update budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       id      path int                 true "Budget ID"
// @Param       request body UpdateBudgetRequest true "New amount"
// @Success     200 {object} models.Budget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input or budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	budget, err := h.budgetService.UpdateBudget(budgetID, *req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_BUDGET", "budget", budgetID, c.ClientIP(),
		map[string]interface{}{"amount": budget.Amount})

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget handles deleting a budget.
// @Summary     Delete budget
// @Tags        budgets
// @Produce     json
// @Param       id path int true "Budget ID"
// @Success     200 {object} MessageResponse "Budget deleted"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteBudget(budgetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_BUDGET", "budget", budgetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}
