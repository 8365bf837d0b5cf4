package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransactionRequest represents the request payload for creating a
// transaction. The sign of amount is ignored: it is derived from the category.
type CreateTransactionRequest struct {
	Date        string           `json:"date" binding:"required" example:"2025-11-05"`
	Amount      *decimal.Decimal `json:"amount" binding:"required" swaggertype:"string" example:"42.50"`
	CategoryID  uint             `json:"category_id" binding:"required"`
	Description *string          `json:"description" binding:"omitempty,max=255"`
}

// UpdateTransactionRequest represents the request payload for a partial
// transaction update. Omitted fields are left unchanged; an empty description
// clears it.
type UpdateTransactionRequest struct {
	Date        *string          `json:"date" example:"2025-11-05"`
	Amount      *decimal.Decimal `json:"amount" swaggertype:"string" example:"42.50"`
	CategoryID  *uint            `json:"category_id" binding:"omitempty,min=1"`
	Description *string          `json:"description" binding:"omitempty,max=255"`
}

// TransactionListQuery holds the optional filters for listing transactions.
type TransactionListQuery struct {
	FromDate   string `form:"from_date"`
	ToDate     string `form:"to_date"`
	CategoryID *uint  `form:"category_id" binding:"omitempty,min=1"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record a transaction. Expense amounts are stored negative, income and saving amounts positive.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	date, err := parseDateField("date", req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(req.CategoryID, *req.Amount, req.Description, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"amount": transaction.Amount, "category_id": transaction.CategoryID, "date": req.Date})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions handles listing transactions
// @Summary     List transactions
// @Description Get a paginated list of transactions, newest first
// @Tags        transactions
// @Produce     json
// @Param       from_date   query string false "Earliest date, inclusive (YYYY-MM-DD)"
// @Param       to_date     query string false "Latest date, inclusive (YYYY-MM-DD)"
// @Param       category_id query int    false "Filter by category"
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	var query TransactionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	filter := services.TransactionFilter{CategoryID: query.CategoryID}
	if query.FromDate != "" {
		from, err := parseDateField("from_date", query.FromDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		filter.FromDate = &from
	}
	if query.ToDate != "" {
		to, err := parseDateField("to_date", query.ToDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		filter.ToDate = &to
	}

	result, err := h.transactionService.GetTransactions(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionByID handles retrieving a specific transaction
// @Summary     Get transaction by ID
// @Tags        transactions
// @Produce     json
// @Param       id path int true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction handles a partial transaction update
// @Summary     Update transaction
// @Description Update a transaction. The amount is re-signed whenever the amount or the category changes.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path int                      true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to change"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input or transaction ID"
// @Failure     404 {object} ErrorResponse "Transaction or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	fields := services.TransactionUpdateFields{
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		Description: req.Description,
	}
	if req.Date != nil {
		var date time.Time
		date, err = parseDateField("date", *req.Date)
		if err != nil {
			respondWithError(c, err)
			return
		}
		fields.Date = &date
	}

	transaction, err := h.transactionService.UpdateTransaction(transactionID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_TRANSACTION", "transaction", transactionID, c.ClientIP(),
		map[string]interface{}{"amount": transaction.Amount, "category_id": transaction.CategoryID})

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles deleting a transaction
// @Summary     Delete transaction
// @Tags        transactions
// @Produce     json
// @Param       id path int true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_TRANSACTION", "transaction", transactionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
