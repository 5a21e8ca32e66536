package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/repository"
	"github.com/manish9869/onehealth-api/internal/usecase"
)

// ExpenseHandler exposes the expense tracker endpoints.
type ExpenseHandler struct {
	expenses *usecase.ExpenseService
	logger   *zap.Logger
}

// NewExpenseHandler builds a new expense handler instance.
func NewExpenseHandler(expenses *usecase.ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, logger: logger}
}

// ExpenseRequest defines the expense payload.
type ExpenseRequest struct {
	Category string  `json:"category" binding:"required"`
	Amount   float64 `json:"amount" binding:"required"`
	Note     *string `json:"note"`
	SpentAt  string  `json:"spent_at"`
}

// ExpenseView is the API representation of an expense.
type ExpenseView struct {
	ID        int64     `json:"id"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Note      *string   `json:"note,omitempty"`
	SpentAt   time.Time `json:"spent_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExpenseReportView summarizes a window of spending.
type ExpenseReportView struct {
	Expenses   []ExpenseView      `json:"expenses"`
	Total      float64            `json:"total"`
	ByCategory map[string]float64 `json:"by_category"`
}

var expenseErrorCases = []ErrorCase{
	{Err: usecase.ErrExpenseCategoryRequired, Status: http.StatusBadRequest, Message: "category is required"},
	{Err: usecase.ErrExpenseAmountInvalid, Status: http.StatusBadRequest, Message: "amount must be positive"},
	{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "expense not found"},
}

// Record godoc
// @Summary Record an expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param request body ExpenseRequest true "Expense"
// @Success 201 {object} Envelope{data=ExpenseView}
// @Failure 400 {object} ErrorResponse
// @Router /expenses [post]
func (h *ExpenseHandler) Record(c *gin.Context) {
	input, ok := bindExpense(c)
	if !ok {
		return
	}

	expense, err := h.expenses.Record(c.Request.Context(), *input)
	if err != nil {
		RespondWithMappedError(c, err, expenseErrorCases, http.StatusInternalServerError, "expense create failed")
		return
	}

	c.JSON(http.StatusCreated, OK(newExpenseView(*expense)))
}

// Update godoc
// @Summary Update an expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param id path int true "Expense ID"
// @Param request body ExpenseRequest true "Expense"
// @Success 200 {object} Envelope{data=ExpenseView}
// @Failure 404 {object} ErrorResponse
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	expenseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	input, ok := bindExpense(c)
	if !ok {
		return
	}

	expense, err := h.expenses.Update(c.Request.Context(), expenseID, *input)
	if err != nil {
		RespondWithMappedError(c, err, expenseErrorCases, http.StatusInternalServerError, "expense update failed")
		return
	}

	c.JSON(http.StatusOK, OK(newExpenseView(*expense)))
}

// Delete godoc
// @Summary Remove an expense
// @Tags Expenses
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	expenseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.expenses.Delete(c.Request.Context(), expenseID); err != nil {
		RespondWithMappedError(c, err, expenseErrorCases, http.StatusInternalServerError, "expense delete failed")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "expense removed"})
}

// Get godoc
// @Summary Get an expense
// @Tags Expenses
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} Envelope{data=ExpenseView}
// @Failure 404 {object} ErrorResponse
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	expenseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	expense, err := h.expenses.Get(c.Request.Context(), expenseID)
	if err != nil {
		RespondWithMappedError(c, err, expenseErrorCases, http.StatusInternalServerError, "expense lookup failed")
		return
	}

	c.JSON(http.StatusOK, OK(newExpenseView(*expense)))
}

// Report godoc
// @Summary Expense report for a window
// @Description Defaults to the current month when no window is given.
// @Tags Expenses
// @Produce json
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} Envelope{data=ExpenseReportView}
// @Router /expenses [get]
func (h *ExpenseHandler) Report(c *gin.Context) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "from must be YYYY-MM-DD"))
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "to must be YYYY-MM-DD"))
			return
		}
		to = parsed
	}

	report, err := h.expenses.Report(c.Request.Context(), from, to)
	if err != nil {
		h.logger.Error("expense report failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "expense report failed"))
		return
	}

	views := make([]ExpenseView, 0, len(report.Expenses))
	for _, expense := range report.Expenses {
		views = append(views, newExpenseView(expense))
	}

	c.JSON(http.StatusOK, OK(ExpenseReportView{
		Expenses:   views,
		Total:      report.Total,
		ByCategory: report.ByCategory,
	}))
}

func bindExpense(c *gin.Context) (*usecase.ExpenseInput, bool) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid expense payload"))
		return nil, false
	}

	input := usecase.ExpenseInput{
		Category: req.Category,
		Amount:   req.Amount,
		Note:     req.Note,
	}

	if req.SpentAt != "" {
		spentAt, err := time.Parse("2006-01-02", req.SpentAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "spent_at must be YYYY-MM-DD"))
			return nil, false
		}
		input.SpentAt = spentAt
	}

	return &input, true
}

func newExpenseView(expense domain.Expense) ExpenseView {
	return ExpenseView{
		ID:        expense.ID,
		Category:  expense.Category,
		Amount:    expense.Amount,
		Note:      expense.Note,
		SpentAt:   expense.SpentAt,
		CreatedAt: expense.CreatedAt,
		UpdatedAt: expense.UpdatedAt,
	}
}
