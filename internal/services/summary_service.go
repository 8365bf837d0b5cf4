package services

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/period"
)

// CategorySummary is one row of a monthly summary: what a category moved in
// the month against what was planned for it.
type CategorySummary struct {
	CategoryID uint                `json:"category_id"`
	Name       string              `json:"name"`
	Type       models.CategoryType `json:"type"`
	Spent      decimal.Decimal     `json:"spent"`
	Budget     decimal.Decimal     `json:"budget"`
	Remaining  decimal.Decimal     `json:"remaining"`
}

// MonthSummary is the budget-vs-actual report of one calendar month.
// Expenses is negative or zero since expense amounts are stored negative.
type MonthSummary struct {
	Year       int               `json:"year"`
	Month      int               `json:"month"`
	Income     decimal.Decimal   `json:"income"`
	Expenses   decimal.Decimal   `json:"expenses"`
	Net        decimal.Decimal   `json:"net"`
	Categories []CategorySummary `json:"categories"`
}

// summaryService aggregates transactions and budgets into monthly reports.
// It holds no state between calls.
type summaryService struct {
	categories   CategoryLookup
	transactions TransactionQuery
	budgets      BudgetQuery
}

// NewSummaryService creates a new SummaryServicer reading through the given stores.
func NewSummaryService(categories CategoryLookup, transactions TransactionQuery, budgets BudgetQuery) SummaryServicer {
	return &summaryService{
		categories:   categories,
		transactions: transactions,
		budgets:      budgets,
	}
}

// categoryTotals accumulates the in-period movement of one category.
type categoryTotals struct {
	category *models.Category
	spent    decimal.Decimal
	budget   decimal.Decimal
	touched  bool
}

// GetMonthSummary builds the report for year/month. A category appears when it
// has at least one transaction in the month or a budget for exactly that
// month. Income categories add their spent to Income; every other type adds to
// Expenses, savings included.
func (s *summaryService) GetMonthSummary(year, month int) (*MonthSummary, error) {
	m, err := period.New(year, month)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidPeriod, err.Error())
	}
	first, last := m.Range()

	categories, err := s.categories.ListCategories()
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactions.FindInDateRange(first, last)
	if err != nil {
		return nil, err
	}

	totals := make(map[uint]*categoryTotals, len(categories))
	order := make([]uint, 0, len(categories))
	for i := range categories {
		c := &categories[i]
		totals[c.ID] = &categoryTotals{category: c}
		order = append(order, c.ID)
	}

	grandTotal := decimal.Zero
	for _, t := range transactions {
		grandTotal = grandTotal.Add(t.Amount)

		row, ok := totals[t.CategoryID]
		if !ok {
			category, err := s.categories.GetCategoryByID(t.CategoryID)
			if err != nil {
				if errors.Is(err, apperrors.ErrCategoryNotFound) {
					logger.Get().Warnw("skipping transaction with unknown category",
						"transaction_id", t.ID,
						"category_id", t.CategoryID,
					)
					continue
				}
				return nil, err
			}
			row = &categoryTotals{category: category}
			totals[category.ID] = row
			order = append(order, category.ID)
		}
		row.spent = row.spent.Add(t.Amount)
		row.touched = true
	}

	logger.Get().Debugw("monthly grand total",
		"period", m.String(),
		"transactions", len(transactions),
		"total", grandTotal.StringFixed(2),
	)

	for _, id := range order {
		row := totals[id]
		budget, err := s.budgets.FindByCategoryAndPeriod(id, year, month)
		if err != nil {
			return nil, err
		}
		if budget != nil {
			row.budget = budget.Amount
			row.touched = true
		}
	}

	summary := &MonthSummary{
		Year:       year,
		Month:      month,
		Income:     decimal.Zero,
		Expenses:   decimal.Zero,
		Categories: []CategorySummary{},
	}

	for _, id := range order {
		row := totals[id]
		if !row.touched {
			continue
		}

		if row.category.Type == models.CategoryTypeIncome {
			summary.Income = summary.Income.Add(row.spent)
		} else {
			summary.Expenses = summary.Expenses.Add(row.spent)
		}

		summary.Categories = append(summary.Categories, CategorySummary{
			CategoryID: row.category.ID,
			Name:       row.category.Name,
			Type:       row.category.Type,
			Spent:      row.spent,
			Budget:     row.budget,
			Remaining:  row.budget.Sub(row.spent),
		})
	}

	sort.SliceStable(summary.Categories, func(i, j int) bool {
		if summary.Categories[i].Name != summary.Categories[j].Name {
			return summary.Categories[i].Name < summary.Categories[j].Name
		}
		return summary.Categories[i].CategoryID < summary.Categories[j].CategoryID
	})

	summary.Net = summary.Income.Add(summary.Expenses)
	return summary, nil
}
