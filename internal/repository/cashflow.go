package repository

import (
	"context"
	"fmt"

	"github.com/niveshak/finplan/internal/models"
)

// UpsertIncome inserts the record when its ID is zero and updates it otherwise
func (r *Repository) UpsertIncome(ctx context.Context, inc *models.Income) error {
	if inc.ID == 0 {
		query := `
			INSERT INTO finplan.incomes (user_id, source, monthly_amount, created_at, updated_at)
			VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
			RETURNING id, created_at, updated_at`
		err := r.db.QueryRowContext(ctx, query, inc.UserID, inc.Source, inc.MonthlyAmount).
			Scan(&inc.ID, &inc.CreatedAt, &inc.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create income: %w", err)
		}
		return nil
	}
	query := `
		UPDATE finplan.incomes
		SET source = $1, monthly_amount = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3 AND user_id = $4
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, inc.Source, inc.MonthlyAmount, inc.ID, inc.UserID).Scan(&inc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update income %d: %w", inc.ID, err)
	}
	return nil
}

// ListIncomes retrieves all income sources for a user
func (r *Repository) ListIncomes(ctx context.Context, userID int64) ([]models.Income, error) {
	query := `
		SELECT id, user_id, source, monthly_amount, created_at, updated_at
		FROM finplan.incomes
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	defer rows.Close()

	var incomes []models.Income
	for rows.Next() {
		var inc models.Income
		if err := rows.Scan(&inc.ID, &inc.UserID, &inc.Source, &inc.MonthlyAmount, &inc.CreatedAt, &inc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		incomes = append(incomes, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate incomes: %w", err)
	}
	return incomes, nil
}

// UpsertExpense inserts the record when its ID is zero and updates it otherwise
func (r *Repository) UpsertExpense(ctx context.Context, exp *models.Expense) error {
	if exp.ID == 0 {
		query := `
			INSERT INTO finplan.expenses (user_id, category, monthly_amount, created_at, updated_at)
			VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
			RETURNING id, created_at, updated_at`
		err := r.db.QueryRowContext(ctx, query, exp.UserID, exp.Category, exp.MonthlyAmount).
			Scan(&exp.ID, &exp.CreatedAt, &exp.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create expense: %w", err)
		}
		return nil
	}
	query := `
		UPDATE finplan.expenses
		SET category = $1, monthly_amount = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3 AND user_id = $4
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, exp.Category, exp.MonthlyAmount, exp.ID, exp.UserID).Scan(&exp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update expense %d: %w", exp.ID, err)
	}
	return nil
}

// ListExpenses retrieves all expenses for a user
func (r *Repository) ListExpenses(ctx context.Context, userID int64) ([]models.Expense, error) {
	query := `
		SELECT id, user_id, category, monthly_amount, created_at, updated_at
		FROM finplan.expenses
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var exp models.Expense
		if err := rows.Scan(&exp.ID, &exp.UserID, &exp.Category, &exp.MonthlyAmount, &exp.CreatedAt, &exp.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}
