package repository

import (
	"context"
	"fmt"

	"github.com/niveshak/finplan/internal/models"
)

// UpsertInvestment inserts the record when its ID is zero and updates it
// otherwise
func (r *Repository) UpsertInvestment(ctx context.Context, inv *models.Investment) error {
	if inv.ID == 0 {
		query := `
			INSERT INTO finplan.investments (user_id, name, type, invested_amount, current_value, is_emergency_fund, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
			RETURNING id, created_at, updated_at`
		err := r.db.QueryRowContext(ctx, query, inv.UserID, inv.Name, inv.Type, inv.InvestedAmount, inv.CurrentValue, inv.IsEmergencyFund).
			Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create investment: %w", err)
		}
		return nil
	}
	query := `
		UPDATE finplan.investments
		SET name = $1, type = $2, invested_amount = $3, current_value = $4, is_emergency_fund = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $6 AND user_id = $7
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, inv.Name, inv.Type, inv.InvestedAmount, inv.CurrentValue, inv.IsEmergencyFund, inv.ID, inv.UserID).
		Scan(&inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update investment %d: %w", inv.ID, err)
	}
	return nil
}

// ListInvestments retrieves all investments for a user
func (r *Repository) ListInvestments(ctx context.Context, userID int64) ([]models.Investment, error) {
	query := `
		SELECT id, user_id, name, type, invested_amount, current_value, is_emergency_fund, created_at, updated_at
		FROM finplan.investments
		WHERE user_id = $1
		ORDER BY id`
	return r.scanInvestments(ctx, query, userID)
}

// ListInvestmentsByType retrieves a user's investments in one category
func (r *Repository) ListInvestmentsByType(ctx context.Context, userID int64, t models.InvestmentType) ([]models.Investment, error) {
	query := `
		SELECT id, user_id, name, type, invested_amount, current_value, is_emergency_fund, created_at, updated_at
		FROM finplan.investments
		WHERE user_id = $1 AND type = $2
		ORDER BY id`
	return r.scanInvestments(ctx, query, userID, t)
}

func (r *Repository) scanInvestments(ctx context.Context, query string, args ...interface{}) ([]models.Investment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	defer rows.Close()

	var investments []models.Investment
	for rows.Next() {
		var inv models.Investment
		if err := rows.Scan(&inv.ID, &inv.UserID, &inv.Name, &inv.Type, &inv.InvestedAmount, &inv.CurrentValue, &inv.IsEmergencyFund, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		investments = append(investments, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate investments: %w", err)
	}
	return investments, nil
}

// DeleteInvestment removes a user's investment record
func (r *Repository) DeleteInvestment(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM finplan.investments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete investment %d: %w", id, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("investment %d not found", id)
	}
	return nil
}
