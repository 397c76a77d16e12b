package repository

import (
	"context"
	"fmt"

	"github.com/niveshak/finplan/internal/models"
)

// UpsertLoan inserts the record when its ID is zero and updates it otherwise
func (r *Repository) UpsertLoan(ctx context.Context, loan *models.Loan) error {
	if loan.ID == 0 {
		query := `
			INSERT INTO finplan.loans (user_id, name, original_amount, outstanding_amount, interest_rate, emi, tenure_months, remaining_months, start_date, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
			RETURNING id, created_at, updated_at`
		err := r.db.QueryRowContext(ctx, query, loan.UserID, loan.Name, loan.OriginalAmount, loan.OutstandingAmount,
			loan.InterestRate, loan.EMI, loan.TenureMonths, loan.RemainingMonths, loan.StartDate).
			Scan(&loan.ID, &loan.CreatedAt, &loan.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create loan: %w", err)
		}
		return nil
	}
	query := `
		UPDATE finplan.loans
		SET name = $1, original_amount = $2, outstanding_amount = $3, interest_rate = $4, emi = $5, tenure_months = $6, remaining_months = $7, start_date = $8, updated_at = CURRENT_TIMESTAMP
		WHERE id = $9 AND user_id = $10
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, loan.Name, loan.OriginalAmount, loan.OutstandingAmount, loan.InterestRate,
		loan.EMI, loan.TenureMonths, loan.RemainingMonths, loan.StartDate, loan.ID, loan.UserID).
		Scan(&loan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update loan %d: %w", loan.ID, err)
	}
	return nil
}

// ListLoans retrieves all loans for a user
func (r *Repository) ListLoans(ctx context.Context, userID int64) ([]models.Loan, error) {
	query := `
		SELECT id, user_id, name, original_amount, outstanding_amount, interest_rate, emi, tenure_months, remaining_months, start_date, created_at, updated_at
		FROM finplan.loans
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	var loans []models.Loan
	for rows.Next() {
		var loan models.Loan
		if err := rows.Scan(&loan.ID, &loan.UserID, &loan.Name, &loan.OriginalAmount, &loan.OutstandingAmount,
			&loan.InterestRate, &loan.EMI, &loan.TenureMonths, &loan.RemainingMonths, &loan.StartDate,
			&loan.CreatedAt, &loan.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loans: %w", err)
	}
	return loans, nil
}

// DeleteLoan removes a user's loan record
func (r *Repository) DeleteLoan(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM finplan.loans WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete loan %d: %w", id, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("loan %d not found", id)
	}
	return nil
}
