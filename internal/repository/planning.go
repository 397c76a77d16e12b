package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/niveshak/finplan/internal/models"
)

// UpsertGoal inserts the record when its ID is zero and updates it otherwise
func (r *Repository) UpsertGoal(ctx context.Context, goal *models.Goal) error {
	if goal.ID == 0 {
		query := `
			INSERT INTO finplan.goals (user_id, name, target_amount, current_amount, years, expected_return, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
			RETURNING id, created_at, updated_at`
		err := r.db.QueryRowContext(ctx, query, goal.UserID, goal.Name, goal.TargetAmount, goal.CurrentAmount, goal.Years, goal.ExpectedReturn).
			Scan(&goal.ID, &goal.CreatedAt, &goal.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create goal: %w", err)
		}
		return nil
	}
	query := `
		UPDATE finplan.goals
		SET name = $1, target_amount = $2, current_amount = $3, years = $4, expected_return = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $6 AND user_id = $7
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, goal.Name, goal.TargetAmount, goal.CurrentAmount, goal.Years, goal.ExpectedReturn, goal.ID, goal.UserID).
		Scan(&goal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update goal %d: %w", goal.ID, err)
	}
	return nil
}

// ListGoals retrieves all savings goals for a user
func (r *Repository) ListGoals(ctx context.Context, userID int64) ([]models.Goal, error) {
	query := `
		SELECT id, user_id, name, target_amount, current_amount, years, expected_return, created_at, updated_at
		FROM finplan.goals
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var goal models.Goal
		if err := rows.Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount, &goal.CurrentAmount, &goal.Years, &goal.ExpectedReturn, &goal.CreatedAt, &goal.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goals: %w", err)
	}
	return goals, nil
}

// UpsertInsurance inserts the record when its ID is zero and updates it otherwise
func (r *Repository) UpsertInsurance(ctx context.Context, pol *models.Insurance) error {
	if pol.ID == 0 {
		query := `
			INSERT INTO finplan.insurances (user_id, policy_type, cover_amount, annual_premium, created_at, updated_at)
			VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
			RETURNING id, created_at, updated_at`
		err := r.db.QueryRowContext(ctx, query, pol.UserID, pol.PolicyType, pol.CoverAmount, pol.AnnualPremium).
			Scan(&pol.ID, &pol.CreatedAt, &pol.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create insurance: %w", err)
		}
		return nil
	}
	query := `
		UPDATE finplan.insurances
		SET policy_type = $1, cover_amount = $2, annual_premium = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4 AND user_id = $5
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, pol.PolicyType, pol.CoverAmount, pol.AnnualPremium, pol.ID, pol.UserID).
		Scan(&pol.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update insurance %d: %w", pol.ID, err)
	}
	return nil
}

// ListInsurances retrieves all insurance policies for a user
func (r *Repository) ListInsurances(ctx context.Context, userID int64) ([]models.Insurance, error) {
	query := `
		SELECT id, user_id, policy_type, cover_amount, annual_premium, created_at, updated_at
		FROM finplan.insurances
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list insurances: %w", err)
	}
	defer rows.Close()

	var policies []models.Insurance
	for rows.Next() {
		var pol models.Insurance
		if err := rows.Scan(&pol.ID, &pol.UserID, &pol.PolicyType, &pol.CoverAmount, &pol.AnnualPremium, &pol.CreatedAt, &pol.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan insurance: %w", err)
		}
		policies = append(policies, pol)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate insurances: %w", err)
	}
	return policies, nil
}

// UpsertScenario inserts or updates a retirement scenario. Marking a scenario
// default clears the flag on the user's other scenarios inside the same
// transaction so at most one default exists per user.
func (r *Repository) UpsertScenario(ctx context.Context, sc *models.RetirementScenario) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if sc.IsDefault {
		if _, err := tx.ExecContext(ctx, `UPDATE finplan.scenarios SET is_default = FALSE WHERE user_id = $1`, sc.UserID); err != nil {
			return fmt.Errorf("failed to clear default scenarios: %w", err)
		}
	}

	if sc.ID == 0 {
		query := `
			INSERT INTO finplan.scenarios (user_id, name, current_age, retirement_age, life_expectancy, inflation_rate, corpus_return_rate, sip_step_up_percent, is_default, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
			RETURNING id, created_at, updated_at`
		err = tx.QueryRowContext(ctx, query, sc.UserID, sc.Name, sc.CurrentAge, sc.RetirementAge, sc.LifeExpectancy,
			sc.InflationRate, sc.CorpusReturnRate, sc.SIPStepUpPercent, sc.IsDefault).
			Scan(&sc.ID, &sc.CreatedAt, &sc.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create scenario: %w", err)
		}
	} else {
		query := `
			UPDATE finplan.scenarios
			SET name = $1, current_age = $2, retirement_age = $3, life_expectancy = $4, inflation_rate = $5, corpus_return_rate = $6, sip_step_up_percent = $7, is_default = $8, updated_at = CURRENT_TIMESTAMP
			WHERE id = $9 AND user_id = $10
			RETURNING updated_at`
		err = tx.QueryRowContext(ctx, query, sc.Name, sc.CurrentAge, sc.RetirementAge, sc.LifeExpectancy,
			sc.InflationRate, sc.CorpusReturnRate, sc.SIPStepUpPercent, sc.IsDefault, sc.ID, sc.UserID).
			Scan(&sc.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to update scenario %d: %w", sc.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit scenario upsert: %w", err)
	}
	return nil
}

// ListScenarios retrieves all retirement scenarios for a user
func (r *Repository) ListScenarios(ctx context.Context, userID int64) ([]models.RetirementScenario, error) {
	query := scenarioColumns + ` WHERE user_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []models.RetirementScenario
	for rows.Next() {
		var sc models.RetirementScenario
		if err := scanScenario(rows.Scan, &sc); err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scenarios: %w", err)
	}
	return scenarios, nil
}

const scenarioColumns = `
	SELECT id, user_id, name, current_age, retirement_age, life_expectancy, inflation_rate, corpus_return_rate, sip_step_up_percent, is_default, created_at, updated_at
	FROM finplan.scenarios`

func scanScenario(scan func(dest ...interface{}) error, sc *models.RetirementScenario) error {
	if err := scan(&sc.ID, &sc.UserID, &sc.Name, &sc.CurrentAge, &sc.RetirementAge, &sc.LifeExpectancy,
		&sc.InflationRate, &sc.CorpusReturnRate, &sc.SIPStepUpPercent, &sc.IsDefault, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
		return fmt.Errorf("failed to scan scenario: %w", err)
	}
	return nil
}

// FindDefaultScenario retrieves the user's default scenario, or nil when none
// is configured
func (r *Repository) FindDefaultScenario(ctx context.Context, userID int64) (*models.RetirementScenario, error) {
	sc := &models.RetirementScenario{}
	query := scenarioColumns + ` WHERE user_id = $1 AND is_default = TRUE`
	err := scanScenario(r.db.QueryRowContext(ctx, query, userID).Scan, sc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return sc, nil
}

// FindScenarioByID retrieves a scenario by id, or nil when it does not exist
func (r *Repository) FindScenarioByID(ctx context.Context, id int64) (*models.RetirementScenario, error) {
	sc := &models.RetirementScenario{}
	query := scenarioColumns + ` WHERE id = $1`
	err := scanScenario(r.db.QueryRowContext(ctx, query, id).Scan, sc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return sc, nil
}
