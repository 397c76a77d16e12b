package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/niveshak/finplan/internal/models"
	"github.com/niveshak/finplan/internal/projection"
)

// RetirementMatrix builds and returns the retirement projection for the
// authenticated user. Accepts optional scenario_id and notify query params.
func (h *Handler) RetirementMatrix(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var scenarioID *int64
	if raw := r.URL.Query().Get("scenario_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid scenario_id")
			return
		}
		scenarioID = &id
	}
	notify := r.URL.Query().Get("notify") == "true"

	matrix, err := h.svc.RetirementMatrix(r.Context(), userID, scenarioID, notify)
	if err != nil {
		if errors.Is(err, projection.ErrNoScenario) {
			writeError(w, http.StatusNotFound, "no retirement scenario configured")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, roundMatrix(matrix))
}

// roundMatrix copies the matrix with all monetary fields rounded for
// presentation; the original stays at full precision.
func roundMatrix(m *models.RetirementMatrix) *models.RetirementMatrix {
	out := *m
	out.Summary.StartingBalances = make(map[models.InvestmentType]float64, len(m.Summary.StartingBalances))
	for t, v := range m.Summary.StartingBalances {
		out.Summary.StartingBalances[t] = round2(v)
	}
	out.Summary.EmergencyFund = round2(m.Summary.EmergencyFund)
	out.Summary.InvestableCorpus = round2(m.Summary.InvestableCorpus)
	out.Summary.MonthlyIncome = round2(m.Summary.MonthlyIncome)
	out.Summary.MonthlyExpenses = round2(m.Summary.MonthlyExpenses)
	out.Summary.MonthlyInsurance = round2(m.Summary.MonthlyInsurance)
	out.Summary.MonthlyEMI = round2(m.Summary.MonthlyEMI)
	out.Summary.OutstandingDebt = round2(m.Summary.OutstandingDebt)

	out.Years = make([]models.ProjectionYear, len(m.Years))
	for i, year := range m.Years {
		out.Years[i] = models.ProjectionYear{
			Age:         year.Age,
			CorpusValue: round2(year.CorpusValue),
			CashFlow:    round2(year.CashFlow),
			LoanBalance: round2(year.LoanBalance),
		}
	}
	return &out
}

func roundSchedule(schedule []models.AmortizationEntry) []models.AmortizationEntry {
	out := make([]models.AmortizationEntry, len(schedule))
	for i, entry := range schedule {
		out[i] = models.AmortizationEntry{
			Month:         entry.Month,
			Interest:      round2(entry.Interest),
			PrincipalPaid: round2(entry.PrincipalPaid),
			Balance:       round2(entry.Balance),
		}
	}
	return out
}
