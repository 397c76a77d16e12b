package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/niveshak/finplan/internal/models"
)

// ListInvestments returns the user's holdings, optionally filtered by type
func (h *Handler) ListInvestments(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	t := models.InvestmentType(r.URL.Query().Get("type"))
	investments, err := h.svc.ListInvestments(r.Context(), userID, t)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, investments)
}

// SaveInvestment upserts a holding for the user
func (h *Handler) SaveInvestment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var inv models.Investment
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	inv.UserID = userID

	if err := h.svc.SaveInvestment(r.Context(), &inv); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// DeleteInvestment removes a holding owned by the user
func (h *Handler) DeleteInvestment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid investment id")
		return
	}

	if err := h.svc.DeleteInvestment(r.Context(), userID, id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type importRequest struct {
	URL string `json:"url"`
}

// ImportStatement imports holdings from an XML statement, either posted
// directly (Content-Type: application/xml) or referenced by URL in a JSON body
func (h *Handler) ImportStatement(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var (
		investments []models.Investment
		err         error
	)
	if r.Header.Get("Content-Type") == "application/xml" {
		raw, readErr := io.ReadAll(r.Body)
		if readErr != nil {
			writeError(w, http.StatusBadRequest, "failed to read statement body")
			return
		}
		investments, err = h.svc.ImportStatement(r.Context(), userID, raw)
	} else {
		var req importRequest
		if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil || req.URL == "" {
			writeError(w, http.StatusBadRequest, "expected XML body or a JSON body with a url")
			return
		}
		investments, err = h.svc.ImportStatementFromURL(r.Context(), userID, req.URL)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, investments)
}

// ListLoans returns the user's loans
func (h *Handler) ListLoans(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	loans, err := h.svc.ListLoans(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, loans)
}

// SaveLoan upserts a loan for the user
func (h *Handler) SaveLoan(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var loan models.Loan
	if err := json.NewDecoder(r.Body).Decode(&loan); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	loan.UserID = userID

	if err := h.svc.SaveLoan(r.Context(), &loan); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

// LoanSchedule returns the remaining amortization schedule for a loan
func (h *Handler) LoanSchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid loan id")
		return
	}

	schedule, err := h.svc.LoanSchedule(r.Context(), userID, id)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, roundSchedule(schedule))
}

// SaveIncome upserts an income source
func (h *Handler) SaveIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var inc models.Income
	if err := json.NewDecoder(r.Body).Decode(&inc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	inc.UserID = userID

	if err := h.svc.SaveIncome(r.Context(), &inc); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, inc)
}

// ListIncomes returns the user's income sources
func (h *Handler) ListIncomes(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	incomes, err := h.svc.ListIncomes(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, incomes)
}

// SaveExpense upserts an expense
func (h *Handler) SaveExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var exp models.Expense
	if err := json.NewDecoder(r.Body).Decode(&exp); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	exp.UserID = userID

	if err := h.svc.SaveExpense(r.Context(), &exp); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, exp)
}

// ListExpenses returns the user's expenses
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	expenses, err := h.svc.ListExpenses(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// SaveInsurance upserts an insurance policy
func (h *Handler) SaveInsurance(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var pol models.Insurance
	if err := json.NewDecoder(r.Body).Decode(&pol); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	pol.UserID = userID

	if err := h.svc.SaveInsurance(r.Context(), &pol); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, pol)
}

// ListInsurances returns the user's insurance policies
func (h *Handler) ListInsurances(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	policies, err := h.svc.ListInsurances(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, policies)
}

// SaveGoal upserts a savings goal
func (h *Handler) SaveGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var goal models.Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	goal.UserID = userID

	if err := h.svc.SaveGoal(r.Context(), &goal); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

// PlanGoals returns the required monthly SIP for each of the user's goals
func (h *Handler) PlanGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	plans, err := h.svc.PlanGoals(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for i := range plans {
		plans[i].ProjectedCurrent = round2(plans[i].ProjectedCurrent)
		plans[i].RequiredMonthlySIP = round2(plans[i].RequiredMonthlySIP)
	}
	writeJSON(w, http.StatusOK, plans)
}

// SaveScenario upserts a retirement scenario
func (h *Handler) SaveScenario(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var sc models.RetirementScenario
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sc.UserID = userID

	if err := h.svc.SaveScenario(r.Context(), &sc); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

// ListScenarios returns the user's retirement scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	scenarios, err := h.svc.ListScenarios(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scenarios)
}
