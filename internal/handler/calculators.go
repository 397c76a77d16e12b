package handler

import (
	"errors"
	"net/http"

	"github.com/niveshak/finplan/internal/finmath"
)

// Calculator endpoints are thin, stateless wrappers over the formula library.
// All take query parameters and return {"result": <rounded value>}.

func writeResult(w http.ResponseWriter, v float64) {
	writeJSON(w, http.StatusOK, map[string]float64{"result": round2(v)})
}

// FutureValue computes the lumpsum future value
func (h *Handler) FutureValue(w http.ResponseWriter, r *http.Request) {
	principal, err1 := queryFloat(r, "principal")
	rate, err2 := queryFloat(r, "rate")
	years, err3 := queryFloat(r, "years")
	if err1 != nil || err2 != nil || err3 != nil {
		writeError(w, http.StatusBadRequest, "principal, rate and years are required")
		return
	}
	writeResult(w, finmath.FutureValue(principal, rate, years))
}

// SIPFutureValue computes the future value of a level monthly SIP
func (h *Handler) SIPFutureValue(w http.ResponseWriter, r *http.Request) {
	monthly, err1 := queryFloat(r, "monthly")
	rate, err2 := queryFloat(r, "rate")
	years, err3 := queryInt(r, "years")
	if err1 != nil || err2 != nil || err3 != nil {
		writeError(w, http.StatusBadRequest, "monthly, rate and years are required")
		return
	}
	writeResult(w, finmath.SIPFutureValue(monthly, rate, years))
}

// StepUpSIPFutureValue computes the future value of an annually stepped-up SIP
func (h *Handler) StepUpSIPFutureValue(w http.ResponseWriter, r *http.Request) {
	monthly, err1 := queryFloat(r, "monthly")
	rate, err2 := queryFloat(r, "rate")
	stepUp, err3 := queryFloat(r, "step_up")
	years, err4 := queryInt(r, "years")
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		writeError(w, http.StatusBadRequest, "monthly, rate, step_up and years are required")
		return
	}
	writeResult(w, finmath.StepUpSIPFutureValue(monthly, rate, stepUp, years))
}

// RequiredSIP computes the monthly SIP needed to reach a target
func (h *Handler) RequiredSIP(w http.ResponseWriter, r *http.Request) {
	target, err1 := queryFloat(r, "target")
	rate, err2 := queryFloat(r, "rate")
	years, err3 := queryInt(r, "years")
	if err1 != nil || err2 != nil || err3 != nil {
		writeError(w, http.StatusBadRequest, "target, rate and years are required")
		return
	}
	writeResult(w, finmath.RequiredSIP(target, rate, years))
}

// InflationAdjusted computes the future cost of an amount under inflation
func (h *Handler) InflationAdjusted(w http.ResponseWriter, r *http.Request) {
	amount, err1 := queryFloat(r, "amount")
	rate, err2 := queryFloat(r, "rate")
	years, err3 := queryFloat(r, "years")
	if err1 != nil || err2 != nil || err3 != nil {
		writeError(w, http.StatusBadRequest, "amount, rate and years are required")
		return
	}
	writeResult(w, finmath.InflationAdjusted(amount, rate, years))
}

// CAGR computes the compound annual growth rate between two values
func (h *Handler) CAGR(w http.ResponseWriter, r *http.Request) {
	begin, err1 := queryFloat(r, "begin")
	end, err2 := queryFloat(r, "end")
	years, err3 := queryFloat(r, "years")
	if err1 != nil || err2 != nil || err3 != nil {
		writeError(w, http.StatusBadRequest, "begin, end and years are required")
		return
	}
	writeResult(w, finmath.CAGR(begin, end, years))
}

// AbsoluteReturns computes the total percentage return on an investment
func (h *Handler) AbsoluteReturns(w http.ResponseWriter, r *http.Request) {
	invested, err1 := queryFloat(r, "invested")
	current, err2 := queryFloat(r, "current")
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "invested and current are required")
		return
	}
	writeResult(w, finmath.AbsoluteReturns(invested, current))
}

// EMI computes the fixed monthly installment for a loan
func (h *Handler) EMI(w http.ResponseWriter, r *http.Request) {
	principal, err1 := queryFloat(r, "principal")
	rate, err2 := queryFloat(r, "rate")
	months, err3 := queryInt(r, "months")
	if err1 != nil || err2 != nil || err3 != nil {
		writeError(w, http.StatusBadRequest, "principal, rate and months are required")
		return
	}
	writeResult(w, finmath.EMI(principal, rate, months))
}

// PPFMaturity projects a PPF balance with yearly contributions
func (h *Handler) PPFMaturity(w http.ResponseWriter, r *http.Request) {
	balance, err1 := queryFloat(r, "balance")
	contribution, err2 := queryFloat(r, "contribution")
	rate, err3 := queryFloat(r, "rate")
	years, err4 := queryInt(r, "years")
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		writeError(w, http.StatusBadRequest, "balance, contribution, rate and years are required")
		return
	}
	writeResult(w, finmath.PPFMaturity(balance, contribution, rate, years))
}

// Amortization produces a standalone amortization schedule
func (h *Handler) Amortization(w http.ResponseWriter, r *http.Request) {
	outstanding, err1 := queryFloat(r, "outstanding")
	rate, err2 := queryFloat(r, "rate")
	emi, err3 := queryFloat(r, "emi")
	months, err4 := queryInt(r, "months")
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		writeError(w, http.StatusBadRequest, "outstanding, rate, emi and months are required")
		return
	}

	schedule, err := finmath.AmortizationSchedule(outstanding, rate, emi, months)
	if err != nil {
		if errors.Is(err, finmath.ErrNegativeAmortization) {
			writeError(w, http.StatusUnprocessableEntity, "emi does not cover accruing interest")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, roundSchedule(schedule))
}
