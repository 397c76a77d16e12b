// Package handler exposes the service over JSON HTTP. Monetary values are
// kept at full precision through the core and rounded to two decimal places
// only here, at the presentation boundary.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/niveshak/finplan/internal/middleware"
	"github.com/niveshak/finplan/internal/service"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// round2 rounds a monetary or percentage value for presentation
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// userID extracts the authenticated user id placed in the context by the auth
// middleware
func (h *Handler) userID(r *http.Request) (int64, bool) {
	subject, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || subject == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func queryFloat(r *http.Request, name string) (float64, error) {
	return strconv.ParseFloat(r.URL.Query().Get(name), 64)
}

func queryInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(r.URL.Query().Get(name))
}
