package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/niveshak/finplan/internal/config"
	"github.com/niveshak/finplan/internal/handler"
	"github.com/niveshak/finplan/internal/jobs"
	"github.com/niveshak/finplan/internal/middleware"
	"github.com/niveshak/finplan/internal/repository"
	"github.com/niveshak/finplan/internal/service"
	"github.com/niveshak/finplan/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Optional error reporting
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			logger.Fatalf("Failed to init sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	mailer := email.NewSender(cfg, logger)
	svc := service.NewService(repo, mailer, logger, cfg)
	h := handler.NewHandler(svc, logger)

	// Start scheduled jobs
	scheduler := jobs.NewScheduler(svc, logger)
	if err := scheduler.Start(cfg.RoleExpirySchedule); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestID(logger))

	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")

	// Calculator routes (stateless, public)
	calc := r.PathPrefix("/calculators").Subrouter()
	calc.HandleFunc("/future-value", h.FutureValue).Methods("GET")
	calc.HandleFunc("/sip", h.SIPFutureValue).Methods("GET")
	calc.HandleFunc("/step-up-sip", h.StepUpSIPFutureValue).Methods("GET")
	calc.HandleFunc("/required-sip", h.RequiredSIP).Methods("GET")
	calc.HandleFunc("/inflation", h.InflationAdjusted).Methods("GET")
	calc.HandleFunc("/cagr", h.CAGR).Methods("GET")
	calc.HandleFunc("/absolute-returns", h.AbsoluteReturns).Methods("GET")
	calc.HandleFunc("/emi", h.EMI).Methods("GET")
	calc.HandleFunc("/ppf", h.PPFMaturity).Methods("GET")
	calc.HandleFunc("/amortization", h.Amortization).Methods("GET")

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/investments", h.ListInvestments).Methods("GET")
	authRouter.HandleFunc("/investments", h.SaveInvestment).Methods("POST")
	authRouter.HandleFunc("/investments/import", h.ImportStatement).Methods("POST")
	authRouter.HandleFunc("/investments/{id:[0-9]+}", h.DeleteInvestment).Methods("DELETE")
	authRouter.HandleFunc("/loans", h.ListLoans).Methods("GET")
	authRouter.HandleFunc("/loans", h.SaveLoan).Methods("POST")
	authRouter.HandleFunc("/loans/{id:[0-9]+}/schedule", h.LoanSchedule).Methods("GET")
	authRouter.HandleFunc("/incomes", h.ListIncomes).Methods("GET")
	authRouter.HandleFunc("/incomes", h.SaveIncome).Methods("POST")
	authRouter.HandleFunc("/expenses", h.ListExpenses).Methods("GET")
	authRouter.HandleFunc("/expenses", h.SaveExpense).Methods("POST")
	authRouter.HandleFunc("/insurances", h.ListInsurances).Methods("GET")
	authRouter.HandleFunc("/insurances", h.SaveInsurance).Methods("POST")
	authRouter.HandleFunc("/goals", h.SaveGoal).Methods("POST")
	authRouter.HandleFunc("/goals/plan", h.PlanGoals).Methods("GET")
	authRouter.HandleFunc("/scenarios", h.ListScenarios).Methods("GET")
	authRouter.HandleFunc("/scenarios", h.SaveScenario).Methods("POST")
	authRouter.HandleFunc("/retirement/matrix", h.RetirementMatrix).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
