// Package jobs hosts the scheduled housekeeping tasks. They run on their own
// cadence and never coordinate with request handling; each run operates on a
// fresh snapshot and is idempotent.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/niveshak/finplan/internal/service"
)

// Scheduler runs the periodic jobs
type Scheduler struct {
	cron *cron.Cron
	svc  *service.Service
	log  *logrus.Logger
}

// NewScheduler initializes the job scheduler
func NewScheduler(svc *service.Service, log *logrus.Logger) *Scheduler {
	return &Scheduler{cron: cron.New(), svc: svc, log: log}
}

// Start registers the role-expiry reversion on the given cron schedule and
// starts the scheduler
func (s *Scheduler) Start(roleExpirySchedule string) error {
	if _, err := s.cron.AddFunc(roleExpirySchedule, s.runRoleExpiry); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Infof("Job scheduler started, role expiry on %q", roleExpirySchedule)
	return nil
}

// Stop halts the scheduler, waiting for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runRoleExpiry() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.svc.RevertExpiredRoles(ctx); err != nil {
		s.log.Errorf("Role expiry job failed: %v", err)
	}
}
