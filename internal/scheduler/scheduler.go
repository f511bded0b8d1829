// Package scheduler provides scheduling logic for AuraCore.
//
// It allows jobs (such as firing scheduled routines queued by the automation
// agent) to be scheduled using cron expressions or simple HH:MM clock times.
package scheduler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
)

// Scheduler provides cron-based job scheduling.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler creates and starts a cron scheduler.
func NewScheduler() *Scheduler {
	// Use standard 5-field cron parser (min, hour, dom, month, dow) and enable recovery
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	c := cron.New(cron.WithParser(parser), cron.WithChain(cron.Recover(cron.DefaultLogger)))
	c.Start()
	return &Scheduler{cron: c}
}

// AddJob schedules a task using the provided cron expression.
// It returns an error if the expression is invalid.
func (s *Scheduler) AddJob(expr string, task func()) error {
	_, err := s.cron.AddFunc(expr, task)
	return err
}

// AddDailyJob schedules a task to run every day at the given HH:MM clock time.
func (s *Scheduler) AddDailyJob(clock string, task func()) error {
	expr, err := dailyExpr(clock)
	if err != nil {
		return err
	}
	return s.AddJob(expr, task)
}

// Stop stops the cron scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// dailyExpr converts an HH:MM clock time into a 5-field cron expression.
func dailyExpr(clock string) (string, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid clock time %q: want HH:MM", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in clock time %q", clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in clock time %q", clock)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
