package jobs

import (
	"SanteSenegal/routes"
	"SanteSenegal/utils"
	"context"
	"log"
	"time"
)

// Scheduler runs the recurring maintenance tasks: appointment reminders,
// holiday propagation into plannings, and the yearly holiday re-sync. Each
// task is independent; a failing task is logged and the others still run.
type Scheduler struct {
	services *routes.Services
	interval time.Duration
	stopChan chan struct{}
	doneChan chan struct{}
	lastRun  string
}

func NewScheduler(services *routes.Services) *Scheduler {
	return &Scheduler{
		services: services,
		interval: time.Hour,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start launches the background loop. The holiday calendar is synced once
// at startup, then the daily tasks run on the first tick of each new day.
func (s *Scheduler) Start() {
	go s.run()
}

// Stop signals the loop to exit and waits for the current tick to finish.
func (s *Scheduler) Stop() {
	close(s.stopChan)
	<-s.doneChan
}

func (s *Scheduler) run() {
	defer close(s.doneChan)

	ctx := context.Background()
	s.services.Calendar.SyncCurrentAndNext(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			log.Println("Scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	today := utils.Today()
	if today == s.lastRun {
		return
	}
	s.lastRun = today
	s.runDailyTasks(ctx, today)
}

func (s *Scheduler) runDailyTasks(ctx context.Context, today string) {
	log.Printf("Running daily scheduling tasks for %s", today)

	sent, err := s.services.Appointments.SendReminders(ctx)
	if err != nil {
		log.Printf("Reminder task failed: %v", err)
	} else {
		log.Printf("Sent %d appointment reminders", sent)
	}

	marked, err := s.services.Availability.MarkHolidayUnavailability(ctx)
	if err != nil {
		log.Printf("Holiday unavailability task failed: %v", err)
	} else if marked > 0 {
		log.Printf("Marked %d windows unavailable for holidays", marked)
	}

	// Refresh the holiday calendar at the start of each year.
	if day, err := utils.ParseDate(today); err == nil && day.Month() == time.January && day.Day() == 1 {
		s.services.Calendar.SyncCurrentAndNext(ctx)
	}
}
