package scheduler

import (
	"fmt"
	"sync"
	"time"

	"teammatch/config"
	"teammatch/logger"
	"teammatch/services"
)

// clamp hour/minute to valid wall-clock values
func validateHourMinute(cfg *config.Config, hour, minute int) (int, int) {
	defaultHour := cfg.Scheduler.DefaultHour
	defaultMinute := cfg.Scheduler.DefaultMinute

	if hour < 0 || hour > 23 {
		logger.Warn("Invalid hour value", "hour", hour, "default", defaultHour)
		hour = defaultHour
	}
	if minute < 0 || minute > 59 {
		logger.Warn("Invalid minute value", "minute", minute, "default", defaultMinute)
		minute = defaultMinute
	}
	return hour, minute
}

// next occurrence of the given wall-clock time
func getNextTimePoint(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if next.Before(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

type TaskType int

const (
	TaskEmbeddingBackfill TaskType = iota
)

type TaskStatus struct {
	LastRun     time.Time
	NextRun     time.Time
	IsRunning   bool
	Description string
}

type Scheduler struct {
	cfg         *config.Config
	concurrency int
	tasks       map[TaskType]*TaskStatus
	mutex       sync.Mutex
}

func NewScheduler(cfg *config.Config) *Scheduler {
	concurrency := cfg.Cron.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	return &Scheduler{
		cfg:         cfg,
		concurrency: concurrency,
		tasks:       make(map[TaskType]*TaskStatus),
		mutex:       sync.Mutex{},
	}
}

// Start launches the background scheduler loop.
func Start(cfg *config.Config) {
	scheduler := NewScheduler(cfg)
	scheduler.initTasks()
	go scheduler.run()

	checkInterval := cfg.Scheduler.CheckIntervalSec
	if checkInterval <= 0 {
		checkInterval = 60
	}
	logger.Info("Scheduler started", "check_interval_sec", checkInterval)
}

func (s *Scheduler) initTasks() {
	now := time.Now()

	if s.cfg.Debug.Enabled {
		// Debug mode: run the backfill on a short fixed interval.
		freqSeconds := s.cfg.Debug.BackfillSec
		if freqSeconds <= 0 {
			freqSeconds = 1800
		}
		interval := time.Duration(freqSeconds) * time.Second

		s.tasks[TaskEmbeddingBackfill] = &TaskStatus{
			LastRun:     now.Add(-interval),
			NextRun:     now.Add(interval),
			IsRunning:   false,
			Description: fmt.Sprintf("embedding backfill (debug mode: every %ds)", freqSeconds),
		}
		logger.Info("Debug mode enabled", "frequency_seconds", freqSeconds, "task", "embedding backfill")
	} else {
		// Normal mode: run the backfill once a day at the configured time.
		hour, minute := validateHourMinute(s.cfg, s.cfg.Cron.BackfillHour, s.cfg.Cron.BackfillMin)
		nextRun := getNextTimePoint(now, hour, minute)

		s.tasks[TaskEmbeddingBackfill] = &TaskStatus{
			LastRun:     nextRun.Add(-24 * time.Hour),
			NextRun:     nextRun,
			IsRunning:   false,
			Description: fmt.Sprintf("embedding backfill (%02d:%02d)", hour, minute),
		}
		logger.Info("Scheduled daily embedding backfill", "schedule_time", fmt.Sprintf("%02d:%02d", hour, minute))
	}

	logger.Info("Scheduled tasks initialized", "task_count", len(s.tasks))
}

func (s *Scheduler) run() {
	checkInterval := s.cfg.Scheduler.CheckIntervalSec
	if checkInterval <= 0 {
		checkInterval = 60
	}
	ticker := time.NewTicker(time.Duration(checkInterval) * time.Second)
	defer ticker.Stop()

	for now := range ticker.C {
		s.checkTasks(now)
	}
}

func (s *Scheduler) checkTasks(now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for taskType, status := range s.tasks {
		if status.IsRunning {
			continue
		}
		if status.NextRun.IsZero() {
			continue
		}

		if now.After(status.NextRun) || now.Equal(status.NextRun) {
			status.IsRunning = true
			go s.runTask(taskType, now)
		}
	}
}

func (s *Scheduler) runTask(taskType TaskType, now time.Time) {
	defer func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()

		status := s.tasks[taskType]
		status.IsRunning = false
		status.LastRun = now

		switch taskType {
		case TaskEmbeddingBackfill:
			if s.cfg.Debug.Enabled {
				freqSeconds := s.cfg.Debug.BackfillSec
				if freqSeconds <= 0 {
					freqSeconds = 1800
				}
				status.NextRun = now.Add(time.Duration(freqSeconds) * time.Second)
			} else {
				hour, minute := validateHourMinute(s.cfg, s.cfg.Cron.BackfillHour, s.cfg.Cron.BackfillMin)
				status.NextRun = getNextTimePoint(now, hour, minute)
			}
		}

		logger.Info("Task finished", "task", status.Description, "next_run", status.NextRun.Format("2006-01-02 15:04:05"))
	}()

	s.mutex.Lock()
	description := "Unknown Task"
	if status, ok := s.tasks[taskType]; ok {
		description = status.Description
	}
	s.mutex.Unlock()
	logger.Info("Task starting", "task", description)

	switch taskType {
	case TaskEmbeddingBackfill:
		if err := services.BackfillEmbeddings(s.cfg, s.concurrency); err != nil {
			logger.Error("Embedding backfill failed", "error", err)
		}
	}
}
