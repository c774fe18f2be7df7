package app

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/finashka_bot/internal/controller/state"
	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Простой проверяется не реже раза в минуту
const maxSweepInterval = time.Minute

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	cron    gocron.Scheduler
	states  *state.Manager
	idleTTL time.Duration
	logger  *zap.Logger
}

// NewScheduler создаёт планировщик; задачи регистрируются в Start
func NewScheduler(states *state.Manager, idleTTL time.Duration, logger *zap.Logger) (*Scheduler, error) {
	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	return &Scheduler{
		cron:    cron,
		states:  states,
		idleTTL: idleTTL,
		logger:  logger,
	}, nil
}

// Start запускает фоновые задачи. При нулевом TTL состояния не вытесняются.
func (s *Scheduler) Start() error {
	if s.idleTTL <= 0 {
		s.logger.Info("Idle conversation eviction disabled")
		return nil
	}

	interval := s.idleTTL
	if interval > maxSweepInterval {
		interval = maxSweepInterval
	}

	_, err := s.cron.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.evictIdle),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("schedule eviction: %w", err)
	}

	s.logger.Info("Starting background scheduler",
		zap.Duration("idle_ttl", s.idleTTL),
		zap.Duration("interval", interval))
	s.cron.Start()
	return nil
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() error {
	s.logger.Info("Stopping background scheduler")
	return s.cron.Shutdown()
}

// evictIdle удаляет состояния собеседников, которые давно молчат
func (s *Scheduler) evictIdle() {
	n := s.states.EvictIdle(s.idleTTL)
	if n > 0 {
		s.logger.Info("Evicted idle conversations",
			zap.Int("evicted", n),
			zap.Int("alive", s.states.Len()))
	}
}
