package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ordersync/backend/internal/domain/canonical"
	"github.com/ordersync/backend/internal/infrastructure/config"
)

// ---------------------------------------------------------------------------
// Pass history
// ---------------------------------------------------------------------------

// Trigger sources for an import pass
const (
	TriggerScheduled = "scheduled"
	TriggerManual    = "manual"
)

// PassRecord is one retained import pass outcome
type PassRecord struct {
	ID         string                  `json:"id"`
	Trigger    string                  `json:"trigger"`
	Date       time.Time               `json:"date"`
	StartedAt  time.Time               `json:"startedAt"`
	FinishedAt time.Time               `json:"finishedAt"`
	Result     *canonical.ImportResult `json:"result,omitempty"`
	Error      string                  `json:"error,omitempty"`
}

// ---------------------------------------------------------------------------
// Import scheduler
// ---------------------------------------------------------------------------

// ImportScheduler drives periodic import passes and accepts manual triggers.
// Passes are single-flight: a trigger while a pass runs is rejected, and a
// ticker fire while a pass runs is skipped. Finished passes land in a bounded
// in-memory history, newest first.
type ImportScheduler struct {
	executor    PassExecutor
	interval    time.Duration
	passTimeout time.Duration
	historySize int
	logger      *zap.Logger

	mu       sync.Mutex
	running  bool
	inFlight bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	historyMu sync.RWMutex
	history   []PassRecord
}

// NewImportScheduler creates a scheduler over the given executor
func NewImportScheduler(executor PassExecutor, cfg config.ImportConfig, logger *zap.Logger) *ImportScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	passTimeout := cfg.PassTimeout
	if passTimeout <= 0 {
		passTimeout = 30 * time.Minute
	}
	historySize := cfg.HistorySize
	if historySize <= 0 {
		historySize = 50
	}
	return &ImportScheduler{
		executor:    executor,
		interval:    interval,
		passTimeout: passTimeout,
		historySize: historySize,
		logger:      logger,
	}
}

// Start launches the periodic loop. The first pass runs immediately.
func (s *ImportScheduler) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrSchedulerAlreadyRunning
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.running = true
	s.cancel = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("Import scheduler started",
		zap.Duration("interval", s.interval),
		zap.Duration("passTimeout", s.passTimeout))
	return nil
}

// Stop cancels the loop and waits for an in-flight pass to wind down
func (s *ImportScheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.running = false
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(30 * time.Second):
		s.logger.Warn("Import scheduler stop timed out waiting for in-flight pass")
	}

	s.logger.Info("Import scheduler stopped")
	return nil
}

// TriggerNow starts a manual pass in the background and returns its pass id.
// Returns ErrPassInProgress when another pass is already running.
func (s *ImportScheduler) TriggerNow() (string, error) {
	if !s.beginPass() {
		return "", ErrPassInProgress
	}
	id := uuid.NewString()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runPass(context.Background(), id, TriggerManual)
	}()
	return id, nil
}

// History returns retained pass records, newest first
func (s *ImportScheduler) History() []PassRecord {
	s.historyMu.RLock()
	defer s.historyMu.RUnlock()
	out := make([]PassRecord, len(s.history))
	copy(out, s.history)
	return out
}

// IsRunning reports whether the periodic loop is active
func (s *ImportScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *ImportScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	if s.beginPass() {
		s.runPass(ctx, uuid.NewString(), TriggerScheduled)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.beginPass() {
				s.logger.Warn("Skipping scheduled pass, previous pass still running")
				continue
			}
			s.runPass(ctx, uuid.NewString(), TriggerScheduled)
		}
	}
}

// beginPass claims the single-flight slot
func (s *ImportScheduler) beginPass() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

func (s *ImportScheduler) endPass() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

// runPass executes one pass under the pass timeout. The caller must have
// claimed the single-flight slot.
func (s *ImportScheduler) runPass(parent context.Context, id, trigger string) {
	defer s.endPass()

	ctx, cancel := context.WithTimeout(parent, s.passTimeout)
	defer cancel()

	record := PassRecord{
		ID:        id,
		Trigger:   trigger,
		Date:      time.Now(),
		StartedAt: time.Now(),
	}
	s.logger.Info("Import pass starting",
		zap.String("passId", id),
		zap.String("trigger", trigger))

	result, err := s.executor.Execute(ctx, record.Date)
	record.FinishedAt = time.Now()
	record.Result = result
	if err != nil {
		record.Error = err.Error()
		s.logger.Error("Import pass failed",
			zap.String("passId", id),
			zap.String("trigger", trigger),
			zap.Error(err))
	}

	s.addToHistory(record)
}

func (s *ImportScheduler) addToHistory(record PassRecord) {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()
	s.history = append([]PassRecord{record}, s.history...)
	if len(s.history) > s.historySize {
		s.history = s.history[:s.historySize]
	}
}
