package scheduler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"pantry-tracker/internal/config"
	"pantry-tracker/internal/service/inventory"
)

// Scheduler writes periodic snapshot backups of the full state, so a lost
// or corrupted data directory can be recovered through snapshot import.
type Scheduler struct {
	cron   *cron.Cron
	svc    *inventory.Service
	cfg    config.SnapshotConfig
	logger *zap.Logger
}

func NewScheduler(cfg config.SnapshotConfig, svc *inventory.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:   cron.New(),
		svc:    svc,
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers the backup job. An empty schedule disables backups.
func (s *Scheduler) Start() {
	if s.cfg.Schedule == "" {
		s.logger.Info("snapshot backups disabled")
		return
	}

	if _, err := s.cron.AddFunc(s.cfg.Schedule, s.writeBackup); err != nil {
		s.logger.Error("failed to schedule snapshot backup", zap.Error(err))
		return
	}

	s.logger.Info("snapshot backups scheduled", zap.String("schedule", s.cfg.Schedule))
	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) writeBackup() {
	snapshot := s.svc.ExportSnapshot()

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		s.logger.Error("failed to encode snapshot backup", zap.Error(err))
		return
	}

	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		s.logger.Error("failed to create backup directory", zap.Error(err))
		return
	}

	name := fmt.Sprintf("pantry-%s.json", time.Now().Format("20060102-150405"))
	path := filepath.Join(s.cfg.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error("failed to write snapshot backup", zap.Error(err))
		return
	}

	s.logger.Info("snapshot backup written",
		zap.String("path", path),
		zap.Int("stock", len(snapshot.Stock)),
		zap.Int("history", len(snapshot.History)))
}
