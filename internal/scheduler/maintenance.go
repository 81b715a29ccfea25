package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/Testeur1337/myPomodoro/internal/backup"
	"github.com/Testeur1337/myPomodoro/internal/hierarchy"
	"github.com/Testeur1337/myPomodoro/internal/logger"
	"github.com/Testeur1337/myPomodoro/internal/model"
)

// Meta keys written after each successful run.
const (
	MetaLastRepair = "last_repair_at"
	MetaLastBackup = "last_backup_at"
)

const backupPrefix = "pomodoro-"

// Maintainer is the part of the service the maintenance jobs drive.
type Maintainer interface {
	Repair(ctx context.Context) (hierarchy.Report, error)
	Export(ctx context.Context) (*model.Dataset, error)
}

// MetaStore records bookkeeping values. It may be nil.
type MetaStore interface {
	SetMeta(ctx context.Context, key, value string) error
}

// Maintenance holds the settings of the repair and backup jobs.
type Maintenance struct {
	RepairSchedule   string
	BackupSchedule   string
	BackupDir        string
	BackupPassphrase string
	BackupKeep       int
}

// Jobs are the maintenance tasks, callable on a schedule or on demand.
type Jobs struct {
	svc  Maintainer
	meta MetaStore
	cfg  Maintenance
	now  func() time.Time
}

func NewJobs(svc Maintainer, meta MetaStore, cfg Maintenance) *Jobs {
	return &Jobs{svc: svc, meta: meta, cfg: cfg, now: time.Now}
}

// Register adds the configured jobs to s.
func (j *Jobs) Register(s *Scheduler) error {
	if _, err := s.Schedule("repair", j.cfg.RepairSchedule, j.Repair); err != nil {
		return fmt.Errorf("failed to schedule repair: %w", err)
	}
	if _, err := s.Schedule("backup", j.cfg.BackupSchedule, func(ctx context.Context) error {
		_, err := j.Backup(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("failed to schedule backup: %w", err)
	}
	return nil
}

// Repair runs the hierarchy migrator.
func (j *Jobs) Repair(ctx context.Context) error {
	if _, err := j.svc.Repair(ctx); err != nil {
		return err
	}
	j.record(ctx, MetaLastRepair)
	return nil
}

// Backup writes a snapshot into the backup directory, then prunes old
// snapshots beyond the configured count. It returns the written path.
func (j *Jobs) Backup(ctx context.Context) (string, error) {
	ds, err := j.svc.Export(ctx)
	if err != nil {
		return "", err
	}
	name := backupPrefix + j.now().UTC().Format("20060102T150405Z") + ".json"
	path := filepath.Join(j.cfg.BackupDir, name)
	if err := backup.WriteFile(path, ds, j.cfg.BackupPassphrase); err != nil {
		return "", err
	}
	if err := j.prune(); err != nil {
		logger.Warn("failed to prune backups", logger.F("dir", j.cfg.BackupDir), logger.F("error", err))
	}
	j.record(ctx, MetaLastBackup)
	logger.Info("backup written", logger.F("path", path), logger.F("encrypted", j.cfg.BackupPassphrase != ""))
	return path, nil
}

// prune keeps the newest BackupKeep snapshots. Names sort by time.
func (j *Jobs) prune() error {
	if j.cfg.BackupKeep <= 0 {
		return nil
	}
	files, err := filepath.Glob(filepath.Join(j.cfg.BackupDir, backupPrefix+"*.json"))
	if err != nil {
		return err
	}
	if len(files) <= j.cfg.BackupKeep {
		return nil
	}
	slices.Sort(files)
	for _, f := range files[:len(files)-j.cfg.BackupKeep] {
		if err := os.Remove(f); err != nil {
			return err
		}
	}
	return nil
}

func (j *Jobs) record(ctx context.Context, key string) {
	if j.meta == nil {
		return
	}
	if err := j.meta.SetMeta(ctx, key, j.now().UTC().Format(time.RFC3339)); err != nil {
		logger.Warn("failed to record maintenance run", logger.F("key", key), logger.F("error", err))
	}
}
