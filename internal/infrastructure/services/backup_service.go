package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"ncd-ifconfig/internal/domain/constants"
	"ncd-ifconfig/internal/domain/errors"
	"ncd-ifconfig/internal/domain/interfaces"
	"ncd-ifconfig/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

// BackupService keeps timestamped copies of a file before it is replaced
type BackupService struct {
	fileSystem interfaces.FileSystem
	clock      interfaces.Clock
	logger     *logrus.Logger
	backupDir  string
	maxBackups int
}

// NewBackupService creates a new BackupService. maxBackups of 0 keeps every backup.
func NewBackupService(
	fs interfaces.FileSystem,
	clock interfaces.Clock,
	logger *logrus.Logger,
	backupDir string,
	maxBackups int,
) interfaces.BackupService {
	return &BackupService{
		fileSystem: fs,
		clock:      clock,
		logger:     logger,
		backupDir:  backupDir,
		maxBackups: maxBackups,
	}
}

// CreateBackup copies path to <backupDir>/<name>_<timestamp><ext>. A missing
// source is not an error.
func (s *BackupService) CreateBackup(ctx context.Context, name string, path string) error {
	if err := s.fileSystem.MkdirAll(s.backupDir, constants.BackupDirPermission); err != nil {
		metrics.RecordResolverBackup("failed")
		return errors.NewSystemError("failed to create backup directory", err)
	}

	if !s.fileSystem.Exists(path) {
		s.logger.WithFields(logrus.Fields{
			"name": name,
			"path": path,
		}).Debug("no file to back up")
		metrics.RecordResolverBackup("skipped")
		return nil
	}

	content, err := s.fileSystem.ReadFile(path)
	if err != nil {
		metrics.RecordResolverBackup("failed")
		return errors.NewSystemError("failed to read file for backup", err)
	}

	backupPath := s.backupPath(name, filepath.Ext(path))

	if err := s.fileSystem.WriteFile(backupPath, content, constants.ResolvConfPermission); err != nil {
		metrics.RecordResolverBackup("failed")
		return errors.NewSystemError("failed to write backup file", err)
	}

	metrics.RecordResolverBackup("created")
	s.logger.WithFields(logrus.Fields{
		"name":        name,
		"backup_path": backupPath,
	}).Info("backup created")

	s.prune(name)
	return nil
}

// ListBackups returns the backup file names for name, oldest first
func (s *BackupService) ListBackups(name string) ([]string, error) {
	if !s.fileSystem.Exists(s.backupDir) {
		return []string{}, nil
	}

	files, err := s.fileSystem.ListFiles(s.backupDir)
	if err != nil {
		return nil, errors.NewSystemError("failed to read backup directory", err)
	}

	backupFiles := []string{}
	prefix := name + "_"
	for _, file := range files {
		if strings.HasPrefix(file, prefix) {
			backupFiles = append(backupFiles, file)
		}
	}

	// timestamps sort lexically
	sort.Strings(backupFiles)

	return backupFiles, nil
}

// backupPath names a backup resolv.conf_20250108_150405.conf. A second backup
// in the same second gets resolv.conf_20250108_150405_01.conf, which still
// sorts after the first.
func (s *BackupService) backupPath(name string, ext string) string {
	timestamp := s.clock.Now().Format("20060102_150405")
	backupPath := filepath.Join(s.backupDir, fmt.Sprintf("%s_%s%s", name, timestamp, ext))
	for i := 1; s.fileSystem.Exists(backupPath); i++ {
		backupPath = filepath.Join(s.backupDir, fmt.Sprintf("%s_%s_%02d%s", name, timestamp, i, ext))
	}
	return backupPath
}

func (s *BackupService) prune(name string) {
	if s.maxBackups <= 0 {
		return
	}

	backupFiles, err := s.ListBackups(name)
	if err != nil {
		s.logger.WithError(err).Warn("failed to list backups for pruning")
		return
	}

	for len(backupFiles) > s.maxBackups {
		oldest := filepath.Join(s.backupDir, backupFiles[0])
		if err := s.fileSystem.Remove(oldest); err != nil {
			s.logger.WithError(err).WithField("backup_path", oldest).Warn("failed to remove old backup")
			return
		}
		s.logger.WithField("backup_path", oldest).Debug("old backup removed")
		backupFiles = backupFiles[1:]
	}
}
