package network

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"ncd-ifconfig/internal/domain/constants"
	"ncd-ifconfig/internal/domain/entities"
	"ncd-ifconfig/internal/domain/errors"
	"ncd-ifconfig/internal/domain/interfaces"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
)

// ResolvConfAdapter owns the resolver file. The file is always rebuilt in a
// sibling temp path and renamed over the canonical path, so readers see
// either the previous or the new file in full.
type ResolvConfAdapter struct {
	fileSystem    interfaces.FileSystem
	backupService interfaces.BackupService
	confPath      string
	tempPath      string
	logger        *logrus.Logger
}

// NewResolvConfAdapter creates a new ResolvConfAdapter. backupService may be nil.
func NewResolvConfAdapter(
	fs interfaces.FileSystem,
	backupService interfaces.BackupService,
	confPath string,
	tempPath string,
	logger *logrus.Logger,
) *ResolvConfAdapter {
	return &ResolvConfAdapter{
		fileSystem:    fs,
		backupService: backupService,
		confPath:      confPath,
		tempPath:      tempPath,
		logger:        logger,
	}
}

// SetDNSServers replaces the resolver file with one nameserver line per server, in order
func (a *ResolvConfAdapter) SetDNSServers(ctx context.Context, servers entities.DNSServerList) error {
	logger := a.logger.WithFields(logrus.Fields{
		"path":      a.confPath,
		"temp_path": a.tempPath,
		"servers":   servers.Strings(),
	})

	f, err := a.fileSystem.Create(a.tempPath, constants.ResolvConfPermission)
	if err != nil {
		logger.WithError(err).Error("failed to open resolvconf temp file")
		return errors.NewSystemError("failed to open resolvconf temp file", err)
	}

	if err := writeResolvConf(f, servers); err != nil {
		logger.WithError(err).Error("failed to write to resolvconf temp file")
		_ = f.Close()
		a.discardTemp()
		return errors.NewSystemError("failed to write to resolvconf temp file", err)
	}

	if err := f.Close(); err != nil {
		logger.WithError(err).Error("failed to close resolvconf temp file")
		a.discardTemp()
		return errors.NewSystemError("failed to close resolvconf temp file", err)
	}

	if a.backupService != nil {
		if err := a.backupService.CreateBackup(ctx, constants.ResolvConfBackupPrefix, a.confPath); err != nil {
			logger.WithError(err).Warn("failed to back up resolvconf file, replacing it anyway")
		}
	}

	if err := a.fileSystem.Rename(a.tempPath, a.confPath); err != nil {
		logger.WithError(err).Error("failed to rename resolvconf temp file to resolvconf file")
		a.discardTemp()
		return errors.NewSystemError("failed to rename resolvconf temp file to resolvconf file", err)
	}

	if err := a.fileSystem.SyncDir(filepath.Dir(a.confPath)); err != nil {
		logger.WithError(err).Warn("failed to sync resolvconf directory")
	}

	logger.Info("resolvconf file replaced")
	return nil
}

// DNSServers returns the IPv4 nameservers of the canonical file in file order
func (a *ResolvConfAdapter) DNSServers(ctx context.Context) (entities.DNSServerList, error) {
	data, err := a.fileSystem.ReadFile(a.confPath)
	if err != nil {
		return nil, errors.NewSystemError(fmt.Sprintf("failed to read resolvconf file %s", a.confPath), err)
	}

	cfg, err := dns.ClientConfigFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewSystemError(fmt.Sprintf("failed to parse resolvconf file %s", a.confPath), err)
	}

	servers := make(entities.DNSServerList, 0, len(cfg.Servers))
	for _, s := range cfg.Servers {
		addr, err := entities.ParseIPv4Address(s)
		if err != nil {
			a.logger.WithField("server", s).Debug("skipping non-IPv4 nameserver")
			continue
		}
		servers = append(servers, addr)
	}

	return servers, nil
}

// writeResolvConf writes the marker and one line per server, one write each, then syncs
func writeResolvConf(f interfaces.File, servers entities.DNSServerList) error {
	if _, err := io.WriteString(f, constants.ResolvConfGeneratorComment+"\n"); err != nil {
		return err
	}

	for _, server := range servers {
		if _, err := io.WriteString(f, "nameserver "+server.String()+"\n"); err != nil {
			return err
		}
	}

	return f.Sync()
}

func (a *ResolvConfAdapter) discardTemp() {
	if err := a.fileSystem.Remove(a.tempPath); err != nil {
		a.logger.WithError(err).WithField("temp_path", a.tempPath).Warn("failed to remove resolvconf temp file")
	}
}
