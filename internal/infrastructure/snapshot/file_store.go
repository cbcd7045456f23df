// Package snapshot persists the league world as a single JSON document with
// an atomic write path.
package snapshot

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/arkadito/clash-league/internal/domain/league"
	"github.com/arkadito/clash-league/internal/platform/logging"
)

// FileStore writes snapshots through a temp file and rename so a crash
// mid-write never corrupts the previous save.
type FileStore struct {
	path   string
	logger *logging.Logger
}

func NewFileStore(path string, logger *logging.Logger) *FileStore {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Save(ctx context.Context, snap *league.Snapshot) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(snap); err != nil {
		return errors.Wrap(err, "encode snapshot")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp snapshot file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.B); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write snapshot")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "sync snapshot")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close snapshot")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrap(err, "replace snapshot")
	}

	s.logger.InfoContext(ctx, "snapshot saved",
		"path", s.path,
		"season", snap.Season,
		"day", snap.Day,
		"bytes", len(buf.B),
	)
	return nil
}

func (s *FileStore) Load(ctx context.Context) (*league.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrap(err, "read snapshot")
	}

	var snap league.Snapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}

	s.logger.InfoContext(ctx, "snapshot loaded",
		"path", s.path,
		"season", snap.Season,
		"day", snap.Day,
	)
	return &snap, nil
}

// Exists reports whether a snapshot file is present on disk.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}
