// Package store persists session snapshots under a workspace directory.
// One JSON file per session, written atomically; a workspace-level file lock
// keeps two CLI invocations from mutating the same workspace at once.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	roninErrors "github.com/roninagent/ronin/internal/errors"
	"github.com/roninagent/ronin/internal/session"

	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"
)

const (
	lockFileName = "workspace.lock"
	snapshotExt  = ".json"
	sessionsDir  = "sessions"

	DefaultLockRetry    = 100 * time.Millisecond
	DefaultLockMaxRetry = 50
)

// Store owns one workspace directory and its lock.
type Store struct {
	basePath string
	fileLock *flock.Flock
	locked   bool
}

// DefaultWorkspacePath resolves $HOME/.ronin/workspace.
func DefaultWorkspacePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".ronin", "workspace"), nil
}

// Open prepares the workspace directory and acquires its lock.
func Open(basePath string) (*Store, error) {
	if basePath == "" {
		resolved, err := DefaultWorkspacePath()
		if err != nil {
			return nil, err
		}
		basePath = resolved
	}

	if err := os.MkdirAll(filepath.Join(basePath, sessionsDir), 0755); err != nil {
		return nil, fmt.Errorf("create workspace dir: %w", err)
	}

	fileLock := flock.New(filepath.Join(basePath, lockFileName))
	locked, err := acquireWithRetry(fileLock)
	if err != nil {
		return nil, fmt.Errorf("acquire workspace lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("workspace %s is locked by another ronin instance", basePath)
	}

	slog.Debug("Workspace lock acquired", "path", basePath)
	return &Store{basePath: basePath, fileLock: fileLock, locked: true}, nil
}

func acquireWithRetry(fileLock *flock.Flock) (bool, error) {
	for i := 0; i < DefaultLockMaxRetry; i++ {
		locked, err := fileLock.TryLock()
		if err != nil {
			return false, err
		}
		if locked {
			return true, nil
		}
		time.Sleep(DefaultLockRetry)
	}
	return false, nil
}

// Close releases the workspace lock.
func (s *Store) Close() {
	if !s.locked {
		return
	}
	if err := s.fileLock.Unlock(); err != nil {
		slog.Error("Failed to release workspace lock", "path", s.basePath, "error", err)
	}
	s.locked = false
}

func (s *Store) snapshotPath(id string) string {
	return filepath.Join(s.basePath, sessionsDir, id+snapshotExt)
}

// Save writes the snapshot atomically: readers never observe a partial file.
func (s *Store) Save(id string, snap session.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := atomic.WriteFile(s.snapshotPath(id), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	slog.Info("Session snapshot saved", "session", id, "events", len(snap.EventHistory))
	return nil
}

// Load reads a snapshot back. A missing or unparseable file is a restore
// mismatch, not an I/O detail the caller should untangle.
func (s *Store) Load(id string) (session.Snapshot, error) {
	data, err := os.ReadFile(s.snapshotPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return session.Snapshot{}, fmt.Errorf("%w: no snapshot for session %s", roninErrors.ErrRestore, id)
		}
		return session.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	var snap session.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return session.Snapshot{}, fmt.Errorf("%w: %v", roninErrors.ErrRestore, err)
	}
	return snap, nil
}

// List returns the IDs of every persisted session.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.basePath, sessionsDir))
	if err != nil {
		return nil, fmt.Errorf("read sessions dir: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), snapshotExt) {
			ids = append(ids, strings.TrimSuffix(entry.Name(), snapshotExt))
		}
	}
	return ids, nil
}

// Remove deletes a persisted session. Removing a session that does not exist
// is not an error.
func (s *Store) Remove(id string) error {
	if err := os.Remove(s.snapshotPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove snapshot: %w", err)
	}
	return nil
}
