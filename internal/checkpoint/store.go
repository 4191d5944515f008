package checkpoint

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"voiceprep/internal/annotation"
	"voiceprep/internal/logging"
)

const (
	fileExt      = ".txt"
	lockFileName = ".voiceprep.lock"
)

// ErrLocked reports that another run holds the checkpoint directory.
var ErrLocked = errors.New("checkpoint directory is locked by another run")

// Info describes one snapshot on disk.
type Info struct {
	Path    string
	Count   int
	Size    int64
	ModTime time.Time
}

// Store manages snapshots in a single directory.
type Store struct {
	dir    string
	prefix string
	keep   int
	logger *slog.Logger
	lock   *flock.Flock
}

// New returns a store rooted at dir. keep values below 1 are treated as 1.
func New(dir, prefix string, keep int, logger *slog.Logger) *Store {
	if keep < 1 {
		keep = 1
	}
	return &Store{
		dir:    dir,
		prefix: prefix,
		keep:   keep,
		logger: logging.NewComponentLogger(logger, "checkpoint"),
		lock:   flock.New(filepath.Join(dir, lockFileName)),
	}
}

// Dir returns the checkpoint directory.
func (s *Store) Dir() string { return s.dir }

// Lock takes the exclusive run lock without blocking.
func (s *Store) Lock() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("ensure checkpoint directory: %w", err)
	}
	ok, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, s.lock.Path())
	}
	return nil
}

// Unlock releases the run lock.
func (s *Store) Unlock() error {
	return s.lock.Unlock()
}

// List returns snapshots ordered oldest first (by count, then mtime).
// A missing directory yields an empty list.
func (s *Store) List() ([]Info, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read checkpoint directory: %w", err)
	}

	var infos []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		count, ok := s.parseName(entry.Name())
		if !ok {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, Info{
			Path:    filepath.Join(s.dir, entry.Name()),
			Count:   count,
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Count != infos[j].Count {
			return infos[i].Count < infos[j].Count
		}
		return infos[i].ModTime.Before(infos[j].ModTime)
	})
	return infos, nil
}

// Latest returns the newest snapshot, if any.
func (s *Store) Latest() (Info, bool, error) {
	infos, err := s.List()
	if err != nil || len(infos) == 0 {
		return Info{}, false, err
	}
	return infos[len(infos)-1], true, nil
}

// Resume loads the records of the newest snapshot. With no snapshot it
// returns an empty slice and a zero Info.
func (s *Store) Resume() ([]annotation.Record, Info, error) {
	latest, ok, err := s.Latest()
	if err != nil || !ok {
		return nil, Info{}, err
	}
	records, err := annotation.ReadFile(latest.Path)
	if err != nil {
		return nil, latest, fmt.Errorf("load checkpoint: %w", err)
	}
	s.logger.Info("resuming from checkpoint",
		logging.String("path", latest.Path),
		logging.Int("records", len(records)),
	)
	return records, latest, nil
}

// Save writes a full snapshot of records and prunes older snapshots so at
// most keep remain.
func (s *Store) Save(records []annotation.Record) (Info, error) {
	path := filepath.Join(s.dir, s.fileName(len(records)))
	if err := annotation.WriteFile(path, records); err != nil {
		return Info{}, fmt.Errorf("write checkpoint: %w", err)
	}
	info := Info{Path: path, Count: len(records)}
	if fi, err := os.Stat(path); err == nil {
		info.Size = fi.Size()
		info.ModTime = fi.ModTime()
	}
	s.logger.Debug("checkpoint saved",
		logging.String(logging.FieldEventType, "checkpoint_saved"),
		logging.String("path", path),
		logging.Int("records", info.Count),
	)
	if err := s.rotate(); err != nil {
		return info, err
	}
	return info, nil
}

func (s *Store) rotate() error {
	infos, err := s.List()
	if err != nil {
		return err
	}
	if len(infos) <= s.keep {
		return nil
	}
	for _, stale := range infos[:len(infos)-s.keep] {
		if err := os.Remove(stale.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove old checkpoint: %w", err)
		}
		s.logger.Debug("checkpoint pruned", logging.String("path", stale.Path))
	}
	return nil
}

func (s *Store) fileName(count int) string {
	return s.prefix + strconv.Itoa(count) + fileExt
}

func (s *Store) parseName(name string) (int, bool) {
	if !strings.HasPrefix(name, s.prefix) || !strings.HasSuffix(name, fileExt) {
		return 0, false
	}
	digits := strings.TrimSuffix(strings.TrimPrefix(name, s.prefix), fileExt)
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	count, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return count, true
}
