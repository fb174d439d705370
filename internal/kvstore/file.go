package kvstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// FileStore keeps all keys in a single JSON object on disk.
// Reads take a shared flock, writes an exclusive one; files are replaced via rename.
type FileStore struct {
	path     string
	lockPath string
}

// NewFileStore creates a FileStore for path. The file is created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:     path,
		lockPath: path + ".lock",
	}
}

func (s *FileStore) Get(key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := s.withLock(syscall.LOCK_SH, func(data map[string]string) (bool, error) {
		value, found = data[key]
		return false, nil
	})
	return value, found, err
}

func (s *FileStore) Set(key, value string) error {
	return s.withLock(syscall.LOCK_EX, func(data map[string]string) (bool, error) {
		data[key] = value
		return true, nil
	})
}

func (s *FileStore) Remove(key string) error {
	return s.withLock(syscall.LOCK_EX, func(data map[string]string) (bool, error) {
		if _, ok := data[key]; !ok {
			return false, nil
		}
		delete(data, key)
		return true, nil
	})
}

// withLock runs fn on the decoded file under the given flock; fn reports whether to write back.
func (s *FileStore) withLock(lockType int, fn func(map[string]string) (bool, error)) error {
	lock, err := s.acquireLock(lockType)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	dirty, err := fn(data)
	if err != nil || !dirty {
		return err
	}
	return s.write(data)
}

func (s *FileStore) acquireLock(lockType int) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(s.lockPath), 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *FileStore) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *FileStore) read() (map[string]string, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	data := make(map[string]string)
	if len(content) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	return data, nil
}

func (s *FileStore) write(data map[string]string) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

var _ Store = (*FileStore)(nil)
