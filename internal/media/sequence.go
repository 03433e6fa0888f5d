package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"

	"recipehub/internal/cache"
)

// FileSequencer keeps the next file number as plain text in a file.
type FileSequencer struct {
	mu   sync.Mutex
	path string
}

// NewFileSequencer creates a sequencer backed by path. A missing file starts at zero.
func NewFileSequencer(path string) *FileSequencer {
	return &FileSequencer{path: path}
}

func (s *FileSequencer) Next(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	raw, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return 0, err
	default:
		if text := strings.TrimSpace(string(raw)); text != "" {
			n, err = strconv.ParseInt(text, 10, 64)
			if err != nil {
				return 0, fmt.Errorf("parse %s: %w", s.path, err)
			}
		}
	}

	if err := os.WriteFile(s.path, []byte(strconv.FormatInt(n+1, 10)), 0o644); err != nil {
		return 0, err
	}
	return n, nil
}

const counterKey = "media:file_counter"

// RedisSequencer shares the counter between processes through INCR.
type RedisSequencer struct {
	cache *cache.Client
}

// NewRedisSequencer creates a sequencer on an enabled cache client.
func NewRedisSequencer(c *cache.Client) *RedisSequencer {
	return &RedisSequencer{cache: c}
}

func (s *RedisSequencer) Next(ctx context.Context) (int64, error) {
	n, err := s.cache.Incr(ctx, counterKey)
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}
