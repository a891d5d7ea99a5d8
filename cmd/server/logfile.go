package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

const defaultLogLimit = 6 << 20

// tailFile is a log file capped at limit bytes. A write that pushes it past
// the cap drops the oldest lines until about five sixths of the cap remain.
type tailFile struct {
	mu    sync.Mutex
	f     *os.File
	size  int64
	limit int64
	keep  int64
}

func openTailFile(path string, limit int64) (*tailFile, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	t := &tailFile{f: f, size: info.Size(), limit: limit, keep: limit - limit/6}
	if err := t.trim(); err != nil {
		f.Close()
		return nil, err
	}
	return t, nil
}

func (t *tailFile) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n, err := t.f.WriteAt(p, t.size)
	t.size += int64(n)
	if err != nil {
		return n, err
	}
	return n, t.trim()
}

func (t *tailFile) Close() error {
	return t.f.Close()
}

// trim keeps the newest whole lines that fit in keep bytes.
func (t *tailFile) trim() error {
	if t.size <= t.limit {
		return nil
	}

	tail := make([]byte, t.keep)
	n, err := t.f.ReadAt(tail, t.size-t.keep)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	tail = tail[:n]
	if i := bytes.IndexByte(tail, '\n'); i >= 0 {
		tail = tail[i+1:]
	}

	if _, err := t.f.WriteAt(tail, 0); err != nil {
		return err
	}
	t.size = int64(len(tail))
	return t.f.Truncate(t.size)
}
