// SPDX-License-Identifier: EPL-2.0

package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Sink receives finished artifacts.
type Sink interface {
	Deliver(ctx context.Context, a Artifact) (Handle, error)
}

// Handle keeps a delivered artifact alive until released. Release must be
// safe to call more than once.
type Handle interface {
	Release() error
}

// DirSink writes artifacts as files into Dir.
type DirSink struct {
	Dir string
	// Perm of created files; 0644 when zero.
	Perm os.FileMode
}

// FileHandle holds a written artifact open until Release.
type FileHandle struct {
	Path string

	once sync.Once
	f    *os.File
	err  error
}

// Release closes the file. The file itself stays on disk.
func (h *FileHandle) Release() error {
	h.once.Do(func() { h.err = h.f.Close() })
	return h.err
}

// Deliver writes a.Data to Dir/a.Filename through a temporary file, so a
// partially written artifact never appears under its final name.
func (s DirSink) Deliver(ctx context.Context, a Artifact) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	perm := s.Perm
	if perm == 0 {
		perm = 0o644
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	name := filepath.Base(a.Filename)
	tmp, err := os.CreateTemp(s.Dir, "."+name+".*")
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}

	fail := func(err error) (Handle, error) {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("write %s: %w", name, err)
	}

	if _, err := tmp.Write(a.Data); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}

	final := filepath.Join(s.Dir, name)
	if err := os.Rename(tmp.Name(), final); err != nil {
		return fail(err)
	}

	return &FileHandle{Path: final, f: tmp}, nil
}

// MemorySink keeps artifacts in memory.
type MemorySink struct {
	mu        sync.Mutex
	artifacts []Artifact
	released  int
}

func (s *MemorySink) Deliver(ctx context.Context, a Artifact) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.artifacts = append(s.artifacts, a)
	s.mu.Unlock()

	return &memoryHandle{sink: s}, nil
}

// Artifacts returns a copy of everything delivered so far.
func (s *MemorySink) Artifacts() []Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Artifact, len(s.artifacts))
	copy(out, s.artifacts)
	return out
}

// Released reports how many handles were released.
func (s *MemorySink) Released() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}

type memoryHandle struct {
	once sync.Once
	sink *MemorySink
}

func (h *memoryHandle) Release() error {
	h.once.Do(func() {
		h.sink.mu.Lock()
		h.sink.released++
		h.sink.mu.Unlock()
	})
	return nil
}
