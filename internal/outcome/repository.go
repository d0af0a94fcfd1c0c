package outcome

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"gopkg.in/yaml.v3"
)

// Repository loads outcome profiles by path.
type Repository interface {
	Load(ctx context.Context, path string) (Profile, error)
}

// FileRepository reads profile documents (JSON or YAML, both decoded as YAML)
// from a filesystem and memoizes them by path. Entries are never invalidated:
// a profile is read at most once per repository.
type FileRepository struct {
	fsys fs.FS

	mu    sync.RWMutex
	cache map[string]Profile
}

// NewFileRepository creates a repository rooted at fsys.
func NewFileRepository(fsys fs.FS) *FileRepository {
	return &FileRepository{
		fsys:  fsys,
		cache: make(map[string]Profile),
	}
}

// Load returns the profile at p, reading it on first use. Failed loads are
// not cached.
func (r *FileRepository) Load(ctx context.Context, p string) (Profile, error) {
	p = path.Clean(p)

	r.mu.RLock()
	if prof, ok := r.cache[p]; ok {
		r.mu.RUnlock()
		return prof, nil
	}
	r.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}

	b, err := fs.ReadFile(r.fsys, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, p)
		}
		return Profile{}, fmt.Errorf("read profile %s: %w", p, err)
	}
	var prof Profile
	if err := yaml.Unmarshal(b, &prof); err != nil {
		return Profile{}, fmt.Errorf("%w: %s: %v", ErrInvalidProfile, p, err)
	}
	if err := prof.Validate(); err != nil {
		return Profile{}, fmt.Errorf("%s: %w", p, err)
	}

	r.mu.Lock()
	r.cache[p] = prof
	r.mu.Unlock()
	return prof, nil
}

// Cached reports how many profiles are memoized.
func (r *FileRepository) Cached() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}
