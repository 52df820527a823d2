package content

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/abhisek/storybook/internal/slides"
)

// Loader supplies the page for a slide index.
type Loader interface {
	Load(ctx context.Context, index int) (*Page, error)
}

// LoadError reports a page that could not be read or decoded.
type LoadError struct {
	Index int
	Path  string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load slide %d (%s): %v", e.Index+1, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// PagePath returns the pack-relative file of a slide, e.g. pages/slide03.md
// for index 2.
func PagePath(index int) string {
	return path.Join("pages", "slide"+slides.Number(index)+".md")
}

// FSLoader reads pages from a filesystem and caches decoded pages until
// invalidated. Concurrent loads of the same index share one read.
type FSLoader struct {
	fsys  fs.FS
	total int

	mu    sync.Mutex
	cache map[int]*Page
	group singleflight.Group
}

// NewFSLoader returns a loader over fsys for total slides.
func NewFSLoader(fsys fs.FS, total int) *FSLoader {
	return &FSLoader{fsys: fsys, total: total, cache: make(map[int]*Page)}
}

// Open returns a loader for dir, or for the embedded pack when dir is
// empty.
func Open(dir string) (*FSLoader, fs.FS, error) {
	fsys := Default()
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("content dir: %w", err)
		}
		if !info.IsDir() {
			return nil, nil, fmt.Errorf("content dir %s: not a directory", dir)
		}
		fsys = os.DirFS(dir)
	}
	return NewFSLoader(fsys, slides.Count), fsys, nil
}

// Load returns the page for index.
func (l *FSLoader) Load(ctx context.Context, index int) (*Page, error) {
	p := PagePath(index)
	if index < 0 || index >= l.total {
		return nil, &LoadError{Index: index, Path: p, Err: fmt.Errorf("index out of range")}
	}
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Index: index, Path: p, Err: err}
	}

	l.mu.Lock()
	if pg, ok := l.cache[index]; ok {
		l.mu.Unlock()
		return pg, nil
	}
	l.mu.Unlock()

	v, err, _ := l.group.Do(strconv.Itoa(index), func() (any, error) {
		data, err := fs.ReadFile(l.fsys, p)
		if err != nil {
			return nil, err
		}
		pg, err := Parse(index, p, data)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.cache[index] = pg
		l.mu.Unlock()
		return pg, nil
	})
	if err != nil {
		return nil, &LoadError{Index: index, Path: p, Err: err}
	}
	return v.(*Page), nil
}

// Invalidate drops the cached page for index, or every page when index
// is negative.
func (l *FSLoader) Invalidate(index int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 {
		l.cache = make(map[int]*Page)
		return
	}
	delete(l.cache, index)
}
