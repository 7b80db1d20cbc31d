// Package loader fetches and parses map documents off the event loop.
// Completed loads are delivered as Events; the receiving goroutine attaches
// each document to the page and signals the gate.
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/questmap/internal/svgdoc"
)

// DefaultCacheSize is the number of raw documents kept between loads.
const DefaultCacheSize = 16

// maxParallel bounds concurrent fetches in LoadAll.
const maxParallel = 4

// Source is one map resource to load.
type Source struct {
	MapType string
	Path    string
}

// Event reports the outcome of loading one Source. Doc is a freshly parsed
// document even when the bytes came from the cache.
type Event struct {
	MapType   string
	Path      string
	Doc       *svgdoc.Document
	FromCache bool
	Err       error
}

// Loader reads map documents from a file system through an LRU cache of
// raw bytes. It is safe for concurrent use.
type Loader struct {
	fsys      fs.FS
	cache     *lru.Cache[string, []byte]
	parseOpts []svgdoc.Option
}

// New creates a Loader over fsys. A non-positive cacheSize uses
// DefaultCacheSize.
func New(fsys fs.FS, cacheSize int, parseOpts ...svgdoc.Option) (*Loader, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create document cache: %w", err)
	}
	return &Loader{fsys: fsys, cache: cache, parseOpts: parseOpts}, nil
}

// Load reads and parses one source.
func (l *Loader) Load(ctx context.Context, src Source) Event {
	ev := Event{MapType: src.MapType, Path: src.Path}
	if err := ctx.Err(); err != nil {
		ev.Err = err
		return ev
	}

	name, err := resolve(src.Path)
	if err != nil {
		ev.Err = err
		return ev
	}

	b, ok := l.cache.Get(name)
	if ok {
		ev.FromCache = true
	} else {
		b, err = fs.ReadFile(l.fsys, name)
		if err != nil {
			ev.Err = fmt.Errorf("read %s: %w", src.Path, err)
			return ev
		}
		l.cache.Add(name, b)
	}

	doc, err := svgdoc.Parse(b, l.parseOpts...)
	if err != nil {
		ev.Err = fmt.Errorf("%s: %w", src.Path, err)
		return ev
	}
	ev.Doc = doc
	return ev
}

// LoadAll loads every source concurrently and delivers one Event per source
// in completion order. The channel is closed once all loads finish or ctx
// is cancelled.
func (l *Loader) LoadAll(ctx context.Context, srcs []Source) <-chan Event {
	out := make(chan Event, len(srcs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	go func() {
		defer close(out)
		for _, src := range srcs {
			g.Go(func() error {
				ev := l.Load(gctx, src)
				select {
				case out <- ev:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}
		_ = g.Wait()
	}()
	return out
}

// Evict drops a cached document so the next load reads it again.
func (l *Loader) Evict(p string) {
	if name, err := resolve(p); err == nil {
		l.cache.Remove(name)
	}
}

// Cached returns the number of cached documents.
func (l *Loader) Cached() int {
	return l.cache.Len()
}

// resolve turns a page resource reference into an fs.FS path.
func resolve(p string) (string, error) {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if strings.Contains(p, "://") {
		return "", fmt.Errorf("remote resource %q not supported", p)
	}
	name := path.Clean(strings.TrimLeft(p, "/"))
	if !fs.ValidPath(name) || name == "." {
		return "", fmt.Errorf("invalid resource path %q", p)
	}
	return name, nil
}
