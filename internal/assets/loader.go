package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/scenebox/internal/logger"
)

const (
	chunkSize = 32 * 1024
	// batchLimit caps concurrent reads in LoadAll and ValidateAll.
	batchLimit = 8
)

// Progress reports bytes read for one manifest.
type Progress struct {
	Loaded int64
	Total  int64
}

// Percent returns Loaded as a percentage of Total. A zero total counts as one byte.
func (p Progress) Percent() float64 {
	total := p.Total
	if total < 1 {
		total = 1
	}
	return float64(p.Loaded) / float64(total) * 100
}

// Result is the outcome of loading one manifest in a batch.
type Result struct {
	Path  string
	Model *Model
	Err   error
}

// Loader reads manifests in the background and hands results back on the
// caller's thread through Poll.
type Loader struct {
	root  string
	cache *Cache
	log   *zap.Logger

	mu      sync.Mutex
	pending []func()
	wg      sync.WaitGroup
}

// NewLoader creates a loader resolving relative paths against root.
func NewLoader(root string) *Loader {
	return &Loader{
		root:  root,
		cache: NewCache(),
		log:   logger.Named("loader"),
	}
}

// Cache returns the loader's byte cache.
func (l *Loader) Cache() *Cache {
	return l.cache
}

// Load starts reading path on a goroutine. Callbacks are queued and run by
// Poll: zero or more onProgress calls, then exactly one of onSuccess or
// onError. Any callback may be nil.
func (l *Loader) Load(path string, onSuccess func(*Model), onProgress func(Progress), onError func(error)) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		report := func(p Progress) {
			if onProgress != nil {
				l.enqueue(func() { onProgress(p) })
			}
		}

		model, err := l.load(path, report)
		if err != nil {
			err = fmt.Errorf("loading %s: %w", path, err)
			l.enqueue(func() {
				l.log.Warn("model load failed", zap.String("path", path), zap.Error(err))
				if onError != nil {
					onError(err)
				}
			})
			return
		}

		l.enqueue(func() {
			l.log.Debug("model loaded",
				zap.String("path", path),
				zap.String("name", model.Name),
				zap.Int("nodes", model.Count()),
				zap.Int("clips", len(model.Clips)))
			if onSuccess != nil {
				onSuccess(model)
			}
		})
	}()
}

// Poll runs queued callbacks in the order they were queued and returns how many ran.
func (l *Loader) Poll() int {
	l.mu.Lock()
	queued := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, fn := range queued {
		fn()
	}
	return len(queued)
}

// Wait blocks until every Load started so far has queued its final callback.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// LoadAll loads every path concurrently and returns the models in input
// order. The first failure cancels the remaining reads.
func (l *Loader) LoadAll(ctx context.Context, paths []string) ([]*Model, error) {
	models := make([]*Model, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchLimit)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			model, err := l.load(path, nil)
			if err != nil {
				return fmt.Errorf("loading %s: %w", path, err)
			}
			models[i] = model
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return models, nil
}

// ValidateAll loads every path concurrently and reports each outcome
// separately. It only returns an error when ctx is done.
func (l *Loader) ValidateAll(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchLimit)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			model, err := l.load(path, nil)
			results[i] = Result{Path: path, Model: model, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (l *Loader) enqueue(fn func()) {
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()
}

func (l *Loader) load(path string, report func(Progress)) (*Model, error) {
	data, err := l.read(l.resolve(path), report)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func (l *Loader) resolve(path string) string {
	if filepath.IsAbs(path) || l.root == "" {
		return path
	}
	return filepath.Join(l.root, path)
}

// read returns the file contents, reporting progress per chunk.
func (l *Loader) read(path string, report func(Progress)) ([]byte, error) {
	if data, ok := l.cache.Get(path); ok {
		if report != nil {
			n := int64(len(data))
			report(Progress{Loaded: n, Total: n})
		}
		return data, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	total := info.Size()

	var buf bytes.Buffer
	buf.Grow(int(total))
	chunk := make([]byte, chunkSize)
	for {
		n, err := f.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			if report != nil {
				report(Progress{Loaded: int64(buf.Len()), Total: total})
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	data := buf.Bytes()
	l.cache.Set(path, data)
	return data, nil
}
