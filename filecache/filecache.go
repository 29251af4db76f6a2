package filecache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const (
	// DefaultRoot is the cache root directory used when none is configured.
	DefaultRoot = "cache"

	// DefaultMaxAge is the artifact age beyond which a cached file is
	// treated as stale.
	DefaultMaxAge = 7 * 24 * time.Hour
)

// NowFunc defines a function that returns the current time.
type NowFunc func() time.Time

// Loadable is the capability a data source implements to participate in
// caching.
type Loadable[I, O any] interface {
	// CacheKey derives the cache key for the given input. It should be
	// cheap relative to Load, typically a metadata probe such as a HEAD
	// request. A failure aborts the whole load.
	CacheKey(ctx context.Context, input I) (Key, error)

	// Load performs the full remote retrieval and decodes it into O. It
	// must fail when the remote response is non-success or undecodable.
	Load(ctx context.Context, input I) (O, error)

	// CategoryKey names the artifact family for this source. It is used
	// as a path prefix under the cache root and must contain only legal
	// path segments.
	CategoryKey() string
}

// LoadResult is the outcome of a single Load call.
type LoadResult[O any] struct {
	// Result is the loaded value, from disk on a hit or from the remote
	// on a miss.
	Result O

	// Key is the cache key the value was stored under.
	Key Key

	// Hit reports whether the value was served from disk.
	Hit bool
}

// Cache orchestrates key derivation, freshness checking, remote fetching and
// persistence for one Loadable.
//
// The engine applies no locking across or within keys: two concurrent Load
// calls for the same key that both miss will both fetch and both write the
// artifact, and the last writer's bytes win. Workloads are short-lived batch
// commands, so the race is tolerated rather than serialized.
type Cache[I, O any] struct {
	loadable Loadable[I, O]
	root     string
	maxAge   time.Duration
	fs       afero.Fs
	now      NowFunc
	log      logrus.FieldLogger
}

// settings collects the configurable parts of a Cache so that options stay
// non-generic.
type settings struct {
	root   string
	maxAge time.Duration
	fs     afero.Fs
	now    NowFunc
	log    logrus.FieldLogger
}

// Option defines a function that configures a Cache.
type Option func(*settings)

// WithRoot sets the cache root directory. The default is "cache".
func WithRoot(root string) Option {
	return func(s *settings) {
		s.root = root
	}
}

// WithMaxAge sets the artifact age beyond which cached files are stale. The
// default is seven days. The age applies uniformly to every category under
// one engine instance.
func WithMaxAge(maxAge time.Duration) Option {
	return func(s *settings) {
		s.maxAge = maxAge
	}
}

// WithFs sets a custom filesystem for the cache.
// This is primarily useful for testing with in-memory filesystems.
func WithFs(fsys afero.Fs) Option {
	return func(s *settings) {
		s.fs = fsys
	}
}

// WithNowFunc sets a custom time function for the cache.
// This is primarily useful for testing with deterministic timestamps.
func WithNowFunc(now NowFunc) Option {
	return func(s *settings) {
		s.now = now
	}
}

// WithLogger sets the logger used for hit/miss and self-heal reporting.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *settings) {
		s.log = log
	}
}

// New creates a cache engine in front of the given Loadable.
func New[I, O any](loadable Loadable[I, O], options ...Option) *Cache[I, O] {
	s := settings{
		root:   DefaultRoot,
		maxAge: DefaultMaxAge,
		fs:     afero.NewOsFs(),
		now:    time.Now,
		log:    logrus.StandardLogger(),
	}
	for _, option := range options {
		option(&s)
	}

	return &Cache[I, O]{
		loadable: loadable,
		root:     s.root,
		maxAge:   s.maxAge,
		fs:       s.fs,
		now:      s.now,
		log:      s.log.WithField("category", loadable.CategoryKey()),
	}
}

// Load returns the value for the given input, from disk when a fresh artifact
// exists and from the Loadable otherwise. A freshly fetched value is
// persisted before it is returned; a persist failure fails the whole call
// even though the fetch succeeded.
func (c *Cache[I, O]) Load(ctx context.Context, input I) (*LoadResult[O], error) {
	key, err := c.loadable.CacheKey(ctx, input)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	c.log.WithField("key", key.String()).Debug("derived cache key")

	path, err := c.artifactPath(key)
	if err != nil {
		return nil, err
	}

	if result, ok := c.readFresh(path); ok {
		c.log.WithField("key", key.String()).Debug("cache hit")
		return &LoadResult[O]{Result: result, Key: key, Hit: true}, nil
	}
	c.log.WithField("key", key.String()).Debug("cache miss")

	result, err := c.loadable.Load(ctx, input)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	if err := c.write(path, result); err != nil {
		return nil, err
	}
	return &LoadResult[O]{Result: result, Key: key, Hit: false}, nil
}

// ArtifactPath returns the on-disk path the given key resolves to. The path
// is deterministic: equal keys always resolve to the identical path.
func (c *Cache[I, O]) ArtifactPath(key Key) (string, error) {
	return c.artifactPath(key)
}

func (c *Cache[I, O]) artifactPath(key Key) (string, error) {
	name, err := key.Filename()
	if err != nil {
		return "", err
	}
	return filepath.Join(c.root, c.loadable.CategoryKey(), name+".json"), nil
}

// readFresh returns the decoded artifact at path when it exists, is younger
// than the max age, and decodes cleanly. Every other outcome is a miss: a
// corrupted artifact is reported and then overwritten by the subsequent
// write, so the cache self-heals on the next load.
func (c *Cache[I, O]) readFresh(path string) (O, bool) {
	var zero O

	info, err := c.fs.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.log.WithField("path", path).WithError(err).Warn("cache stat failed, continuing as miss")
		}
		return zero, false
	}

	if age := c.now().Sub(info.ModTime()); age > c.maxAge {
		c.log.WithField("path", path).WithField("age", age).Debug("cached artifact is stale")
		return zero, false
	}

	file, err := c.fs.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.log.WithField("path", path).WithError(err).Warn("cache open failed, continuing as miss")
		}
		return zero, false
	}
	defer file.Close()

	var result O
	if err := json.NewDecoder(file).Decode(&result); err != nil {
		c.log.WithField("path", path).WithError(err).Warn("cache decode failed, continuing as miss")
		return zero, false
	}
	return result, true
}

// write persists the value at path, creating the category directory as
// needed and truncating any existing artifact.
func (c *Cache[I, O]) write(path string, result O) error {
	data, err := json.Marshal(result)
	if err != nil {
		return &EncodeError{Err: err}
	}

	if err := c.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &StoreError{Err: err}
	}
	if err := afero.WriteFile(c.fs, path, data, 0o644); err != nil {
		return &StoreError{Err: err}
	}
	return nil
}
