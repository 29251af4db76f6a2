package filecache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type testPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// staticLoadable returns a fixed key and value and counts remote loads.
type staticLoadable struct {
	key     Key
	keyErr  error
	value   testPayload
	loadErr error
	loads   int
}

func (l *staticLoadable) CacheKey(_ context.Context, _ string) (Key, error) {
	return l.key, l.keyErr
}

func (l *staticLoadable) Load(_ context.Context, _ string) (testPayload, error) {
	l.loads++
	return l.value, l.loadErr
}

func (l *staticLoadable) CategoryKey() string {
	return "test"
}

func newTestCache(t *testing.T, loadable *staticLoadable, options ...Option) (*Cache[string, testPayload], afero.Fs) {
	t.Helper()
	memFs := afero.NewMemMapFs()
	quiet := logrus.New()
	quiet.SetLevel(logrus.PanicLevel)
	options = append([]Option{WithFs(memFs), WithLogger(quiet)}, options...)
	return New[string, testPayload](loadable, options...), memFs
}

func TestLoadMissThenHit(t *testing.T) {
	loadable := &staticLoadable{
		key:   Key{ContentKey: "alpha", ContentHash: "deadbeef"},
		value: testPayload{Name: "alpha", Count: 42},
	}
	cache, _ := newTestCache(t, loadable)

	first, err := cache.Load(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("first Load failed: %v", err)
	}
	if first.Hit {
		t.Fatal("first Load reported a hit on an empty cache")
	}
	if first.Result != loadable.value {
		t.Fatalf("first Load returned %+v, want %+v", first.Result, loadable.value)
	}

	second, err := cache.Load(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if !second.Hit {
		t.Fatal("second Load missed despite a fresh artifact")
	}
	if second.Result != first.Result {
		t.Fatalf("second Load returned %+v, want %+v", second.Result, first.Result)
	}
	if loadable.loads != 1 {
		t.Fatalf("remote loaded %d times, want 1", loadable.loads)
	}
}

func TestArtifactPathPrecedence(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{"both fields", Key{ContentKey: "alpha", ContentHash: "deadbeef"}, "cache/test/alpha_deadbeef.json"},
		{"key only", Key{ContentKey: "alpha"}, "cache/test/alpha_.json"},
		{"hash only", Key{ContentHash: "deadbeef"}, "cache/test/_deadbeef.json"},
	}

	cache, _ := newTestCache(t, &staticLoadable{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cache.ArtifactPath(tt.key)
			if err != nil {
				t.Fatalf("ArtifactPath failed: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ArtifactPath = %q, want %q", got, tt.want)
			}

			// Re-deriving from an equal key must yield the identical path.
			again, err := cache.ArtifactPath(tt.key)
			if err != nil || again != got {
				t.Fatalf("ArtifactPath not deterministic: %q vs %q (err %v)", again, got, err)
			}
		})
	}
}

func TestLoadInvalidKey(t *testing.T) {
	loadable := &staticLoadable{key: Key{}}
	cache, _ := newTestCache(t, loadable)

	_, err := cache.Load(context.Background(), "alpha")
	if !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("Load with empty key returned %v, want ErrInvalidKey", err)
	}
	if loadable.loads != 0 {
		t.Fatalf("remote loaded %d times for an invalid key, want 0", loadable.loads)
	}
}

func TestLoadStaleArtifact(t *testing.T) {
	loadable := &staticLoadable{
		key:   Key{ContentKey: "alpha"},
		value: testPayload{Name: "alpha", Count: 1},
	}
	farFuture := func() time.Time { return time.Now().Add(48 * time.Hour) }
	cache, _ := newTestCache(t, loadable, WithMaxAge(time.Hour), WithNowFunc(farFuture))

	if _, err := cache.Load(context.Background(), "alpha"); err != nil {
		t.Fatalf("first Load failed: %v", err)
	}

	// The artifact still decodes, but its age exceeds the max age.
	second, err := cache.Load(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if second.Hit {
		t.Fatal("second Load hit on a stale artifact")
	}
	if loadable.loads != 2 {
		t.Fatalf("remote loaded %d times, want 2", loadable.loads)
	}
}

func TestCorruptedArtifactSelfHeals(t *testing.T) {
	loadable := &staticLoadable{
		key:   Key{ContentKey: "alpha", ContentHash: "deadbeef"},
		value: testPayload{Name: "alpha", Count: 7},
	}
	cache, memFs := newTestCache(t, loadable)

	path, err := cache.ArtifactPath(loadable.key)
	if err != nil {
		t.Fatalf("ArtifactPath failed: %v", err)
	}
	if err := afero.WriteFile(memFs, path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing corrupted artifact failed: %v", err)
	}

	result, err := cache.Load(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("Load over a corrupted artifact failed: %v", err)
	}
	if result.Hit {
		t.Fatal("Load reported a hit for a corrupted artifact")
	}

	data, err := afero.ReadFile(memFs, path)
	if err != nil {
		t.Fatalf("reading healed artifact failed: %v", err)
	}
	var healed testPayload
	if err := json.Unmarshal(data, &healed); err != nil {
		t.Fatalf("healed artifact does not decode: %v", err)
	}
	if healed != loadable.value {
		t.Fatalf("healed artifact holds %+v, want %+v", healed, loadable.value)
	}
}

func TestLoadKeyDerivationFailure(t *testing.T) {
	probeErr := errors.New("probe failed")
	loadable := &staticLoadable{keyErr: probeErr}
	cache, _ := newTestCache(t, loadable)

	_, err := cache.Load(context.Background(), "alpha")
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Load returned %v, want *FetchError", err)
	}
	if !errors.Is(err, probeErr) {
		t.Fatalf("FetchError does not wrap the loadable's error: %v", err)
	}
}

func TestLoadFetchFailure(t *testing.T) {
	remoteErr := errors.New("remote unavailable")
	loadable := &staticLoadable{
		key:     Key{ContentKey: "alpha"},
		loadErr: remoteErr,
	}
	cache, _ := newTestCache(t, loadable)

	_, err := cache.Load(context.Background(), "alpha")
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Load returned %v, want *FetchError", err)
	}
	if !errors.Is(err, remoteErr) {
		t.Fatalf("FetchError does not wrap the remote error: %v", err)
	}
}

func TestLoadPersistFailure(t *testing.T) {
	loadable := &staticLoadable{
		key:   Key{ContentKey: "alpha"},
		value: testPayload{Name: "alpha", Count: 1},
	}
	memFs := afero.NewMemMapFs()
	quiet := logrus.New()
	quiet.SetLevel(logrus.PanicLevel)
	cache := New[string, testPayload](loadable,
		WithFs(afero.NewReadOnlyFs(memFs)),
		WithLogger(quiet),
	)

	_, err := cache.Load(context.Background(), "alpha")
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("Load on a read-only filesystem returned %v, want *StoreError", err)
	}
	if loadable.loads != 1 {
		t.Fatalf("remote loaded %d times, want 1: persist failures happen after the fetch", loadable.loads)
	}
}

// unencodableLoadable returns a value json.Marshal cannot encode.
type unencodableLoadable struct{}

func (unencodableLoadable) CacheKey(_ context.Context, _ string) (Key, error) {
	return Key{ContentKey: "bad"}, nil
}

func (unencodableLoadable) Load(_ context.Context, _ string) (map[string]any, error) {
	return map[string]any{"ch": make(chan int)}, nil
}

func (unencodableLoadable) CategoryKey() string {
	return "test"
}

func TestLoadEncodeFailure(t *testing.T) {
	quiet := logrus.New()
	quiet.SetLevel(logrus.PanicLevel)
	cache := New[string, map[string]any](unencodableLoadable{},
		WithFs(afero.NewMemMapFs()),
		WithLogger(quiet),
	)

	_, err := cache.Load(context.Background(), "alpha")
	var encodeErr *EncodeError
	if !errors.As(err, &encodeErr) {
		t.Fatalf("Load of an unencodable value returned %v, want *EncodeError", err)
	}
}
