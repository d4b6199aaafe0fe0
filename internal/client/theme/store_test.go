package theme

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/lifeboard/internal/client/models"
	"github.com/dmitrijs2005/lifeboard/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMeta is an in-memory metadata.Repository with optional failure modes.
type fakeMeta struct {
	mu     sync.Mutex
	values map[string][]byte
	getErr error
	setErr error
}

func newFakeMeta() *fakeMeta {
	return &fakeMeta{values: map[string][]byte{}}
}

func (f *fakeMeta) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.values[key], nil
}

func (f *fakeMeta) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = append([]byte(nil), value...)
	return nil
}

func (f *fakeMeta) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	return nil
}

func (f *fakeMeta) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = map[string][]byte{}
	return nil
}

// flipSource is a Source whose scheme can be flipped from tests.
type flipSource struct {
	mu     sync.Mutex
	scheme Scheme
}

func (f *flipSource) Current() Scheme {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scheme
}

func (f *flipSource) set(s Scheme) {
	f.mu.Lock()
	f.scheme = s
	f.mu.Unlock()
}

func TestLoad_DefaultsToSystem(t *testing.T) {
	store := NewStore(newFakeMeta(), StaticSource{Scheme: SchemeLight}, logging.NewDiscardLogger())

	got := store.Load(context.Background())
	assert.Equal(t, models.ThemeSystem, got)
	assert.False(t, store.IsDark())
}

func TestLoad_InvalidStoredValueFallsBack(t *testing.T) {
	meta := newFakeMeta()
	meta.values["theme"] = []byte("sepia")
	store := NewStore(meta, StaticSource{Scheme: SchemeDark}, logging.NewDiscardLogger())

	got := store.Load(context.Background())
	assert.Equal(t, models.ThemeSystem, got)
	assert.True(t, store.IsDark(), "system must resolve against the source")
}

func TestLoad_ReadErrorDegradesToSystem(t *testing.T) {
	meta := newFakeMeta()
	meta.getErr = errors.New("disk on fire")
	store := NewStore(meta, StaticSource{Scheme: SchemeLight}, logging.NewDiscardLogger())

	got := store.Load(context.Background())
	assert.Equal(t, models.ThemeSystem, got)
}

func TestSet_PersistsAndResolves(t *testing.T) {
	meta := newFakeMeta()
	store := NewStore(meta, StaticSource{Scheme: SchemeLight}, logging.NewDiscardLogger())
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, models.ThemeDark))
	assert.True(t, store.IsDark())
	assert.Equal(t, []byte("dark"), meta.values["theme"])
}

func TestSet_RejectsUnknownTheme(t *testing.T) {
	store := NewStore(newFakeMeta(), StaticSource{}, logging.NewDiscardLogger())
	require.Error(t, store.Set(context.Background(), models.Theme("sepia")))
}

func TestToggle_ThreeStepsReturnToStart(t *testing.T) {
	for _, start := range []models.Theme{models.ThemeLight, models.ThemeDark, models.ThemeSystem} {
		store := NewStore(newFakeMeta(), StaticSource{Scheme: SchemeLight}, logging.NewDiscardLogger())
		ctx := context.Background()
		require.NoError(t, store.Set(ctx, start))

		for i := 0; i < 3; i++ {
			_, err := store.Toggle(ctx)
			require.NoError(t, err)
		}
		assert.Equal(t, start, store.Current(), "starting from %s", start)
	}
}

func TestWatch_TracksSourceWhileSystem(t *testing.T) {
	src := &flipSource{scheme: SchemeLight}
	store := NewStore(newFakeMeta(), src, logging.NewDiscardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store.Load(ctx)
	require.False(t, store.IsDark())

	done := make(chan struct{})
	go func() {
		store.Watch(ctx, time.Millisecond)
		close(done)
	}()

	src.set(SchemeDark)
	require.Eventually(t, store.IsDark, time.Second, time.Millisecond)

	cancel()
	<-done
}

func TestWatch_IgnoresSourceWhenExplicitTheme(t *testing.T) {
	src := &flipSource{scheme: SchemeLight}
	store := NewStore(newFakeMeta(), src, logging.NewDiscardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, store.Set(ctx, models.ThemeLight))

	go store.Watch(ctx, time.Millisecond)

	src.set(SchemeDark)
	time.Sleep(20 * time.Millisecond)
	assert.False(t, store.IsDark(), "explicit light must not follow the OS scheme")
}
