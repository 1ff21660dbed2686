package store_test

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideaboard/ideaboard-server/internal/config"
	apperrors "github.com/ideaboard/ideaboard-server/internal/errors"
	"github.com/ideaboard/ideaboard-server/internal/record"
	"github.com/ideaboard/ideaboard-server/internal/store"
)

// fakeStore counts operations so tests can assert whether storage was touched.
type fakeStore struct {
	ops    atomic.Int64
	closed atomic.Bool
}

func (f *fakeStore) Create(_ context.Context, table string, doc []byte) (store.Row, error) {
	f.ops.Add(1)
	return store.Row{Ref: record.Ref{Table: table, Key: "fake1"}, Doc: doc}, nil
}

func (f *fakeStore) List(context.Context, string) ([]store.Row, error) {
	f.ops.Add(1)
	return []store.Row{}, nil
}

func (f *fakeStore) Get(_ context.Context, ref record.Ref) (store.Row, error) {
	f.ops.Add(1)
	return store.Row{Ref: ref}, nil
}

func (f *fakeStore) Update(_ context.Context, ref record.Ref, doc []byte) (store.Row, error) {
	f.ops.Add(1)
	return store.Row{Ref: ref, Doc: doc}, nil
}

func (f *fakeStore) Delete(context.Context, record.Ref) error {
	f.ops.Add(1)
	return nil
}

func (f *fakeStore) Close() error {
	f.closed.Store(true)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestGateway_ResolveConnectsExactlyOnce(t *testing.T) {
	var attempts atomic.Int64
	fake := &fakeStore{}

	opener := func(context.Context, config.StorageConfig, *slog.Logger) (store.Store, error) {
		attempts.Add(1)
		return fake, nil
	}

	gateway := store.NewGatewayWithOpener(config.StorageConfig{Kind: config.BackendEmbedded}, testLogger(), opener)

	const callers = 32
	handles := make([]store.Store, callers)

	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st, err := gateway.Resolve(context.Background())
			assert.NoError(t, err)
			handles[i] = st
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), attempts.Load())
	for _, h := range handles {
		assert.Same(t, fake, h)
	}
}

func TestGateway_MemoizesFailure(t *testing.T) {
	var attempts atomic.Int64

	opener := func(context.Context, config.StorageConfig, *slog.Logger) (store.Store, error) {
		attempts.Add(1)
		return nil, apperrors.StorageUnavailable("backend down")
	}

	gateway := store.NewGatewayWithOpener(config.StorageConfig{Kind: config.BackendRemote}, testLogger(), opener)

	_, err1 := gateway.Resolve(context.Background())
	_, err2 := gateway.Resolve(context.Background())

	require.Error(t, err1)
	require.Error(t, err2)
	assert.ErrorIs(t, err1, apperrors.ErrStorageUnavailable)
	// The failed attempt is memoized, not retried.
	assert.Equal(t, int64(1), attempts.Load())
}

func TestGateway_CloseBeforeResolve(t *testing.T) {
	var attempts atomic.Int64

	opener := func(context.Context, config.StorageConfig, *slog.Logger) (store.Store, error) {
		attempts.Add(1)
		return &fakeStore{}, nil
	}

	gateway := store.NewGatewayWithOpener(config.StorageConfig{}, testLogger(), opener)
	require.NoError(t, gateway.Close())

	// A closed gateway refuses to connect.
	_, err := gateway.Resolve(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	assert.Equal(t, int64(0), attempts.Load())
}

func TestGateway_CloseAfterResolveClosesStore(t *testing.T) {
	fake := &fakeStore{}

	opener := func(context.Context, config.StorageConfig, *slog.Logger) (store.Store, error) {
		return fake, nil
	}

	gateway := store.NewGatewayWithOpener(config.StorageConfig{}, testLogger(), opener)

	_, err := gateway.Resolve(context.Background())
	require.NoError(t, err)

	require.NoError(t, gateway.Close())
	assert.True(t, fake.closed.Load())
}

func TestOpenBackend_UnknownKind(t *testing.T) {
	_, err := store.OpenBackend(context.Background(), config.StorageConfig{Kind: "carrier-pigeon"}, testLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInternal)
}
