package kv_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"storefront/internal/infra/kv"
	"storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileKV_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")
	f := kv.NewFileKV(path)

	require.NoError(t, f.Set(ctx, "cart:s1", []byte(`{"items":[]}`)))

	got, err := f.Get(ctx, "cart:s1")
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, string(got))

	require.NoError(t, f.Delete(ctx, "cart:s1"))

	_, err = f.Get(ctx, "cart:s1")
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestFileKV_MissingFileBehavesAsEmpty(t *testing.T) {
	ctx := context.Background()
	f := kv.NewFileKV(filepath.Join(t.TempDir(), "nope", "store.json"))

	_, err := f.Get(ctx, "anything")
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestFileKV_CorruptFileBehavesAsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	f := kv.NewFileKV(path)

	//壊れたファイルは空扱い。書き込めば上書きして復旧する。
	_, err := f.Get(ctx, "cart:s1")
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	require.NoError(t, f.Set(ctx, "cart:s1", []byte(`1`)))
	got, err := f.Get(ctx, "cart:s1")
	require.NoError(t, err)
	assert.Equal(t, "1", string(got))
}

func TestFileKV_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	require.NoError(t, kv.NewFileKV(path).Set(ctx, "k", []byte(`"v"`)))

	got, err := kv.NewFileKV(path).Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"v"`, string(got))
}

func TestMemoryKV_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	m := kv.NewMemoryKV()

	_, err := m.Get(ctx, "k")
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	require.NoError(t, m.Set(ctx, "k", []byte("v")))
	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))

	require.NoError(t, m.Delete(ctx, "k"))
	_, err = m.Get(ctx, "k")
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}
