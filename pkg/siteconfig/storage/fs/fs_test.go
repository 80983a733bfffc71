package fs_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-site/pkg/siteconfig"
	"github.com/tendant/simple-site/pkg/siteconfig/storage/fs"
)

func TestFSBackend_RequiresBaseDir(t *testing.T) {
	_, err := fs.New(fs.Config{})
	assert.Error(t, err)
}

func TestFSBackend_UploadDownload(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	backend, err := fs.New(fs.Config{BaseDir: dir})
	require.NoError(t, err)

	err = backend.UploadWithParams(ctx, strings.NewReader(`{"slug":"a"}`), siteconfig.UploadParams{
		ObjectKey: "sites/a.json",
		MimeType:  "application/json",
	})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "sites", "a.json"))
	require.NoError(t, err)

	rc, err := backend.Download(ctx, "sites/a.json")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, `{"slug":"a"}`, string(data))

	meta, err := backend.GetObjectMeta(ctx, "sites/a.json")
	require.NoError(t, err)
	assert.Equal(t, int64(12), meta.Size)
	assert.Equal(t, "application/json", meta.ContentType)

	entries, err := os.ReadDir(filepath.Join(dir, "sites"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFSBackend_Overwrite(t *testing.T) {
	ctx := context.Background()
	backend, err := fs.New(fs.Config{BaseDir: t.TempDir()})
	require.NoError(t, err)

	require.NoError(t, backend.Upload(ctx, "k.json", strings.NewReader("first")))
	require.NoError(t, backend.Upload(ctx, "k.json", strings.NewReader("second")))

	rc, err := backend.Download(ctx, "k.json")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestFSBackend_NotFound(t *testing.T) {
	ctx := context.Background()
	backend, err := fs.New(fs.Config{BaseDir: t.TempDir()})
	require.NoError(t, err)

	_, err = backend.Download(ctx, "missing.json")
	assert.ErrorIs(t, err, siteconfig.ErrObjectNotFound)

	_, err = backend.GetObjectMeta(ctx, "missing.json")
	assert.ErrorIs(t, err, siteconfig.ErrObjectNotFound)
}

func TestFSBackend_RejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	backend, err := fs.New(fs.Config{BaseDir: t.TempDir()})
	require.NoError(t, err)

	for _, key := range []string{"../outside.json", "a/../../outside.json", ""} {
		err := backend.Upload(ctx, key, strings.NewReader("x"))
		assert.Error(t, err, "key %q", key)
	}
}
