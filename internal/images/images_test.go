package images

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Smallest valid PNG (1x1 transparent pixel).
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func pngBase64() string {
	return base64.StdEncoding.EncodeToString(pngBytes)
}

func TestIsValidImage(t *testing.T) {
	assert.True(t, IsValidImage(pngBase64()))
	assert.True(t, IsValidImage("data:image/png;base64,"+pngBase64()))
}

func TestIsValidImageRejectsNonImage(t *testing.T) {
	assert.False(t, IsValidImage(base64.StdEncoding.EncodeToString([]byte("hello world"))))
	assert.False(t, IsValidImage("%%% not base64 %%%"))
}

func TestSaveAndReplace(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(pngBase64(), "products", "")
	require.NoError(t, err)
	assert.Equal(t, "image/png", first.FileType)
	assert.Equal(t, int64(len(pngBytes)), first.FileSize)
	assert.FileExists(t, filepath.Join(store.Root(), first.FilePath))

	second, err := store.Save("data:image/png;base64,"+pngBase64(), "products", first.FilePath)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(store.Root(), second.FilePath))

	// The replaced file is gone.
	_, err = os.Stat(filepath.Join(store.Root(), first.FilePath))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveRejectsNonImage(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(base64.StdEncoding.EncodeToString([]byte("not an image")), "products", "")
	assert.Error(t, err)
}
