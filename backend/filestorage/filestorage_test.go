package filestorage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalClient_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	c := NewLocalClient(dir, "http://files.local/")
	ctx := context.Background()

	url, err := c.Upload(ctx, strings.NewReader("png-bytes"), "Avatar.PNG", "USER", "7")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://files.local/user/7/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	rel := strings.TrimPrefix(url, "http://files.local/")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, c.Delete(ctx, url))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, c.Delete(ctx, url))
}

func TestLocalClient_DeleteRejectsForeignURL(t *testing.T) {
	c := NewLocalClient(t.TempDir(), "/files")
	ctx := context.Background()

	assert.ErrorIs(t, c.Delete(ctx, "http://elsewhere/x.png"), ErrInvalidURL)
	assert.ErrorIs(t, c.Delete(ctx, "/files/../secret"), ErrInvalidURL)
}

func TestLocalClient_IdentifierCannotEscape(t *testing.T) {
	dir := t.TempDir()
	c := NewLocalClient(dir, "/files")

	url, err := c.Upload(context.Background(), strings.NewReader("x"), "a.png", "COURSE", "../../etc")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/files/course/etc/"))
}

func TestLocalClient_Asset(t *testing.T) {
	c := NewLocalClient(t.TempDir(), "/files")

	url, err := c.Upload(context.Background(), strings.NewReader("x"), "a.png", "USER_GROUP", "12")
	require.NoError(t, err)
	assetType, identifier, err := c.Asset(url)
	require.NoError(t, err)
	assert.Equal(t, "USER_GROUP", assetType)
	assert.Equal(t, "12", identifier)

	_, _, err = c.Asset("/files/user/a.png")
	assert.ErrorIs(t, err, ErrInvalidURL)
}
