package executor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyUploadError(t *testing.T) {
	base := fmt.Errorf("exit status 1")

	var authErr *AuthError
	err := classifyUploadError("core", "HTTPError: 403 Forbidden", base)
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "core", authErr.Package)

	var netErr *NetworkError
	err = classifyUploadError("core", "ConnectionError: connection reset by peer", base)
	require.True(t, errors.As(err, &netErr))

	err = classifyUploadError("core", "InvalidDistribution: unknown file type", base)
	assert.False(t, errors.As(err, &authErr))
	assert.False(t, errors.As(err, &netErr))
	assert.True(t, errors.Is(err, base))

	assert.NoError(t, classifyUploadError("core", "", nil))
}

func TestListArtifacts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b-1.0.tar.gz"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a-1.0.whl"), []byte("a"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))

	files, err := listArtifacts(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a-1.0.whl"), files[0])
	assert.Equal(t, filepath.Join(dir, "b-1.0.tar.gz"), files[1])
}

func TestListArtifactsMissingDir(t *testing.T) {
	files, err := listArtifacts(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, files)
}
