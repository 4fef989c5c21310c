package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "conf", "modules", "mail"), 0755))
	t.Setenv(EnvConfigDir, root)

	tests := []struct {
		name            string
		configDirectory string
		pathSuffix      string
		want            string
	}{
		{
			name: "root only",
			want: root,
		},
		{
			name:            "config directory",
			configDirectory: "conf",
			want:            filepath.Join(root, "conf"),
		},
		{
			name:            "single suffix",
			configDirectory: "conf",
			pathSuffix:      "modules",
			want:            filepath.Join(root, "conf", "modules"),
		},
		{
			name:            "multi-part suffix",
			configDirectory: "conf",
			pathSuffix:      "modules/mail",
			want:            filepath.Join(root, "conf", "modules", "mail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.configDirectory, tt.pathSuffix)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveMissingComponent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "conf"), 0755))
	t.Setenv(EnvConfigDir, root)

	// Resolve never creates directories.
	_, err := Resolve("conf", "absent")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	_, err = Resolve("absent", "")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestResolveComponentIsFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "conf"), []byte("x"), 0644))
	t.Setenv(EnvConfigDir, root)

	_, err := Resolve("conf", "")
	require.Error(t, err)
	assert.True(t, IsStoreError(err))
	assert.False(t, IsNotFound(err))
}

func TestConfigRootUnset(t *testing.T) {
	t.Setenv(EnvConfigDir, "")

	_, err := ConfigRoot()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvConfigDir)
}

func TestConfigRootMissing(t *testing.T) {
	t.Setenv(EnvConfigDir, filepath.Join(t.TempDir(), "gone"))

	_, err := ConfigRoot()
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
