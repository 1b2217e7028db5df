package probe

import (
	"context"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deniedFs fails every Stat with a permission error.
type deniedFs struct {
	afero.Fs
}

func (d deniedFs) Stat(name string) (os.FileInfo, error) {
	return nil, &os.PathError{Op: "stat", Path: name, Err: os.ErrPermission}
}

func TestLocalProber_Exists(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/srv/public/fileadmin/img/x.jpg", []byte("jpg"), 0o644))
	require.NoError(t, fsys.MkdirAll("/srv/public/fileadmin/dir", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "/srv/secret.txt", []byte("s"), 0o644))

	p := NewLocalProber(fsys, "/srv/public", nil)
	ctx := context.Background()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"Existing file", "fileadmin/img/x.jpg", true},
		{"Leading slash", "/fileadmin/img/x.jpg", true},
		{"Missing file", "fileadmin/img/y.jpg", false},
		{"Directory", "fileadmin/dir", false},
		{"Empty path", "", false},
		{"Traversal stays in root", "../secret.txt", false},
		{"Dot segments", "fileadmin/dir/../img/x.jpg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Exists(ctx, tt.path))
		})
	}
}

func TestLocalProber_PermissionErrorIsMissing(t *testing.T) {
	p := NewLocalProber(deniedFs{afero.NewMemMapFs()}, "/srv/public", nil)
	assert.False(t, p.Exists(context.Background(), "fileadmin/a.jpg"))
}
