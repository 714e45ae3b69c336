package target

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Local mirrors into a directory on an afero filesystem.
type Local struct {
	fs  afero.Fs
	dir string
}

// NewLocal creates a directory destination. Tests pass afero.NewMemMapFs().
func NewLocal(fs afero.Fs, dir string) *Local {
	return &Local{fs: fs, dir: dir}
}

func (l *Local) Location() string {
	return l.dir
}

func (l *Local) Ensure(ctx context.Context) error {
	return l.fs.MkdirAll(l.dir, 0o755)
}

func (l *Local) List(ctx context.Context) ([]Entry, error) {
	infos, err := afero.ReadDir(l.fs, l.dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		mode := info.Mode()
		if mode&os.ModeSymlink != 0 {
			// Symlinks count as what they point to
			if resolved, err := l.fs.Stat(l.path(info.Name())); err == nil {
				info = resolved
				mode = resolved.Mode()
			}
		}
		entries = append(entries, Entry{
			Name:    info.Name(),
			Size:    info.Size(),
			Regular: mode.IsRegular(),
		})
	}
	return entries, nil
}

func (l *Local) Exists(ctx context.Context, name string) (bool, error) {
	_, err := l.fs.Stat(l.path(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (l *Local) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	return l.fs.Create(l.path(name))
}

func (l *Local) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return l.fs.Open(l.path(name))
}

func (l *Local) Remove(ctx context.Context, name string) error {
	return l.fs.Remove(l.path(name))
}

func (l *Local) path(name string) string {
	return filepath.Join(l.dir, name)
}
