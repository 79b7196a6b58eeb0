package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

//go:embed styles templates
var embedded embed.FS

// FSLoader reads assets from a tree laid out as styles/<name>.css and
// templates/<name>.html.
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader wraps any file system with the asset layout.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// NewEmbeddedLoader returns the built-in stylesheet and templates.
func NewEmbeddedLoader() *FSLoader {
	return NewFSLoader(embedded)
}

// NewDirLoader reads assets below basePath. Files are opened through an
// os.Root, so a symlink cannot lead outside basePath.
func NewDirLoader(basePath string) (*FSLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	info, err := os.Stat(basePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, basePath)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, basePath)
	}

	root, err := os.OpenRoot(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	return NewFSLoader(root.FS()), nil
}

// LoadStyle loads styles/<name>.css.
func (l *FSLoader) LoadStyle(name string) (string, error) {
	return l.load(Style, name)
}

// LoadTemplate loads templates/<name>.html.
func (l *FSLoader) LoadTemplate(name string) (string, error) {
	return l.load(Template, name)
}

func (l *FSLoader) load(kind Kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	data, err := fs.ReadFile(l.fsys, kind.Path(name))
	switch {
	case err == nil:
		return string(data), nil
	case errors.Is(err, fs.ErrNotExist):
		return "", kind.notFound(name)
	default:
		return "", fmt.Errorf("%w: %s: %v", ErrAssetRead, kind.Path(name), err)
	}
}

var _ AssetLoader = (*FSLoader)(nil)
