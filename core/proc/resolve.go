package proc

import (
	"errors"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrNotFound is the error resulting if a path search failed to find an executable file.
var ErrNotFound = exec.ErrNotFound

// Resolver finds executables for bare command names.
type Resolver struct {
	// Fs is the filesystem candidates are checked against.
	Fs afero.Fs
	// Dir is the directory relative names and PATH entries are taken from.
	Dir string
	// SearchPath holds the colon separated directories to search.
	SearchPath string
}

// NewResolver creates a Resolver over the host filesystem.
func NewResolver(dir, searchPath string) *Resolver {
	return &Resolver{
		Fs:         afero.NewOsFs(),
		Dir:        dir,
		SearchPath: searchPath,
	}
}

func (r *Resolver) abs(file string) string {
	if filepath.IsAbs(file) || r.Dir == "" {
		return file
	}
	return filepath.Join(r.Dir, file)
}

func (r *Resolver) findExecutable(file string) error {
	d, err := r.Fs.Stat(r.abs(file))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case err != nil:
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0111 != 0 {
		return nil
	}
	return fs.ErrPermission
}

// Dirs returns the search directories in order.
func (r *Resolver) Dirs() []string {
	if r.SearchPath == "" {
		return nil
	}
	return strings.Split(r.SearchPath, ":")
}

// LookPath resolves name to an executable.
//
// If name is directly accessible as an executable (absolute, or relative to
// Dir) it's returned unchanged. Otherwise each directory in SearchPath is
// tried in order and the first executable match is returned. ErrNotFound is
// returned if nothing matches.
func (r *Resolver) LookPath(name string) (string, error) {
	if name == "" {
		return "", ErrNotFound
	}
	if err := r.findExecutable(name); err == nil {
		return name, nil
	}
	if strings.Contains(name, "/") {
		return "", ErrNotFound
	}

	for _, dir := range r.Dirs() {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := dir + "/" + name
		if err := r.findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", ErrNotFound
}

// Abs returns path made absolute against the resolver's directory, suitable
// for handing to exec.
func (r *Resolver) Abs(path string) string {
	return r.abs(path)
}
