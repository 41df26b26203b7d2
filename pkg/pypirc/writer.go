package pypirc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// DefaultFilename is the name of the credential file inside the home directory
const DefaultFilename = ".pypirc"

// ErrHomeDir is returned when the home directory cannot be resolved
var ErrHomeDir = errors.New("cannot resolve home directory")

// HomeResolver returns the home directory of the process owner
type HomeResolver func() (string, error)

// Writer persists generated credential files. Every write replaces the file.
type Writer struct {
	fs       afero.Fs
	home     HomeResolver
	filename string
}

// NewWriter creates a writer on fs. A nil fs uses the OS filesystem, a nil
// home uses os.UserHomeDir and an empty filename uses DefaultFilename.
func NewWriter(fs afero.Fs, home HomeResolver, filename string) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if home == nil {
		home = os.UserHomeDir
	}
	if filename == "" {
		filename = DefaultFilename
	}
	return &Writer{fs: fs, home: home, filename: filename}
}

// Fs returns the filesystem the writer operates on
func (w *Writer) Fs() afero.Fs {
	return w.fs
}

// Path resolves the credential file path. It is evaluated on every call so a
// changed HOME is honoured.
func (w *Writer) Path() (string, error) {
	home, err := w.home()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHomeDir, err)
	}
	if home == "" {
		return "", ErrHomeDir
	}
	return filepath.Join(home, w.filename), nil
}

// Write replaces the credential file with text and returns its path
func (w *Writer) Write(text string) (string, error) {
	path, err := w.Path()
	if err != nil {
		return "", err
	}
	if err := afero.WriteFile(w.fs, path, []byte(text), 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	// WriteFile keeps the mode of an existing file
	if err := w.fs.Chmod(path, 0o600); err != nil {
		return "", fmt.Errorf("failed to restrict permissions of %s: %w", path, err)
	}
	return path, nil
}
