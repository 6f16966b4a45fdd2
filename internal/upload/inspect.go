package upload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxSize is the largest material accepted for intake.
const MaxSize = 50 << 20

// AcceptedExtensions lists the material formats the intake accepts.
var AcceptedExtensions = []string{".pdf", ".ppt", ".pptx", ".doc", ".docx", ".txt"}

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file exceeds 50 MB limit")
	ErrNotRegular      = errors.New("not a regular file")
)

// Inspect stats the file at path and sniffs its MIME type. Files that fail
// intake rules are returned with StatusError and the reason in Err; the
// returned error is reserved for I/O failures.
func Inspect(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("stat %s: %w", path, err)
	}

	f := File{
		Name: filepath.Base(path),
		Path: path,
		Size: info.Size(),
	}

	if !info.Mode().IsRegular() {
		return reject(f, ErrNotRegular), nil
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return File{}, fmt.Errorf("detect type of %s: %w", path, err)
	}
	f.Type = mt.String()

	if err := checkAccepted(f.Name, f.Size); err != nil {
		return reject(f, err), nil
	}
	return f, nil
}

func checkAccepted(name string, size int64) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !slices.Contains(AcceptedExtensions, ext) {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	if size > MaxSize {
		return ErrTooLarge
	}
	return nil
}

func reject(f File, err error) File {
	f.Status = StatusError
	f.Err = err.Error()
	return f
}
