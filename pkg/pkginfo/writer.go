package pkginfo

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/arthur-debert/printergen/pkg/errors"
	"github.com/arthur-debert/printergen/pkg/logging"
)

// PkgsinfoDir is the repo subdirectory holding pkginfo files.
const PkgsinfoDir = "pkgsinfo"

// Writer places rendered descriptors on disk.
type Writer struct {
	fs        afero.Fs
	dir       string
	extension string
	repo      bool
}

// NewRepoWriter writes into <repoRoot>/pkgsinfo. The directory must already
// exist and be writable; this is checked once, here.
func NewRepoWriter(fs afero.Fs, repoRoot, extension string) (*Writer, error) {
	root, err := ExpandPath(repoRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve repo path %s", repoRoot)
	}
	dir := filepath.Join(root, PkgsinfoDir)

	if err := checkWritable(fs, dir); err != nil {
		return nil, errors.Wrap(err, errors.ErrRepoNotWritable,
			"The pkgsinfo directory in given munki repo is not writable.").
			WithDetail("path", dir)
	}

	logger := logging.GetLogger("pkginfo.writer")
	logger.Debug().Str("dir", dir).Msg("Using munki repo")
	return &Writer{fs: fs, dir: dir, extension: extension, repo: true}, nil
}

// NewCwdWriter writes into dir, normally the working directory. Subdirectories
// are not supported in this mode.
func NewCwdWriter(fs afero.Fs, dir, extension string) *Writer {
	return &Writer{fs: fs, dir: dir, extension: extension}
}

// Dir returns the base output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// FileName returns <name>-<version><extension>.
func FileName(d Descriptor, extension string) string {
	return d.Name() + "-" + d.Version() + extension
}

// Path returns where Write would place d. The result must stay inside the
// output directory, so names or subdirectories climbing out with ".." fail.
func (w *Writer) Path(d Descriptor, subdirectory string) (string, error) {
	name := FileName(d, w.extension)
	target := filepath.Join(w.dir, name)
	if w.repo && subdirectory != "" {
		target = filepath.Join(w.dir, subdirectory, name)
	}

	rel, err := filepath.Rel(w.dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrPathEscape, "%s would be written outside %s", name, w.dir).
			WithDetail("path", target).
			WithDetail("subdirectory", subdirectory)
	}
	return target, nil
}

// Write serializes d, replacing any existing file of the same name, and
// returns the written path.
func (w *Writer) Write(d Descriptor, subdirectory string) (string, error) {
	logger := logging.GetLogger("pkginfo.writer")

	if subdirectory != "" && !w.repo {
		logger.Warn().
			Str("subdirectory", subdirectory).
			Msg("Subdirectory is only used with --repo, writing to the current directory")
	}

	target, err := w.Path(d, subdirectory)
	if err != nil {
		return "", err
	}
	if w.repo && subdirectory != "" {
		dir := filepath.Dir(target)
		if err := w.fs.MkdirAll(dir, 0755); err != nil {
			return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir).
				WithDetail("path", dir)
		}
	}

	data, err := d.Encode()
	if err != nil {
		return "", err
	}

	if err := afero.WriteFile(w.fs, target, data, 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", target).
			WithDetail("path", target)
	}

	logger.Info().Str("path", target).Str("name", d.Name()).Msg("Wrote pkginfo")
	return target, nil
}

// ExpandPath expands a leading ~, makes the path absolute and resolves
// symlinks where the path exists on the real filesystem.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// checkWritable creates and removes a temporary file in dir.
func checkWritable(fs afero.Fs, dir string) error {
	info, err := fs.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &os.PathError{Op: "stat", Path: dir, Err: errors.New(errors.ErrInvalidInput, "not a directory")}
	}

	tmp, err := afero.TempFile(fs, dir, ".printergen-")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if err := tmp.Close(); err != nil {
		return err
	}
	return fs.Remove(name)
}
