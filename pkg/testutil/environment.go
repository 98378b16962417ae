package testutil

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/groob/plist"
	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment is a filesystem with a munki repo and a working directory.
type TestEnvironment struct {
	FS       afero.Fs
	Root     string
	RepoRoot string
	WorkDir  string

	// Out collects what commands print.
	Out bytes.Buffer

	Type EnvType
	t    *testing.T
}

// NewTestEnvironment creates <root>/repo/pkgsinfo and <root>/work.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}
	switch envType {
	case EnvIsolated:
		env.FS = afero.NewOsFs()
		env.Root = t.TempDir()
	default:
		env.FS = afero.NewMemMapFs()
		env.Root = "/test"
	}

	env.RepoRoot = filepath.Join(env.Root, "repo")
	env.WorkDir = filepath.Join(env.Root, "work")
	env.mkdir(filepath.Join(env.RepoRoot, "pkgsinfo"))
	env.mkdir(env.WorkDir)
	return env
}

func (env *TestEnvironment) mkdir(path string) {
	env.t.Helper()
	if err := env.FS.MkdirAll(path, 0755); err != nil {
		env.t.Fatalf("Failed to create %s: %v", path, err)
	}
}

// PkgsinfoDir returns the repo's pkgsinfo directory.
func (env *TestEnvironment) PkgsinfoDir() string {
	return filepath.Join(env.RepoRoot, "pkgsinfo")
}

// WriteFile writes content at a path relative to the environment root.
func (env *TestEnvironment) WriteFile(rel, content string) string {
	env.t.Helper()

	path := filepath.Join(env.Root, rel)
	env.mkdir(filepath.Dir(path))
	if err := afero.WriteFile(env.FS, path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// WriteCSV writes a delimited file built from a header and rows.
func (env *TestEnvironment) WriteCSV(rel string, delimiter string, header []string, rows ...[]string) string {
	env.t.Helper()
	return env.WriteFile(rel, BuildCSV(delimiter, header, rows...))
}

// ReadPlist decodes the plist at path.
func (env *TestEnvironment) ReadPlist(path string) map[string]interface{} {
	env.t.Helper()

	data, err := afero.ReadFile(env.FS, path)
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", path, err)
	}
	decoded := make(map[string]interface{})
	if err := plist.Unmarshal(data, &decoded); err != nil {
		env.t.Fatalf("Failed to decode %s: %v", path, err)
	}
	return decoded
}

// ListDir returns the entry names of dir, or nil when it does not exist.
func (env *TestEnvironment) ListDir(dir string) []string {
	env.t.Helper()

	entries, err := afero.ReadDir(env.FS, dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// BuildCSV joins header and rows with delimiter. Fields are not quoted.
func BuildCSV(delimiter string, header []string, rows ...[]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, delimiter))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(strings.Join(row, delimiter))
		b.WriteString("\n")
	}
	return b.String()
}
