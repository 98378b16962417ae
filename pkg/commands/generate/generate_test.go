package generate

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/groob/plist"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/printergen/pkg/config"
	"github.com/arthur-debert/printergen/pkg/errors"
	"github.com/arthur-debert/printergen/pkg/printer"
)

func readPlist(t *testing.T, fs afero.Fs, path string) map[string]interface{} {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	decoded := make(map[string]interface{})
	require.NoError(t, plist.Unmarshal(data, &decoded))
	return decoded
}

func newRepo(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/repo/pkgsinfo", 0755))
	return fs
}

func TestGenerateFromFlags(t *testing.T) {
	fs := afero.NewMemMapFs()
	var out bytes.Buffer

	result, err := Generate(GenerateOptions{
		Values: printer.Values{
			printer.ColPrinterName: "HP1",
			printer.ColDriver:      "airprint-ppd",
			printer.ColAddress:     "10.0.0.5",
		},
		WorkDir:     "/work",
		FileSystem:  fs,
		Preferences: config.Default(),
		Output:      &out,
	})
	require.NoError(t, err)

	want := filepath.Join("/work", "AddPrinter_HP1-1.0.pkginfo")
	require.Len(t, result.Files, 1)
	assert.Equal(t, want, result.Files[0].Path)
	assert.True(t, result.Files[0].Written)
	assert.Empty(t, result.Delimiter)
	assert.Equal(t, "Writing pkginfo file to "+want+"\n", out.String())

	d := readPlist(t, fs, want)
	assert.Equal(t, "AddPrinter_HP1", d["name"])
	assert.Equal(t, "HP1", d["display_name"])
	assert.Contains(t, d["preinstall_script"], `"lpd://10.0.0.5"`)
}

func TestGenerateFromCSV(t *testing.T) {
	fs := newRepo(t)
	csv := "Printer Name,Address,Driver,Location,Subdirectory\n" +
		"HP1,10.0.0.5,airprint-ppd,,\n" +
		"Lab,ipp://lab.example.com,lab.ppd,Room 12,printers/lab\n"
	require.NoError(t, afero.WriteFile(fs, "/printers.csv", []byte(csv), 0644))
	var out bytes.Buffer

	result, err := Generate(GenerateOptions{
		CSVPath:     "/printers.csv",
		RepoRoot:    "/repo",
		FileSystem:  fs,
		Preferences: config.Default(),
		Output:      &out,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 2)
	assert.Equal(t, "','", result.Delimiter)

	first := filepath.Join("/repo", "pkgsinfo", "AddPrinter_HP1-1.0.pkginfo")
	second := filepath.Join("/repo", "pkgsinfo", "printers", "lab", "AddPrinter_Lab-1.0.pkginfo")
	assert.Equal(t, first, result.Files[0].Path)
	assert.Equal(t, second, result.Files[1].Path)
	assert.Equal(t,
		"Writing pkginfo file to "+first+"\nWriting pkginfo file to "+second+"\n",
		out.String())

	hp1 := readPlist(t, fs, first)
	assert.Contains(t, hp1["postinstall_script"], `"HP1"`, "location defaults to the printer name")
	assert.Equal(t, []interface{}{"testing"}, hp1["catalogs"])

	lab := readPlist(t, fs, second)
	assert.NotContains(t, lab, "preinstall_script")
	assert.Contains(t, lab["postinstall_script"], "/Library/Printers/PPDs/Contents/Resources/lab.ppd")
	assert.Contains(t, lab["postinstall_script"], "Room 12")
}

func TestGenerateStopsAtFirstInvalidRow(t *testing.T) {
	fs := newRepo(t)
	csv := "Printer Name;Address;Driver\n" +
		"HP1;10.0.0.5;airprint-ppd\n" +
		"Bad Name;10.0.0.6;airprint-ppd\n" +
		"HP3;10.0.0.7;airprint-ppd\n"
	require.NoError(t, afero.WriteFile(fs, "/printers.csv", []byte(csv), 0644))
	var out bytes.Buffer

	result, err := Generate(GenerateOptions{
		CSVPath:    "/printers.csv",
		RepoRoot:   "/repo",
		FileSystem: fs,
		Output:     &out,
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPrinterName))
	assert.Equal(t, 3, errors.GetErrorDetails(err)["line"])

	require.Len(t, result.Files, 1)
	assert.Equal(t, "';'", result.Delimiter)
	assert.Equal(t, 1, strings.Count(out.String(), "Writing pkginfo file to"))

	entries, err := afero.ReadDir(fs, "/repo/pkgsinfo")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "AddPrinter_HP1-1.0.pkginfo", entries[0].Name())
}

func TestGenerateRejectsSubdirectoryOutsideRepo(t *testing.T) {
	fs := newRepo(t)
	csv := "Printer Name,Address,Driver,Subdirectory\n" +
		"HP1,10.0.0.5,airprint-ppd,lab\n" +
		"HP2,10.0.0.6,airprint-ppd,../../../etc\n"
	require.NoError(t, afero.WriteFile(fs, "/printers.csv", []byte(csv), 0644))

	result, err := Generate(GenerateOptions{
		CSVPath:    "/printers.csv",
		RepoRoot:   "/repo",
		FileSystem: fs,
		Output:     &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathEscape))
	assert.Equal(t, 3, errors.GetErrorDetails(err)["line"])

	require.Len(t, result.Files, 1)
	exists, err := afero.DirExists(fs, "/etc")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGenerateMissingColumn(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/printers.csv", []byte("Printer Name,Address\nHP1,10.0.0.5\n"), 0644))

	_, err := Generate(GenerateOptions{
		CSVPath:    "/printers.csv",
		WorkDir:    "/work",
		FileSystem: fs,
		Output:     &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingArgument))
	assert.Equal(t, "Driver is required", errors.Message(err))
}

func TestGenerateMissingFlag(t *testing.T) {
	_, err := Generate(GenerateOptions{
		Values:     printer.Values{printer.ColPrinterName: "HP1", printer.ColDriver: "x.ppd"},
		WorkDir:    "/work",
		FileSystem: afero.NewMemMapFs(),
		Output:     &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.Equal(t, "Argument --address is required", errors.Message(err))
	assert.True(t, errors.ShowsUsage(err))
}

func TestGenerateRepoNotWritable(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/printers.csv", []byte("Printer Name,Address,Driver\nHP1,10.0.0.5,x.ppd\n"), 0644))
	var out bytes.Buffer

	result, err := Generate(GenerateOptions{
		CSVPath:    "/printers.csv",
		RepoRoot:   "/repo",
		FileSystem: fs,
		Output:     &out,
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRepoNotWritable))
	assert.Empty(t, out.String())
}

func TestGenerateDryRun(t *testing.T) {
	fs := newRepo(t)
	var out bytes.Buffer

	result, err := Generate(GenerateOptions{
		Values: printer.Values{
			printer.ColPrinterName: "HP1",
			printer.ColDriver:      "airprint-ppd",
			printer.ColAddress:     "10.0.0.5",
		},
		RepoRoot:   "/repo",
		DryRun:     true,
		FileSystem: fs,
		Output:     &out,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.False(t, result.Files[0].Written)
	assert.True(t, result.DryRun)

	assert.Contains(t, out.String(), "<string>AddPrinter_HP1</string>")
	assert.NotContains(t, out.String(), "Writing pkginfo file to")

	entries, err := afero.ReadDir(fs, "/repo/pkgsinfo")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerateTemplateOverride(t *testing.T) {
	t.Run("missing template", func(t *testing.T) {
		_, err := Generate(GenerateOptions{
			TemplatePath: "/templates/missing.plist",
			WorkDir:      "/work",
			FileSystem:   afero.NewMemMapFs(),
			Output:       &bytes.Buffer{},
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateLoad))
	})

	t.Run("custom extension and template", func(t *testing.T) {
		cfg := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(cfg, []byte(`pkginfo_extension = ".plist"`+"\n"), 0644))
		prefs, err := config.Load(config.Sources{ConfigFiles: []string{cfg}})
		require.NoError(t, err)

		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/templates/custom.plist", []byte(customTemplate), 0644))

		result, err := Generate(GenerateOptions{
			Values: printer.Values{
				printer.ColPrinterName: "HP1",
				printer.ColDriver:      "hp.ppd",
				printer.ColAddress:     "10.0.0.5",
			},
			TemplatePath: "/templates/custom.plist",
			WorkDir:      "/work",
			FileSystem:   fs,
			Preferences:  prefs,
			Output:       &bytes.Buffer{},
		})
		require.NoError(t, err)
		assert.Equal(t, "/templates/custom.plist", result.Template)

		d := readPlist(t, fs, filepath.Join("/work", "AddPrinter_HP1-1.0.plist"))
		assert.Equal(t, "add HP1", d["postinstall_script"])
		assert.Equal(t, "custom", d["developer"])
	})
}

const customTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>developer</key>
	<string>custom</string>
	<key>preinstall_script</key>
	<string>fetch ADDRESS</string>
	<key>installcheck_script</key>
	<string>check PRINTERNAME</string>
	<key>postinstall_script</key>
	<string>add PRINTERNAME</string>
	<key>uninstall_script</key>
	<string>remove PRINTERNAME</string>
</dict>
</plist>
`
