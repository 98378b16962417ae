package generate

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/afero"

	"github.com/arthur-debert/printergen/pkg/batch"
	"github.com/arthur-debert/printergen/pkg/config"
	"github.com/arthur-debert/printergen/pkg/errors"
	"github.com/arthur-debert/printergen/pkg/logging"
	"github.com/arthur-debert/printergen/pkg/pkginfo"
	"github.com/arthur-debert/printergen/pkg/printer"
	"github.com/arthur-debert/printergen/pkg/types"
)

// GenerateOptions holds options for the generate command
type GenerateOptions struct {
	// Values describes a single printer. Ignored when CSVPath is set.
	Values printer.Values
	// CSVPath is a batch file with one printer per row.
	CSVPath string
	// RepoRoot is the munki repo; files go to its pkgsinfo directory.
	// When empty, files are written to WorkDir.
	RepoRoot string
	// WorkDir defaults to the process working directory.
	WorkDir string
	// TemplatePath overrides the template location.
	TemplatePath string
	// DryRun prints the rendered plists instead of writing them.
	DryRun bool

	FileSystem  afero.Fs
	Preferences *config.Preferences
	Output      io.Writer
}

// Generate renders and writes one pkginfo per printer. Records are handled
// in order and the first failure stops the run; files already written stay
// on disk and are listed in the returned result.
func Generate(opts GenerateOptions) (*types.GenerateResult, error) {
	logger := logging.GetLogger("commands.generate")
	done := logging.LogOperationStart(logger, "generate")
	defer done()

	fs := opts.FileSystem
	if fs == nil {
		fs = afero.NewOsFs()
	}
	prefs := opts.Preferences
	if prefs == nil {
		prefs = config.Default()
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	tmpl, err := pkginfo.ResolveTemplate(fs, opts.TemplatePath, prefs.String(config.KeyTemplatePath, ""))
	if err != nil {
		return nil, err
	}

	writer, err := newWriter(fs, opts, prefs.Extension())
	if err != nil {
		return nil, err
	}

	result := &types.GenerateResult{
		Template: tmpl.Source(),
		OutDir:   writer.Dir(),
		DryRun:   opts.DryRun,
	}

	g := &generator{
		tmpl:   tmpl,
		writer: writer,
		prefs:  prefs,
		out:    out,
		dryRun: opts.DryRun,
		result: result,
	}

	if opts.CSVPath == "" {
		logger.Debug().Msg("Generating from flags")
		return result, g.one(opts.Values, printer.SourceFlags)
	}

	logger.Debug().Str("csv", opts.CSVPath).Msg("Generating from CSV")
	reader, err := batch.Open(fs, opts.CSVPath)
	if err != nil {
		return result, err
	}
	result.Delimiter = strconv.QuoteRune(reader.Delimiter())
	for {
		row, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, err
		}
		if err := g.one(row.Values, printer.SourceCSV); err != nil {
			if pgErr, ok := err.(*errors.Error); ok {
				pgErr.WithDetail("line", row.Line).WithDetail("path", opts.CSVPath)
			}
			return result, err
		}
	}

	logger.Info().Int("files", len(result.Files)).Msg("Batch finished")
	return result, nil
}

func newWriter(fs afero.Fs, opts GenerateOptions, extension string) (*pkginfo.Writer, error) {
	if opts.RepoRoot != "" {
		return pkginfo.NewRepoWriter(fs, opts.RepoRoot, extension)
	}

	dir := opts.WorkDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to determine working directory")
		}
		dir = cwd
	}
	return pkginfo.NewCwdWriter(fs, dir, extension), nil
}

type generator struct {
	tmpl   *pkginfo.Template
	writer *pkginfo.Writer
	prefs  *config.Preferences
	out    io.Writer
	dryRun bool
	result *types.GenerateResult
}

func (g *generator) one(values printer.Values, src printer.Source) error {
	record, err := printer.Resolve(values, g.prefs, src)
	if err != nil {
		return err
	}

	d := pkginfo.Render(g.tmpl, record)
	target, err := g.writer.Path(d, record.Subdirectory)
	if err != nil {
		return err
	}
	file := types.GeneratedFile{
		Printer: record.Name,
		Name:    d.Name(),
		Version: d.Version(),
		Path:    target,
	}

	if g.dryRun {
		data, err := d.Encode()
		if err != nil {
			return err
		}
		fmt.Fprintf(g.out, "# %s\n", file.Path)
		if _, err := g.out.Write(data); err != nil {
			return errors.Wrap(err, errors.ErrFileWrite, "failed to write output")
		}
		g.result.Files = append(g.result.Files, file)
		return nil
	}

	fmt.Fprintf(g.out, "Writing pkginfo file to %s\n", file.Path)
	path, err := g.writer.Write(d, record.Subdirectory)
	if err != nil {
		return err
	}
	file.Path = path
	file.Written = true
	g.result.Files = append(g.result.Files, file)
	return nil
}
