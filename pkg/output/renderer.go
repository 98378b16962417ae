package output

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/printergen/pkg/errors"
	"github.com/arthur-debert/printergen/pkg/logging"
	"github.com/arthur-debert/printergen/pkg/output/lipbalm"
	"github.com/arthur-debert/printergen/pkg/output/styles"
	"github.com/arthur-debert/printergen/pkg/types"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Renderer writes styled messages for the terminal. Style tags in the
// embedded templates are expanded with the styles registry, or stripped in
// no-color mode.
type Renderer struct {
	templates *template.Template
	writer    io.Writer
	noColor   bool
}

// NewRenderer creates a Renderer for w. Color is also disabled when the
// NO_COLOR environment variable is set or w is not a color terminal.
func NewRenderer(w io.Writer, noColor bool) (*Renderer, error) {
	log := logging.GetLogger("output.renderer")

	if os.Getenv("NO_COLOR") != "" {
		noColor = true
	}
	if !noColor {
		renderer := lipgloss.NewRenderer(w)
		lipbalm.SetDefaultRenderer(renderer)
		log.Debug().
			Str("colorProfile", fmt.Sprintf("%v", renderer.ColorProfile())).
			Msg("Lipgloss renderer created")
	}

	tmpl, err := template.New("output").Funcs(lipbalm.Funcs).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to parse output templates")
	}

	return &Renderer{
		templates: tmpl,
		writer:    w,
		noColor:   noColor,
	}, nil
}

func (r *Renderer) render(name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to execute template %s", name)
	}
	return r.write(buf.String())
}

func (r *Renderer) write(tagged string) error {
	var out string
	if r.noColor {
		out = lipbalm.StripTags(tagged)
	} else {
		expanded, err := lipbalm.ExpandTags(tagged, styles.StyleRegistry)
		if err != nil {
			return err
		}
		out = expanded
	}
	_, err := fmt.Fprintln(r.writer, strings.TrimRight(out, "\n"))
	return err
}

// RenderError writes "<program>: Error: <message>".
func (r *Renderer) RenderError(program string, err error) error {
	return r.render("error.tmpl", map[string]string{
		"Program": program,
		"Message": errors.Message(err),
	})
}

// RenderSummary writes an overview of a generate run.
func (r *Renderer) RenderSummary(result *types.GenerateResult) error {
	return r.render("summary.tmpl", result)
}

// RenderMessage writes message with a single style.
func (r *Renderer) RenderMessage(style, message string) error {
	return r.write(fmt.Sprintf("<%s>%s</%s>", style, template.HTMLEscapeString(message), style))
}
