package pkginfo

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/groob/plist"
	"github.com/spf13/afero"

	"github.com/arthur-debert/printergen/pkg/errors"
	"github.com/arthur-debert/printergen/pkg/logging"
)

// TemplateFileName is looked up next to the executable.
const TemplateFileName = "AddPrinter-Template.plist"

// Descriptor keys written by Render.
const (
	KeyName               = "name"
	KeyVersion            = "version"
	KeyDisplayName        = "display_name"
	KeyDescription        = "description"
	KeyCategory           = "category"
	KeyIconName           = "icon_name"
	KeyRequires           = "requires"
	KeyCatalogs           = "catalogs"
	KeyPreinstallScript   = "preinstall_script"
	KeyInstallcheckScript = "installcheck_script"
	KeyPostinstallScript  = "postinstall_script"
	KeyUninstallScript    = "uninstall_script"
)

// scriptKeys must be present as strings in every template.
var scriptKeys = []string{
	KeyPreinstallScript,
	KeyInstallcheckScript,
	KeyPostinstallScript,
	KeyUninstallScript,
}

//go:embed embedded/AddPrinter-Template.plist
var embeddedTemplate []byte

// Template is an immutable descriptor template.
type Template struct {
	fields map[string]interface{}
	source string
}

// ParseTemplate decodes a plist template and checks its script fields.
func ParseTemplate(data []byte, source string) (*Template, error) {
	fields := make(map[string]interface{})
	if err := plist.Unmarshal(data, &fields); err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateInvalid, "template %s is not a valid plist", source)
	}

	for _, key := range scriptKeys {
		v, ok := fields[key]
		if !ok {
			return nil, errors.Newf(errors.ErrTemplateInvalid, "template %s has no %s", source, key).
				WithDetail("key", key)
		}
		if _, ok := v.(string); !ok {
			return nil, errors.Newf(errors.ErrTemplateInvalid, "template %s: %s must be a string, got %T", source, key, v).
				WithDetail("key", key)
		}
	}

	return &Template{fields: fields, source: source}, nil
}

// LoadTemplate reads and parses the template at path.
func LoadTemplate(fs afero.Fs, path string) (*Template, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateLoad, "failed to read template %s", path).
			WithDetail("path", path)
	}
	return ParseTemplate(data, path)
}

// DefaultTemplate returns the template built into the binary.
func DefaultTemplate() (*Template, error) {
	return ParseTemplate(embeddedTemplate, "embedded:"+TemplateFileName)
}

// ResolveTemplate picks the template for this run: an explicit path first,
// then the configured path, then AddPrinter-Template.plist next to the
// executable, then the embedded template. Explicit and configured paths must
// exist.
func ResolveTemplate(fs afero.Fs, explicitPath, configuredPath string) (*Template, error) {
	logger := logging.GetLogger("pkginfo.template")

	for _, path := range []string{explicitPath, configuredPath} {
		if path == "" {
			continue
		}
		logger.Debug().Str("path", path).Msg("Loading template")
		return LoadTemplate(fs, path)
	}

	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), TemplateFileName)
		if ok, _ := afero.Exists(fs, candidate); ok {
			logger.Debug().Str("path", candidate).Msg("Loading template next to executable")
			return LoadTemplate(fs, candidate)
		}
	}

	logger.Debug().Msg("Using embedded template")
	return DefaultTemplate()
}

// Source describes where the template was loaded from.
func (t *Template) Source() string {
	return t.source
}

// Has reports whether the template defines key.
func (t *Template) Has(key string) bool {
	_, ok := t.fields[key]
	return ok
}

// Fields returns a deep copy of the template dictionary.
func (t *Template) Fields() map[string]interface{} {
	return copyMap(t.fields)
}

func copyMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return copyMap(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	case []byte:
		return append([]byte(nil), val...)
	default:
		return val
	}
}
