package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/printergen/pkg/errors"
	"github.com/arthur-debert/printergen/pkg/logging"
)

// Preference keys.
const (
	KeyPkginfoExtension = "pkginfo_extension"
	KeyDefaultCatalog   = "default_catalog"
	KeyTemplatePath     = "template_path"
	KeyStylesPath       = "styles_path"
)

// Built-in values, mirrored in embedded/defaults.toml.
const (
	DefaultPkginfoExtension = ".pkginfo"
	DefaultCatalog          = "testing"
)

// Preferences is the merged view of every preference layer.
type Preferences struct {
	PkginfoExtension string `koanf:"pkginfo_extension" toml:"pkginfo_extension"`
	DefaultCatalog   string `koanf:"default_catalog" toml:"default_catalog"`
	TemplatePath     string `koanf:"template_path" toml:"template_path"`
	StylesPath       string `koanf:"styles_path" toml:"styles_path"`

	k      *koanf.Koanf
	loaded []string
}

// Default returns preferences built from the embedded defaults only.
func Default() *Preferences {
	prefs, err := Load(Sources{})
	if err != nil {
		return &Preferences{
			PkginfoExtension: DefaultPkginfoExtension,
			DefaultCatalog:   DefaultCatalog,
		}
	}
	return prefs
}

// Load merges all preference layers described by src.
func Load(src Sources) (*Preferences, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")
	var loaded []string

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	for _, path := range src.ConfigFiles {
		if !exists(path) {
			continue
		}
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
		}
		loaded = append(loaded, path)
		break
	}

	for _, path := range []string{src.MachinePlist, src.UserPlist, src.ManagedPlist} {
		if !exists(path) {
			continue
		}
		// Unreadable preference files are ignored, like munkiimport does.
		if err := k.Load(file.Provider(path), Plist()); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Ignoring unreadable preference file")
			continue
		}
		loaded = append(loaded, path)
	}

	if src.EnvPrefix != "" {
		prefix := src.EnvPrefix
		err := k.Load(env.Provider(prefix, ".", func(s string) string {
			return strings.ToLower(strings.TrimPrefix(s, prefix))
		}), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
		}
	}

	prefs := &Preferences{k: k, loaded: loaded}
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           prefs,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", prefs, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal preferences")
	}

	logger.Debug().
		Strs("sources", loaded).
		Str(KeyPkginfoExtension, prefs.PkginfoExtension).
		Str(KeyDefaultCatalog, prefs.DefaultCatalog).
		Msg("Preferences loaded")

	return prefs, nil
}

// String returns the preference for key, or fallback when it is unset or empty.
func (p *Preferences) String(key, fallback string) string {
	if p == nil || p.k == nil {
		return fallback
	}
	if v := p.k.String(key); v != "" {
		return v
	}
	return fallback
}

// Extension returns the pkginfo file extension.
func (p *Preferences) Extension() string {
	return p.String(KeyPkginfoExtension, DefaultPkginfoExtension)
}

// LoadedFiles lists the files that contributed to the preferences.
func (p *Preferences) LoadedFiles() []string {
	return p.loaded
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
