package genconfig

import (
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/arthur-debert/printergen/pkg/config"
	"github.com/arthur-debert/printergen/pkg/errors"
	"github.com/arthur-debert/printergen/pkg/logging"
	"github.com/arthur-debert/printergen/pkg/types"
)

// GenConfigOptions holds options for the gen-config command
type GenConfigOptions struct {
	// Write stores the config instead of returning it for display.
	Write bool
	// Effective renders the merged preferences instead of the commented
	// defaults.
	Effective bool
	// TargetPath defaults to the user config file.
	TargetPath string

	Preferences *config.Preferences
	FileSystem  afero.Fs
}

// GenConfig outputs or writes the configuration
func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	content := config.GetUserDefaultsContent()
	if opts.Effective {
		prefs := opts.Preferences
		if prefs == nil {
			prefs = config.Default()
		}
		data, err := toml.Marshal(prefs)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to render preferences")
		}
		content = string(data)
	}

	result := &types.GenConfigResult{
		ConfigContent: content,
		FilesWritten:  []string{},
	}

	if !opts.Write {
		logger.Debug().Bool("effective", opts.Effective).Msg("Outputting config to stdout")
		return result, nil
	}

	fs := opts.FileSystem
	if fs == nil {
		fs = afero.NewOsFs()
	}
	target := opts.TargetPath
	if target == "" {
		target = config.UserConfigPath()
	}

	if ok, _ := afero.Exists(fs, target); ok {
		logger.Warn().Str("path", target).Msg("Config file already exists, skipping")
		return result, nil
	}

	dir := filepath.Dir(target)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir)
	}
	if err := afero.WriteFile(fs, target, []byte(content), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", target)
	}

	logger.Info().Str("path", target).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, target)
	return result, nil
}
