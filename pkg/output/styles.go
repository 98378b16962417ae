package output

import (
	"github.com/arthur-debert/printergen/pkg/errors"
	"github.com/arthur-debert/printergen/pkg/logging"
	"github.com/arthur-debert/printergen/pkg/output/styles"
)

// LoadStylesFromFile layers the styles in path over the built-in ones. An
// empty path keeps the built-in styles.
func LoadStylesFromFile(path string) error {
	if path == "" {
		return nil
	}
	if err := styles.LoadStyles(path); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to load styles from %s", path).
			WithDetail("path", path)
	}

	logger := logging.GetLogger("output.styles")
	logger.Debug().Str("path", path).Msg("Loaded custom styles")
	return nil
}
