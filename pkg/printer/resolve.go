package printer

import (
	"strings"

	"github.com/arthur-debert/printergen/pkg/errors"
	"github.com/arthur-debert/printergen/pkg/logging"
)

// Resolve validates raw values and applies the Schema defaults, producing a
// complete Record. Empty optional values are treated as absent. Nothing is
// cached between calls.
func Resolve(values Values, prefs Lookup, src Source) (*Record, error) {
	logger := logging.GetLogger("printer.resolve")

	resolved := make(map[string]string, len(Schema))
	var name string

	for _, f := range Schema {
		if !f.Required {
			continue
		}
		v := values[f.Column]
		if strings.TrimSpace(v) == "" {
			return nil, missingField(f, src)
		}
		resolved[f.Column] = v

		if f.Column == ColPrinterName {
			name = v
			if err := ValidateName(name); err != nil {
				return nil, err
			}
		}
	}

	for _, f := range Schema {
		if f.Required {
			continue
		}
		v := values[f.Column]
		if strings.TrimSpace(v) == "" {
			v = f.Default(name, prefs)
		}
		resolved[f.Column] = v
	}

	options, err := ParseOptions(resolved[ColOptions])
	if err != nil {
		if pgErr, ok := err.(*errors.Error); ok {
			pgErr.WithDetail("printer", name)
		}
		return nil, err
	}

	record := &Record{
		Name:         name,
		Address:      NormalizeAddress(resolved[ColAddress]),
		Driver:       resolved[ColDriver],
		Location:     resolved[ColLocation],
		DisplayName:  resolved[ColDisplayName],
		Description:  resolved[ColDescription],
		Category:     resolved[ColCategory],
		Options:      options,
		Version:      resolved[ColVersion],
		Requires:     strings.Fields(resolved[ColRequires]),
		Icon:         resolved[ColIcon],
		Catalogs:     strings.Fields(resolved[ColCatalogs]),
		Subdirectory: resolved[ColSubdirectory],
		MunkiName:    resolved[ColMunkiName],
	}

	logger.Debug().
		Str("printer", record.Name).
		Str("address", record.Address).
		Str("driver", record.Driver).
		Int("options", len(record.Options)).
		Msg("resolved printer record")

	return record, nil
}

func missingField(f Field, src Source) error {
	if src == SourceCSV {
		return errors.Newf(errors.ErrMissingArgument, "%s is required", f.Column).
			WithDetail("column", f.Column)
	}
	return errors.Newf(errors.ErrMissingArgument, "Argument --%s is required", f.Flag).
		WithDetail("flag", f.Flag)
}
