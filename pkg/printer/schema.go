package printer

import "github.com/arthur-debert/printergen/pkg/config"

// CSV column names. Flag values are mapped onto the same keys.
const (
	ColPrinterName  = "Printer Name"
	ColAddress      = "Address"
	ColDriver       = "Driver"
	ColLocation     = "Location"
	ColDisplayName  = "Display Name"
	ColDescription  = "Description"
	ColCategory     = "Category"
	ColOptions      = "Options"
	ColVersion      = "Version"
	ColRequires     = "Requires"
	ColIcon         = "Icon"
	ColCatalogs     = "Catalogs"
	ColSubdirectory = "Subdirectory"
	ColMunkiName    = "Munki Name"
)

// Values holds raw input for one printer keyed by column name.
type Values map[string]string

// Lookup supplies preference values with a fallback.
type Lookup interface {
	String(key, fallback string) string
}

// DefaultFunc computes the default of an optional field. It receives the
// already validated printer name.
type DefaultFunc func(name string, prefs Lookup) string

// Field describes one input column.
type Field struct {
	Column   string
	Flag     string
	Required bool
	Default  DefaultFunc
}

// Source selects how missing required fields are reported.
type Source int

const (
	SourceFlags Source = iota
	SourceCSV
)

func literal(s string) DefaultFunc {
	return func(string, Lookup) string { return s }
}

func printerName(name string, _ Lookup) string {
	return name
}

func defaultCatalog(_ string, prefs Lookup) string {
	if prefs == nil {
		return config.DefaultCatalog
	}
	return prefs.String(config.KeyDefaultCatalog, config.DefaultCatalog)
}

// Schema lists every recognized input field. Required fields come first,
// in the order they are checked.
var Schema = []Field{
	{Column: ColPrinterName, Flag: "printername", Required: true},
	{Column: ColDriver, Flag: "driver", Required: true},
	{Column: ColAddress, Flag: "address", Required: true},
	{Column: ColLocation, Flag: "location", Default: printerName},
	{Column: ColDisplayName, Flag: "displayname", Default: printerName},
	{Column: ColDescription, Flag: "desc", Default: literal("")},
	{Column: ColCategory, Flag: "category", Default: literal(DefaultCategory)},
	{Column: ColOptions, Flag: "options", Default: literal("")},
	{Column: ColVersion, Flag: "version", Default: literal(DefaultVersion)},
	{Column: ColRequires, Flag: "requires", Default: literal("")},
	{Column: ColIcon, Flag: "icon", Default: literal("")},
	{Column: ColCatalogs, Flag: "catalogs", Default: defaultCatalog},
	{Column: ColSubdirectory, Flag: "subdirectory", Default: literal("")},
	{Column: ColMunkiName, Flag: "munkiname", Default: literal("")},
}

// FieldByColumn returns the schema entry for a column.
func FieldByColumn(column string) (Field, bool) {
	for _, f := range Schema {
		if f.Column == column {
			return f, true
		}
	}
	return Field{}, false
}
