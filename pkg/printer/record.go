package printer

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/printergen/pkg/errors"
)

const (
	// AirPrintDriver asks the install scripts to fetch a PPD from the printer
	// at install time instead of using a driver file.
	AirPrintDriver = "airprint-ppd"

	// DefaultScheme is prepended to addresses given without a protocol.
	DefaultScheme = "lpd://"

	// DescriptorPrefix is prepended to the printer name when no Munki name
	// is given.
	DescriptorPrefix = "AddPrinter_"

	DefaultCategory = "Printers"
	DefaultVersion  = "1.0"
)

// invalidName matches characters lpadmin refuses in queue names.
var invalidName = regexp.MustCompile(`[\s#/]`)

// Option is one Key=Value printer option, in the order given.
type Option struct {
	Key   string
	Value string
}

// Record is the resolved description of one printer.
type Record struct {
	Name         string
	Address      string
	Driver       string
	Location     string
	DisplayName  string
	Description  string
	Category     string
	Options      []Option
	Version      string
	Requires     []string
	Icon         string
	Catalogs     []string
	Subdirectory string
	MunkiName    string
}

// DescriptorName returns the Munki item name for the record.
func (r *Record) DescriptorName() string {
	if r.MunkiName != "" {
		return r.MunkiName
	}
	return DescriptorPrefix + r.Name
}

// UsesAirPrint reports whether the driver is resolved at install time.
func (r *Record) UsesAirPrint() bool {
	return r.Driver == AirPrintDriver
}

// ValidateName rejects empty queue names and names containing whitespace,
// '#' or '/'.
func ValidateName(name string) error {
	if name == "" {
		return errors.New(errors.ErrMissingArgument, "Printer name is required")
	}
	if invalidName.MatchString(name) {
		return errors.New(errors.ErrInvalidPrinterName,
			"Printernames can't contain spaces, tabs, # or /.").
			WithDetail("name", name)
	}
	return nil
}

// NormalizeAddress prepends DefaultScheme unless the address already names
// a protocol.
func NormalizeAddress(address string) string {
	if strings.Contains(address, "://") {
		return address
	}
	return DefaultScheme + address
}
