package pkginfo

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/groob/plist"

	"github.com/arthur-debert/printergen/pkg/errors"
	"github.com/arthur-debert/printergen/pkg/printer"
)

const (
	// PPDDir holds installed printer drivers.
	PPDDir = "/Library/Printers/PPDs/Contents/Resources"

	// driverRoot marks driver values that are already absolute paths.
	driverRoot = "/Library"
)

// Descriptor is a rendered pkginfo dictionary.
type Descriptor map[string]interface{}

// Name returns the Munki item name.
func (d Descriptor) Name() string {
	return stringValue(d[KeyName])
}

// Version returns the item version.
func (d Descriptor) Version() string {
	return stringValue(d[KeyVersion])
}

// Script returns the script stored under key, if any.
func (d Descriptor) Script(key string) (string, bool) {
	s, ok := d[key].(string)
	return s, ok
}

// Encode serializes the descriptor as an XML plist.
func (d Descriptor) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := plist.NewEncoder(&buf)
	enc.Indent("\t")
	if err := enc.Encode(map[string]interface{}(d)); err != nil {
		return nil, errors.Wrapf(err, errors.ErrEncodeDescriptor, "failed to encode %s", d.Name())
	}
	return buf.Bytes(), nil
}

// DriverPath returns the PPD path lpadmin should use for a record.
func DriverPath(r *printer.Record) string {
	driver := r.Driver
	if r.UsesAirPrint() {
		driver = PPDDir + "/" + r.Name + ".ppd"
	}
	if strings.HasPrefix(driver, driverRoot) {
		return driver
	}
	return PPDDir + "/" + driver
}

// Render produces the descriptor for one printer. The template is not
// modified.
func Render(t *Template, r *printer.Record) Descriptor {
	d := Descriptor(t.Fields())

	d[KeyDisplayName] = r.DisplayName
	d[KeyDescription] = r.Description
	d[KeyCategory] = r.Category
	d[KeyName] = r.DescriptorName()
	d[KeyVersion] = r.Version

	if r.Icon != "" {
		d[KeyIconName] = r.Icon
	}

	address := printer.NormalizeAddress(r.Address)

	if r.UsesAirPrint() {
		if script, ok := d.Script(KeyPreinstallScript); ok {
			d[KeyPreinstallScript] = Substitute(script, Placeholders{
				PlaceholderPrinterName: r.Name,
				PlaceholderAddress:     address,
			})
		}
	} else {
		delete(d, KeyPreinstallScript)
	}

	vars := Placeholders{
		PlaceholderPrinterName: r.Name,
		PlaceholderOptions:     printer.FormatOptions(r.Options),
		PlaceholderLocation:    stripQuotes(r.Location),
		PlaceholderDisplayName: stripQuotes(r.DisplayName),
		PlaceholderAddress:     address,
		PlaceholderDriver:      DriverPath(r),
	}
	for _, key := range []string{KeyInstallcheckScript, KeyPostinstallScript} {
		if script, ok := d.Script(key); ok {
			d[key] = Substitute(script, vars)
		}
	}
	if script, ok := d.Script(KeyUninstallScript); ok {
		d[KeyUninstallScript] = Substitute(script, Placeholders{
			PlaceholderPrinterName: r.Name,
		})
	}

	if len(r.Requires) > 0 {
		d[KeyRequires] = append([]string(nil), r.Requires...)
	}
	if len(r.Catalogs) > 0 {
		d[KeyCatalogs] = append([]string(nil), r.Catalogs...)
	}

	return d
}

func stripQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}

func stringValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}
