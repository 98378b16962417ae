package printer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/printergen/pkg/errors"
)

type prefsMap map[string]string

func (p prefsMap) String(key, fallback string) string {
	if v, ok := p[key]; ok {
		return v
	}
	return fallback
}

func required() Values {
	return Values{
		ColPrinterName: "HP1",
		ColDriver:      "hp.ppd",
		ColAddress:     "10.0.0.5",
	}
}

func TestResolveDefaults(t *testing.T) {
	r, err := Resolve(required(), nil, SourceFlags)
	require.NoError(t, err)

	assert.Equal(t, &Record{
		Name:        "HP1",
		Address:     "lpd://10.0.0.5",
		Driver:      "hp.ppd",
		Location:    "HP1",
		DisplayName: "HP1",
		Category:    "Printers",
		Version:     "1.0",
		Requires:    []string{},
		Catalogs:    []string{"testing"},
	}, r)
}

func TestResolveAllValues(t *testing.T) {
	values := Values{
		ColPrinterName:  "Lab",
		ColDriver:       AirPrintDriver,
		ColAddress:      "ipp://lab.example.com",
		ColLocation:     "Room 12",
		ColDisplayName:  "Lab Printer",
		ColDescription:  "Colour laser",
		ColCategory:     "Lab",
		ColOptions:      "Duplex=None Tray=2",
		ColVersion:      "2.1",
		ColRequires:     "airprint-ppd LabDriver",
		ColIcon:         "lab.png",
		ColCatalogs:     "testing production",
		ColSubdirectory: "printers/lab",
		ColMunkiName:    "lab-printer",
	}

	r, err := Resolve(values, nil, SourceCSV)
	require.NoError(t, err)

	assert.Equal(t, "ipp://lab.example.com", r.Address)
	assert.Equal(t, "Room 12", r.Location)
	assert.Equal(t, "Lab Printer", r.DisplayName)
	assert.Equal(t, "Colour laser", r.Description)
	assert.Equal(t, "Lab", r.Category)
	assert.Equal(t, []Option{{Key: "Duplex", Value: "None"}, {Key: "Tray", Value: "2"}}, r.Options)
	assert.Equal(t, "2.1", r.Version)
	assert.Equal(t, []string{"airprint-ppd", "LabDriver"}, r.Requires)
	assert.Equal(t, "lab.png", r.Icon)
	assert.Equal(t, []string{"testing", "production"}, r.Catalogs)
	assert.Equal(t, "printers/lab", r.Subdirectory)
	assert.Equal(t, "lab-printer", r.DescriptorName())
}

func TestResolveBlankValuesUseDefaults(t *testing.T) {
	values := required()
	values[ColLocation] = "  "
	values[ColVersion] = ""

	r, err := Resolve(values, nil, SourceCSV)
	require.NoError(t, err)
	assert.Equal(t, "HP1", r.Location)
	assert.Equal(t, "1.0", r.Version)
}

func TestResolveCatalogPreference(t *testing.T) {
	r, err := Resolve(required(), prefsMap{"default_catalog": "production"}, SourceFlags)
	require.NoError(t, err)
	assert.Equal(t, []string{"production"}, r.Catalogs)
}

func TestResolveMissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		drop    string
		src     Source
		message string
	}{
		{name: "flag name", drop: ColPrinterName, src: SourceFlags, message: "Argument --printername is required"},
		{name: "flag driver", drop: ColDriver, src: SourceFlags, message: "Argument --driver is required"},
		{name: "flag address", drop: ColAddress, src: SourceFlags, message: "Argument --address is required"},
		{name: "csv driver", drop: ColDriver, src: SourceCSV, message: "Driver is required"},
		{name: "csv address", drop: ColAddress, src: SourceCSV, message: "Address is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := required()
			delete(values, tt.drop)

			_, err := Resolve(values, nil, tt.src)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrMissingArgument))
			assert.Equal(t, tt.message, errors.Message(err))
			assert.True(t, errors.ShowsUsage(err))
		})
	}
}

func TestResolveChecksRequiredInOrder(t *testing.T) {
	_, err := Resolve(Values{ColAddress: "10.0.0.5"}, nil, SourceFlags)
	require.Error(t, err)
	assert.Equal(t, "Argument --printername is required", errors.Message(err))
}

func TestResolveInvalidName(t *testing.T) {
	values := required()
	values[ColPrinterName] = "HP 1"

	_, err := Resolve(values, nil, SourceFlags)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPrinterName))
	assert.Equal(t, "HP 1", errors.GetErrorDetails(err)["name"])
}

func TestResolveMalformedOptions(t *testing.T) {
	values := required()
	values[ColOptions] = "Duplex"

	_, err := Resolve(values, nil, SourceFlags)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedOptions))
	assert.Equal(t, "HP1", errors.GetErrorDetails(err)["printer"])
}

func TestFieldByColumn(t *testing.T) {
	f, ok := FieldByColumn(ColMunkiName)
	require.True(t, ok)
	assert.Equal(t, "munkiname", f.Flag)

	_, ok = FieldByColumn("Colour")
	assert.False(t, ok)
}
