package pkginfo

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/printergen/pkg/errors"
)

const minimalTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>name</key>
	<string>AddPrinter</string>
	<key>version</key>
	<string>1.0</string>
	<key>preinstall_script</key>
	<string>fetch ADDRESS PRINTERNAME</string>
	<key>installcheck_script</key>
	<string>check PRINTERNAME ADDRESS DRIVER OPTIONS LOCATION DISPLAY_NAME</string>
	<key>postinstall_script</key>
	<string>add PRINTERNAME ADDRESS DRIVER OPTIONS LOCATION DISPLAY_NAME</string>
	<key>uninstall_script</key>
	<string>remove PRINTERNAME</string>
</dict>
</plist>
`

func TestDefaultTemplate(t *testing.T) {
	tmpl, err := DefaultTemplate()
	require.NoError(t, err)

	for _, key := range scriptKeys {
		assert.True(t, tmpl.Has(key), "embedded template should define %s", key)
	}
	assert.True(t, tmpl.Has("installer_type"))
	assert.Contains(t, tmpl.Source(), TemplateFileName)
}

func TestParseTemplate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		tmpl, err := ParseTemplate([]byte(minimalTemplate), "test")
		require.NoError(t, err)
		assert.Equal(t, "test", tmpl.Source())
	})

	t.Run("missing script", func(t *testing.T) {
		data := `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0"><dict><key>name</key><string>x</string></dict></plist>`
		_, err := ParseTemplate([]byte(data), "test")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateInvalid))
	})

	t.Run("not a plist", func(t *testing.T) {
		_, err := ParseTemplate([]byte("garbage"), "test")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateInvalid))
	})
}

func TestLoadTemplate(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/templates/custom.plist", []byte(minimalTemplate), 0644))

	tmpl, err := LoadTemplate(fs, "/templates/custom.plist")
	require.NoError(t, err)
	assert.Equal(t, "/templates/custom.plist", tmpl.Source())

	_, err = LoadTemplate(fs, "/templates/missing.plist")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateLoad))
}

func TestResolveTemplate(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/explicit.plist", []byte(minimalTemplate), 0644))
	require.NoError(t, afero.WriteFile(fs, "/configured.plist", []byte(minimalTemplate), 0644))

	tmpl, err := ResolveTemplate(fs, "/explicit.plist", "/configured.plist")
	require.NoError(t, err)
	assert.Equal(t, "/explicit.plist", tmpl.Source())

	tmpl, err = ResolveTemplate(fs, "", "/configured.plist")
	require.NoError(t, err)
	assert.Equal(t, "/configured.plist", tmpl.Source())

	tmpl, err = ResolveTemplate(fs, "", "")
	require.NoError(t, err)
	assert.Contains(t, tmpl.Source(), "embedded:")

	_, err = ResolveTemplate(fs, "/nope.plist", "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateLoad))
}

func TestTemplateFieldsAreCopies(t *testing.T) {
	tmpl, err := DefaultTemplate()
	require.NoError(t, err)

	fields := tmpl.Fields()
	fields["name"] = "changed"
	catalogs := fields["catalogs"].([]interface{})
	catalogs[0] = "changed"

	again := tmpl.Fields()
	assert.Equal(t, "AddPrinter", again["name"])
	assert.Equal(t, "testing", again["catalogs"].([]interface{})[0])
}
