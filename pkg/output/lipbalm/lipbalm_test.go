package lipbalm_test

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/printergen/pkg/output/lipbalm"
)

// colorStyles returns styles bound to a true color renderer, and installs
// that renderer as the lipbalm default.
func colorStyles(t *testing.T, profile termenv.Profile) lipbalm.StyleMap {
	t.Helper()
	var buf bytes.Buffer
	r := lipgloss.NewRenderer(&buf)
	r.SetColorProfile(profile)
	lipbalm.SetDefaultRenderer(r)

	return lipbalm.StyleMap{
		"Path":    r.NewStyle().Bold(true),
		"Error":   r.NewStyle().Foreground(lipgloss.Color("9")),
		"Success": r.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

func TestExpandTags(t *testing.T) {
	t.Run("styled tag", func(t *testing.T) {
		styles := colorStyles(t, termenv.TrueColor)
		result, err := lipbalm.ExpandTags(`<Path>/repo</Path>`, styles)
		require.NoError(t, err)
		assert.Equal(t, styles["Path"].Render("/repo"), result)
		assert.NotEqual(t, "/repo", result)
	})

	t.Run("mixed and nested", func(t *testing.T) {
		styles := colorStyles(t, termenv.TrueColor)
		result, err := lipbalm.ExpandTags(`Wrote <Success>2 files to <Path>/repo</Path></Success>.`, styles)
		require.NoError(t, err)
		expected := "Wrote " + styles["Success"].Render("2 files to "+styles["Path"].Render("/repo")) + "."
		assert.Equal(t, expected, result)
	})

	t.Run("unknown tag keeps content", func(t *testing.T) {
		styles := colorStyles(t, termenv.TrueColor)
		result, err := lipbalm.ExpandTags(`<Nope>text</Nope>`, styles)
		require.NoError(t, err)
		assert.Equal(t, "text", result)
	})

	t.Run("no color", func(t *testing.T) {
		styles := colorStyles(t, termenv.Ascii)
		result, err := lipbalm.ExpandTags(`<Error>Error:</Error> bad<no-format> (!)</no-format>`, styles)
		require.NoError(t, err)
		assert.Equal(t, "Error: bad (!)", result)
	})

	t.Run("no-format hidden with color", func(t *testing.T) {
		styles := colorStyles(t, termenv.TrueColor)
		result, err := lipbalm.ExpandTags(`<Success>ok</Success><no-format> (done)</no-format>`, styles)
		require.NoError(t, err)
		assert.Equal(t, styles["Success"].Render("ok"), result)
	})

	t.Run("invalid XML returned unchanged", func(t *testing.T) {
		styles := colorStyles(t, termenv.TrueColor)
		for _, in := range []string{`<Path>unclosed`, `<Path>a & b</Path>`} {
			result, err := lipbalm.ExpandTags(in, styles)
			require.NoError(t, err)
			assert.Equal(t, in, result)
		}
	})

	t.Run("empty", func(t *testing.T) {
		result, err := lipbalm.ExpandTags("", lipbalm.StyleMap{})
		require.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestEscapedValues(t *testing.T) {
	styles := colorStyles(t, termenv.TrueColor)
	esc := lipbalm.Funcs["esc"].(func(string) string)

	result, err := lipbalm.ExpandTags("<Path>"+esc("/tmp/a&b<c>")+"</Path>", styles)
	require.NoError(t, err)
	assert.Equal(t, styles["Path"].Render("/tmp/a&b<c>"), result)

	assert.Equal(t, "a&b<c>", lipbalm.StripTags("<Path>"+esc("a&b<c>")+"</Path>"))
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "<Bold>Hello</Bold> <Italic>World</Italic>", "Hello World"},
		{"nested", "<a><b>Deep</b></a>", "Deep"},
		{"plain", "Plain text", "Plain text"},
		{"newlines", "<L1>First</L1>\n<L2>Second</L2>", "First\nSecond"},
		{"no-format kept", "<Bold>Styled</Bold> <no-format>Plain</no-format>", "Styled Plain"},
		{"self closing", "Before<br/>After", "BeforeAfter"},
		{"invalid", "Not <valid XML", "Not <valid XML"},
		{"spaces", "<tag>  spaced  </tag>", "  spaced  "},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, lipbalm.StripTags(tt.input))
		})
	}
}
