package lipbalm

import (
	"html"
	"strings"
	"sync"
	"text/template"

	"github.com/beevik/etree"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// StyleMap maps tag names to styles.
type StyleMap map[string]lipgloss.Style

const (
	rootTag     = "lipbalm-root"
	noFormatTag = "no-format"
)

var (
	mu       sync.RWMutex
	renderer = lipgloss.DefaultRenderer()
)

// SetDefaultRenderer sets the renderer whose color profile decides whether
// styles are applied.
func SetDefaultRenderer(r *lipgloss.Renderer) {
	mu.Lock()
	defer mu.Unlock()
	renderer = r
}

func colorEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return renderer.ColorProfile() != termenv.Ascii
}

// Funcs are the template functions for text that is later passed to
// ExpandTags or StripTags.
var Funcs = template.FuncMap{
	"esc": html.EscapeString,
}

// ExpandTags applies styles to tagged text.
func ExpandTags(s string, styles StyleMap) (string, error) {
	if s == "" {
		return "", nil
	}
	root, ok := parse(s)
	if !ok {
		return s, nil
	}

	color := colorEnabled()
	var b strings.Builder
	expand(&b, root, styles, color)
	return b.String(), nil
}

// StripTags removes all tags, keeping no-format content.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	root, ok := parse(s)
	if !ok {
		return s
	}
	var b strings.Builder
	expand(&b, root, nil, false)
	return b.String()
}

func parse(s string) (*etree.Element, bool) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString("<" + rootTag + ">" + s + "</" + rootTag + ">"); err != nil {
		return nil, false
	}
	root := doc.Root()
	return root, root != nil
}

func expand(b *strings.Builder, el *etree.Element, styles StyleMap, color bool) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			if t.Tag == noFormatTag {
				if !color {
					expand(b, t, styles, color)
				}
				continue
			}

			var inner strings.Builder
			expand(&inner, t, styles, color)
			style, ok := styles[t.Tag]
			if ok && color {
				b.WriteString(style.Render(inner.String()))
			} else {
				b.WriteString(inner.String())
			}
		}
	}
}
