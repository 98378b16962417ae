/*
Package lipbalm styles terminal output marked up with XML-like tags.

Tags name entries of a StyleMap:

	styles := lipbalm.StyleMap{"Path": lipgloss.NewStyle().Bold(true)}
	out, err := lipbalm.ExpandTags(`Wrote <Path>/repo/pkgsinfo</Path>`, styles)

Styles are applied only when the default renderer supports color. Unknown
tags are dropped and their content kept. Text that is not well formed XML is
returned unchanged, so values interpolated by text/template should be escaped
with the "esc" function from Funcs.

The <no-format> tag is only rendered in plain text mode:

	<Success>done</Success><no-format> (ok)</no-format>
*/
package lipbalm
