package printergen

import "embed"

//go:embed topics/*.md
var topicsFS embed.FS
