package types

// GenerateResult holds the result of a generate run. Template is where the
// descriptor template was loaded from; Delimiter is the quoted CSV delimiter
// and stays empty outside CSV mode.
type GenerateResult struct {
	Template  string          `json:"template"`
	OutDir    string          `json:"outDir"`
	Files     []GeneratedFile `json:"files"`
	DryRun    bool            `json:"dryRun"`
	Delimiter string          `json:"delimiter,omitempty"`
}

// GeneratedFile describes one rendered pkginfo.
type GeneratedFile struct {
	Printer string `json:"printer"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Path    string `json:"path"`
	Written bool   `json:"written"`
}

// GenConfigResult holds the result of the 'gen-config' command.
type GenConfigResult struct {
	ConfigContent string   `json:"configContent"`
	FilesWritten  []string `json:"filesWritten"`
}
