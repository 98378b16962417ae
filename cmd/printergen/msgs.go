package printergen

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Generate Munki pkginfo files that install printers"
	MsgVersionShort    = "Print version information"
	MsgGenConfigShort  = "Print or write the default configuration"
	MsgCompletionShort = "Generate shell completion script"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."

	// Flag descriptions
	MsgFlagPrinterName  = "Name of the printer queue. May not contain spaces, tabs, # or /. Required."
	MsgFlagDriver       = "Driver file in /Library/Printers/PPDs/Contents/Resources (relative or full path), or 'airprint-ppd' for AirPrint printers. Required."
	MsgFlagAddress      = "IP or DNS address of the printer. Defaults to lpd:// when no protocol is given. Required."
	MsgFlagLocation     = "Location of the printer. Defaults to the printer name."
	MsgFlagDisplayName  = "Display name of the printer and the pkginfo. Defaults to the printer name."
	MsgFlagDesc         = "Description of the pkginfo."
	MsgFlagCategory     = "Category of the pkginfo. Defaults to 'Printers'."
	MsgFlagRequires     = "Space separated list of required items, e.g. 'CanonDriver1 CanonDriver2'. Add airprint-ppd for AirPrint printers."
	MsgFlagOptions      = "Printer options as 'Option1=Value Option2=Value'. May be repeated."
	MsgFlagVersion      = "Version of the pkginfo."
	MsgFlagIcon         = "Name of an icon in the munki repo."
	MsgFlagCatalogs     = "Space separated list of catalogs. Defaults to the default_catalog preference."
	MsgFlagMunkiName    = "Name of the munki item. Defaults to AddPrinter_<printername>."
	MsgFlagSubdirectory = "Subdirectory of the repo's pkgsinfo directory. Only used with --repo."
	MsgFlagRepo         = "Path to the munki repo. Files go to its pkgsinfo directory instead of the current directory."
	MsgFlagCSV          = "CSV file with one printer per row. Other printer flags are ignored."
	MsgFlagTemplate     = "Template plist to use instead of the built-in one."
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun       = "Print the generated pkginfo files instead of writing them"
	MsgFlagWrite        = "Write the configuration file instead of printing it"
	MsgFlagEffective    = "Print the merged preferences instead of the commented defaults"

	// Status messages
	MsgConfigWritten = "Wrote %s\n"
	MsgConfigExists  = "%s already exists, not overwritten\n"

	// Warnings
	MsgWarnFlagsIgnored = "Ignoring %s: printer values come from the CSV file"

	// Error messages
	MsgErrUnexpectedArgs = "unexpected arguments: %s"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/gen-config-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
