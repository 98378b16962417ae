// Package config loads printergen preferences.
//
// Preferences are layered with koanf, lowest precedence first:
//
//   - embedded defaults (embedded/defaults.toml)
//   - the user config file in $XDG_CONFIG_HOME/printergen (config.toml or config.yaml)
//   - /Library/Preferences/com.googlecode.munki.munkiimport.plist
//   - ~/Library/Preferences/com.googlecode.munki.munkiimport.plist
//   - /Library/Managed Preferences/com.googlecode.munki.munkiimport.plist
//   - PRINTERGEN_* environment variables
//
// The plist layers share munkiimport's preference domain so a repo already
// configured for munkiimport needs no extra setup. The config file is the
// fallback for hosts without macOS preference domains.
//
// Preferences are loaded once at startup and passed explicitly to the code
// that needs them.
package config
