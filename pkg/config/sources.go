package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// AppName is the directory name used under the XDG config home.
	AppName = "printergen"

	// PreferenceDomain is the munkiimport preference domain shared with Munki.
	PreferenceDomain = "com.googlecode.munki.munkiimport"

	// EnvPrefix prefixes environment overrides, e.g. PRINTERGEN_DEFAULT_CATALOG.
	EnvPrefix = "PRINTERGEN_"
)

// Sources lists where preferences are read from. Empty paths are skipped.
type Sources struct {
	// ConfigFiles are TOML or YAML files, the first existing one is loaded.
	ConfigFiles []string

	// MachinePlist, UserPlist and ManagedPlist are the three preference
	// tiers, loaded in that order so the managed tier wins.
	MachinePlist string
	UserPlist    string
	ManagedPlist string

	// EnvPrefix enables environment overrides when non-empty.
	EnvPrefix string
}

// DefaultSources returns the standard preference locations for this host.
func DefaultSources() Sources {
	plistName := PreferenceDomain + ".plist"

	userPlist := ""
	if home, err := os.UserHomeDir(); err == nil {
		userPlist = filepath.Join(home, "Library", "Preferences", plistName)
	}

	return Sources{
		ConfigFiles:  []string{UserConfigPath(), filepath.Join(ConfigDir(), "config.yaml")},
		MachinePlist: filepath.Join("/Library", "Preferences", plistName),
		UserPlist:    userPlist,
		ManagedPlist: filepath.Join("/Library", "Managed Preferences", plistName),
		EnvPrefix:    EnvPrefix,
	}
}

// ConfigDir returns the printergen directory under the XDG config home.
func ConfigDir() string {
	if dir := os.Getenv("PRINTERGEN_CONFIG_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppName)
}

// UserConfigPath returns the path of the TOML user config file.
func UserConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}
