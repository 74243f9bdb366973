// Package constants contains names for the files and directories used by kvsettings.
package constants

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "kvsettings"

	// SettingsFilename is the default settings document file name.
	SettingsFilename = "settings.json"

	// ConfigFilename is the CLI configuration file name.
	ConfigFilename = "config.yaml"

	// LogFilename is the default log file name.
	LogFilename = "kvsettings.log"

	// JournalFilename is the mutation journal database file name.
	JournalFilename = "journal.db"
)
