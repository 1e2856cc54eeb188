package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/touchgate/internal/core/config"
	"github.com/colonyops/touchgate/pkg/utils"
)

type Flags struct {
	LogLevel    string
	LogFile     string
	ConfigPath  string
	PlainIcons  bool
	ProfilePort int

	// Console is the stderr writer behind console logging. Dialogs hold it
	// while they own the terminal.
	Console *utils.DeferredWriter

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "touchgate", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/touchgate/touchgate.log
// On Linux: $XDG_STATE_HOME/touchgate/touchgate.log (defaults to ~/.local/state/touchgate/touchgate.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "touchgate", "touchgate.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "touchgate", "touchgate.log")
	}

	return filepath.Join(home, ".local", "state", "touchgate", "touchgate.log")
}

// DefaultDataDir returns the directory holding the outcome journal, using
// XDG_DATA_HOME when set.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "touchgate")
}

// historyDir resolves the journal directory from config.
func (f *Flags) historyDir() string {
	if f.Config != nil && f.Config.History.Dir != "" {
		return f.Config.History.Dir
	}
	return DefaultDataDir()
}
