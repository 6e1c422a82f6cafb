package session

import (
	"os"
	"path/filepath"
)

// BaseDir returns ~/.tgclone, or $TGC_HOME when set.
func BaseDir() string {
	if dir := os.Getenv("TGC_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".tgclone")
}

// Dir returns the session-specific directory.
func Dir(name string) string {
	return filepath.Join(BaseDir(), "sessions", name)
}

// SocketPath returns the UDS socket path for a session.
func SocketPath(name string) string {
	return filepath.Join(Dir(name), "daemon.sock")
}

// LockPath returns the lock file path for a session.
func LockPath(name string) string {
	return filepath.Join(Dir(name), "LOCK")
}

// PrefsDBPath returns the client's preferences database path.
func PrefsDBPath(name string) string {
	return filepath.Join(Dir(name), "prefs.db")
}

// DirectoryDBPath returns the daemon's account directory database path.
func DirectoryDBPath(name string) string {
	return filepath.Join(Dir(name), "directory.db")
}

// LogDir returns the log directory for a session.
func LogDir(name string) string {
	return filepath.Join(Dir(name), "logs")
}

// LogPath returns the log file path for a component ("tgcd", "tgc").
func LogPath(name, component string) string {
	return filepath.Join(LogDir(name), component+".log")
}

// ConfigPath returns the global config file path.
func ConfigPath() string {
	return filepath.Join(BaseDir(), "config.toml")
}

// EnsureDir creates the session directory tree with proper permissions.
func EnsureDir(name string) error {
	for _, d := range []string{Dir(name), LogDir(name)} {
		if err := os.MkdirAll(d, 0700); err != nil {
			return err
		}
	}
	return nil
}
