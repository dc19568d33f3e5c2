package core

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robottwo/hui/internal/shell"
)

type Paths struct {
	HomeDir    string
	DataDir    string
	LogFile    string
	ConfigFile string
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths == nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}

		defaultPaths = &Paths{
			HomeDir:    homeDir,
			DataDir:    filepath.Join(homeDir, ".local", "share", "hui"),
			LogFile:    filepath.Join(homeDir, ".local", "share", "hui", "hui.zst"),
			ConfigFile: filepath.Join(homeDir, ".config", "hui", "config.yaml"),
		}

		err = os.MkdirAll(defaultPaths.DataDir, 0755)
		if err != nil {
			panic(err)
		}
	}
}

func HomeDir() string {
	ensureDefaultPaths()
	return defaultPaths.HomeDir
}

func DataDir() string {
	ensureDefaultPaths()
	return defaultPaths.DataDir
}

func LogFile() string {
	ensureDefaultPaths()
	return defaultPaths.LogFile
}

func ConfigFile() string {
	ensureDefaultPaths()
	return defaultPaths.ConfigFile
}

// HistoryFile returns the path of the history file the given shell writes,
// under the user's home directory.
func HistoryFile(kind shell.Kind) string {
	ensureDefaultPaths()
	return filepath.Join(defaultPaths.HomeDir, kind.Rules().HistoryFile)
}

// RotateLogFiles removes old log files to prevent unbounded growth, keeping
// the most recent 10 (by modification time). Called when creating a new log
// sink.
func RotateLogFiles() error {
	ensureDefaultPaths()

	entries, err := os.ReadDir(defaultPaths.DataDir)
	if err != nil {
		return err
	}

	var logFiles []logFileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		// Match pattern: hui.<anything>.zst
		if strings.HasPrefix(name, "hui.") && strings.HasSuffix(name, ".zst") {
			info, err := entry.Info()
			if err != nil {
				continue
			}

			logFiles = append(logFiles, logFileInfo{
				name:    name,
				path:    filepath.Join(defaultPaths.DataDir, name),
				modTime: info.ModTime(),
			})
		}
	}

	const maxLogFiles = 10
	if len(logFiles) <= maxLogFiles {
		return nil
	}

	// Sort by modification time, newest first
	sort.Slice(logFiles, func(i, j int) bool {
		return logFiles[i].modTime.After(logFiles[j].modTime)
	})

	for i := maxLogFiles; i < len(logFiles); i++ {
		if err := os.Remove(logFiles[i].path); err != nil {
			return err
		}
	}

	return nil
}

type logFileInfo struct {
	name    string
	path    string
	modTime time.Time
}
