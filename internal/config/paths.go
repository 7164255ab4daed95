package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Paths holds the filesystem layout of an installed instance. All
// paths are anchored at the executable directory, never the current
// working directory, so the binary behaves the same regardless of how
// it is launched.
type Paths struct {
	ExecutableDir string
	DataDir       string
	ReportsDir    string
	WebDir        string
	LogsDir       string

	// Well-known files
	DataFile string
}

// GetPaths returns the application paths relative to the executable location
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	exeDir := filepath.Dir(exe)

	// Test binaries run from the build cache; fall back to the working
	// directory so tests see a sane layout.
	if strings.Contains(exeDir, "go-build") || strings.HasSuffix(filepath.Base(exe), ".test") {
		if wd, err := os.Getwd(); err == nil {
			exeDir = wd
		}
	}

	return PathsFrom(exeDir), nil
}

// PathsFrom builds the standard layout from an explicit base directory
func PathsFrom(baseDir string) *Paths {
	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       filepath.Join(baseDir, "data"),
		ReportsDir:    filepath.Join(baseDir, "reports"),
		WebDir:        filepath.Join(baseDir, "web"),
		LogsDir:       filepath.Join(baseDir, "logs"),
		DataFile:      filepath.Join(baseDir, "data", "main_data.csv"),
	}
}

// EnsureDirectories creates the writable directories if missing
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// LogPathResolution logs all resolved paths at startup for debugging
func (p *Paths) LogPathResolution() {
	slog.Info("Resolved application paths",
		slog.String("executable_dir", p.ExecutableDir),
		slog.String("data_dir", p.DataDir),
		slog.String("reports_dir", p.ReportsDir),
		slog.String("web_dir", p.WebDir),
		slog.String("logs_dir", p.LogsDir))
}

// FileExists reports whether path exists and is a regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
