package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves the application's working directories relative to the
// process working directory unless configured absolute.
type Paths struct {
	DataDir    string
	ReportsDir string
	LogsDir    string
}

// NewPaths resolves the directories from configuration.
func NewPaths(cfg PathsConfig) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working directory: %w", err)
	}
	return &Paths{
		DataDir:    resolve(wd, cfg.DataDir),
		ReportsDir: resolve(wd, cfg.ReportsDir),
		LogsDir:    resolve(wd, cfg.LogsDir),
	}, nil
}

// EnsureDirectories creates all required directories.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ReportPath returns the path of a report file inside the reports
// directory.
func (p *Paths) ReportPath(name string) string {
	return filepath.Join(p.ReportsDir, name)
}

// LogPath returns the path of a log file inside the logs directory.
func (p *Paths) LogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}

func resolve(base, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}
