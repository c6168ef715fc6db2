// Package projectconfig provides the ProjectConfig struct and loader for
// .goalscan.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up from the working directory.
const FileName = ".goalscan.yaml"

// Default values for project configuration. These are the single source of
// truth; New() and the CLI flag defaults reference them.
const (
	DefaultRoot      = "."
	DefaultGoalsFile = "data/feature-goals.json"

	DefaultWorkers = 4

	DefaultServerPort = 3000
)

// PathsConfig holds the scan root and goals document locations.
type PathsConfig struct {
	Root  string `yaml:"root,omitempty"`
	Goals string `yaml:"goals,omitempty"`
}

// ScanConfig holds scan execution settings.
type ScanConfig struct {
	Workers int `yaml:"workers,omitempty"`
}

// ServerConfig holds API server settings.
type ServerConfig struct {
	Port        int      `yaml:"port,omitempty"`
	CORSOrigins []string `yaml:"cors_origins,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .goalscan.yaml.
type ProjectConfig struct {
	Paths  PathsConfig  `yaml:"paths,omitempty"`
	Scan   ScanConfig   `yaml:"scan,omitempty"`
	Server ServerConfig `yaml:"server,omitempty"`
	// Detectors holds per-detector parameter overrides keyed by detector id.
	Detectors map[string]map[string]any `yaml:"detectors,omitempty"`

	// Dir is the directory relative paths resolve against: the directory
	// holding the config file, or the start directory when none was found.
	Dir string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			Root:  DefaultRoot,
			Goals: DefaultGoalsFile,
		},
		Scan: ScanConfig{
			Workers: DefaultWorkers,
		},
		Server: ServerConfig{
			Port: DefaultServerPort,
		},
	}
}

// Load finds .goalscan.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", startDir, err)
	}
	cfg.Dir = absStart

	data, dir, err := findConfigFile(absStart)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	mergeConfig(cfg, &fileCfg)
	cfg.Dir = dir
	return cfg, nil
}

// findConfigFile walks up from dir looking for .goalscan.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, string, error) {
	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, dir, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, "", os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Paths
	if src.Paths.Root != "" {
		dst.Paths.Root = src.Paths.Root
	}
	if src.Paths.Goals != "" {
		dst.Paths.Goals = src.Paths.Goals
	}

	// Scan
	if src.Scan.Workers != 0 {
		dst.Scan.Workers = src.Scan.Workers
	}

	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if len(src.Server.CORSOrigins) > 0 {
		dst.Server.CORSOrigins = src.Server.CORSOrigins
	}

	if len(src.Detectors) > 0 {
		dst.Detectors = src.Detectors
	}
}

// Resolve returns p unchanged when absolute, otherwise joined onto Dir.
func (c *ProjectConfig) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// RootPath returns the absolute scan root.
func (c *ProjectConfig) RootPath() string {
	return c.Resolve(c.Paths.Root)
}

// GoalsPath returns the absolute path of the goals document. A relative
// goals path is resolved against the scan root.
func (c *ProjectConfig) GoalsPath() string {
	if filepath.IsAbs(c.Paths.Goals) {
		return c.Paths.Goals
	}
	return filepath.Join(c.RootPath(), c.Paths.Goals)
}
