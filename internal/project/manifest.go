package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"tycho/internal/cast"
)

// Manifest is a parsed tycho.toml plus where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the tycho.toml layout.
type Config struct {
	Project  ProjectConfig  `toml:"project"`
	Analysis AnalysisConfig `toml:"analysis"`
	Output   OutputConfig   `toml:"output"`
}

// ProjectConfig names the analyzed project.
type ProjectConfig struct {
	Name string `toml:"name"`
}

// AnalysisConfig holds the options the type engine reacts to.
type AnalysisConfig struct {
	// Paths lists directories with .tyq query files, relative to the root.
	Paths []string `toml:"paths"`
	// AllowImplicitScalarCast gates the loose scalar coercion rules.
	AllowImplicitScalarCast bool `toml:"allow_implicit_scalar_cast"`
}

// OutputConfig controls diagnostic presentation.
type OutputConfig struct {
	Color          string `toml:"color"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

// CastConfig derives the casting engine configuration.
func (c Config) CastConfig() cast.Config {
	return cast.Config{AllowImplicitScalarCast: c.Analysis.AllowImplicitScalarCast}
}

// DefaultConfig returns the configuration used when no manifest exists.
func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{Color: "auto", MaxDiagnostics: 100},
	}
}

// LoadManifest walks up from startDir, parses tycho.toml and applies
// defaults. ok is false when no manifest was found; that is not an error.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindTychoToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig parses and validates one tycho.toml file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return Config{}, fmt.Errorf("%s: missing [project]", path)
	}
	if !meta.IsDefined("project", "name") || strings.TrimSpace(cfg.Project.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [project].name", path)
	}
	switch cfg.Output.Color {
	case "auto", "on", "off":
	default:
		return Config{}, fmt.Errorf("%s: [output].color must be auto, on or off", path)
	}
	if cfg.Output.MaxDiagnostics <= 0 {
		return Config{}, fmt.Errorf("%s: [output].max_diagnostics must be positive", path)
	}
	return cfg, nil
}
