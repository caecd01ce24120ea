package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"implgen/internal/parser"
)

// projectManifest is an implgen.toml found in or above the working
// directory. All settings are optional; flags win over the manifest.
type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Attributes attributesConfig `toml:"attributes"`
	Output     outputConfig     `toml:"output"`
	Cache      cacheConfig      `toml:"cache"`
}

type attributesConfig struct {
	Expand    string `toml:"expand"`
	ExpandFor string `toml:"expand_for"`
}

type outputConfig struct {
	Dir string `toml:"dir"`
}

type cacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

func findImplgenToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "implgen.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findImplgenToml(startDir)
	if err != nil || !ok {
		return nil, false, err
	}

	var cfg projectConfig
	if _, err := toml.DecodeFile(manifestPath, &cfg); err != nil {
		return nil, false, fmt.Errorf("failed to parse %s: %w", manifestPath, err)
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// resolveConfig merges the defaults, the manifest, and explicit flags into
// the attribute configuration the engine runs with. Flags win.
func resolveConfig(cmd *cobra.Command, manifest *projectManifest) parser.Config {
	cfg := parser.DefaultConfig()
	if manifest != nil {
		if a := manifest.Config.Attributes.Expand; a != "" {
			cfg.Attr = a
		}
		if a := manifest.Config.Attributes.ExpandFor; a != "" {
			cfg.OverrideAttr = a
		}
	}
	if a, _ := cmd.Root().PersistentFlags().GetString("attr"); a != "" {
		cfg.Attr = a
	}
	if a, _ := cmd.Root().PersistentFlags().GetString("override-attr"); a != "" {
		cfg.OverrideAttr = a
	}
	return cfg
}
