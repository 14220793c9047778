// SPDX-License-Identifier: Unlicense OR MIT

// Package config provides configuration loading for the converter.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds the converter parameters. Every field has an embedded
// default; a config file only overrides what it names.
type Config struct {
	// RenderNode is the DRM render node device file.
	RenderNode string `yaml:"render_node"`
	// Shader optionally points at an external compute shader source
	// file. Empty means the embedded shader.
	Shader    string          `yaml:"shader"`
	Geometry  GeometryConfig  `yaml:"geometry"`
	Workgroup WorkgroupConfig `yaml:"workgroup"`
	// FenceTimeout bounds the wait for GPU completion after the
	// dispatch.
	FenceTimeout Duration `yaml:"fence_timeout"`
}

// GeometryConfig is the default frame size, overridable with -s.
type GeometryConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// WorkgroupConfig is the compute shader local size. It must divide the
// frame geometry evenly.
type WorkgroupConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Duration wraps time.Duration with YAML parsing of Go duration
// strings such as "100ms".
type Duration time.Duration

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: bad duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Load parses the embedded defaults and, if path is non-empty, applies
// the overrides found in that file.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing embedded defaults: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}
	return cfg, nil
}
