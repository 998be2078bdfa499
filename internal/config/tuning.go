package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig represents the root configuration for segmentation
// tuning parameters. All fields are pointers so a partial JSON file
// only overrides the values it names; the Get* methods supply fallback
// defaults for unset fields.
type TuningConfig struct {
	// Mode clustering params
	ClusterEpsilon *float64 `json:"cluster_epsilon,omitempty"`

	// Crown kernel params
	CrownRadius *float64 `json:"crown_radius,omitempty"`
	CrownHeight *float64 `json:"crown_height,omitempty"`
	KernelWidth *float64 `json:"kernel_width,omitempty"`
}

// Default tuning values. The epsilon default matches the clustering
// core; the crown geometry defaults suit mid-sized conifer crowns.
const (
	DefaultClusterEpsilon = 1.0
	DefaultCrownRadius    = 2.0
	DefaultCrownHeight    = 8.0
	DefaultKernelWidth    = 4.0
)

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from a config file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// DefaultTuningConfig returns a TuningConfig with every field set to
// its default value.
func DefaultTuningConfig() *TuningConfig {
	return &TuningConfig{
		ClusterEpsilon: ptrFloat64(DefaultClusterEpsilon),
		CrownRadius:    ptrFloat64(DefaultCrownRadius),
		CrownHeight:    ptrFloat64(DefaultCrownHeight),
		KernelWidth:    ptrFloat64(DefaultKernelWidth),
	}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under
// the max file size. Fields omitted from the JSON file fall back to
// defaults via the Get* methods, so partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// SaveTuningConfig writes the configuration to a JSON file.
func SaveTuningConfig(cfg *TuningConfig, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks that the configuration values are valid. The kernel
// core itself accepts degenerate inputs and lets IEEE semantics
// propagate; rejecting them is this layer's job.
func (c *TuningConfig) Validate() error {
	if c.ClusterEpsilon != nil && *c.ClusterEpsilon < 0 {
		return fmt.Errorf("cluster_epsilon must be non-negative, got %f", *c.ClusterEpsilon)
	}
	if c.CrownRadius != nil && *c.CrownRadius <= 0 {
		return fmt.Errorf("crown_radius must be positive, got %f", *c.CrownRadius)
	}
	if c.CrownHeight != nil && *c.CrownHeight <= 0 {
		return fmt.Errorf("crown_height must be positive, got %f", *c.CrownHeight)
	}
	if c.KernelWidth != nil && *c.KernelWidth <= 0 {
		return fmt.Errorf("kernel_width must be positive, got %f", *c.KernelWidth)
	}
	return nil
}

// GetClusterEpsilon returns the clustering epsilon or its default.
func (c *TuningConfig) GetClusterEpsilon() float64 {
	if c.ClusterEpsilon == nil {
		return DefaultClusterEpsilon
	}
	return *c.ClusterEpsilon
}

// GetCrownRadius returns the crown cylinder radius or its default.
func (c *TuningConfig) GetCrownRadius() float64 {
	if c.CrownRadius == nil {
		return DefaultCrownRadius
	}
	return *c.CrownRadius
}

// GetCrownHeight returns the crown cylinder height or its default.
func (c *TuningConfig) GetCrownHeight() float64 {
	if c.CrownHeight == nil {
		return DefaultCrownHeight
	}
	return *c.CrownHeight
}

// GetKernelWidth returns the horizontal kernel width or its default.
func (c *TuningConfig) GetKernelWidth() float64 {
	if c.KernelWidth == nil {
		return DefaultKernelWidth
	}
	return *c.KernelWidth
}
