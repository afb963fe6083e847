// Package config loads rcflex settings from defaults, a YAML file and
// RCFLEX_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alexiusacademia/rcflex/internal/beam"
	"github.com/alexiusacademia/rcflex/internal/layout"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full rcflex configuration
type Config struct {
	Materials beam.Materials     `yaml:"materials"`
	Covers    Covers             `yaml:"covers"`
	Layout    layout.Params      `yaml:"layout"`
	Solver    beam.SolverOptions `yaml:"solver"`
	Server    ServerConfig       `yaml:"server"`
	Batch     BatchConfig        `yaml:"batch"`
}

// Covers are the depths (cm) from the extreme fiber to the steel centroid
type Covers struct {
	OneLayer    float64 `yaml:"one-layer"`
	TwoLayers   float64 `yaml:"two-layers"`
	Compression float64 `yaml:"compression,omitempty"` // 0 = same as tension cover
}

// ForLayers returns the tension steel cover for one or two layers of bars
func (c Covers) ForLayers(layers int) (float64, error) {
	switch layers {
	case 1:
		return c.OneLayer, nil
	case 2:
		return c.TwoLayers, nil
	}
	return 0, fmt.Errorf("unsupported number of layers %d (want 1 or 2)", layers)
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// Default returns f'c 210, fy 4200, covers of 6 and 8 cm and the
// default detailing and solver settings
func Default() Config {
	return Config{
		Materials: beam.DefaultMaterials(),
		Covers: Covers{
			OneLayer:  6,
			TwoLayers: 8,
		},
		Layout: layout.DefaultParams,
		Solver: beam.DefaultSolverOptions,
		Server: ServerConfig{Addr: ":8080"},
		Batch:  BatchConfig{Workers: 4},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	cfgFile, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(cfgFile, &c); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return c, nil
}

// envFloats maps RCFLEX_* variables to float settings
func (c *Config) envFloats() map[string]*float64 {
	return map[string]*float64{
		"RCFLEX_FC":          &c.Materials.Fc,
		"RCFLEX_FY":          &c.Materials.Fy,
		"RCFLEX_ES":          &c.Materials.Es,
		"RCFLEX_ECU":         &c.Materials.Ecu,
		"RCFLEX_PHI":         &c.Materials.PhiFlexure,
		"RCFLEX_COVER_1":     &c.Covers.OneLayer,
		"RCFLEX_COVER_2":     &c.Covers.TwoLayers,
		"RCFLEX_COVER_COMP":  &c.Covers.Compression,
		"RCFLEX_TOLERANCE":   &c.Solver.Tolerance,
		"RCFLEX_BAR_SPACING": &c.Layout.MinClearSpacing,
	}
}

// ApplyEnv loads the given .env files (".env" when none are named; a missing
// file is not an error) and overlays any RCFLEX_* variables that are set.
func (c *Config) ApplyEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading env file: %w", err)
	}

	for key, dst := range c.envFloats() {
		v, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = f
	}

	if v, ok := os.LookupEnv("RCFLEX_METHOD"); ok {
		m, err := beam.ParseMethod(v)
		if err != nil {
			return fmt.Errorf("RCFLEX_METHOD: %w", err)
		}
		c.Solver.Method = m
	}
	if v, ok := os.LookupEnv("RCFLEX_MAX_ITERATIONS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RCFLEX_MAX_ITERATIONS: %w", err)
		}
		c.Solver.MaxIterations = n
	}
	if v, ok := os.LookupEnv("RCFLEX_FALLBACK"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("RCFLEX_FALLBACK: %w", err)
		}
		c.Solver.Fallback = b
	}
	if v, ok := os.LookupEnv("RCFLEX_WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RCFLEX_WORKERS: %w", err)
		}
		c.Batch.Workers = n
	}
	if v, ok := os.LookupEnv("RCFLEX_ADDR"); ok {
		c.Server.Addr = v
	}
	return nil
}

// Validate checks material invariants, covers, detailing allowances and solver settings
func (c Config) Validate() error {
	if err := c.Materials.Validate(); err != nil {
		return err
	}
	if c.Covers.OneLayer <= 0 || c.Covers.TwoLayers <= 0 || c.Covers.Compression < 0 {
		return fmt.Errorf("covers must be positive: one-layer=%.2f, two-layers=%.2f, compression=%.2f",
			c.Covers.OneLayer, c.Covers.TwoLayers, c.Covers.Compression)
	}
	if c.Layout.Cover < 0 || c.Layout.StirrupDiameter < 0 || c.Layout.MinClearSpacing < 0 {
		return fmt.Errorf("layout allowances must not be negative: %+v", c.Layout)
	}
	if _, err := beam.ParseMethod(string(c.Solver.Method)); err != nil {
		return err
	}
	if c.Solver.MaxIterations <= 0 || c.Solver.Tolerance <= 0 {
		return fmt.Errorf("solver needs positive max-iterations and tolerance: %d, %g",
			c.Solver.MaxIterations, c.Solver.Tolerance)
	}
	if c.Batch.Workers <= 0 {
		return fmt.Errorf("batch workers must be positive: %d", c.Batch.Workers)
	}
	return nil
}

// Geometry builds a section from b, h and the cover for the number of layers
func (c Config) Geometry(b, h float64, layers int) (beam.Geometry, error) {
	r, err := c.Covers.ForLayers(layers)
	if err != nil {
		return beam.Geometry{}, err
	}
	return beam.Geometry{Width: b, Height: h, Cover: r, CoverComp: c.Covers.Compression}, nil
}
