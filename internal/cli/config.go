// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/flowdiff/diffusion"
	"github.com/katalvlaran/flowdiff/distance"
	"github.com/katalvlaran/flowdiff/flashlight"
	"github.com/katalvlaran/flowdiff/kernel"
)

// Solver names accepted by --solver.
const (
	SolverAuto    = "auto"
	SolverGonum   = "gonum"
	SolverJacobi  = "jacobi"
	SolverLanczos = "lanczos"
)

// Flow-neighbour defaults of the flow-neighbors command.
const (
	DefaultFlowNeighbors = 5
	DefaultFlowStrength  = 5.0
)

// ErrUnknownSolver reports a --solver value outside auto, gonum, jacobi and lanczos.
var ErrUnknownSolver = errors.New("cli: unknown solver")

// Sigma is a kernel bandwidth read from a flag or the config file.
// Zero means automatic (median k-th-neighbour distance); it prints as "auto".
type Sigma float64

// String implements fmt.Stringer and the flag value interface.
func (s *Sigma) String() string {
	if *s == 0 {
		return "auto"
	}

	return strconv.FormatFloat(float64(*s), 'g', -1, 64)
}

// Set parses "auto" or a positive float.
func (s *Sigma) Set(v string) error {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" || v == "auto" || v == "automatic" {
		*s = 0
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("sigma %q: %w", v, err)
	}
	if f <= 0 {
		return fmt.Errorf("sigma %q: %w", v, kernel.ErrNonPositiveBandwidth)
	}
	*s = Sigma(f)

	return nil
}

// Type names the flag value type in usage output.
func (s *Sigma) Type() string { return "auto|float" }

// UnmarshalYAML accepts the same forms as Set.
func (s *Sigma) UnmarshalYAML(n *yaml.Node) error {
	return s.Set(n.Value)
}

// EmbedConfig parametrizes the embed command.
type EmbedConfig struct {
	Metric         string      `yaml:"metric"`
	Kernel         kernel.Type `yaml:"kernel"`
	Alpha          float64     `yaml:"alpha"`
	Sigma          Sigma       `yaml:"sigma"`
	K              int         `yaml:"k"`
	Threshold      float64     `yaml:"threshold"`
	T              int         `yaml:"t"`
	Eigenpairs     int         `yaml:"eigenpairs"`
	ReportSpectrum bool        `yaml:"report_spectrum"`
	Solver         string      `yaml:"solver"`
}

// FlowConfig parametrizes the flow-neighbors and affinity commands.
type FlowConfig struct {
	K              int     `yaml:"k"`
	FlowStrength   float64 `yaml:"flow_strength"`
	Sigma          Sigma   `yaml:"sigma"`
	SigmaNeighbors int     `yaml:"sigma_neighbors"`
}

// Config is the YAML document read by --config.
type Config struct {
	Embed EmbedConfig `yaml:"embed"`
	Flow  FlowConfig  `yaml:"flow"`
}

// DefaultConfig mirrors the library defaults, except for the flow section
// which uses the flow-neighbour metric settings (k = 5, strength 5).
func DefaultConfig() Config {
	return Config{
		Embed: EmbedConfig{
			Metric:     distance.DefaultMetric,
			Kernel:     kernel.DefaultType,
			Alpha:      diffusion.DefaultAlpha,
			K:          diffusion.DefaultNeighbors,
			Threshold:  diffusion.DefaultThreshold,
			T:          diffusion.DefaultTime,
			Eigenpairs: diffusion.DefaultEigenpairs,
			Solver:     SolverAuto,
		},
		Flow: FlowConfig{
			K:              DefaultFlowNeighbors,
			FlowStrength:   DefaultFlowStrength,
			SigmaNeighbors: flashlight.DefaultNeighbors,
		},
	}
}

// LoadConfig reads path over DefaultConfig; keys absent from the file keep
// their defaults. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err = yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Options translates the embed settings into diffusion options.
func (c EmbedConfig) Options() ([]diffusion.Option, error) {
	if c.Metric == "" {
		c.Metric = distance.DefaultMetric
	}
	opts := []diffusion.Option{
		diffusion.WithMetric(c.Metric),
		diffusion.WithKernelType(c.Kernel),
		diffusion.WithAlpha(c.Alpha),
		diffusion.WithNeighbors(c.K),
		diffusion.WithThreshold(c.Threshold),
		diffusion.WithTime(c.T),
		diffusion.WithEigenpairs(c.Eigenpairs),
	}
	if c.Sigma != 0 {
		opts = append(opts, diffusion.WithSigma(float64(c.Sigma)))
	}
	if c.ReportSpectrum {
		opts = append(opts, diffusion.WithSpectrumReport())
	}

	switch strings.ToLower(c.Solver) {
	case "", SolverAuto:
		opts = append(opts, diffusion.WithSolver(diffusion.AutoSolver{}))
	case SolverGonum:
		opts = append(opts, diffusion.WithSolver(diffusion.GonumSolver{}))
	case SolverJacobi:
		opts = append(opts, diffusion.WithSolver(diffusion.JacobiSolver{}))
	case SolverLanczos:
		opts = append(opts, diffusion.WithSolver(diffusion.LanczosSolver{}))
	default:
		return nil, fmt.Errorf("%q: %w", c.Solver, ErrUnknownSolver)
	}

	return opts, nil
}

// Options translates the flow settings into flashlight options.
func (c FlowConfig) Options() []flashlight.Option {
	opts := []flashlight.Option{
		flashlight.WithFlowStrength(c.FlowStrength),
		flashlight.WithNeighbors(c.SigmaNeighbors),
	}
	if c.Sigma != 0 {
		opts = append(opts, flashlight.WithSigma(float64(c.Sigma)))
	}

	return opts
}
