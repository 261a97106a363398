// SPDX-License-Identifier: MIT

// Package cli implements the flowdiff command line: cobra commands reading
// CSV point sets, running the diffusion pipelines and writing CSV results.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// rootOptions holds the persistent flags and what PersistentPreRunE derives
// from them.
type rootOptions struct {
	ConfigPath string
	LogLevel   string

	cfg    Config
	logger *zap.Logger
}

// NewRootCommand builds the flowdiff command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{cfg: DefaultConfig(), logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "flowdiff",
		Short: "Flow-aware diffusion maps of point clouds",
		Long: "flowdiff computes diffusion-map embeddings of point sets and directed\n" +
			"flow-aware neighbourhoods of points carrying velocity vectors.\n" +
			"Inputs and outputs are CSV, one point per line.",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = opts.logger.Sync()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "YAML config file; flags override its values")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newEmbedCommand(opts),
		newFlowNeighborsCommand(opts),
		newAffinityCommand(opts),
	)

	return cmd
}

// Execute runs the command tree on os.Args.
func Execute() error {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}

	return nil
}

func (o *rootOptions) init(stderr io.Writer) error {
	cfg, err := LoadConfig(o.ConfigPath)
	if err != nil {
		return err
	}
	logger, err := newLogger(o.LogLevel, stderr)
	if err != nil {
		return err
	}
	o.cfg, o.logger = cfg, logger

	return nil
}

// newLogger builds a console logger writing to w.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(zapcore.AddSync(w)), lvl)

	return zap.New(core), nil
}

// openOutput returns the command's stdout, or a created file when path is set.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}

	return f, f.Close, nil
}
