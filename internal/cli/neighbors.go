// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/flowdiff/diffusion"
	"github.com/katalvlaran/flowdiff/flashlight"
	"github.com/katalvlaran/flowdiff/matrix"
	"github.com/katalvlaran/flowdiff/neighbors"
)

// flowInputs holds the flags shared by the flashlight commands.
type flowInputs struct {
	points, flow, output string
	flags                FlowConfig
}

func (in *flowInputs) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&in.points, "points", "p", "", "CSV file with one point per line")
	f.StringVarP(&in.flow, "flow", "f", "", "CSV file with one flow vector per point")
	f.StringVarP(&in.output, "output", "o", "", "output CSV file (default stdout)")
	f.Float64Var(&in.flags.FlowStrength, "flow-strength", in.flags.FlowStrength, "weight of flow misalignment against distance")
	f.Var(&in.flags.Sigma, "sigma", "kernel bandwidth, or auto")
	f.IntVar(&in.flags.SigmaNeighbors, "sigma-k", in.flags.SigmaNeighbors, "neighbour index of the automatic bandwidth")
	_ = cmd.MarkFlagRequired("points")
	_ = cmd.MarkFlagRequired("flow")
}

// config overlays the flags set on the command line onto base.
func (in *flowInputs) config(cmd *cobra.Command, base FlowConfig) FlowConfig {
	fs := cmd.Flags()
	if fs.Changed("flow-strength") {
		base.FlowStrength = in.flags.FlowStrength
	}
	if fs.Changed("sigma") {
		base.Sigma = in.flags.Sigma
	}
	if fs.Changed("sigma-k") {
		base.SigmaNeighbors = in.flags.SigmaNeighbors
	}
	if fs.Changed("k") {
		base.K = in.flags.K
	}

	return base
}

// affinity reads both inputs and returns the flashlight affinity matrix.
func (in *flowInputs) affinity(root *rootOptions, cfg FlowConfig) (*matrix.Dense, error) {
	X, err := readMatrixFile(in.points)
	if err != nil {
		return nil, err
	}
	F, err := readMatrixFile(in.flow)
	if err != nil {
		return nil, err
	}
	root.logger.Debug("flashlight affinity",
		zap.Int("n", X.Rows()),
		zap.Float64("flow_strength", cfg.FlowStrength),
		zap.Stringer("sigma", &cfg.Sigma),
	)

	return flashlight.Affinity(X, F, append(cfg.Options(), flashlight.WithLogger(root.logger))...)
}

func newFlowNeighborsCommand(root *rootOptions) *cobra.Command {
	in := &flowInputs{flags: DefaultConfig().Flow}

	cmd := &cobra.Command{
		Use:   "flow-neighbors",
		Short: "Write the top-k flow-aligned neighbours of every point as from,to edges",
		Long: "flow-neighbors builds the flashlight affinity of points and their flow,\n" +
			"normalizes every row to sum 1 and keeps the k strongest out-neighbours\n" +
			"of each point.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := in.config(cmd, root.cfg.Flow)
			A, err := in.affinity(root, cfg)
			if err != nil {
				return err
			}
			op, err := diffusion.RowStochastic(A, diffusion.WithLogger(root.logger))
			if err != nil {
				return err
			}
			edges, err := neighbors.FlowNeighbors(op.P, cfg.K)
			if err != nil {
				return err
			}

			w, closeFn, err := openOutput(cmd, in.output)
			if err != nil {
				return err
			}
			if err = writeEdges(w, edges); err != nil {
				_ = closeFn()
				return err
			}

			return closeFn()
		},
	}
	in.register(cmd)
	cmd.Flags().IntVar(&in.flags.K, "k", in.flags.K, "out-neighbours per point")

	return cmd
}
