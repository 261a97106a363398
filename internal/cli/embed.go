// SPDX-License-Identifier: MIT

package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/flowdiff/diffusion"
	"github.com/katalvlaran/flowdiff/distance"
	"github.com/katalvlaran/flowdiff/kernel"
)

func newEmbedCommand(root *rootOptions) *cobra.Command {
	var (
		points, output string
		kernelName     string
		flags          = DefaultConfig().Embed
	)

	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Write the diffusion coordinates of a point set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := root.cfg.Embed
			fs := cmd.Flags()
			if fs.Changed("metric") {
				cfg.Metric = flags.Metric
			}
			if fs.Changed("kernel") {
				typ, err := kernel.ParseType(kernelName)
				if err != nil {
					return err
				}
				cfg.Kernel = typ
			}
			if fs.Changed("alpha") {
				cfg.Alpha = flags.Alpha
			}
			if fs.Changed("sigma") {
				cfg.Sigma = flags.Sigma
			}
			if fs.Changed("k") {
				cfg.K = flags.K
			}
			if fs.Changed("threshold") {
				cfg.Threshold = flags.Threshold
			}
			if fs.Changed("t") {
				cfg.T = flags.T
			}
			if fs.Changed("eigenpairs") {
				cfg.Eigenpairs = flags.Eigenpairs
			}
			if fs.Changed("report-spectrum") {
				cfg.ReportSpectrum = flags.ReportSpectrum
			}
			if fs.Changed("solver") {
				cfg.Solver = flags.Solver
			}

			opts, err := cfg.Options()
			if err != nil {
				return err
			}
			X, err := readMatrixFile(points)
			if err != nil {
				return err
			}
			root.logger.Debug("embedding", zap.String("points", points), zap.Int("n", X.Rows()), zap.Int("d", X.Cols()))

			emb, err := diffusion.MapFromPoints(X, append(opts, diffusion.WithLogger(root.logger))...)
			if err != nil {
				return err
			}

			w, closeFn, err := openOutput(cmd, output)
			if err != nil {
				return err
			}
			if err = writeMatrix(w, emb.Coords); err != nil {
				_ = closeFn()
				return err
			}

			return closeFn()
		},
	}

	f := cmd.Flags()
	f.StringVarP(&points, "points", "p", "", "CSV file with one point per line")
	f.StringVarP(&output, "output", "o", "", "output CSV file (default stdout)")
	f.StringVar(&flags.Metric, "metric", flags.Metric, "distance metric ("+strings.Join(distance.Names(), ", ")+")")
	f.StringVar(&kernelName, "kernel", flags.Kernel.String(), "kernel type (anisotropic, adaptive)")
	f.Float64Var(&flags.Alpha, "alpha", flags.Alpha, "density renormalization degree in [0, 1]")
	f.Var(&flags.Sigma, "sigma", "kernel bandwidth, or auto")
	f.IntVar(&flags.K, "k", flags.K, "neighbour index for the automatic bandwidth and adaptive radii")
	f.Float64Var(&flags.Threshold, "threshold", flags.Threshold, "relative sparsification threshold")
	f.IntVar(&flags.T, "t", flags.T, "diffusion time")
	f.IntVar(&flags.Eigenpairs, "eigenpairs", flags.Eigenpairs, "eigenpairs to compute, the trivial one included")
	f.BoolVar(&flags.ReportSpectrum, "report-spectrum", false, "log the eigenvalues at info level")
	f.StringVar(&flags.Solver, "solver", flags.Solver, "eigensolver (auto, gonum, jacobi, lanczos)")
	_ = cmd.MarkFlagRequired("points")

	return cmd
}
