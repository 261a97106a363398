// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"
)

func newAffinityCommand(root *rootOptions) *cobra.Command {
	in := &flowInputs{flags: DefaultConfig().Flow}

	cmd := &cobra.Command{
		Use:   "affinity",
		Short: "Write the dense flashlight affinity matrix of points and their flow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			A, err := in.affinity(root, in.config(cmd, root.cfg.Flow))
			if err != nil {
				return err
			}

			w, closeFn, err := openOutput(cmd, in.output)
			if err != nil {
				return err
			}
			if err = writeMatrix(w, A); err != nil {
				_ = closeFn()
				return err
			}

			return closeFn()
		},
	}
	in.register(cmd)

	return cmd
}
