package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dargo/pkg/edit"
)

type rmOptions struct {
	manifest string
	dev      bool
	build    bool
	target   string
	dry      bool
}

func (c *CLI) rmCommand() *cobra.Command {
	var opts rmOptions
	cmd := &cobra.Command{
		Use:     "rm <crate>...",
		Short:   "Remove dependencies from your Cargo.toml",
		Example: "  dargo rm serde\n  dargo rm --dev tempfile",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRm(cmd.Context(), args, opts)
		},
	}

	manifestFlag(cmd, &opts.manifest)
	kindFlags(cmd, &opts.dev, &opts.build, "remove from")
	cmd.Flags().StringVar(&opts.target, "target", "", "remove from the dependencies of a target platform")
	cmd.Flags().BoolVar(&opts.dry, "dry", false, "print the changes without writing them")

	return cmd
}

func (c *CLI) runRm(ctx context.Context, names []string, opts rmOptions) error {
	m, err := loadManifest(opts.manifest)
	if err != nil {
		return err
	}

	plan := edit.PlanRemove(m, names, kindFromFlags(opts.dev, opts.build), opts.target)
	c.printWarnings(plan)
	c.printRemovals(plan.Changes)
	return c.commit(ctx, plan, opts.dry)
}
