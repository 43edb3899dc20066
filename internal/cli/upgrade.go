package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dargo/pkg/edit"
	"github.com/matzehuels/dargo/pkg/registry"
)

type upgradeOptions struct {
	manifest    string
	only        []string
	exclude     []string
	pre         bool
	dry         bool
	update      bool
	force       bool
	interactive bool
}

func (c *CLI) upgradeCommand() *cobra.Command {
	var opts upgradeOptions
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade dependencies in your Cargo.toml",
		Long: `Upgrade dependencies in your Cargo.toml.

Dependencies pinned to an exact version ("1.2.3") are moved to the latest
release. Range requirements ("^1.2", "~0.3", ">=1") already follow new
releases and are left alone unless --force collapses them to the latest
version. Path, git and workspace dependencies are never touched. In a
workspace every member is upgraded in turn.`,
		Example: `  dargo upgrade
  dargo upgrade --only serde,tokio --dry
  dargo upgrade --update --force --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runUpgrade(cmd.Context(), opts)
		},
	}

	manifestFlag(cmd, &opts.manifest)
	cmd.Flags().StringSliceVar(&opts.only, "only", nil, "upgrade only these dependencies")
	cmd.Flags().StringSliceVar(&opts.exclude, "exclude", nil, "do not upgrade these dependencies")
	cmd.Flags().BoolVar(&opts.pre, "pre", false, "consider prerelease versions (e.g. 0.3.0-alpha.15)")
	cmd.Flags().BoolVar(&opts.dry, "dry", false, "print the changes without writing them")
	cmd.Flags().BoolVar(&opts.update, "update", false, "refresh the index before querying")
	cmd.Flags().BoolVar(&opts.force, "force", false, "replace range requirements with the latest version too")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "choose which upgrades to apply")
	cmd.MarkFlagsMutuallyExclusive("only", "exclude")

	return cmd
}

func (c *CLI) runUpgrade(ctx context.Context, opts upgradeOptions) error {
	logger := loggerFromContext(ctx)

	root, err := loadManifest(opts.manifest)
	if err != nil {
		return err
	}
	members, err := root.Members()
	if err != nil {
		return err
	}
	idx, closeIndex, err := c.openIndex(ctx)
	if err != nil {
		return err
	}
	defer closeIndex()

	upOpts := edit.UpgradeOptions{
		Only:            opts.only,
		Exclude:         opts.exclude,
		AllowPrerelease: opts.pre,
		Force:           opts.force,
	}
	if opts.update {
		upOpts.Updater = registry.NewUpdater()
	}

	for _, m := range members {
		prog := newProgress(logger)
		var plan *edit.Plan
		err := c.withSpinner(ctx, "Checking "+m.Name(), func() error {
			var err error
			plan, err = edit.PlanUpgrade(ctx, m, idx, upOpts)
			return err
		})
		if err != nil {
			return err
		}
		prog.done("planned upgrade of " + m.Name())

		c.printWarnings(plan)
		if opts.interactive && !plan.Empty() {
			chosen, err := c.pickUpgrades(ctx, m.Name(), plan.Changes)
			if err != nil {
				return err
			}
			plan.Changes = chosen
		}
		c.printUpgrades(m.Name(), plan.Changes)
		if err := c.commit(ctx, plan, opts.dry); err != nil {
			return err
		}
	}
	return nil
}
