package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dargo/pkg/edit"
	"github.com/matzehuels/dargo/pkg/registry"
)

type addOptions struct {
	manifest string
	dev      bool
	build    bool
	target   string
	pre      bool
	dry      bool
	update   bool
	noUpdate bool
}

func (c *CLI) addCommand() *cobra.Command {
	var opts addOptions
	cmd := &cobra.Command{
		Use:   "add <crate[@requirement]>...",
		Short: "Add dependencies to your Cargo.toml",
		Long: `Add dependencies to your Cargo.toml.

A bare crate name is added at its latest release, pinned exactly. With
'@requirement' the requirement is checked against the index and written as
given. Names are matched with '-' and '_' treated as interchangeable when the
exact spelling is not published.`,
		Example: `  dargo add serde tokio@1.35
  dargo add --dev 'libc@>=0.1,<1.0'
  dargo add --pre futures-preview`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAdd(cmd.Context(), args, opts)
		},
	}

	manifestFlag(cmd, &opts.manifest)
	kindFlags(cmd, &opts.dev, &opts.build, "add")
	cmd.Flags().StringVar(&opts.target, "target", "", "add to the dependencies of a target platform, e.g. 'cfg(unix)'")
	cmd.Flags().BoolVar(&opts.pre, "pre", false, "consider prerelease versions (e.g. 0.3.0-alpha.15)")
	cmd.Flags().BoolVar(&opts.dry, "dry", false, "print the changes without writing them")
	cmd.Flags().BoolVar(&opts.update, "update", false, "refresh the index before querying (default)")
	cmd.Flags().BoolVar(&opts.noUpdate, "no-update", false, "do not refresh the index before querying")
	cmd.MarkFlagsMutuallyExclusive("update", "no-update")

	return cmd
}

func (c *CLI) runAdd(ctx context.Context, args []string, opts addOptions) error {
	logger := loggerFromContext(ctx)

	reqs := make([]edit.AddRequest, 0, len(args))
	for _, arg := range args {
		r, err := edit.ParseAddRequest(arg)
		if err != nil {
			return err
		}
		reqs = append(reqs, r)
	}

	m, err := loadManifest(opts.manifest)
	if err != nil {
		return err
	}
	idx, closeIndex, err := c.openIndex(ctx)
	if err != nil {
		return err
	}
	defer closeIndex()

	addOpts := edit.AddOptions{
		Kind:            kindFromFlags(opts.dev, opts.build),
		Platform:        opts.target,
		AllowPrerelease: opts.pre,
	}
	if !opts.noUpdate {
		addOpts.Updater = registry.NewUpdater()
	}

	prog := newProgress(logger)
	var plan *edit.Plan
	err = c.withSpinner(ctx, "Resolving versions", func() error {
		var err error
		plan, err = edit.PlanAdd(ctx, m, idx, reqs, addOpts)
		return err
	})
	if err != nil {
		return err
	}
	prog.done("planned additions to " + m.Name())

	c.printWarnings(plan)
	c.printAdds(plan.Changes)
	return c.commit(ctx, plan, opts.dry)
}
