package cli

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dargo/pkg/edit"
	"github.com/matzehuels/dargo/pkg/manifest"
)

// manifestFlag registers the --manifest flag shared by every editing command.
func manifestFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "manifest", ".", "path to Cargo.toml or the directory containing it")
}

// kindFlags registers --dev and --build.
func kindFlags(cmd *cobra.Command, dev, build *bool, verb string) {
	cmd.Flags().BoolVar(dev, "dev", false, verb+" dev-dependencies")
	cmd.Flags().BoolVar(build, "build", false, verb+" build-dependencies")
	cmd.MarkFlagsMutuallyExclusive("dev", "build")
}

func kindFromFlags(dev, build bool) manifest.Kind {
	switch {
	case dev:
		return manifest.Development
	case build:
		return manifest.Build
	default:
		return manifest.Normal
	}
}

func loadManifest(arg string) (*manifest.Manifest, error) {
	path, err := manifest.ResolvePath(arg)
	if err != nil {
		return nil, err
	}
	return manifest.Load(path)
}

// commit applies a plan and, unless dry is set, writes the manifest.
func (c *CLI) commit(ctx context.Context, plan *edit.Plan, dry bool) error {
	if err := edit.Apply(plan); err != nil {
		return err
	}
	if dry {
		if plan.Manifest.Changed() {
			c.printInfo("dry run, %s not written", plan.Manifest.Path)
		}
		return nil
	}
	wrote, err := plan.Manifest.Save()
	if err != nil {
		return err
	}
	if wrote {
		loggerFromContext(ctx).Debug("wrote manifest", "path", plan.Manifest.Path)
		c.printSuccess("Updated %s", plan.Manifest.Path)
	}
	return nil
}

// withSpinner runs fn while a spinner is shown on an interactive stderr.
func (c *CLI) withSpinner(ctx context.Context, message string, fn func() error) error {
	if c.quiet || !isatty.IsTerminal(os.Stderr.Fd()) {
		return fn()
	}
	s := newSpinnerWithContext(ctx, os.Stderr, message)
	s.Start()
	defer s.Stop()
	return fn()
}
