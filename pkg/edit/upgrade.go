package edit

import (
	"context"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/dargo/pkg/errors"
	"github.com/matzehuels/dargo/pkg/manifest"
	"github.com/matzehuels/dargo/pkg/registry"
	"github.com/matzehuels/dargo/pkg/requirement"
)

// UpgradeOptions configures [PlanUpgrade]. Only and Exclude match entry
// names as written in the manifest and cannot both be set.
type UpgradeOptions struct {
	Only            []string
	Exclude         []string
	AllowPrerelease bool
	Force           bool
	Updater         *registry.Updater
}

// DecideUpgrade returns the requirement text that should replace current
// given the latest published version. Exact versions follow latest; range
// requirements are only collapsed to latest when force is set.
func DecideUpgrade(current string, latest *semver.Version, force bool) (string, bool) {
	pinned, err := requirement.ParseExact(current)
	if err != nil {
		if force {
			return latest.Original(), true
		}
		return "", false
	}
	if pinned.Equal(latest) {
		return "", false
	}
	return latest.Original(), true
}

// PlanUpgrade decides a new requirement for every registry dependency of m.
// Path, git and workspace-inherited dependencies are skipped; dependencies
// on other registries are skipped with a warning. The latest version is
// looked up without regard to the current requirement.
func PlanUpgrade(ctx context.Context, m *manifest.Manifest, idx registry.Index, opts UpgradeOptions) (*Plan, error) {
	if len(opts.Only) > 0 && len(opts.Exclude) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "only and exclude cannot be used together")
	}
	only, exclude := toSet(opts.Only), toSet(opts.Exclude)

	plan := &Plan{Manifest: m}
	for _, dep := range m.Dependencies() {
		if len(only) > 0 && !only[dep.Name] || exclude[dep.Name] {
			continue
		}
		switch dep.Source {
		case manifest.SourcePath, manifest.SourceGit, manifest.SourceWorkspace:
			continue
		case manifest.SourceAltRegistry:
			err := errors.New(errors.ErrCodeUnsupportedSource, "%s comes from registry %s, which is not queried", dep.Name, dep.Registry)
			plan.Warnings = append(plan.Warnings, warningFor(dep.Name, err))
			continue
		}

		if opts.Updater != nil {
			if err := opts.Updater.Update(ctx, idx); err != nil {
				return nil, err
			}
		}
		latest, err := registry.BestVersion(ctx, idx, dep.Package, requirement.Any(), opts.AllowPrerelease)
		if err != nil {
			if errors.Recoverable(err) {
				plan.Warnings = append(plan.Warnings, warningFor(dep.Name, err))
				continue
			}
			return nil, err
		}

		current, _ := m.LocateSlotText(dep.Slot)
		next, ok := DecideUpgrade(current, latest, opts.Force)
		if !ok {
			continue
		}
		plan.Changes = append(plan.Changes, Change{
			Action:     ActionUpgrade,
			Dependency: dep,
			From:       current,
			To:         next,
		})
	}
	return plan, nil
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
