package edit

import (
	"context"
	"strings"

	"github.com/matzehuels/dargo/pkg/errors"
	"github.com/matzehuels/dargo/pkg/manifest"
	"github.com/matzehuels/dargo/pkg/registry"
	"github.com/matzehuels/dargo/pkg/requirement"
)

// AddRequest is one "name" or "name@requirement" argument.
type AddRequest struct {
	Name        string
	Requirement string // empty means latest
}

// ParseAddRequest splits "name@requirement". Whitespace around either part
// is ignored.
func ParseAddRequest(arg string) (AddRequest, error) {
	name, req, _ := strings.Cut(arg, "@")
	name, req = strings.TrimSpace(name), strings.TrimSpace(req)
	if name == "" {
		return AddRequest{}, errors.New(errors.ErrCodeInvalidInput, "missing crate name in %q", arg)
	}
	if strings.HasSuffix(arg, "@") && req == "" {
		return AddRequest{}, errors.New(errors.ErrCodeInvalidInput, "missing version requirement in %q", arg)
	}
	return AddRequest{Name: name, Requirement: req}, nil
}

// AddOptions configures [PlanAdd].
type AddOptions struct {
	Kind            manifest.Kind
	Platform        string
	AllowPrerelease bool
	Updater         *registry.Updater // refreshes the index before the first query when set
}

// PlanAdd decides the entry to write for each request.
//
// Without a requirement the latest version is looked up and pinned exactly.
// With one, the requirement is validated and must match at least one
// published version; the text the user gave is what gets written. Names are
// resolved with separator fuzzing and the entry is written under the name
// that was found, with a warning when it differs. Requests for a slot that
// already holds an entry are skipped with a warning.
func PlanAdd(ctx context.Context, m *manifest.Manifest, idx registry.Index, reqs []AddRequest, opts AddOptions) (*Plan, error) {
	if m.IsVirtual() {
		return nil, errors.New(errors.ErrCodeVirtualWorkspace, "%s is a virtual workspace manifest; run add in a member package", m.Path)
	}
	if opts.Updater != nil {
		if err := opts.Updater.Update(ctx, idx); err != nil {
			return nil, err
		}
	}

	plan := &Plan{Manifest: m}
	for _, r := range reqs {
		var req *requirement.Requirement
		if r.Requirement != "" {
			var err error
			if req, err = requirement.Parse(r.Requirement); err != nil {
				return nil, err
			}
		}

		match, err := registry.Resolve(ctx, idx, r.Name, req, opts.AllowPrerelease)
		if err != nil {
			if errors.Recoverable(err) {
				plan.Warnings = append(plan.Warnings, warningFor(r.Name, err))
				continue
			}
			return nil, err
		}
		if match.Fuzzy(r.Name) {
			plan.Warnings = append(plan.Warnings, Warning{
				Name:    r.Name,
				Message: "no crate named " + r.Name + ", using " + match.Name,
			})
		}

		slot := manifest.Slot{Kind: opts.Kind, Platform: opts.Platform, Name: match.Name}
		if m.Has(slot) || plan.plans(slot) {
			err := errors.New(errors.ErrCodeSlotExists, "%s already exists in %s", match.Name, slot.Section())
			plan.Warnings = append(plan.Warnings, warningFor(match.Name, err))
			continue
		}

		text := r.Requirement
		if text == "" {
			text = match.Version.Original()
		}
		plan.Changes = append(plan.Changes, Change{
			Action:     ActionAdd,
			Dependency: manifest.Dependency{Slot: slot, Package: match.Name, Requirement: text},
			To:         text,
		})
	}
	return plan, nil
}
