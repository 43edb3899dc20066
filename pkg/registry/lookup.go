package registry

import (
	"context"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/dargo/pkg/errors"
	"github.com/matzehuels/dargo/pkg/requirement"
)

// MaxSeparators bounds the fuzzy search: names with more '-'/'_' characters
// fail with [errors.ErrCodeTooManyVariants] instead of trying 2^n spellings.
const MaxSeparators = 16

// Match is the outcome of a successful lookup.
type Match struct {
	Name    string          // Name the version was found under
	Version *semver.Version // Highest matching version
}

// Fuzzy reports whether the match was found under a different spelling.
func (m Match) Fuzzy(requested string) bool { return m.Name != requested }

// BestVersion returns the highest non-yanked release of name satisfying req.
// A nil req means any version. Prereleases are dropped from the candidate set
// unless allowPrerelease is set.
//
// Errors:
//   - [errors.ErrCodePackageNotFound] when name has no releases at all
//   - [errors.ErrCodeNoVersions] when releases exist but none qualify
//   - [errors.ErrCodeRegistry] when the index itself fails
func BestVersion(ctx context.Context, idx Index, name string, req *requirement.Requirement, allowPrerelease bool) (*semver.Version, error) {
	if req == nil {
		req = requirement.Any()
	}

	releases, err := idx.Releases(ctx, name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegistry, err, "query %s in %s", name, idx.ID())
	}
	if len(releases) == 0 {
		return nil, errors.New(errors.ErrCodePackageNotFound, "no package named %s", name)
	}

	var best *semver.Version
	for _, r := range releases {
		if r.Yanked {
			continue
		}
		v, err := semver.NewVersion(r.Version)
		if err != nil {
			continue
		}
		if v.Prerelease() != "" && !allowPrerelease {
			continue
		}
		if !req.Matches(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
		}
	}
	if best == nil {
		if req.IsAny() {
			return nil, errors.New(errors.ErrCodeNoVersions, "no available versions found for %s", name)
		}
		return nil, errors.New(errors.ErrCodeNoVersions, "no available versions found for %s@%s", name, req)
	}
	return best, nil
}

// Resolve looks name up with [BestVersion]. If nothing is published under
// that exact spelling and the name contains '-' or '_', every other
// combination of those separators is tried in ascending bitmask order (bit i
// set means '-' at the i-th separator, clear means '_') and the first match
// is returned.
//
// Registry errors abort the search immediately. Names with more than
// [MaxSeparators] separators fail with [errors.ErrCodeTooManyVariants] before
// any variant is queried. When no spelling matches, the error from the exact
// name is returned.
func Resolve(ctx context.Context, idx Index, name string, req *requirement.Requirement, allowPrerelease bool) (Match, error) {
	v, firstErr := BestVersion(ctx, idx, name, req, allowPrerelease)
	if firstErr == nil {
		return Match{Name: name, Version: v}, nil
	}
	if !isMiss(firstErr) {
		return Match{}, firstErr
	}

	positions := separatorPositions(name)
	switch {
	case len(positions) == 0:
		return Match{}, firstErr
	case len(positions) > MaxSeparators:
		return Match{}, errors.New(errors.ErrCodeTooManyVariants,
			"%s contains %d '-' or '_' characters, more than the %d that can be searched", name, len(positions), MaxSeparators)
	}

	for _, variant := range Variants(name) {
		if variant == name {
			continue
		}
		v, err := BestVersion(ctx, idx, variant, req, allowPrerelease)
		if err == nil {
			return Match{Name: variant, Version: v}, nil
		}
		if !isMiss(err) {
			return Match{}, err
		}
	}
	return Match{}, firstErr
}

// Variants lists every spelling of name obtained by choosing '_' or '-' at
// each separator position, in ascending bitmask order. The result includes
// name itself. Names with more than [MaxSeparators] separators yield nil.
func Variants(name string) []string {
	positions := separatorPositions(name)
	if len(positions) > MaxSeparators {
		return nil
	}

	buf := []byte(name)
	out := make([]string, 0, 1<<len(positions))
	for mask := 0; mask < 1<<len(positions); mask++ {
		for i, pos := range positions {
			if mask>>i&1 == 1 {
				buf[pos] = '-'
			} else {
				buf[pos] = '_'
			}
		}
		out = append(out, string(buf))
	}
	return out
}

func separatorPositions(name string) []int {
	var positions []int
	for i := 0; i < len(name); i++ {
		if name[i] == '-' || name[i] == '_' {
			positions = append(positions, i)
		}
	}
	return positions
}

func isMiss(err error) bool {
	return errors.Is(err, errors.ErrCodePackageNotFound) || errors.Is(err, errors.ErrCodeNoVersions)
}

// Updater refreshes indexes at most once each, keyed by [Index.ID].
// Create one per command invocation.
type Updater struct {
	seen map[string]bool
}

// NewUpdater creates an Updater with nothing refreshed yet.
func NewUpdater() *Updater {
	return &Updater{seen: make(map[string]bool)}
}

// Update refreshes idx unless an index with the same ID was already
// refreshed by this Updater. Failures are [errors.ErrCodeRegistry] errors and
// leave the index eligible for another attempt.
func (u *Updater) Update(ctx context.Context, idx Index) error {
	id := idx.ID()
	if u.seen[id] {
		return nil
	}
	if err := idx.Refresh(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeRegistry, err, "update index %s", id)
	}
	u.seen[id] = true
	return nil
}
