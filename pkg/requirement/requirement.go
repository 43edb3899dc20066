package requirement

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/dargo/pkg/errors"
)

// Requirement is a parsed version requirement.
// The zero value is not usable; use [Any] or [Parse].
type Requirement struct {
	text       string
	constraint *semver.Constraints // nil means any version
}

// Any returns the requirement that every version satisfies.
func Any() *Requirement {
	return &Requirement{text: "*"}
}

// Parse parses Cargo requirement text.
//
// Empty text and "*" mean any version. Comma-separated comparators are
// conjunctions; a comparator without an operator is a caret requirement
// unless it contains a wildcard ("1.*").
// Returns an [errors.ErrCodeInvalidRequirement] error for malformed input.
func Parse(text string) (*Requirement, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed == "*" {
		return &Requirement{text: text}, nil
	}
	if strings.Contains(trimmed, "||") {
		return nil, errors.New(errors.ErrCodeInvalidRequirement, "invalid version requirement %q: alternatives are not supported", text)
	}

	parts := strings.Split(trimmed, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, errors.New(errors.ErrCodeInvalidRequirement, "invalid version requirement %q: empty comparator", text)
		}
		if isDigit(p[0]) && !strings.ContainsAny(p, "*xX") {
			p = "^" + p
		}
		parts[i] = p
	}

	c, err := semver.NewConstraint(strings.Join(parts, ", "))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequirement, err, "invalid version requirement %q", text)
	}
	return &Requirement{text: text, constraint: c}, nil
}

// ParseExact parses text as a single exact version such as "1.2.3" or
// "0.3.0-alpha.16". Operators, wildcards and partial versions are rejected.
func ParseExact(text string) (*semver.Version, error) {
	if text == "" || !isDigit(text[0]) {
		return nil, errors.New(errors.ErrCodeInvalidRequirement, "%q is not an exact version", text)
	}
	v, err := semver.StrictNewVersion(text)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequirement, err, "%q is not an exact version", text)
	}
	return v, nil
}

// IsExact reports whether text is an exact version.
func IsExact(text string) bool {
	_, err := ParseExact(text)
	return err == nil
}

// String returns the requirement text as the user wrote it.
func (r *Requirement) String() string { return r.text }

// IsAny reports whether every version satisfies r.
func (r *Requirement) IsAny() bool { return r.constraint == nil }

// Matches reports whether v satisfies r.
//
// Range requirements follow the comparator grammar's prerelease rule: a
// prerelease only matches when a comparator names a prerelease itself.
// [Any] matches prereleases too; callers filter them separately.
func (r *Requirement) Matches(v *semver.Version) bool {
	if r.constraint == nil {
		return true
	}
	return r.constraint.Check(v)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
