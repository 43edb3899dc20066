// Package requirement parses Cargo version requirements.
//
// A requirement is either an exact version ("1.2.3") or a range expression
// ("^1.2", "~0.3", ">=1, <2", "1.*"). Cargo reads a bare version as a caret
// requirement, so "1.2.3" matches every 1.x release at or above 1.2.3; this
// package translates that dialect to the comparator grammar of
// github.com/Masterminds/semver/v3 and keeps the user's original text around
// so it can be written back to a manifest verbatim.
//
// # Exact Versions
//
// [ParseExact] accepts only a complete major.minor.patch version with optional
// prerelease and build tags and no operator. The upgrade policy uses it to
// decide whether a requirement is a pin (rewritten on upgrade) or a range
// (left alone unless forced).
//
//	req, err := requirement.Parse(">=0.1, <1.0")
//	v := semver.MustParse("0.4.2")
//	req.Matches(v) // true
//
//	_, err = requirement.ParseExact("^1.2.3") // error: not an exact version
package requirement
