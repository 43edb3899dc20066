// Package edit decides how dependency requirements change and applies those
// decisions to a manifest.
//
// Each command has a planner: [PlanAdd], [PlanUpgrade] and [PlanRemove].
// A planner walks its whole batch first, collecting a [Plan] of changes and
// warnings, and never touches the document. [Apply] then patches the
// manifest in one go, so a fatal error half way through a batch leaves the
// document exactly as it was loaded.
//
// Per-item failures that [errors.Recoverable] accepts (unknown packages,
// entries that already exist or are missing) become [Warning]s and the
// batch continues. Everything else aborts the planner.
//
// # Upgrade Policy
//
// [DecideUpgrade] holds the rule for one requirement:
//
//	current   latest  force  result
//	1.2.3     2.0.0   any    2.0.0
//	1.2.3     1.2.3   any    unchanged
//	^1.2.3    2.0.0   false  unchanged
//	^1.2.3    2.0.0   true   2.0.0
//
// [errors.Recoverable]: github.com/matzehuels/dargo/pkg/errors.Recoverable
package edit
