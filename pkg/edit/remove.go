package edit

import (
	"github.com/matzehuels/dargo/pkg/errors"
	"github.com/matzehuels/dargo/pkg/manifest"
)

// PlanRemove plans the removal of each named entry from the table selected
// by kind and platform. Names that are not there become warnings.
func PlanRemove(m *manifest.Manifest, names []string, kind manifest.Kind, platform string) *Plan {
	plan := &Plan{Manifest: m}
	for _, name := range names {
		slot := manifest.Slot{Kind: kind, Platform: platform, Name: name}
		if !m.Has(slot) || plan.plans(slot) {
			err := errors.New(errors.ErrCodeSlotNotFound, "did not find %s in %s", name, slot.Section())
			plan.Warnings = append(plan.Warnings, warningFor(name, err))
			continue
		}
		plan.Changes = append(plan.Changes, Change{
			Action:     ActionRemove,
			Dependency: manifest.Dependency{Slot: slot, Package: name},
		})
	}
	return plan
}
