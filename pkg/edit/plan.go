package edit

import (
	"github.com/matzehuels/dargo/pkg/errors"
	"github.com/matzehuels/dargo/pkg/manifest"
)

// Action is what a change does to its slot.
type Action int

const (
	ActionAdd Action = iota
	ActionUpgrade
	ActionRemove
)

func (a Action) String() string {
	switch a {
	case ActionUpgrade:
		return "upgrade"
	case ActionRemove:
		return "remove"
	default:
		return "add"
	}
}

// Change is one planned edit. For upgrades From holds the requirement text
// being replaced; removals leave To empty.
type Change struct {
	Action     Action
	Dependency manifest.Dependency
	From       string
	To         string
}

// Warning is a per-item outcome that did not stop the batch.
type Warning struct {
	Name    string
	Code    errors.Code // empty for notices such as a corrected name
	Message string
}

func warningFor(name string, err error) Warning {
	return Warning{Name: name, Code: errors.GetCode(err), Message: errors.UserMessage(err)}
}

// Plan is the outcome of planning one batch against one manifest.
type Plan struct {
	Manifest *manifest.Manifest
	Changes  []Change
	Warnings []Warning
}

// Empty reports whether the plan has no changes.
func (p *Plan) Empty() bool { return len(p.Changes) == 0 }

// plans reports whether the batch already holds a change for slot.
func (p *Plan) plans(slot manifest.Slot) bool {
	for _, c := range p.Changes {
		if c.Dependency.Slot == slot {
			return true
		}
	}
	return false
}

// Apply patches the plan's manifest with every change of the plan.
func Apply(p *Plan) error {
	for _, c := range p.Changes {
		switch c.Action {
		case ActionAdd, ActionUpgrade:
			if err := p.Manifest.WriteSlotText(c.Dependency.Slot, c.To); err != nil {
				return err
			}
		case ActionRemove:
			if _, err := p.Manifest.DeleteSlot(c.Dependency.Slot); err != nil {
				return err
			}
		}
	}
	return nil
}
