package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/dargo/pkg/edit"
	"github.com/matzehuels/dargo/pkg/manifest"
)

func pickerChanges() []edit.Change {
	change := func(name, from, to string) edit.Change {
		return edit.Change{
			Action:     edit.ActionUpgrade,
			Dependency: manifest.Dependency{Slot: manifest.Slot{Name: name}, Package: name},
			From:       from,
			To:         to,
		}
	}
	return []edit.Change{
		change("foo", "1.0.0", "1.1.0"),
		change("bar", "0.1.0", "0.2.0"),
		change("baz", "2.0.0", "3.0.0"),
	}
}

func press(m UpgradePickerModel, keys ...tea.KeyMsg) (UpgradePickerModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(UpgradePickerModel)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func names(changes []edit.Change) []string {
	var out []string
	for _, c := range changes {
		out = append(out, c.Dependency.Name)
	}
	return out
}

func TestUpgradePickerSelection(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want []string
	}{
		{"confirm all", []tea.KeyMsg{{Type: tea.KeyEnter}}, []string{"foo", "bar", "baz"}},
		{"toggle second", []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeySpace}, {Type: tea.KeyEnter}}, []string{"foo", "baz"}},
		{"vim keys", []tea.KeyMsg{runes("j"), runes("j"), runes("x"), runes("k"), {Type: tea.KeyEnter}}, []string{"foo", "bar"}},
		{"none then one", []tea.KeyMsg{runes("a"), runes("x"), {Type: tea.KeyEnter}}, []string{"foo"}},
		{"cursor stays in range", []tea.KeyMsg{{Type: tea.KeyUp}, {Type: tea.KeySpace}, {Type: tea.KeyEnter}}, []string{"bar", "baz"}},
		{"cancel", []tea.KeyMsg{{Type: tea.KeyEsc}}, nil},
		{"quit", []tea.KeyMsg{runes("q")}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cmd := press(NewUpgradePickerModel("demo", pickerChanges()), tt.keys...)
			if cmd == nil {
				t.Fatal("final key should quit the picker")
			}
			got := names(m.Selected())
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Selected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpgradePickerView(t *testing.T) {
	m, _ := press(NewUpgradePickerModel("demo", pickerChanges()), tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeySpace})
	view := m.View()
	for _, want := range []string{"demo", "[x] foo", "> [ ] bar", "0.1.0 -> 0.2.0"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() should contain %q:\n%s", want, view)
		}
	}
}
