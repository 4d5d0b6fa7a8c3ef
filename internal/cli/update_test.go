package cli

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDiffImports(t *testing.T) {
	before := map[string]string{
		"@std/path": "jsr:@std/path@1.0.0",
		"preact":    "npm:preact@10.0.0",
		"oak":       "https://deno.land/x/oak@v12.5.0/mod.ts",
		"local":     "./util.ts",
	}
	after := map[string]string{
		"@std/path": "jsr:@std/path@1.2.0",
		"preact":    "npm:preact@10.0.0",
		"oak":       "https://deno.land/x/oak@v12.6.1/mod.ts",
		"local":     "./util.ts",
	}

	got := diffImports(before, after)
	want := []pendingChange{
		{Alias: "@std/path", From: "1.0.0", To: "1.2.0"},
		{Alias: "oak", From: "v12.5.0", To: "v12.6.1"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("diffImports() = %v, want %v", got, want)
	}
}

func TestDiffImports_UnclassifiedFallsBackToSpec(t *testing.T) {
	before := map[string]string{"x": "something-odd@1"}
	after := map[string]string{"x": "something-odd@2"}

	got := diffImports(before, after)
	if len(got) != 1 || got[0].From != "something-odd@1" || got[0].To != "something-odd@2" {
		t.Errorf("diffImports() = %v", got)
	}
}

func TestPickerModel_ToggleAndAccept(t *testing.T) {
	m := newPickerModel([]pendingChange{
		{Alias: "a", From: "1.0.0", To: "2.0.0"},
		{Alias: "b", From: "1.0.0", To: "3.0.0"},
	})

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}) // deselect first entry
	next, _ := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	final := next.(pickerModel)

	if !final.Accepted || final.Aborted {
		t.Fatalf("Accepted = %v, Aborted = %v", final.Accepted, final.Aborted)
	}
	if final.Checked[0] || !final.Checked[1] {
		t.Errorf("Checked = %v, want [false true]", final.Checked)
	}
}

func TestPickerModel_Abort(t *testing.T) {
	m := newPickerModel([]pendingChange{{Alias: "a"}})
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	final := next.(pickerModel)
	if !final.Aborted {
		t.Error("q did not abort")
	}
}
