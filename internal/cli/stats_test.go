package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/wordcloud/pkg/model"
)

func testLayout() model.Layout {
	return model.Layout{
		Width:    800,
		Height:   600,
		Rotation: "orthogonal",
		Seed:     42,
		Words: []model.PlacedWord{
			{Text: "channel", Value: 25, FontSize: 30, Attempts: 4},
			{Text: "gopher", Value: 40, FontSize: 48, Attempts: 1},
			{Text: "slice", Value: 8, FontSize: 14, Rotation: -90, Attempts: 12},
		},
		Dropped:  []model.Word{{Text: "map", Value: 5}},
		Attempts: map[string]int{"gopher": 1, "channel": 4, "slice": 12, "map": 400},
		Stats:    model.Stats{Placed: 3, Total: 4, Dropped: 1, AverageAttempts: 104.25, Coverage: 18},
	}
}

func TestTopWords(t *testing.T) {
	l := testLayout()

	got := topWords(l.Words, 2)
	if len(got) != 2 || got[0].Text != "gopher" || got[1].Text != "channel" {
		t.Errorf("topWords = %+v, want gopher then channel", got)
	}
	if l.Words[0].Text != "channel" {
		t.Error("topWords must not reorder its input")
	}
	if got := topWords(l.Words, 10); len(got) != 3 {
		t.Errorf("topWords(10) len = %d, want 3", len(got))
	}
	if got := topWords(l.Words, 0); got != nil {
		t.Errorf("topWords(0) = %v, want nil", got)
	}
}

func TestRenderStats(t *testing.T) {
	out := renderStats(testLayout(), 2)

	for _, want := range []string{"3 of 4", "104.2 per word", "18.0%", "gopher", "Dropped: map", "42"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "slice") {
		t.Errorf("top 2 should not list slice:\n%s", out)
	}

	if out := renderStats(testLayout(), 0); strings.Contains(out, "Top") {
		t.Errorf("--top 0 should hide the word table:\n%s", out)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m WordListModel, keys ...string) WordListModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(WordListModel)
	}
	return m
}

func TestWordListNavigation(t *testing.T) {
	m := NewWordListModel(testLayout())

	m = update(m, "down", "j")
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", m.Cursor)
	}
	m = update(m, "down")
	if m.Cursor != 2 {
		t.Errorf("Cursor moved past the last word: %d", m.Cursor)
	}
	m = update(m, "up", "k", "k")
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}
}

func TestWordListTabs(t *testing.T) {
	m := update(NewWordListModel(testLayout()), "down", "tab")
	if m.Tab != tabDropped || m.Cursor != 0 {
		t.Errorf("tab should switch to dropped and reset cursor: tab=%d cursor=%d", m.Tab, m.Cursor)
	}
	if view := m.View(); !strings.Contains(view, "Dropped words (1)") || !strings.Contains(view, "400") {
		t.Errorf("dropped view:\n%s", view)
	}

	m = update(m, "tab")
	if m.Tab != tabPlaced {
		t.Error("second tab should return to placed words")
	}

	// Nothing to switch to without dropped words.
	l := testLayout()
	l.Dropped = nil
	if m := update(NewWordListModel(l), "tab"); m.Tab != tabPlaced {
		t.Error("tab without dropped words should stay on placed")
	}
}

func TestWordListScrolling(t *testing.T) {
	m := NewWordListModel(testLayout())
	m.Height = 2

	m = update(m, "down", "down")
	if m.Offset != 1 {
		t.Errorf("Offset = %d, want 1", m.Offset)
	}
	if view := m.View(); strings.Contains(view, "channel") || !strings.Contains(view, "[3/3]") {
		t.Errorf("scrolled view:\n%s", view)
	}
}

func TestWordListQuit(t *testing.T) {
	_, cmd := NewWordListModel(testLayout()).Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestWordListEmpty(t *testing.T) {
	m := NewWordListModel(model.Layout{Width: 800, Height: 600})
	m = update(m, "down")
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d on an empty list", m.Cursor)
	}
	if !strings.Contains(m.View(), "no words") {
		t.Error("empty layout should say so")
	}
}
