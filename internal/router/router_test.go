package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cropcast/internal/screen"
)

type stubScreen struct {
	title   string
	initRan bool
	updates int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	s.updates++
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestReplace(t *testing.T) {
	splash := &stubScreen{title: "splash"}
	r := New(splash)

	form := &stubScreen{title: "form"}
	r.Update(ReplaceScreenMsg{Screen: form})

	if r.Active().Title() != "form" {
		t.Errorf("expected active 'form', got %q", r.Active().Title())
	}
	if !form.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
	if splash.updates != 0 {
		t.Errorf("replace message should not reach the old screen, got %d updates", splash.updates)
	}
}

func TestReplaceWithNil(t *testing.T) {
	r := New(&stubScreen{title: "form"})
	if cmd := r.Replace(nil); cmd != nil {
		t.Error("expected nil command")
	}
	if r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"}) != nil {
		t.Error("expected nil command with no active screen")
	}
	if r.View(80, 24) != "" {
		t.Errorf("expected empty view, got %q", r.View(80, 24))
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	first := &stubScreen{title: "splash"}
	r := New(first)
	second := &stubScreen{title: "form"}
	r.Replace(second)

	r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if second.updates != 1 || first.updates != 0 {
		t.Errorf("expected only the active screen to update, got active=%d replaced=%d", second.updates, first.updates)
	}
	if r.View(80, 24) != "form" {
		t.Errorf("unexpected view %q", r.View(80, 24))
	}
}
