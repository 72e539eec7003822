package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/parley/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
}

type resumingScreen struct {
	stubScreen
	resumed int
}

func (s *resumingScreen) Resume() tea.Cmd {
	s.resumed++
	return nil
}

func TestPopResumesUncoveredScreen(t *testing.T) {
	base := &resumingScreen{stubScreen: stubScreen{title: "base"}}
	r := New(base)

	r.Push(&stubScreen{title: "top"})
	r.Pop()
	if base.resumed != 1 {
		t.Errorf("expected 1 resume, got %d", base.resumed)
	}

	r.Pop()
	if base.resumed != 1 {
		t.Error("pop at bottom must not resume")
	}
}

type closingScreen struct {
	stubScreen
	closed int
}

func (s *closingScreen) Close() { s.closed++ }

func TestPopClosesTopScreen(t *testing.T) {
	r := New(&stubScreen{title: "base"})
	top := &closingScreen{stubScreen: stubScreen{title: "top"}}
	r.Push(top)

	r.Pop()
	if top.closed != 1 {
		t.Errorf("expected 1 close, got %d", top.closed)
	}
}

func TestReplaceClosesReplacedScreen(t *testing.T) {
	r := New(&stubScreen{title: "base"})
	old := &closingScreen{stubScreen: stubScreen{title: "old"}}
	r.Push(old)

	r.Replace(&stubScreen{title: "new"})
	if old.closed != 1 {
		t.Errorf("expected replaced screen to close, got %d", old.closed)
	}
}

func TestCloseAll(t *testing.T) {
	base := &closingScreen{stubScreen: stubScreen{title: "base"}}
	top := &closingScreen{stubScreen: stubScreen{title: "top"}}
	r := New(base)
	r.Push(top)

	r.CloseAll()
	if base.closed != 1 || top.closed != 1 {
		t.Errorf("closed base=%d top=%d, want 1 each", base.closed, top.closed)
	}
	if r.Depth() != 2 {
		t.Errorf("CloseAll must not change the stack, depth %d", r.Depth())
	}
}
