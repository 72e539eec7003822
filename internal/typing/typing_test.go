package typing

import (
	"testing"
	"time"
)

var t0 = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func TestWPM_TenWordsOneMinute(t *testing.T) {
	target := "one two three four five six seven eight nine ten"
	if got := WPM(target, time.Minute); got != 10 {
		t.Errorf("WPM = %d, want 10", got)
	}
}

func TestWPM_ZeroElapsed(t *testing.T) {
	if got := WPM("a b c", 0); got != 0 {
		t.Errorf("WPM(0) = %d, want 0", got)
	}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		target, typed string
		want          int
	}{
		{"cat", "cbt", 67},
		{"cat", "cat", 100},
		{"cat", "", 0},
		{"cat", "dog", 0},
		{"cat", "catsss", 50},
		{"héllo", "héllo", 100},
	}
	for _, tt := range tests {
		if got := Accuracy(tt.target, tt.typed); got != tt.want {
			t.Errorf("Accuracy(%q, %q) = %d, want %d", tt.target, tt.typed, got, tt.want)
		}
	}
}

func TestKeystroke_StartsClockOnFirstKey(t *testing.T) {
	r := NewRun("the cat sat")
	if r.Started() {
		t.Fatal("new run should not be started")
	}
	r = Keystroke(r, "t", t0)
	if !r.Start.Equal(t0) {
		t.Errorf("Start = %v, want %v", r.Start, t0)
	}
	r = Keystroke(r, "th", t0.Add(time.Second))
	if !r.Start.Equal(t0) {
		t.Error("Start must not move after the first keystroke")
	}
	if !r.Stats.Defined {
		t.Error("expected partial stats after keystrokes")
	}
	if r.Completed() {
		t.Error("run should not be complete yet")
	}
}

func TestKeystroke_ScenarioA(t *testing.T) {
	target := "the cat sat"
	r := NewRun(target)
	r = Keystroke(r, "t", t0)

	// Two mismatched characters out of eleven.
	r = Keystroke(r, "tha cat sot", t0.Add(30*time.Second))

	if !r.Completed() {
		t.Fatal("expected run to complete when lengths match")
	}
	if r.Stats.WPM != 6 {
		t.Errorf("WPM = %d, want 6", r.Stats.WPM)
	}
	if r.Stats.Accuracy != 82 {
		t.Errorf("Accuracy = %d, want 82", r.Stats.Accuracy)
	}
	if TargetMet(r.Stats, 40, 90) {
		t.Error("targetMet should be false for 40 WPM / 90%")
	}
}

func TestKeystroke_FrozenAfterCompletion(t *testing.T) {
	r := NewRun("ab")
	r = Keystroke(r, "a", t0)
	r = Keystroke(r, "ab", t0.Add(time.Second))
	frozen := r

	r = Keystroke(r, "abc", t0.Add(time.Hour))
	if r != frozen {
		t.Errorf("completed run changed: %+v", r)
	}
}

func TestKeystroke_OvertypingDoesNotComplete(t *testing.T) {
	r := NewRun("ab")
	r = Keystroke(r, "a", t0)
	r = Keystroke(r, "abc", t0.Add(time.Second))
	if r.Completed() {
		t.Error("overtyping past the target must not complete the run")
	}
	if r.Typed != "abc" {
		t.Errorf("Typed = %q, want overtyped text kept", r.Typed)
	}
}

func TestReset(t *testing.T) {
	r := NewRun("ab")
	r = Keystroke(r, "a", t0)
	r = Keystroke(r, "ab", t0.Add(time.Second))

	r = Reset(r)
	if r.Typed != "" || r.Started() || r.Completed() || r.Stats.Defined {
		t.Errorf("Reset left state behind: %+v", r)
	}
	if r.Target != "ab" {
		t.Errorf("Target = %q, want kept", r.Target)
	}
}

func TestCompute_EmptyTyped(t *testing.T) {
	s := Compute("abc", "", time.Minute)
	if s.Defined || s.Accuracy != 0 || s.WPM != 0 {
		t.Errorf("Compute(empty) = %+v, want zero stats", s)
	}
}

func TestCharStates(t *testing.T) {
	got := CharStates("cat!", "cb")
	want := []CharState{CharMatch, CharMismatch, CharCursor, CharPending}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("state[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTargetMet(t *testing.T) {
	if !TargetMet(Stats{WPM: 40, Accuracy: 90, Defined: true}, 40, 90) {
		t.Error("targets are inclusive")
	}
	if TargetMet(Stats{WPM: 40, Accuracy: 89, Defined: true}, 40, 90) {
		t.Error("accuracy below target must fail")
	}
	if TargetMet(Stats{}, 0, 0) {
		t.Error("undefined stats never meet the target")
	}
}

func TestElapsed(t *testing.T) {
	r := NewRun("ab")
	if r.Elapsed(t0) != 0 {
		t.Error("unstarted run has no elapsed time")
	}
	r = Keystroke(r, "a", t0)
	if got := r.Elapsed(t0.Add(2 * time.Second)); got != 2*time.Second {
		t.Errorf("Elapsed = %v, want 2s", got)
	}
	r = Keystroke(r, "ab", t0.Add(5*time.Second))
	if got := r.Elapsed(t0.Add(time.Hour)); got != 5*time.Second {
		t.Errorf("Elapsed after completion = %v, want 5s", got)
	}
}
