package memorymatch

import (
	"fmt"
	"testing"

	"github.com/abhisek/parley/internal/catalog"
)

func words(n int) []catalog.Word {
	out := make([]catalog.Word, n)
	for i := range out {
		id := fmt.Sprintf("w%d", i+1)
		out[i] = catalog.Word{ID: id, Word: "word-" + id, Meaning: "meaning-" + id}
	}
	return out
}

func ids(ws []catalog.Word) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.ID
	}
	return out
}

func checkInvariants(t *testing.T, g *Game) {
	t.Helper()
	if len(g.Matched) > len(g.Words) {
		t.Errorf("matched %d > dealt %d", len(g.Matched), len(g.Words))
	}
	if len(g.Selected) > 2 {
		t.Errorf("selected %d > 2", len(g.Selected))
	}
	for _, c := range g.Selected {
		if g.Matched[c.WordID] && g.Pending() == 0 {
			t.Errorf("matched card %v is selected outside a resolution", c)
		}
	}
}

func TestDeal_TakesFirstK(t *testing.T) {
	g := Deal(words(10), 6, NoShuffle{})
	if len(g.Words) != 6 || len(g.Meanings) != 6 {
		t.Fatalf("dealt %d/%d, want 6/6", len(g.Words), len(g.Meanings))
	}
	if g.Words[0].ID != "w1" || g.Words[5].ID != "w6" {
		t.Errorf("word column = %v", ids(g.Words))
	}
	if g.Phase() != PhaseIdle || g.Score != 0 {
		t.Errorf("fresh game phase=%v score=%d", g.Phase(), g.Score)
	}
}

func TestDeal_FewerWordsThanK(t *testing.T) {
	g := Deal(words(3), 6, NoShuffle{})
	if len(g.Words) != 3 {
		t.Errorf("dealt %d, want all 3", len(g.Words))
	}
}

func TestDeal_DefaultSize(t *testing.T) {
	g := Deal(words(8), 0, NoShuffle{})
	if len(g.Words) != DefaultSize {
		t.Errorf("dealt %d, want %d", len(g.Words), DefaultSize)
	}
}

func TestDeal_IndependentColumnShuffles(t *testing.T) {
	sh := &FixedShuffler{Perms: [][]int{
		{2, 0, 1},
		{1, 2, 0},
	}}
	g := Deal(words(3), 3, sh)

	if got := fmt.Sprint(ids(g.Words)); got != "[w3 w1 w2]" {
		t.Errorf("word column = %s, want [w3 w1 w2]", got)
	}
	if got := fmt.Sprint(ids(g.Meanings)); got != "[w1 w2 w3]" {
		t.Errorf("meaning column = %s, want [w1 w2 w3]", got)
	}
}

func TestDeal_DoesNotMutateInput(t *testing.T) {
	in := words(4)
	Deal(in, 4, &FixedShuffler{Perms: [][]int{{3, 2, 1, 0}}})
	if in[0].ID != "w1" {
		t.Errorf("input reordered: %v", ids(in))
	}
}

func TestSeededShuffler_Reproducible(t *testing.T) {
	a := Deal(words(10), 6, NewSeededShuffler(42))
	b := Deal(words(10), 6, NewSeededShuffler(42))
	if fmt.Sprint(ids(a.Words)) != fmt.Sprint(ids(b.Words)) {
		t.Errorf("same seed dealt %v and %v", ids(a.Words), ids(b.Words))
	}
	if fmt.Sprint(ids(a.Meanings)) != fmt.Sprint(ids(b.Meanings)) {
		t.Errorf("same seed dealt meanings %v and %v", ids(a.Meanings), ids(b.Meanings))
	}
}

func TestClick_ScenarioC(t *testing.T) {
	g := Deal(words(6), 6, NoShuffle{})

	if o := g.Click(Card{"w3", KindWord}); o.Kind != OutcomeSelected {
		t.Fatalf("first click = %v, want selected", o.Kind)
	}
	if g.Phase() != PhaseOneSelected {
		t.Errorf("phase = %v, want one-selected", g.Phase())
	}

	o := g.Click(Card{"w3", KindMeaning})
	if o.Kind != OutcomeMatch || o.Delay != MatchDelay || o.Token == 0 {
		t.Fatalf("match outcome = %+v", o)
	}
	if g.Score != 10 || !g.Matched["w3"] || len(g.Matched) != 1 {
		t.Errorf("after match score=%d matched=%v", g.Score, g.Matched)
	}
	if g.Phase() != PhaseResolving {
		t.Errorf("phase = %v, want resolving", g.Phase())
	}
	if !g.Resolve(o.Token) {
		t.Fatal("resolve returned false")
	}
	checkInvariants(t, g)

	g.Click(Card{"w1", KindWord})
	o = g.Click(Card{"w2", KindMeaning})
	if o.Kind != OutcomeMismatch || o.Delay != MismatchDelay {
		t.Fatalf("mismatch outcome = %+v", o)
	}
	if g.Score != 10 {
		t.Errorf("score = %d, want 10", g.Score)
	}
	g.Resolve(o.Token)
	if len(g.Selected) != 0 {
		t.Errorf("selected = %v, want cleared", g.Selected)
	}
	if len(g.Matched) != 1 || !g.Matched["w3"] {
		t.Errorf("matched = %v, want {w3}", g.Matched)
	}
	checkInvariants(t, g)
}

func TestClick_SameKindSameWordIsMismatch(t *testing.T) {
	g := Deal(words(2), 2, NoShuffle{})
	g.Click(Card{"w1", KindMeaning})
	if o := g.Click(Card{"w2", KindMeaning}); o.Kind != OutcomeMismatch {
		t.Errorf("two meanings = %v, want mismatch", o.Kind)
	}
}

func TestClick_Ignored(t *testing.T) {
	g := Deal(words(3), 3, NoShuffle{})
	g.Click(Card{"w1", KindWord})
	o := g.Click(Card{"w1", KindMeaning})
	g.Resolve(o.Token)

	tests := []struct {
		name string
		card Card
	}{
		{"matched word card", Card{"w1", KindWord}},
		{"matched meaning card", Card{"w1", KindMeaning}},
		{"unknown card", Card{"nope", KindWord}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if o := g.Click(tt.card); o.Kind != OutcomeNone {
				t.Errorf("click = %v, want none", o.Kind)
			}
			if len(g.Selected) != 0 {
				t.Errorf("selected = %v", g.Selected)
			}
		})
	}

	g.Click(Card{"w2", KindWord})
	if o := g.Click(Card{"w2", KindWord}); o.Kind != OutcomeNone {
		t.Errorf("double click = %v, want none", o.Kind)
	}
	if len(g.Selected) != 1 {
		t.Errorf("selected = %v, want one card", g.Selected)
	}

	g.Click(Card{"w3", KindMeaning})
	if o := g.Click(Card{"w3", KindWord}); o.Kind != OutcomeNone {
		t.Errorf("third card = %v, want none", o.Kind)
	}
	checkInvariants(t, g)
}

func TestComplete(t *testing.T) {
	g := Deal(words(2), 2, NoShuffle{})
	for _, id := range []string{"w1", "w2"} {
		g.Click(Card{id, KindWord})
		o := g.Click(Card{id, KindMeaning})
		if o.Kind != OutcomeMatch {
			t.Fatalf("%s: %v", id, o.Kind)
		}
		g.Resolve(o.Token)
	}
	if g.Phase() != PhaseComplete || !g.Complete() {
		t.Errorf("phase = %v, want complete", g.Phase())
	}
	if g.Score != 20 {
		t.Errorf("score = %d, want 20", g.Score)
	}
	if o := g.Click(Card{"w1", KindWord}); o.Kind != OutcomeNone {
		t.Errorf("click after complete = %v", o.Kind)
	}
}

func TestResolve_StaleToken(t *testing.T) {
	g := Deal(words(3), 3, NoShuffle{})
	g.Click(Card{"w1", KindWord})
	o := g.Click(Card{"w2", KindMeaning})

	if g.Resolve(o.Token + 1) {
		t.Error("wrong token resolved")
	}
	if !g.Resolve(o.Token) {
		t.Error("pending token did not resolve")
	}
	if g.Resolve(o.Token) {
		t.Error("second resolve with the same token should be a no-op")
	}
}

func TestCancel(t *testing.T) {
	g := Deal(words(3), 3, NoShuffle{})
	g.Click(Card{"w1", KindWord})
	o := g.Click(Card{"w2", KindMeaning})

	g.Cancel()
	if g.Resolve(o.Token) {
		t.Error("cancelled token resolved")
	}
	if len(g.Selected) != 0 {
		t.Errorf("selected = %v after cancel", g.Selected)
	}
}

func TestRestart(t *testing.T) {
	g := Deal(words(8), 4, NoShuffle{})
	g.Click(Card{"w1", KindWord})
	g.Click(Card{"w1", KindMeaning})
	old := g.Pending()

	g.Restart(words(8), &FixedShuffler{Perms: [][]int{{7, 6, 5, 4, 3, 2, 1, 0}}})
	if g.Score != 0 || len(g.Matched) != 0 || len(g.Selected) != 0 {
		t.Errorf("restart left state: score=%d matched=%v selected=%v", g.Score, g.Matched, g.Selected)
	}
	if len(g.Words) != 4 || g.Words[0].ID != "w8" {
		t.Errorf("restart dealt %v, want a fresh deal of 4 starting at w8", ids(g.Words))
	}
	if g.Resolve(old) {
		t.Error("token from before restart resolved")
	}
}

func TestTokensUniqueAcrossGames(t *testing.T) {
	a := Deal(words(2), 2, NoShuffle{})
	a.Click(Card{"w1", KindWord})
	oa := a.Click(Card{"w2", KindMeaning})

	b := Deal(words(2), 2, NoShuffle{})
	b.Click(Card{"w1", KindWord})
	b.Click(Card{"w2", KindMeaning})

	if b.Resolve(oa.Token) {
		t.Error("token from another game resolved")
	}
}
