// Package memorymatch implements the word/meaning card matching game.
//
// A game deals k words from a vocabulary category into a word column and,
// independently shuffled, a meaning column. The player selects two cards;
// a word card and a meaning card for the same word form a match. Every
// pair selection is followed by a short resolution delay after which the
// selection clears. The delay is modelled as a token that the host hands
// back through Resolve, so a resolution scheduled for a game that has since
// been restarted or abandoned is ignored.
package memorymatch

import (
	"slices"
	"sync/atomic"
	"time"

	"github.com/abhisek/parley/internal/catalog"
)

const (
	// PointsPerMatch is added to the score for every matched pair.
	PointsPerMatch = 10

	// DefaultSize is the number of words dealt per game.
	DefaultSize = 6

	MatchDelay    = 600 * time.Millisecond
	MismatchDelay = 1000 * time.Millisecond
)

// CardKind tells the two columns apart.
type CardKind int

const (
	KindWord CardKind = iota
	KindMeaning
)

func (k CardKind) String() string {
	if k == KindMeaning {
		return "meaning"
	}
	return "word"
}

// Card identifies one card on the board.
type Card struct {
	WordID string
	Kind   CardKind
}

// Phase is the selection state of the board.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseOneSelected
	PhaseResolving
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseOneSelected:
		return "one-selected"
	case PhaseResolving:
		return "resolving"
	case PhaseComplete:
		return "complete"
	default:
		return "idle"
	}
}

// OutcomeKind reports what a click did.
type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeSelected
	OutcomeMatch
	OutcomeMismatch
)

// Outcome is returned by Click. For Match and Mismatch the host must call
// Resolve(Token) once Delay has elapsed.
type Outcome struct {
	Kind  OutcomeKind
	Delay time.Duration
	Token uint64
}

// Tokens are unique across games so a token from a discarded game never
// resolves a new one.
var tokenSeq atomic.Uint64

// Game is the state of one memory-match board.
type Game struct {
	Words    []catalog.Word
	Meanings []catalog.Word
	Matched  map[string]bool
	Selected []Card
	Score    int

	size    int
	pending uint64
}

// Deal shuffles words, keeps the first k for the word column and shuffles
// those again for the meaning column. k <= 0 deals DefaultSize; a category
// with fewer words deals them all.
func Deal(words []catalog.Word, k int, sh Shuffler) *Game {
	if k <= 0 {
		k = DefaultSize
	}
	g := &Game{size: k}
	g.deal(words, sh)
	return g
}

func (g *Game) deal(words []catalog.Word, sh Shuffler) {
	if sh == nil {
		sh = &RandShuffler{}
	}
	pool := slices.Clone(words)
	sh.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	k := min(g.size, len(pool))

	g.Words = pool[:k:k]
	g.Meanings = slices.Clone(g.Words)
	sh.Shuffle(len(g.Meanings), func(i, j int) { g.Meanings[i], g.Meanings[j] = g.Meanings[j], g.Meanings[i] })

	g.Matched = make(map[string]bool, k)
	g.Selected = nil
	g.Score = 0
	g.pending = 0
}

// Restart deals a fresh board from words with zeroed score and
// selection. Any outstanding resolution is invalidated.
func (g *Game) Restart(words []catalog.Word, sh Shuffler) {
	g.deal(words, sh)
}

// Phase derives the board state.
func (g *Game) Phase() Phase {
	switch {
	case len(g.Selected) == 2:
		return PhaseResolving
	case g.Complete():
		return PhaseComplete
	case len(g.Selected) == 1:
		return PhaseOneSelected
	default:
		return PhaseIdle
	}
}

// Complete reports whether every dealt pair is matched.
func (g *Game) Complete() bool {
	return len(g.Matched) == len(g.Words)
}

// Pending returns the token of the resolution waiting for Resolve, or 0.
func (g *Game) Pending() uint64 { return g.pending }

// IsSelected reports whether c is part of the current selection.
func (g *Game) IsSelected(c Card) bool {
	return slices.Contains(g.Selected, c)
}

// Click selects a card. Clicks on matched, already selected or unknown
// cards, and clicks while a pair is resolving, are ignored.
func (g *Game) Click(c Card) Outcome {
	if g.Matched[c.WordID] || g.IsSelected(c) || len(g.Selected) >= 2 || g.Complete() {
		return Outcome{}
	}
	if !g.dealt(c.WordID) {
		return Outcome{}
	}

	g.Selected = append(g.Selected, c)
	if len(g.Selected) < 2 {
		return Outcome{Kind: OutcomeSelected}
	}

	g.pending = tokenSeq.Add(1)
	a, b := g.Selected[0], g.Selected[1]
	if a.WordID == b.WordID && a.Kind != b.Kind {
		g.Matched[a.WordID] = true
		g.Score += PointsPerMatch
		return Outcome{Kind: OutcomeMatch, Delay: MatchDelay, Token: g.pending}
	}
	return Outcome{Kind: OutcomeMismatch, Delay: MismatchDelay, Token: g.pending}
}

// Resolve clears the selection if token is the pending resolution.
// It reports whether anything changed.
func (g *Game) Resolve(token uint64) bool {
	if token == 0 || token != g.pending {
		return false
	}
	g.pending = 0
	g.Selected = nil
	return true
}

// Cancel drops the pending resolution and the selection; a later Resolve
// with the old token is a no-op.
func (g *Game) Cancel() {
	g.pending = 0
	g.Selected = nil
}

func (g *Game) dealt(id string) bool {
	return slices.ContainsFunc(g.Words, func(w catalog.Word) bool { return w.ID == id })
}
