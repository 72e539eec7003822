package practice

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/parley/internal/memorymatch"
	"github.com/abhisek/parley/internal/pronunciation"
	"github.com/abhisek/parley/internal/session"
	"github.com/abhisek/parley/internal/similarity"
	"github.com/abhisek/parley/internal/typing"
	"github.com/abhisek/parley/internal/ui/components"
	"github.com/abhisek/parley/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	_, view := s.ctrl.State()

	var body string
	switch view {
	case session.ViewList:
		body = s.renderList(width)
	case session.ViewLesson:
		body = s.renderLesson(width)
	case session.ViewExercise:
		body = s.renderQuiz(width)
	case session.ViewPractice:
		if s.ctrl.Session().Typing != nil {
			body = s.renderTyping(width)
		} else {
			body = s.renderSpeaking(width)
		}
	case session.ViewFlashcard:
		body = s.renderFlashcard(width)
	case session.ViewGame:
		body = s.renderGame(width)
	}

	if s.toast != nil {
		body = components.Toast(*s.toast, width) + "\n\n" + body
	}
	return lipgloss.NewStyle().Width(width).MaxHeight(height).Render(body)
}

func centered(width int, fg color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(fg)
}

func heading(title string, width int) string {
	return centered(width, theme.Primary).Bold(true).Render(title)
}

func dim(text string, width int) string {
	return centered(width, theme.TextDim).Render(text)
}

// --- list ---

func (s *PracticeScreen) renderList(width int) string {
	sec, _ := s.ctrl.State()
	entries := s.ctrl.Entries()

	var b strings.Builder
	b.WriteString(heading(strings.ToUpper(sec.Title()), width))
	b.WriteString("\n\n")

	if len(entries) == 0 {
		b.WriteString(dim("Nothing to practise here yet.", width))
		return b.String()
	}

	cw := components.CardWidth(width)
	var rows []string
	for i, e := range entries {
		title := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(e.Title)
		sub := lipgloss.NewStyle().Foreground(theme.TextDim).Render(e.Subtitle)
		prefix := "  "
		border := theme.Border
		if i == s.cursor {
			prefix = "▸ "
			border = theme.Highlight
		}
		rows = append(rows, lipgloss.NewStyle().
			Width(cw).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			Render(prefix+title+"\n  "+sub))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Left, rows...)))
	return b.String()
}

// --- lesson ---

func activityLabel(v session.SubView) string {
	switch v {
	case session.ViewExercise:
		return "Start Quiz"
	case session.ViewPractice:
		return "Start Practice"
	case session.ViewFlashcard:
		return "Flashcards"
	case session.ViewGame:
		return "Memory Game"
	}
	return v.String()
}

func (s *PracticeScreen) renderLesson(width int) string {
	sess := s.ctrl.Session()
	cw := components.CardWidth(width)
	text := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6)

	var b strings.Builder
	b.WriteString(heading(sess.Title(), width))
	b.WriteString("\n\n")

	var card strings.Builder
	switch {
	case sess.Grammar != nil:
		g := sess.Grammar
		card.WriteString(dim(g.Level+" · "+g.Description, cw-6))
		card.WriteString("\n\n")
		card.WriteString(text.Render(g.Content))
		for _, ex := range g.Examples {
			card.WriteString("\n")
			card.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Italic(true).Render("  • " + ex))
		}
		card.WriteString("\n\n")
		card.WriteString(dim(fmt.Sprintf("%d questions", len(g.Exercises)), cw-6))
	case sess.Speaking != nil:
		sp := sess.Speaking
		card.WriteString(dim(sp.Level+" · "+sp.Description, cw-6))
		card.WriteString("\n\n")
		for _, p := range sp.Prompts {
			card.WriteString(text.Render("“" + p + "”"))
			card.WriteString("\n")
		}
		for _, tip := range sp.Tips {
			card.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render("Tip: " + tip))
			card.WriteString("\n")
		}
	case sess.Typing != nil:
		t := sess.Typing
		card.WriteString(dim(t.Level, cw-6))
		card.WriteString("\n\n")
		card.WriteString(text.Render(t.Text))
		card.WriteString("\n\n")
		card.WriteString(dim(fmt.Sprintf("Target: %d WPM at %d%% accuracy", t.TargetWPM, t.TargetAccuracy), cw-6))
	case sess.Vocabulary != nil:
		v := sess.Vocabulary
		card.WriteString(dim(v.Description, cw-6))
		card.WriteString("\n\n")
		for _, w := range v.Words {
			card.WriteString(lipgloss.NewStyle().Foreground(theme.Info).Bold(true).Render(w.Word))
			card.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + w.Meaning))
			card.WriteString("\n")
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(card.String(), cw)))
	b.WriteString("\n\n")

	var buttons []string
	for i, a := range s.ctrl.Activities() {
		buttons = append(buttons, components.MenuButton(activityLabel(a), i == s.cursor, 20))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.JoinHorizontal(lipgloss.Center, buttons...)))
	return b.String()
}

// --- quiz ---

func (s *PracticeScreen) renderQuiz(width int) string {
	q := s.ctrl.Session().Quiz
	var b strings.Builder

	if q.Complete {
		res := q.Result()
		b.WriteString(heading("QUIZ COMPLETE", width))
		b.WriteString("\n\n")
		fg := theme.Success
		if res.Percent() < similarity.GoodThreshold {
			fg = theme.Accent
		}
		b.WriteString(centered(width, fg).Bold(true).Render(fmt.Sprintf("%d / %d  (%d%%)", res.Score, res.Total, res.Percent())))
		b.WriteString("\n\n")
		b.WriteString(dim("Press R to try again or Esc to go back", width))
		return b.String()
	}

	ex, _ := q.Current()
	cw := components.CardWidth(width)
	b.WriteString(components.NewProgressBar("Question", q.Index+1, len(q.Exercises), cw).View())
	b.WriteString("\n\n")

	mc := components.NewMultiChoice(ex.Question, ex.Options, ex.Answer)
	mc.Cursor = s.cursor
	mc.Revealed = q.Revealed
	if q.Selected != nil {
		mc.Chosen = *q.Selected
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, mc.View()))

	if q.Revealed {
		b.WriteString("\n")
		if mc.Correct() {
			b.WriteString(centered(width, theme.Success).Bold(true).Render("Correct!"))
		} else {
			b.WriteString(centered(width, theme.Error).Bold(true).Render("Not quite"))
		}
		if ex.Explanation != "" {
			b.WriteString("\n\n")
			exp := lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text).Render(ex.Explanation)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(dim(fmt.Sprintf("Score: %d", q.Score), width))
	return b.String()
}

// --- typing ---

func renderChars(target, typed string) string {
	var b strings.Builder
	runes := []rune(target)
	for i, st := range typing.CharStates(target, typed) {
		ch := string(runes[i])
		switch st {
		case typing.CharMatch:
			b.WriteString(theme.CharMatch.Render(ch))
		case typing.CharMismatch:
			if ch == " " {
				ch = "·"
			}
			b.WriteString(theme.CharMismatch.Render(ch))
		case typing.CharCursor:
			b.WriteString(theme.CharCursor.Render(ch))
		default:
			b.WriteString(theme.CharPending.Render(ch))
		}
	}
	return b.String()
}

func (s *PracticeScreen) renderTyping(width int) string {
	sess := s.ctrl.Session()
	run := sess.Run
	lesson := sess.Typing
	cw := components.CardWidth(width)

	var b strings.Builder
	b.WriteString(heading(lesson.Title, width))
	b.WriteString("\n\n")

	passage := lipgloss.NewStyle().Width(cw - 6).Render(renderChars(run.Target, run.Typed))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(passage, cw)))
	b.WriteString("\n\n")

	elapsed := run.Elapsed(s.deps.Clock())
	stats := typing.Compute(run.Target, run.Typed, elapsed)
	wpm, acc := "--", "--"
	if stats.Defined {
		wpm = fmt.Sprintf("%d", stats.WPM)
		acc = fmt.Sprintf("%d%%", stats.Accuracy)
	}
	line := fmt.Sprintf("WPM %s / %d   Accuracy %s / %d%%   Time %d:%02d",
		wpm, lesson.TargetWPM, acc, lesson.TargetAccuracy,
		int(elapsed.Minutes()), int(elapsed.Seconds())%60)
	b.WriteString(centered(width, theme.Text).Render(line))
	b.WriteString("\n\n")

	switch {
	case run.Completed():
		if typing.TargetMet(run.Stats, lesson.TargetWPM, lesson.TargetAccuracy) {
			b.WriteString(centered(width, theme.Success).Bold(true).Render("Target reached!"))
		} else {
			b.WriteString(centered(width, theme.Accent).Bold(true).Render("Finished. Press Tab to try again"))
		}
	case !run.Started():
		b.WriteString(dim("Start typing to begin the clock", width))
	}
	return b.String()
}

// --- speaking ---

func tierColor(t similarity.FeedbackTier) color.Color {
	switch t {
	case similarity.TierExcellent:
		return theme.Success
	case similarity.TierGood:
		return theme.Secondary
	case similarity.TierKeepPracticing:
		return theme.Warning
	default:
		return theme.Error
	}
}

func (s *PracticeScreen) renderSpeaking(width int) string {
	p := s.ctrl.Session().Speech
	cw := components.CardWidth(width)

	var b strings.Builder
	b.WriteString(components.NewProgressBar("Prompt", p.Index+1, len(p.Prompts), cw).View())
	b.WriteString("\n")
	b.WriteString(dim(fmt.Sprintf("%d of %d completed", len(p.Completed), len(p.Prompts)), width))
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw - 6).Align(lipgloss.Center).Render("“" + p.Current() + "”")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(prompt, cw)))
	b.WriteString("\n\n")

	switch {
	case p.Recording:
		b.WriteString(centered(width, theme.Error).Bold(true).Render("● Listening..."))
		if _, ok := s.liveDictation(); ok {
			b.WriteString("\n\n")
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.dictation.View()))
		} else if p.Interim != "" {
			b.WriteString("\n")
			b.WriteString(dim(p.Interim, width))
		}
	case p.Transcribing:
		b.WriteString(dim("Transcribing...", width))
	case p.Attempt != nil:
		b.WriteString(renderAttempt(*p.Attempt, width))
	default:
		b.WriteString(components.ButtonRow(
			components.Button{Key: "r", Label: "Record", Active: true},
			components.Button{Key: "p", Label: "Listen"},
		))
	}
	return b.String()
}

func renderAttempt(a pronunciation.Attempt, width int) string {
	var b strings.Builder
	b.WriteString(centered(width, tierColor(a.Tier)).Bold(true).Render(fmt.Sprintf("%d%%  %s", a.Score, a.Tier)))
	b.WriteString("\n")
	heard := a.Transcript
	if heard == "" {
		heard = "(nothing heard)"
	}
	b.WriteString(dim("You said: "+heard, width))
	return b.String()
}

// --- flashcards ---

func (s *PracticeScreen) renderFlashcard(width int) string {
	sess := s.ctrl.Session()
	words := sess.Vocabulary.Words
	cw := components.CardWidth(width)

	var b strings.Builder
	b.WriteString(components.NewProgressBar("Card", sess.Cards.Index+1, len(words), cw).View())
	b.WriteString("\n\n")

	w, ok := s.ctrl.CurrentCard()
	if !ok {
		b.WriteString(dim("No words in this category.", width))
		return b.String()
	}

	var face strings.Builder
	if !sess.Cards.Flipped {
		face.WriteString(lipgloss.NewStyle().Foreground(theme.Info).Bold(true).Render(w.Word))
		if w.Pronunciation != "" {
			face.WriteString("\n")
			face.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(w.Pronunciation))
		}
	} else {
		face.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(w.Meaning))
		if w.Example != "" {
			face.WriteString("\n\n")
			face.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Italic(true).Render(w.Example))
		}
		if len(w.Synonyms) > 0 {
			face.WriteString("\n\n")
			face.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Synonyms: " + strings.Join(w.Synonyms, ", ")))
		}
	}
	card := lipgloss.NewStyle().
		Width(cw).
		Height(9).
		Align(lipgloss.Center, lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Highlight).
		Render(face.String())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	return b.String()
}

// --- memory game ---

func (s *PracticeScreen) renderGame(width int) string {
	g := s.ctrl.Session().Game
	colWidth := max(min((width-8)/2, 32), 12)

	var b strings.Builder
	b.WriteString(heading("MEMORY MATCH", width))
	b.WriteString("\n")
	b.WriteString(dim(fmt.Sprintf("Score %d   Pairs %d/%d", g.Score, len(g.Matched), len(g.Words)), width))
	b.WriteString("\n\n")

	render := func(kind memorymatch.CardKind) string {
		column := g.Words
		if kind == memorymatch.KindMeaning {
			column = g.Meanings
		}
		rows := make([]string, 0, len(column))
		for i, w := range column {
			card := memorymatch.Card{WordID: w.ID, Kind: kind}
			label := w.Word
			if kind == memorymatch.KindMeaning {
				label = w.Meaning
			}
			style := lipgloss.NewStyle().
				Width(colWidth).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.Border).
				Foreground(theme.Text).
				Padding(0, 1)
			switch {
			case g.Matched[w.ID]:
				style = style.Foreground(theme.Success).BorderForeground(theme.Success)
			case g.IsSelected(card):
				style = style.Foreground(theme.Highlight).BorderForeground(theme.Highlight).Bold(true)
			}
			if kind == s.gameCol && i == s.cursor {
				style = style.BorderForeground(theme.Primary)
				label = "▸ " + label
			}
			rows = append(rows, style.Render(label))
		}
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, render(memorymatch.KindWord), "  ", render(memorymatch.KindMeaning))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, board))

	if g.Complete() {
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.Success).Bold(true).Render("All pairs matched! Press R to play again"))
	}
	return b.String()
}
