package catalog

import "slices"

func (c *Catalog) Grammar() []GrammarLesson {
	out := make([]GrammarLesson, len(c.grammar))
	for i, g := range c.grammar {
		out[i] = g.clone()
	}
	return out
}

func (c *Catalog) Speaking() []SpeakingActivity {
	out := make([]SpeakingActivity, len(c.speaking))
	for i, s := range c.speaking {
		out[i] = s.clone()
	}
	return out
}

func (c *Catalog) Typing() []TypingLesson {
	return slices.Clone(c.typing)
}

func (c *Catalog) Vocabulary() []VocabularyCategory {
	out := make([]VocabularyCategory, len(c.vocabulary))
	for i, v := range c.vocabulary {
		out[i] = v.clone()
	}
	return out
}

func (c *Catalog) GrammarLesson(id string) (GrammarLesson, bool) {
	for _, g := range c.grammar {
		if g.ID == id {
			return g.clone(), true
		}
	}
	return GrammarLesson{}, false
}

func (c *Catalog) SpeakingActivity(id string) (SpeakingActivity, bool) {
	for _, s := range c.speaking {
		if s.ID == id {
			return s.clone(), true
		}
	}
	return SpeakingActivity{}, false
}

func (c *Catalog) TypingLesson(id string) (TypingLesson, bool) {
	for _, t := range c.typing {
		if t.ID == id {
			return t, true
		}
	}
	return TypingLesson{}, false
}

func (c *Catalog) VocabularyCategory(id string) (VocabularyCategory, bool) {
	for _, v := range c.vocabulary {
		if v.ID == id {
			return v.clone(), true
		}
	}
	return VocabularyCategory{}, false
}

// Clones keep callers from mutating catalog slices.

func (g GrammarLesson) clone() GrammarLesson {
	g.Examples = slices.Clone(g.Examples)
	ex := make([]Exercise, len(g.Exercises))
	for i, e := range g.Exercises {
		e.Options = slices.Clone(e.Options)
		ex[i] = e
	}
	g.Exercises = ex
	return g
}

func (s SpeakingActivity) clone() SpeakingActivity {
	s.Prompts = slices.Clone(s.Prompts)
	s.Tips = slices.Clone(s.Tips)
	return s
}

func (v VocabularyCategory) clone() VocabularyCategory {
	words := make([]Word, len(v.Words))
	for i, w := range v.Words {
		w.Synonyms = slices.Clone(w.Synonyms)
		words[i] = w
	}
	v.Words = words
	return v
}
