package catalog

// Exercise is a single multiple-choice grammar question.
type Exercise struct {
	Question    string   `yaml:"question" json:"question"`
	Options     []string `yaml:"options" json:"options"`
	Answer      int      `yaml:"answer" json:"answer"`
	Explanation string   `yaml:"explanation,omitempty" json:"explanation,omitempty"`
}

// GrammarLesson is a grammar topic with explanatory content and a quiz.
type GrammarLesson struct {
	ID          string     `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description" json:"description"`
	Level       string     `yaml:"level" json:"level"`
	Content     string     `yaml:"content" json:"content"`
	Examples    []string   `yaml:"examples,omitempty" json:"examples,omitempty"`
	Exercises   []Exercise `yaml:"exercises" json:"exercises"`
}

// SpeakingActivity is a set of phrases to read aloud.
type SpeakingActivity struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Level       string   `yaml:"level" json:"level"`
	Prompts     []string `yaml:"prompts" json:"prompts"`
	Tips        []string `yaml:"tips,omitempty" json:"tips,omitempty"`
}

// TypingLesson is a passage to type with speed and accuracy targets.
type TypingLesson struct {
	ID             string `yaml:"id" json:"id"`
	Title          string `yaml:"title" json:"title"`
	Level          string `yaml:"level" json:"level"`
	Text           string `yaml:"text" json:"text"`
	TargetWPM      int    `yaml:"target_wpm" json:"target_wpm"`
	TargetAccuracy int    `yaml:"target_accuracy" json:"target_accuracy"`
}

// Word is one vocabulary entry.
type Word struct {
	ID            string   `yaml:"id" json:"id"`
	Word          string   `yaml:"word" json:"word"`
	Meaning       string   `yaml:"meaning" json:"meaning"`
	Pronunciation string   `yaml:"pronunciation,omitempty" json:"pronunciation,omitempty"`
	Example       string   `yaml:"example,omitempty" json:"example,omitempty"`
	Synonyms      []string `yaml:"synonyms,omitempty" json:"synonyms,omitempty"`
	Difficulty    string   `yaml:"difficulty,omitempty" json:"difficulty,omitempty"`
}

// VocabularyCategory groups related words.
type VocabularyCategory struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Words       []Word `yaml:"words" json:"words"`
}

// Document is the top-level shape of a catalog YAML file. A file may carry
// any subset of the four sections.
type Document struct {
	Grammar    []GrammarLesson      `yaml:"grammar,omitempty" json:"grammar,omitempty"`
	Speaking   []SpeakingActivity   `yaml:"speaking,omitempty" json:"speaking,omitempty"`
	Typing     []TypingLesson       `yaml:"typing,omitempty" json:"typing,omitempty"`
	Vocabulary []VocabularyCategory `yaml:"vocabulary,omitempty" json:"vocabulary,omitempty"`
}

// Provider supplies read-only catalogs. Returned slices are copies.
type Provider interface {
	Grammar() []GrammarLesson
	Speaking() []SpeakingActivity
	Typing() []TypingLesson
	Vocabulary() []VocabularyCategory

	GrammarLesson(id string) (GrammarLesson, bool)
	SpeakingActivity(id string) (SpeakingActivity, bool)
	TypingLesson(id string) (TypingLesson, bool)
	VocabularyCategory(id string) (VocabularyCategory, bool)
}
