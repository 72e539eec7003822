package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsBuiltinCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.NotEmpty(t, c.Grammar())
	assert.NotEmpty(t, c.Speaking())
	assert.NotEmpty(t, c.Typing())
	assert.NotEmpty(t, c.Vocabulary())

	for _, v := range c.Vocabulary() {
		assert.GreaterOrEqual(t, len(v.Words), 6, "category %s needs enough words for the memory game", v.ID)
	}
}

func TestLookupByID(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	g, ok := c.GrammarLesson("present-simple")
	require.True(t, ok)
	assert.Equal(t, "Present Simple Tense", g.Title)
	assert.Len(t, g.Exercises, 3)

	_, ok = c.TypingLesson("no-such-lesson")
	assert.False(t, ok)
}

func TestReturnedEntriesAreCopies(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	g, _ := c.GrammarLesson("present-simple")
	g.Exercises[0].Options[0] = "mutated"
	g.Exercises[0].Answer = 3

	again, _ := c.GrammarLesson("present-simple")
	assert.Equal(t, "go", again.Exercises[0].Options[0])
	assert.Equal(t, 1, again.Exercises[0].Answer)

	v := c.Vocabulary()
	v[0].Words[0].Word = "mutated"
	assert.NotEqual(t, "mutated", c.Vocabulary()[0].Words[0].Word)
}

func TestParse_SchemaViolation(t *testing.T) {
	_, err := Parse([]byte(`
typing:
  - id: t1
    title: Missing targets
    text: hello
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestParse_AccuracyAbove100(t *testing.T) {
	_, err := Parse([]byte(`
typing:
  - id: t1
    title: Too strict
    text: hello
    target_wpm: 10
    target_accuracy: 120
`))
	require.Error(t, err)
}

func TestParse_AnswerOutOfRange(t *testing.T) {
	_, err := Parse([]byte(`
grammar:
  - id: g1
    title: Bad answer
    exercises:
      - question: Pick one
        options: [a, b]
        answer: 2
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestParse_DuplicateWordID(t *testing.T) {
	_, err := Parse([]byte(`
vocabulary:
  - id: v1
    name: Dupes
    words:
      - {id: a, word: A, meaning: first}
      - {id: a, word: B, meaning: second}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate word id")
}

func TestParse_UnknownTopLevelKey(t *testing.T) {
	_, err := Parse([]byte("lessons: []\n"))
	require.Error(t, err)
}

func TestParse_EmptyDocument(t *testing.T) {
	doc, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, doc.Grammar)
}

func TestLoadFS_DuplicateAcrossFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("speaking:\n  - {id: s1, title: One, prompts: [hi]}\n")},
		"b.yaml": {Data: []byte("speaking:\n  - {id: s1, title: Two, prompts: [hello]}\n")},
	}
	_, err := LoadFS(fsys)
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "b.yaml", vErr.Path)
}

func TestLoadFS_IgnoresNonYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"README.md": {Data: []byte("# not a catalog")},
		"s.yml":     {Data: []byte("speaking:\n  - {id: s1, title: One, prompts: [hi]}\n")},
	}
	c, err := LoadFS(fsys)
	require.NoError(t, err)
	assert.Len(t, c.Speaking(), 1)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "typing.yaml"), []byte(`
typing:
  - id: t1
    title: Tiny
    text: the cat sat
    target_wpm: 40
    target_accuracy: 90
`), 0o644)
	require.NoError(t, err)

	c, err := LoadDir(dir)
	require.NoError(t, err)
	tl, ok := c.TypingLesson("t1")
	require.True(t, ok)
	assert.Equal(t, 40, tl.TargetWPM)
}

func TestLoadDir_Missing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
