package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// DictationInput collects a typed transcript while a dictation recording
// is live. It stands in for a microphone backend.
type DictationInput struct {
	model textinput.Model
}

func NewDictationInput(placeholder string, limit int) DictationInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "🎙 "
	ti.CharLimit = limit
	return DictationInput{model: ti}
}

// Begin clears the previous transcript and focuses the input.
func (d *DictationInput) Begin() tea.Cmd {
	d.model.Reset()
	return d.model.Focus()
}

func (d DictationInput) Update(msg tea.Msg) (DictationInput, tea.Cmd) {
	var cmd tea.Cmd
	d.model, cmd = d.model.Update(msg)
	return d, cmd
}

// Text is the transcript typed so far.
func (d DictationInput) Text() string {
	return d.model.Value()
}

// Submit returns the trimmed transcript and blurs the input.
func (d *DictationInput) Submit() string {
	d.model.Blur()
	return strings.TrimSpace(d.model.Value())
}

func (d DictationInput) View() string {
	return d.model.View()
}
