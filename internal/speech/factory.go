package speech

import (
	"context"
	"fmt"
	"time"
)

// Unsupported is the capability of an environment without speech support.
type Unsupported struct{}

func (Unsupported) Name() string { return "unsupported" }

func (Unsupported) Start(context.Context, uint64) (<-chan Event, error) {
	return nil, ErrUnsupported
}

func (Unsupported) Stop() error { return nil }

func (Unsupported) Speak(context.Context, string) error { return ErrUnsupported }

// NewFromConfig builds the recognizer and synthesizer for cfg.Provider.
func NewFromConfig(cfg Config) (Recognizer, Synthesizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		rec, err := NewOpenAIRecognizer(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing openai recognizer: %w", err)
		}
		syn, err := NewOpenAISynthesizer(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing openai synthesizer: %w", err)
		}
		return rec, syn, nil
	case ProviderDictation:
		return NewDictationRecognizer(), Unsupported{}, nil
	case ProviderDemo:
		return NewReplayRecognizer(400 * time.Millisecond), Unsupported{}, nil
	default:
		return Unsupported{}, Unsupported{}, nil
	}
}
