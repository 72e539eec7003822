package speech

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderOpenAI    = "openai"
	ProviderDictation = "dictation"
	ProviderDemo      = "demo"
	ProviderNone      = "none"
)

// Config holds speech capability configuration.
type Config struct {
	// Provider selects the backend.
	// Values: "openai", "dictation", "demo", "none"
	Provider string

	OpenAI OpenAIConfig
	Retry  RetryConfig

	// RecordCommand captures microphone audio into the WAV file path
	// appended as its last argument. It must exit on SIGINT.
	RecordCommand []string

	// PlayCommand plays the audio file path appended as its last argument.
	PlayCommand []string

	// CacheDir holds synthesized audio, one file per distinct text.
	CacheDir string

	// Timeout bounds a single transcription or synthesis request,
	// including retries. Default: 30s.
	Timeout time.Duration
}

// OpenAIConfig holds OpenAI audio API configuration.
type OpenAIConfig struct {
	APIKey   string
	BaseURL  string // Optional. Any OpenAI-compatible audio API.
	STTModel string // Default: "whisper-1"
	TTSModel string // Default: "tts-1"
	Voice    string // Default: "alloy"
	Language string // Default: "en"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderDictation,
		OpenAI: OpenAIConfig{
			STTModel: "whisper-1",
			TTSModel: "tts-1",
			Voice:    "alloy",
			Language: "en",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		RecordCommand: []string{"rec", "-q", "-c", "1", "-r", "16000"},
		PlayCommand:   defaultPlayCommand(),
		CacheDir:      defaultCacheDir(),
		Timeout:       30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("PARLEY_SPEECH_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := os.Getenv("PARLEY_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if u := os.Getenv("PARLEY_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}
	if m := os.Getenv("PARLEY_STT_MODEL"); m != "" {
		cfg.OpenAI.STTModel = m
	}
	if m := os.Getenv("PARLEY_TTS_MODEL"); m != "" {
		cfg.OpenAI.TTSModel = m
	}
	if v := os.Getenv("PARLEY_TTS_VOICE"); v != "" {
		cfg.OpenAI.Voice = v
	}

	if c := strings.Fields(os.Getenv("PARLEY_RECORD_CMD")); len(c) > 0 {
		cfg.RecordCommand = c
	}
	if c := strings.Fields(os.Getenv("PARLEY_PLAY_CMD")); len(c) > 0 {
		cfg.PlayCommand = c
	}
	if d := os.Getenv("PARLEY_SPEECH_CACHE"); d != "" {
		cfg.CacheDir = d
	}
	if t := os.Getenv("PARLEY_SPEECH_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// DiscoverConfig probes OPENAI_API_KEY and returns an openai Config if it
// is set. Returns (Config{}, false) otherwise.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	return Config{}, false
}

// Validate checks that the selected provider has what it needs.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("PARLEY_OPENAI_API_KEY is required for the openai speech provider")
		}
		if len(c.RecordCommand) == 0 {
			return fmt.Errorf("PARLEY_RECORD_CMD is required for the openai speech provider")
		}
	case ProviderDictation, ProviderDemo, ProviderNone:
		// Nothing external needed.
	default:
		return fmt.Errorf("unknown speech provider: %q", c.Provider)
	}
	return nil
}

func defaultPlayCommand() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"afplay"}
	case "windows":
		return nil
	default:
		return []string{"mpg123", "-q"}
	}
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "parley", "tts")
	}
	return filepath.Join(dir, "parley", "tts")
}
