package speech

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// audioAPI is the subset of the OpenAI client used here.
type audioAPI interface {
	CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error)
	CreateSpeech(ctx context.Context, req openai.CreateSpeechRequest) (openai.RawResponse, error)
}

func newOpenAIClient(cfg OpenAIConfig) (*openai.Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	return openai.NewClientWithConfig(config), nil
}

// OpenAITranscriber transcribes audio files with the Whisper API.
type OpenAITranscriber struct {
	api      audioAPI
	model    string
	language string
}

// NewOpenAITranscriber creates a Whisper transcriber.
func NewOpenAITranscriber(cfg OpenAIConfig) (*OpenAITranscriber, error) {
	client, err := newOpenAIClient(cfg)
	if err != nil {
		return nil, err
	}
	return &OpenAITranscriber{api: client, model: cfg.STTModel, language: cfg.Language}, nil
}

func (t *OpenAITranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	resp, err := t.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: path,
		Language: t.language,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", mapOpenAIError(err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// NewOpenAIRecognizer records through cfg.RecordCommand and transcribes
// with Whisper, retrying transient API failures.
func NewOpenAIRecognizer(cfg Config) (*CommandRecognizer, error) {
	stt, err := NewOpenAITranscriber(cfg.OpenAI)
	if err != nil {
		return nil, err
	}
	return NewCommandRecognizer("openai", cfg.RecordCommand, WithRetry(stt, cfg.Retry), cfg.Timeout), nil
}

// OpenAISynthesizer speaks text with the OpenAI TTS API. Audio is cached
// on disk per model, voice and text, then handed to PlayCommand.
type OpenAISynthesizer struct {
	api      audioAPI
	model    string
	voice    string
	cacheDir string
	player   []string
	timeout  time.Duration
}

// NewOpenAISynthesizer creates a TTS synthesizer.
func NewOpenAISynthesizer(cfg Config) (*OpenAISynthesizer, error) {
	client, err := newOpenAIClient(cfg.OpenAI)
	if err != nil {
		return nil, err
	}
	return &OpenAISynthesizer{
		api:      client,
		model:    cfg.OpenAI.TTSModel,
		voice:    cfg.OpenAI.Voice,
		cacheDir: cfg.CacheDir,
		player:   cfg.PlayCommand,
		timeout:  cfg.Timeout,
	}, nil
}

func (s *OpenAISynthesizer) Speak(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(s.player) == 0 {
		return fmt.Errorf("%w: no audio player configured", ErrUnsupported)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	path, err := s.audioFile(ctx, text)
	if err != nil {
		return err
	}

	cmd := exec.Command(s.player[0], append(s.player[1:], path)...)
	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %s not found", ErrUnsupported, s.player[0])
		}
		return fmt.Errorf("start player: %w", err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			slog.Warn("audio player exited", "err", err)
		}
	}()
	return nil
}

// audioFile returns the cached audio for text, synthesizing it on a miss.
func (s *OpenAISynthesizer) audioFile(ctx context.Context, text string) (string, error) {
	sum := sha256.Sum256([]byte(s.model + "\x00" + s.voice + "\x00" + text))
	path := filepath.Join(s.cacheDir, hex.EncodeToString(sum[:12])+".mp3")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	resp, err := s.api.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.model),
		Input:          text,
		Voice:          openai.SpeechVoice(s.voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return "", fmt.Errorf("synthesize speech: %w", mapOpenAIError(err))
	}
	defer resp.Close()

	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create audio cache: %w", err)
	}
	tmp, err := os.CreateTemp(s.cacheDir, "tts-*.part")
	if err != nil {
		return "", fmt.Errorf("create audio file: %w", err)
	}
	if _, err := io.Copy(tmp, resp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write audio file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("store audio file: %w", err)
	}
	return path, nil
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ErrTranscription{StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &ErrTranscription{StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &ErrTranscription{Err: err}
}
