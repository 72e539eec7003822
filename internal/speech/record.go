package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"time"
)

// CommandRecognizer records audio with an external command (sox "rec" by
// default) until Stop, then hands the file to a Transcriber and emits a
// single final event.
type CommandRecognizer struct {
	name    string
	record  []string
	stt     Transcriber
	timeout time.Duration

	mu      sync.Mutex
	cmd     *exec.Cmd
	stopped bool
}

// NewCommandRecognizer creates a recognizer. The output file path is
// appended to record as its last argument.
func NewCommandRecognizer(name string, record []string, stt Transcriber, timeout time.Duration) *CommandRecognizer {
	return &CommandRecognizer{name: name, record: record, stt: stt, timeout: timeout}
}

func (r *CommandRecognizer) Name() string { return r.name }

func (r *CommandRecognizer) Start(ctx context.Context, gen uint64) (<-chan Event, error) {
	if len(r.record) == 0 {
		return nil, fmt.Errorf("%w: no record command configured", ErrUnsupported)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cmd != nil {
		return nil, ErrBusy
	}

	f, err := os.CreateTemp("", "parley-*.wav")
	if err != nil {
		return nil, fmt.Errorf("create recording file: %w", err)
	}
	path := f.Name()
	f.Close()

	cmd := exec.CommandContext(ctx, r.record[0], append(r.record[1:], path)...)
	if err := cmd.Start(); err != nil {
		os.Remove(path)
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s not found", ErrUnsupported, r.record[0])
		}
		return nil, fmt.Errorf("%w: %v", ErrPermission, err)
	}
	r.cmd = cmd
	r.stopped = false
	slog.Debug("recording started", "recognizer", r.name, "generation", gen, "file", path)

	events := make(chan Event, 1)
	go r.finish(ctx, gen, cmd, path, events)
	return events, nil
}

func (r *CommandRecognizer) finish(ctx context.Context, gen uint64, cmd *exec.Cmd, path string, events chan<- Event) {
	defer close(events)
	defer os.Remove(path)

	waitErr := cmd.Wait()

	r.mu.Lock()
	stopped := r.stopped
	r.cmd = nil
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		events <- errorEvent(gen, err)
		return
	}
	if !stopped {
		// The recorder quit on its own: no device, or access refused.
		events <- errorEvent(gen, fmt.Errorf("%w: recorder exited: %v", ErrPermission, waitErr))
		return
	}

	tctx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		tctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	text, err := r.stt.Transcribe(tctx, path)
	if err != nil {
		slog.Warn("transcription failed", "recognizer", r.name, "err", err)
		events <- errorEvent(gen, err)
		return
	}
	events <- finalEvent(gen, text)
}

// Stop interrupts the recorder. The final event follows once the audio
// has been transcribed.
func (r *CommandRecognizer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cmd == nil || r.cmd.Process == nil {
		return nil
	}
	r.stopped = true
	if runtime.GOOS == "windows" {
		return r.cmd.Process.Kill()
	}
	return r.cmd.Process.Signal(os.Interrupt)
}
