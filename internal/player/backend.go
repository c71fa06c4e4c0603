package player

import (
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"
)

// Handle is a live audio stream. Pause and Resume do not re-fetch the
// stream; Close releases the underlying resource.
type Handle interface {
	Pause() error
	Resume() error
	SetVolume(v float64) error
	Close() error
}

// Backend opens audio streams. Open blocks until the stream is confirmed
// playable (or the context is canceled) and is always called off the event
// loop; the player discards results whose attempt has been superseded.
type Backend interface {
	Open(ctx context.Context, streamURL string) (Handle, error)
}

// DefaultPlayerCommand is the external process used for audio output.
const DefaultPlayerCommand = "mpv --no-video --really-quiet"

// ProcessBackend probes the stream over HTTP (ICY-aware) and then hands it
// to an external player process. The probe is what confirms the stream and
// is governed by the attempt context; the process itself outlives it.
type ProcessBackend struct {
	Command string // player command line, stream URL appended
	Client  *http.Client
}

// NewProcessBackend creates a backend using the default player command.
func NewProcessBackend() *ProcessBackend {
	return &ProcessBackend{
		Command: DefaultPlayerCommand,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Open implements Backend.
func (b *ProcessBackend) Open(ctx context.Context, streamURL string) (Handle, error) {
	if err := b.probe(ctx, streamURL); err != nil {
		return nil, err
	}

	// A canceled attempt must not leave a player process behind.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	args := strings.Fields(b.Command)
	if len(args) == 0 {
		return nil, fmt.Errorf("empty player command")
	}
	args = append(args, streamURL)

	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start player process: %w", err)
	}

	h := &processHandle{cmd: cmd}
	go func() {
		// Reap the process when it exits on its own.
		_ = cmd.Wait()
		h.mu.Lock()
		h.exited = true
		h.mu.Unlock()
	}()
	return h, nil
}

// probe issues an ICY-aware GET and verifies the response looks like an
// audio stream or playlist.
func (b *ProcessBackend) probe(ctx context.Context, streamURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if err != nil {
		return fmt.Errorf("create probe request: %w", err)
	}
	req.Header.Set("Icy-MetaData", "1")
	req.Header.Set("User-Agent", "ls-globeradio/1.0 (Globe Radio Browser)")

	resp, err := b.Client.Do(req)
	if err != nil {
		return fmt.Errorf("probe stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream returned status %d", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "" && !playableContentType(ct) {
		return fmt.Errorf("not an audio stream: %s", ct)
	}
	return nil
}

func playableContentType(ct string) bool {
	ct = strings.ToLower(ct)
	for _, prefix := range []string{
		"audio/",
		"application/ogg",
		"application/vnd.apple.mpegurl",
		"application/x-mpegurl",
		"video/mp2t", // some ICY servers mislabel MPEG-TS audio
	} {
		if strings.HasPrefix(ct, prefix) {
			return true
		}
	}
	return false
}

// processHandle controls the external player via process signals.
type processHandle struct {
	mu     sync.Mutex
	cmd    *exec.Cmd
	exited bool
}

func (h *processHandle) signal(sig syscall.Signal) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.exited || h.cmd.Process == nil {
		return nil
	}
	return h.cmd.Process.Signal(sig)
}

// Pause suspends the player process.
func (h *processHandle) Pause() error {
	return h.signal(syscall.SIGSTOP)
}

// Resume continues the suspended process; the stream is not re-fetched.
func (h *processHandle) Resume() error {
	return h.signal(syscall.SIGCONT)
}

// SetVolume records the requested volume. The external process has no
// volume IPC; the value takes effect when the next stream opens.
func (h *processHandle) SetVolume(v float64) error {
	return nil
}

// Close stops the player process.
func (h *processHandle) Close() error {
	h.mu.Lock()
	if h.exited || h.cmd.Process == nil {
		h.mu.Unlock()
		return nil
	}
	h.mu.Unlock()
	// SIGCONT first: a SIGKILL alone does not wake a stopped process group
	// on every platform.
	_ = h.signal(syscall.SIGCONT)
	return h.signal(syscall.SIGKILL)
}
