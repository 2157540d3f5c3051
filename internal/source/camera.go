package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"text/template"
	"time"

	"github.com/Veraticus/can-i-eat-this/internal/common"
	"github.com/Veraticus/can-i-eat-this/internal/config"
	"github.com/Veraticus/can-i-eat-this/internal/model"
)

// DefaultCaptureTimeout bounds a capture command that never exits.
const DefaultCaptureTimeout = 30 * time.Second

// CameraSource captures a still by delegating to a user-configured
// command, e.g. `libcamera-still -n -o {{.Output}}`. The command runs
// through the shell and must write the capture to the file the
// {{.Output}} placeholder expands to.
type CameraSource struct {
	// Command is the capture command template.
	Command string
	// Dir is where captures land; empty means the system temp dir.
	Dir string
	// Timeout bounds the capture when the context carries no deadline;
	// zero means DefaultCaptureTimeout.
	Timeout time.Duration

	captured string
}

var _ Source = (*CameraSource)(nil)

// NewCamera returns a camera source running the given command
// template.
func NewCamera(command string) *CameraSource {
	return &CameraSource{Command: command}
}

// Name identifies the acquisition path.
func (s *CameraSource) Name() string { return "camera" }

// CapturedPath returns the file the last Acquire wrote, for callers
// that keep or clean up the capture.
func (s *CameraSource) CapturedPath() string { return s.captured }

// Acquire runs the capture command and reads the photo it produced.
func (s *CameraSource) Acquire(ctx context.Context) (model.Image, error) {
	if err := ctx.Err(); err != nil {
		return model.Image{}, err
	}
	if strings.TrimSpace(s.Command) == "" {
		return model.Image{}, fmt.Errorf("%w: camera.command is not set", common.ErrMissingConfig)
	}

	output, err := s.captureFile()
	if err != nil {
		return model.Image{}, err
	}
	s.captured = output

	line, err := renderCommand(s.Command, output)
	if err != nil {
		_ = os.Remove(output)
		return model.Image{}, fmt.Errorf("%w: bad camera.command template: %v", common.ErrInvalidConfig, err)
	}
	if !strings.Contains(line, output) {
		_ = os.Remove(output)
		return model.Image{}, fmt.Errorf("%w: camera.command must write the capture to {{.Output}}", common.ErrInvalidConfig)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		timeout := s.Timeout
		if timeout <= 0 {
			timeout = DefaultCaptureTimeout
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", line)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	common.LogDebug("running capture command", common.Fields{"command": line})
	if err := cmd.Run(); err != nil {
		_ = os.Remove(output)
		if stderr.Len() > 0 {
			return model.Image{}, fmt.Errorf("%w: %s", common.ErrCaptureFailed, strings.TrimSpace(stderr.String()))
		}
		return model.Image{}, fmt.Errorf("%w: %v", common.ErrCaptureFailed, err)
	}

	img, err := readImageFile(output)
	if err != nil {
		_ = os.Remove(output)
		return model.Image{}, fmt.Errorf("%w: command produced no image: %v", common.ErrCaptureFailed, err)
	}
	return img, nil
}

// captureFile reserves the file the capture command writes into.
func (s *CameraSource) captureFile() (string, error) {
	dir := config.ExpandPath(s.Dir)
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create capture directory %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, "canieat-capture-*.jpg")
	if err != nil {
		return "", fmt.Errorf("failed to reserve capture file: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close capture file: %w", err)
	}
	return name, nil
}

// renderCommand expands the {{.Output}} placeholder in the capture
// command template.
func renderCommand(tmpl, output string) (string, error) {
	t, err := template.New("capture").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, struct{ Output string }{Output: output}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
