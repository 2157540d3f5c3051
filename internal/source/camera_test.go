package source

import (
	"context"
	"image/color"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/can-i-eat-this/internal/common"
	"github.com/Veraticus/can-i-eat-this/internal/testutil"
)

func TestCameraSource_Acquire(t *testing.T) {
	dir := t.TempDir()
	data := testutil.SolidPNG(t, 12, 8, color.White)
	fixture := testutil.WriteFile(t, dir, "frame.png", data)

	cam := NewCamera("cp " + fixture + " {{.Output}}")
	cam.Dir = dir
	assert.Equal(t, "camera", cam.Name())

	img, err := cam.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, data, img.Data)
	assert.Equal(t, cam.CapturedPath(), img.Path)

	// The capture stays on disk; cleanup is the caller's decision.
	_, err = os.Stat(cam.CapturedPath())
	assert.NoError(t, err)
}

func TestCameraSource_ConfigErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("no command", func(t *testing.T) {
		cam := NewCamera("  ")
		cam.Dir = dir
		_, err := cam.Acquire(context.Background())
		assert.ErrorIs(t, err, common.ErrMissingConfig)
	})

	t.Run("command ignores the output placeholder", func(t *testing.T) {
		cam := NewCamera("true")
		cam.Dir = dir
		_, err := cam.Acquire(context.Background())
		assert.ErrorIs(t, err, common.ErrInvalidConfig)
	})

	t.Run("broken template", func(t *testing.T) {
		cam := NewCamera("capture {{.Output")
		cam.Dir = dir
		_, err := cam.Acquire(context.Background())
		assert.ErrorIs(t, err, common.ErrInvalidConfig)
	})
}

func TestCameraSource_CommandFails(t *testing.T) {
	dir := t.TempDir()

	cam := NewCamera("ls /definitely-not-a-real-path {{.Output}}")
	cam.Dir = dir

	_, err := cam.Acquire(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrCaptureFailed)
	assert.Contains(t, err.Error(), "definitely-not-a-real-path")
}

func TestCameraSource_CommandWritesNothing(t *testing.T) {
	dir := t.TempDir()

	// true exits 0 without touching its arguments.
	cam := NewCamera("true {{.Output}}")
	cam.Dir = dir

	_, err := cam.Acquire(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrCaptureFailed)
	assert.Contains(t, err.Error(), "no image")
}

func TestCameraSource_Timeout(t *testing.T) {
	dir := t.TempDir()

	cam := NewCamera("sleep 5 && cp missing {{.Output}}")
	cam.Dir = dir
	cam.Timeout = 50 * time.Millisecond

	start := time.Now()
	_, err := cam.Acquire(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrCaptureFailed)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestCameraSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cam := NewCamera("cp a {{.Output}}")
	_, err := cam.Acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderCommand(t *testing.T) {
	line, err := renderCommand("raspistill -o {{.Output}} -t 800", "/tmp/shot.jpg")
	require.NoError(t, err)
	assert.Equal(t, "raspistill -o /tmp/shot.jpg -t 800", line)

	// Spaced template actions expand the same way.
	line, err = renderCommand("capture {{ .Output }}", "/tmp/shot.jpg")
	require.NoError(t, err)
	assert.Equal(t, "capture /tmp/shot.jpg", line)
}
