package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/can-i-eat-this/internal/config"
	"github.com/Veraticus/can-i-eat-this/internal/source"
)

func snapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snap",
		Short: "Capture a label photo with your camera and scan it",
		Long: `Snap runs your configured capture command, scans the photo it
produces, and prints the verdict. The command template receives the
output path as {{.Output}}:

  camera:
    command: "libcamera-still -n -o {{.Output}}"

The capture is deleted after the scan unless --keep is given; kept
photos land in the data directory.`,
		Args: cobra.NoArgs,
		RunE: runSnap,
	}

	addOutputFlags(cmd)
	addScanFlags(cmd)
	cmd.Flags().Bool("keep", false, "keep the captured photo after the scan")
	cmd.Flags().String("camera-command", "", "capture command override for this run")

	return cmd
}

func runSnap(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	command := viper.GetString("camera.command")
	if override, _ := cmd.Flags().GetString("camera-command"); override != "" {
		command = override
	}

	cam := source.NewCamera(command)
	if timeout := viper.GetDuration("camera.timeout"); timeout > 0 {
		cam.Timeout = timeout
	}

	keep, _ := cmd.Flags().GetBool("keep")
	if keep {
		if err := os.MkdirAll(config.DataDir(), 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		cam.Dir = config.DataDir()
	}

	s, err := buildScanner(cmd)
	if err != nil {
		return err
	}
	warnIfOCRUnavailable()

	writer, cleanup, err := newReportWriter(cmd)
	if err != nil {
		return err
	}
	defer closeReport(cleanup)

	record, err := s.Scan(ctx, cam)
	finishCapture(cam, keep)
	if err != nil {
		return err
	}

	if _, err := writer.Write(record); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// finishCapture disposes of the captured photo once the scan is done
// with it.
func finishCapture(cam *source.CameraSource, keep bool) {
	path := cam.CapturedPath()
	if path == "" {
		return
	}

	if keep {
		slog.Info("captured photo kept", "path", path)
		return
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to remove captured photo", "path", path, "error", err)
	}
}
