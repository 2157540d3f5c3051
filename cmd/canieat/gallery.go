package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/can-i-eat-this/internal/common"
	"github.com/Veraticus/can-i-eat-this/internal/config"
	"github.com/Veraticus/can-i-eat-this/internal/source"
	"github.com/Veraticus/can-i-eat-this/internal/tui"
)

func galleryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallery [directory]",
		Short: "Pick a label photo interactively and scan it",
		Long: `Gallery opens a picker over your photo directory, scans the image you
choose, and prints the verdict.

The directory comes from the argument, the gallery.dir config key, or
your pictures directory, in that order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGallery,
	}

	addOutputFlags(cmd)
	addScanFlags(cmd)

	return cmd
}

func runGallery(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dir, err := galleryDir(args)
	if err != nil {
		return err
	}

	path, err := tui.PickImage(ctx, dir)
	if err != nil {
		if errors.Is(err, tui.ErrPickerCancelled) {
			slog.Info("picker closed without a selection")
			return nil
		}
		return err
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

	record, err := s.Scan(ctx, source.NewGallery(filepath.Dir(path), filepath.Base(path)))
	if err != nil {
		return err
	}

	if _, err := writer.Write(record); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// galleryDir picks the directory the picker starts in.
func galleryDir(args []string) (string, error) {
	if len(args) == 1 {
		return config.ExpandPath(args[0]), nil
	}
	if dir := viper.GetString("gallery.dir"); dir != "" {
		return config.ExpandPath(dir), nil
	}
	if pictures := xdg.UserDirs.Pictures; pictures != "" {
		return pictures, nil
	}
	return "", fmt.Errorf("%w: no gallery directory; pass one or set gallery.dir", common.ErrMissingConfig)
}
