package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/can-i-eat-this/internal/cli"
	"github.com/Veraticus/can-i-eat-this/internal/model"
	"github.com/Veraticus/can-i-eat-this/internal/scanner"
	"github.com/Veraticus/can-i-eat-this/internal/source"
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <image>...",
		Short: "Scan label photos and report dietary verdicts",
		Long: `Scan runs OCR over one or more label photos and classifies the text it
finds. Globs work: canieat scan ~/photos/labels/*.jpg

With several images the scans run in parallel and the report ends with
a summary. A photo that cannot be read is reported as failed; the rest
of the batch still completes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScan,
	}

	addOutputFlags(cmd)
	addScanFlags(cmd)
	cmd.Flags().Int("concurrency", 0, "parallel scans for batches (defaults to scan.concurrency)")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	paths, err := expandImageArgs(args)
	if err != nil {
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

	if len(paths) == 1 {
		record, scanErr := s.Scan(ctx, source.NewFile(paths[0]))
		if scanErr != nil {
			return scanErr
		}
		if _, writeErr := writer.Write(record); writeErr != nil {
			return fmt.Errorf("failed to write report: %w", writeErr)
		}
		return nil
	}

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency <= 0 {
		concurrency = viper.GetInt("scan.concurrency")
	}

	bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(paths), "Scanning labels...")
	records, err := s.ScanBatch(ctx, paths, scanner.BatchOptions{
		Concurrency: concurrency,
		OnResult: func(*model.ScanRecord, int) {
			_ = bar.Add(1)
		},
	})
	if err != nil {
		return err
	}
	_ = bar.Finish()

	if _, err := writer.WriteBatch(records); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return batchExitError(records)
}

// batchExitError makes a batch where every scan failed exit non-zero;
// partial failures are visible in the report but still succeed.
func batchExitError(records []*model.ScanRecord) error {
	if len(records) == 0 {
		return nil
	}
	for _, r := range records {
		if !r.Failed() {
			return nil
		}
	}
	return fmt.Errorf("all %d scans failed", len(records))
}
