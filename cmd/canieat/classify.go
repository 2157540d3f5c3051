package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Veraticus/can-i-eat-this/internal/cli"
	"github.com/Veraticus/can-i-eat-this/internal/common"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [text]",
		Short: "Classify label text you already have",
		Long: `Classify skips OCR and runs the keyword matcher directly on text:
pasted ingredient lists, output from another OCR tool, anything.

Reads stdin when no argument is given:

  pbpaste | canieat classify`,
		Args: cobra.MaximumNArgs(1),
		RunE: runClassify,
	}

	addOutputFlags(cmd)

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	text, err := classifyInput(cmd, args)
	if err != nil {
		return err
	}

	s, err := buildScanner(cmd)
	if err != nil {
		return err
	}

	writer, cleanup, err := newReportWriter(cmd)
	if err != nil {
		return err
	}
	defer closeReport(cleanup)

	record := s.ScanText(text)
	if _, err := writer.Write(record); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// classifyInput takes the text from the argument, or drains stdin when
// none is given. An empty argument is legitimate input: no text means
// no evidence.
func classifyInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	in := cmd.InOrStdin()
	if interactiveTerminal(in) {
		return "", common.NewUserError(
			"no label text given; pass it as an argument or pipe it in", common.ErrNoText)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	reader := cli.NewNonBlockingReader(in)
	text, err := reader.ReadAll(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read label text: %w", err)
	}
	return text, nil
}

// interactiveTerminal reports whether in is a terminal with nothing
// piped into it. Draining one would sit waiting for keystrokes.
func interactiveTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
