package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/can-i-eat-this/internal/classify"
	"github.com/Veraticus/can-i-eat-this/internal/common"
	"github.com/Veraticus/can-i-eat-this/internal/config"
	"github.com/Veraticus/can-i-eat-this/internal/ocr"
	"github.com/Veraticus/can-i-eat-this/internal/report"
	"github.com/Veraticus/can-i-eat-this/internal/scanner"
	"github.com/Veraticus/can-i-eat-this/internal/source"
	"github.com/Veraticus/can-i-eat-this/internal/vision"
)

// addOutputFlags registers the report flags shared by every command
// that produces a verdict.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "write the report as JSON")
	cmd.Flags().Bool("pretty", false, "pretty-print JSON output")
	cmd.Flags().Bool("markdown", false, "write the report as markdown")
	cmd.Flags().StringP("output", "o", "", "also save the report to this file (.json or .md)")
	cmd.Flags().Bool("evidence", false, "show each matched keyword with surrounding label text")
	cmd.Flags().Bool("show-text", false, "include the full extracted text in the report")
}

// addScanFlags registers the OCR flags shared by the commands that read
// photos.
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().String("lang", "", "OCR languages, e.g. eng or eng+deu (overrides ocr.language)")
	cmd.Flags().Bool("no-preprocess", false, "feed the photo to OCR untouched")
}

// newReportWriter builds the report writer the output flags describe.
// The returned cleanup closes the report file, if any.
func newReportWriter(cmd *cobra.Command) (report.Writer, func() error, error) {
	jsonOut, _ := cmd.Flags().GetBool("json")
	pretty, _ := cmd.Flags().GetBool("pretty")
	markdownOut, _ := cmd.Flags().GetBool("markdown")
	outputPath, _ := cmd.Flags().GetString("output")
	evidence, _ := cmd.Flags().GetBool("evidence")
	showText, _ := cmd.Flags().GetBool("show-text")

	if jsonOut && markdownOut {
		return nil, nil, common.NewUserError("choose one of --json and --markdown", nil)
	}

	var jsonOpts []report.JSONWriterOption
	if pretty {
		jsonOpts = append(jsonOpts, report.WithPrettyPrint())
	}
	if showText {
		jsonOpts = append(jsonOpts, report.WithFullText())
	}

	var termOpts []report.TerminalWriterOption
	if evidence {
		termOpts = append(termOpts, report.WithEvidence())
	}
	if showText {
		termOpts = append(termOpts, report.WithText())
	}

	stdout := cmd.OutOrStdout()
	var primary report.Writer
	switch {
	case jsonOut:
		primary = report.NewJSONWriter(stdout, jsonOpts...)
	case markdownOut:
		primary = report.NewMarkdownWriter(stdout)
	default:
		primary = report.NewTerminalWriter(stdout, termOpts...)
	}

	if outputPath == "" {
		return primary, func() error { return nil }, nil
	}

	path := config.ExpandPath(outputPath)
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create report file: %w", err)
	}

	var file report.Writer
	switch {
	case jsonOut:
		file = report.NewJSONWriter(f, jsonOpts...)
	case markdownOut:
		file = report.NewMarkdownWriter(f)
	default:
		// No format flag: take the format from the file extension.
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".markdown":
			file = report.NewMarkdownWriter(f)
		default:
			file = report.NewJSONWriter(f, jsonOpts...)
		}
	}

	return report.NewMultiWriter(primary, file), f.Close, nil
}

// closeReport runs the report cleanup, logging rather than masking the
// command's own error.
func closeReport(cleanup func() error) {
	if err := cleanup(); err != nil {
		slog.Warn("failed to close report file", "error", err)
	}
}

// buildClassifier assembles the effective lexicon: builtins, the user
// lexicon directory, config paths, then --lexicon flags.
func buildClassifier(cmd *cobra.Command) (*classify.Classifier, error) {
	explicit, _ := cmd.Flags().GetStringSlice("lexicon")
	configured := viper.GetStringSlice("lexicon.paths")

	lex, err := classify.Load(explicit, configured)
	if err != nil {
		return nil, err
	}
	return classify.New(lex)
}

// scanOptionsFromConfig maps the viper tree onto scanner options.
func scanOptionsFromConfig() (scanner.Options, error) {
	opts := scanner.DefaultOptions()
	opts.Languages = splitLanguages(viper.GetString("ocr.language"))
	opts.PSM = viper.GetInt("ocr.psm")
	opts.DPI = viper.GetInt("ocr.dpi")

	opts.Preprocess.Enabled = viper.GetBool("preprocess.enabled")
	opts.Preprocess.MaxWidth = viper.GetInt("preprocess.max_width")

	mode, ok := vision.ParseBinarizeMode(viper.GetString("preprocess.binarize"))
	if !ok {
		return scanner.Options{}, fmt.Errorf("%w: preprocess.binarize must be auto, on, or off",
			common.ErrInvalidConfig)
	}
	opts.Preprocess.Binarize = mode

	return opts, nil
}

// splitLanguages turns "eng+deu" (or comma/space separated) into
// tessdata language codes.
func splitLanguages(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '+' || r == ',' || r == ' '
	})

	langs := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			langs = append(langs, f)
		}
	}
	if len(langs) == 0 {
		return []string{"eng"}
	}
	return langs
}

// applyScanFlags layers per-run flag overrides over the configured
// options. Commands without the flags are left on config alone.
func applyScanFlags(cmd *cobra.Command, opts *scanner.Options) {
	if lang, err := cmd.Flags().GetString("lang"); err == nil && lang != "" {
		opts.Languages = splitLanguages(lang)
	}
	if skip, err := cmd.Flags().GetBool("no-preprocess"); err == nil && skip {
		opts.Preprocess.Enabled = false
	}
}

// buildScanner wires the OCR engine, classifier, and options together.
func buildScanner(cmd *cobra.Command) (*scanner.Scanner, error) {
	classifier, err := buildClassifier(cmd)
	if err != nil {
		return nil, err
	}

	opts, err := scanOptionsFromConfig()
	if err != nil {
		return nil, err
	}
	applyScanFlags(cmd, &opts)

	return scanner.New(ocr.NewTesseract(), classifier, opts), nil
}

func warnIfOCRUnavailable() {
	if !ocr.Available() {
		slog.Warn("Tesseract is not available in this build; image scans will fail")
	}
}

func ocrStatus() string {
	if !ocr.Available() {
		return "unavailable"
	}
	if v := ocr.Version(); v != "" {
		return "tesseract " + v
	}
	return "tesseract"
}

// expandImageArgs resolves the scan arguments: globs expand to image
// files, literal paths pass through untouched.
func expandImageArgs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		expanded := config.ExpandPath(arg)

		matches, err := filepath.Glob(expanded)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
		}

		if len(matches) == 0 {
			// Not a pattern and not on disk; keep it so the scan
			// reports the miss against the path the user typed.
			slog.Warn("image path does not match anything", "path", arg)
			paths = append(paths, expanded)
			continue
		}

		if len(matches) == 1 && matches[0] == expanded {
			paths = append(paths, expanded)
			continue
		}

		for _, m := range matches {
			if source.IsImagePath(m) {
				paths = append(paths, m)
			} else {
				slog.Debug("skipping non-image match", "path", m)
			}
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: nothing matched the given patterns", common.ErrNoImage)
	}
	return paths, nil
}
