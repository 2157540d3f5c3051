package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Veraticus/can-i-eat-this/internal/classify"
	"github.com/Veraticus/can-i-eat-this/internal/cli"
	"github.com/Veraticus/can-i-eat-this/internal/config"
	"github.com/Veraticus/can-i-eat-this/internal/model"
)

func keywordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Inspect the keyword tables",
		Long:  `Show the effective keyword tables, check what a term would trip, and validate keyword packs before installing them.`,
	}

	cmd.AddCommand(keywordsListCmd())
	cmd.AddCommand(keywordsCheckCmd())
	cmd.AddCommand(keywordsValidateCmd())

	return cmd
}

func keywordsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [category]",
		Short: "List the effective keywords per category",
		Long:  `Display the keyword tables the scanner will match against, builtins plus any loaded packs. Pass a category to show just one table.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier, err := buildClassifier(cmd)
			if err != nil {
				return err
			}

			sets := classifier.Categories()
			if len(args) == 1 {
				category, ok := model.ParseCategory(args[0])
				if !ok {
					return fmt.Errorf("unknown category %q (gluten-free, vegan, vegetarian)", args[0])
				}
				var filtered []model.KeywordSet
				for _, set := range sets {
					if set.Category == category {
						filtered = append(filtered, set)
					}
				}
				sets = filtered
			}

			// Create table writer
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				headerStyle.Render("Category"),
				headerStyle.Render("Count"),
				headerStyle.Render("Keywords"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 12),
				strings.Repeat("-", 5),
				strings.Repeat("-", 50))

			for _, set := range sets {
				fmt.Fprintf(w, "%s\t%d\t%s\n",
					set.Category.DisplayName(),
					len(set.Keywords),
					strings.Join(set.Keywords, ", "))
			}

			return nil
		},
	}
}

func keywordsCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <term>",
		Short: "Show what a term or phrase would trip",
		Long: `Check classifies the given text exactly the way a scan would, so you
can see which flags an ingredient clears before it shows up on a label.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier, err := buildClassifier(cmd)
			if err != nil {
				return err
			}

			term := args[0]
			verdict, evidence := classifier.ClassifyWithEvidence(term)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatLookup(term, verdict, evidence))

			if exact := classifier.Lookup(strings.ToLower(term)); len(exact) > 0 {
				names := make([]string, 0, len(exact))
				for _, c := range exact {
					names = append(names, c.DisplayName())
				}
				fmt.Fprintln(out, cli.StyleSubtle("listed verbatim under: "+strings.Join(names, ", ")))
			}

			return nil
		},
	}
}

// formatLookup renders the per-category outcome for one checked term,
// matching the glyphs scan cards use.
func formatLookup(term string, verdict model.Verdict, evidence []model.Evidence) string {
	lines := []string{cli.StyleTitle(fmt.Sprintf("%q classifies as:", term))}
	for _, c := range model.AllCategories() {
		ok := verdict.Flag(c)
		line := cli.FlagGlyph(ok) + " " + c.DisplayName()
		if !ok {
			for _, ev := range evidence {
				if ev.Category == c {
					line += " " + cli.StyleSubtle("(matched "+ev.Keyword+")")
					break
				}
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func keywordsValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <pack>...",
		Short: "Validate keyword pack files",
		Long:  `Parse and validate keyword packs without loading them, reporting what each one would contribute.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var failures int
			for _, arg := range args {
				info, err := classify.Inspect(config.ExpandPath(arg))
				if err != nil {
					failures++
					fmt.Fprintln(out, cli.FormatError(err.Error()))
					continue
				}

				var counts []string
				for _, c := range model.AllCategories() {
					if n := info.Keywords[c]; n > 0 {
						counts = append(counts, fmt.Sprintf("%s %d", c.DisplayName(), n))
					}
				}
				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s: %s pack (%s), %s",
					info.Path, info.Name, info.Mode, strings.Join(counts, ", "))))
			}

			if failures > 0 {
				return fmt.Errorf("%d of %d packs invalid", failures, len(args))
			}
			return nil
		},
	}
}
