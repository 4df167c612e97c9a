package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/handiism/hitster-cards/internal/config"
	"github.com/handiism/hitster-cards/internal/generate"
	"github.com/handiism/hitster-cards/internal/logging"
	"github.com/handiism/hitster-cards/internal/year"
)

type generateFlags struct {
	output        string
	verify        bool
	maxLookups    int
	applyVerified bool
	minYear       int
	maxYear       int
	overrides     []string
	keepTemp      bool
	local         bool
	pageSize      string
	verbose       bool
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate <playlist>",
		Short: "Generate a double-sided card deck from a playlist",
		Long: "Generate a double-sided card deck from a Spotify playlist URL, URI or id,\n" +
			"or from a local .m3u/.m3u8 playlist with --local.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := applyGenerateFlags(cmd, settings, flags); err != nil {
				return err
			}

			opts, err := generate.OptionsFromSettings(settings, time.Now())
			if err != nil {
				return err
			}
			opts.Overrides, err = generate.ParseOverrides(flags.overrides)
			if err != nil {
				return err
			}

			logger, err := logging.NewFromSettings(settings, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			kind := generate.SourceSpotify
			if flags.local {
				kind = generate.SourceLocal
			}

			out := cmd.OutOrStdout()
			printer := newProgressPrinter(out, flags.verbose)
			manager, err := generate.NewFromSettings(runCtx, settings, opts, kind, logger, printer.print)
			if err != nil {
				return err
			}

			summary, err := manager.Run(runCtx, args[0])
			if err != nil {
				if runCtx.Err() != nil {
					fmt.Fprintln(out, "\nCancelled.")
					return context.Canceled
				}
				return err
			}

			printSummary(out, summary, settings.ToYearRange())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.output, "output", "o", "", "Output PDF path (default Hitster_<playlist>.pdf)")
	f.BoolVar(&flags.verify, "verify", false, "Verify suspicious release years with MusicBrainz")
	f.IntVar(&flags.maxLookups, "max-lookups", 0, "Maximum number of MusicBrainz lookups")
	f.BoolVar(&flags.applyVerified, "apply-verified", false, "Apply verified years without asking")
	f.IntVar(&flags.minYear, "min-year", 0, "Review tracks released before this year")
	f.IntVar(&flags.maxYear, "max-year", 0, "Review tracks released after this year")
	f.StringArrayVar(&flags.overrides, "override", nil, "Set a release year, N=YEAR with N the 1-based track number (repeatable)")
	f.BoolVar(&flags.keepTemp, "keep-temp", false, "Keep temporary code images")
	f.BoolVar(&flags.local, "local", false, "Read a local .m3u/.m3u8 playlist")
	f.StringVar(&flags.pageSize, "page-size", "", "Page size: letter or a4")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "Show verbose output")

	return cmd
}

// applyGenerateFlags overlays explicitly set flags on settings and
// validates the result.
func applyGenerateFlags(cmd *cobra.Command, s *config.Settings, flags generateFlags) error {
	changed := cmd.Flags().Changed

	if flags.output != "" {
		path, err := config.ExpandPath(flags.output)
		if err != nil {
			return err
		}
		s.Output.Path = path
	}
	if changed("verify") {
		s.Verification.Enabled = flags.verify
	}
	if changed("max-lookups") {
		s.Verification.MaxLookups = flags.maxLookups
	}
	if changed("apply-verified") {
		s.Verification.ApplyVerified = flags.applyVerified
	}
	if changed("min-year") {
		s.YearRange.Enabled = true
		s.YearRange.Min = flags.minYear
	}
	if changed("max-year") {
		s.YearRange.Enabled = true
		s.YearRange.Max = flags.maxYear
	}
	if changed("keep-temp") {
		s.Output.KeepTempFiles = flags.keepTemp
	}
	if flags.pageSize != "" {
		s.Layout.PageSize = flags.pageSize
	}
	return s.Validate()
}

func printSummary(out io.Writer, s *generate.Summary, r *year.Range) {
	fmt.Fprintln(out)

	if len(s.Changes) > 0 {
		rows := make([][]string, 0, len(s.Changes))
		for _, c := range s.Changes {
			rows = append(rows, []string{strconv.Itoa(c.Index + 1), c.Artist, c.Title, c.From, c.To, c.Source.String()})
		}
		fmt.Fprintln(out, "Release year changes:")
		fmt.Fprintln(out, renderTable(
			[]string{"#", "Artist", "Title", "From", "To", "Source"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
		))
		fmt.Fprintln(out)
	}

	if r != nil && len(s.Review) > 0 {
		rows := make([][]string, 0, len(s.Review))
		for _, it := range s.Review {
			rows = append(rows, []string{strconv.Itoa(it.Index + 1), it.Artist, it.Title, it.Year, it.Reason.String()})
		}
		fmt.Fprintf(out, "Tracks outside %d-%d (fix with --override N=YEAR):\n", r.Min, r.Max)
		fmt.Fprintln(out, renderTable(
			[]string{"#", "Artist", "Title", "Year", "Reason"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
		))
		fmt.Fprintln(out)
	}

	if len(s.MissingCodes) > 0 {
		nums := make([]int, 0, len(s.MissingCodes))
		for _, i := range s.MissingCodes {
			nums = append(nums, i+1)
		}
		sort.Ints(nums)
		fmt.Fprintf(out, "Cards printed without a code: %s\n", joinInts(nums))
	}
	if s.KeptTempDir != "" {
		fmt.Fprintf(out, "Temporary files kept in %s\n", s.KeptTempDir)
	}
	for _, f := range s.CleanupFailures {
		fmt.Fprintf(out, "Could not remove %s: %v\n", f.Path, f.Err)
	}

	fmt.Fprintf(out, "Hitster cards generated in '%s'\n", s.OutputPath)
	fmt.Fprintf(out, "Total tracks processed: %d\n", s.Tracks)
	fmt.Fprintf(out, "Sheets: %d, print double-sided with 'Flip on long edge'\n", s.Pages)
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
