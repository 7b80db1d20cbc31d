package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/questmap/internal/store"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect recorded paint passes and diagnostics",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		mapType, _ := cmd.Flags().GetString("map")
		runID, _ := cmd.Flags().GetString("run")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryEvents(cmd.Context(), store.QueryOpts{
			Limit:   limit,
			MapType: mapType,
			RunID:   runID,
		})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No events found.")
			return nil
		}

		fmt.Printf("%-6s  %-14s  %-8s  %-18s  %-10s  %s\n",
			"Seq", "When", "Run", "Kind", "Map", "Summary")
		fmt.Println(strings.Repeat("─", 90))

		for _, e := range events {
			fmt.Printf("%-6d  %-14s  %-8s  %-18s  %-10s  %s\n",
				e.Sequence,
				humanize.Time(e.Timestamp),
				truncate(e.RunID, 8),
				e.Kind,
				e.MapType,
				summarize(e),
			)
		}
		return nil
	},
}

var eventsViewCmd = &cobra.Command{
	Use:   "view <seq>",
	Short: "View one event in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var seq int64
		if _, err := fmt.Sscanf(args[0], "%d", &seq); err != nil {
			return fmt.Errorf("invalid sequence %q: %w", args[0], err)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetEvent(cmd.Context(), seq)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", seq)
		}

		fmt.Printf("Sequence:  %d\n", e.Sequence)
		fmt.Printf("Time:      %s (%s)\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"), humanize.Time(e.Timestamp))
		fmt.Printf("Run:       %s\n", e.RunID)
		fmt.Printf("Kind:      %s\n", e.Kind)
		if e.MapType != "" {
			fmt.Printf("Map:       %s\n", e.MapType)
		}
		if e.Kind == store.KindPaint {
			fmt.Printf("Marked:    %d\n", e.Marked)
			fmt.Printf("Baseline:  %d\n", e.Baseline)
			fmt.Printf("Skipped:   %d\n", e.Skipped)
			fmt.Printf("Reset:     %d\n", e.Reset)
			fmt.Printf("Duration:  %s\n", time.Duration(e.DurationUs)*time.Microsecond)
		} else if e.Detail != "" {
			fmt.Printf("Detail:    %s\n", e.Detail)
		}
		return nil
	},
}

var eventsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show paint pass totals per map and diagnostic counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		stats, err := s.EventRepo().PaintStatsByMap(ctx)
		if err != nil {
			return fmt.Errorf("query paint stats: %w", err)
		}
		counts, err := s.EventRepo().DiagnosticCounts(ctx)
		if err != nil {
			return fmt.Errorf("query diagnostic counts: %w", err)
		}

		if len(stats) == 0 && len(counts) == 0 {
			fmt.Println("No events recorded yet.")
			return nil
		}

		fmt.Println("Paint Passes by Map")
		fmt.Println(strings.Repeat("─", 64))
		fmt.Printf("%-14s  %8s  %10s  %10s  %12s\n", "Map", "Passes", "Marked", "Skipped", "Avg Time")
		fmt.Println(strings.Repeat("─", 64))

		var passes, marked, skipped int
		for _, st := range stats {
			fmt.Printf("%-14s  %8s  %10s  %10s  %12s\n",
				st.MapType,
				humanize.Comma(int64(st.Passes)),
				humanize.Comma(int64(st.TotalMarked)),
				humanize.Comma(int64(st.TotalSkipped)),
				time.Duration(st.AvgDurationUs)*time.Microsecond,
			)
			passes += st.Passes
			marked += st.TotalMarked
			skipped += st.TotalSkipped
		}
		fmt.Println(strings.Repeat("─", 64))
		fmt.Printf("%-14s  %8s  %10s  %10s\n", "TOTAL",
			humanize.Comma(int64(passes)), humanize.Comma(int64(marked)), humanize.Comma(int64(skipped)))

		if len(counts) > 0 {
			kinds := make([]string, 0, len(counts))
			for k := range counts {
				kinds = append(kinds, k)
			}
			sort.Strings(kinds)

			fmt.Println()
			fmt.Println("Diagnostics")
			fmt.Println(strings.Repeat("─", 32))
			for _, k := range kinds {
				fmt.Printf("%-20s  %10s\n", k, humanize.Comma(int64(counts[k])))
			}
		}
		return nil
	},
}

// summarize renders the one-line summary of an event.
func summarize(e store.EventRecord) string {
	if e.Kind == store.KindPaint {
		return fmt.Sprintf("%d marked, %d baseline, %d skipped", e.Marked, e.Baseline, e.Skipped)
	}
	return truncate(e.Detail, 48)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	eventsListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	eventsListCmd.Flags().StringP("map", "m", "", "Filter by map type")
	eventsListCmd.Flags().String("run", "", "Filter by run id")

	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsViewCmd)
	eventsCmd.AddCommand(eventsStatsCmd)
}
