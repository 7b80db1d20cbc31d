package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/questmap/internal/config"
	"github.com/abhisek/questmap/internal/progress"
	"github.com/abhisek/questmap/internal/report"
	"github.com/abhisek/questmap/internal/report/recorder"
	"github.com/abhisek/questmap/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "questmap",
	Short: "Paint quest progress onto region maps",
	Long: `Questmap overlays a learner's quest progress on the dashboard's SVG region maps.
Each quest region is colored by how many attempts it took to conquer.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite event log (overrides QUESTMAP_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides QUESTMAP_CONFIG env var)")
	rootCmd.PersistentFlags().Bool("no-record", false, "Do not record paint passes and diagnostics in the event log")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(legendCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(checkFormCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the configuration and applies the --map flag when the
// command has one.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Resolve(path)
	if err != nil {
		return config.Config{}, err
	}
	if f := cmd.Flags().Lookup("map"); f != nil && f.Changed {
		cfg.InitialMap = progress.MapType(f.Value.String())
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the event log.
func openStore(cmd *cobra.Command, cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// newReporter fans reports out to sinks and, unless --no-record is set, the
// event log. The returned close func must be called when painting is done.
// Recording is best effort: an unavailable store only produces a warning.
func newReporter(cmd *cobra.Command, cfg config.Config, sinks ...report.Reporter) (report.Reporter, func()) {
	if noRecord, _ := cmd.Flags().GetBool("no-record"); noRecord {
		return report.Multi(sinks...), func() {}
	}
	s, err := openStore(cmd, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: event log unavailable: %v\n", err)
		return report.Multi(sinks...), func() {}
	}
	rec := recorder.New(s.EventRepo())
	return report.Multi(append(sinks, rec)...), func() { s.Close() }
}
