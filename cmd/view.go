package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/questmap/internal/app"
	"github.com/abhisek/questmap/internal/engine"
	"github.com/abhisek/questmap/internal/report"
	"github.com/abhisek/questmap/internal/screens/mapview"
)

var viewCmd = &cobra.Command{
	Use:   "view <page.html>",
	Short: "Browse a dashboard page's painted maps in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		p, err := loadPage(args[0])
		if err != nil {
			return err
		}
		l, err := newLoader(cmd, args[0], cfg.CacheSize, cfg.Markable)
		if err != nil {
			return err
		}

		// Warnings go to the header instead of stderr while the TUI owns the terminal.
		col := &report.Collector{}
		r, closeReporter := newReporter(cmd, cfg, col)
		defer closeReporter()

		raw, present := p.Payload()
		eng := engine.New(p, raw, present, cfg, r)

		root := mapview.New(mapview.Deps{
			Engine:  eng,
			Host:    p,
			Loader:  l,
			Sources: pageSources(p),
			Palette: cfg.Palette,
			Stats:   col,
			Initial: cfg.InitialMap,
		})
		return app.Run(app.Options{Root: root, Stats: root.HeaderStats})
	},
}

func init() {
	viewCmd.Flags().String("map", "", "Initial map type (overrides the configured initial map)")
	viewCmd.Flags().String("root", "", "Directory map sources are resolved against")
}
