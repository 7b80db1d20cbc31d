package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/questmap/internal/painter"
	"github.com/abhisek/questmap/internal/progress"
	"github.com/abhisek/questmap/internal/report"
	"github.com/abhisek/questmap/internal/svgdoc"
)

var previewCmd = &cobra.Command{
	Use:   "preview <map.svg> <payload.json>",
	Short: "Paint a single map from a progress payload file",
	Long: `Paint one SVG map with the entries of a progress payload file and write the
painted SVG to stdout or --out. Only entries whose map_type matches --map are painted.`,
	Args: cobra.ExactArgs(2),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("map", string(progress.Europe), "Map type the SVG belongs to")
	previewCmd.Flags().StringP("out", "o", "", "Write the painted SVG here instead of stdout")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mapType, _ := cmd.Flags().GetString("map")
	outPath, _ := cmd.Flags().GetString("out")

	svg, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read map: %w", err)
	}
	payload, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	doc, err := svgdoc.Parse(svg, svgdoc.WithMarkable(cfg.Markable...))
	if err != nil {
		return fmt.Errorf("parse map: %w", err)
	}

	r := &report.Writer{W: os.Stderr, Verbose: true}
	snap := progress.Load(string(payload), true, r)
	res := painter.New(snap, cfg.Palette, nil, r).PaintDocument(progress.MapType(mapType), doc)

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	if _, err := doc.WriteTo(out); err != nil {
		return fmt.Errorf("write map: %w", err)
	}
	if outPath != "" {
		fmt.Printf("Marked %d of %d entries for %s into %s\n",
			res.Marked, res.Marked+res.Baseline+res.Skipped, mapType, outPath)
	}
	return nil
}
