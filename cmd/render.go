package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/questmap/internal/engine"
	"github.com/abhisek/questmap/internal/loader"
	"github.com/abhisek/questmap/internal/page"
	"github.com/abhisek/questmap/internal/report"
	"github.com/abhisek/questmap/internal/svgdoc"
)

var renderCmd = &cobra.Command{
	Use:   "render <page.html>",
	Short: "Paint every map of a dashboard page and write the result",
	Long: `Read a server-rendered dashboard page, load every embedded SVG map, paint the
progress payload onto each map and write the painted maps plus a rewritten page
to the output directory.

Map sources are resolved against --root, which defaults to the page's directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("map", "", "Initial map type (overrides the configured initial map)")
	renderCmd.Flags().StringP("out", "o", "questmap-out", "Output directory")
	renderCmd.Flags().String("root", "", "Directory map sources are resolved against")
	renderCmd.Flags().BoolP("verbose", "v", false, "Print every paint pass")
}

// loadPage parses the page file at path.
func loadPage(path string) (*page.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer f.Close()
	return page.Parse(f)
}

// pageSources lists the page's map resources as loader sources.
func pageSources(p *page.Page) []loader.Source {
	var srcs []loader.Source
	for _, r := range p.Resources() {
		srcs = append(srcs, loader.Source{MapType: r.MapType, Path: r.Source})
	}
	return srcs
}

// newLoader creates a loader rooted at root, or at the page's directory.
func newLoader(cmd *cobra.Command, pagePath string, cacheSize int, markable []string) (*loader.Loader, error) {
	root, _ := cmd.Flags().GetString("root")
	if root == "" {
		root = filepath.Dir(pagePath)
	}
	return loader.New(os.DirFS(root), cacheSize, svgdoc.WithMarkable(markable...))
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	outDir, _ := cmd.Flags().GetString("out")
	verbose, _ := cmd.Flags().GetBool("verbose")

	p, err := loadPage(args[0])
	if err != nil {
		return err
	}

	var col report.Collector
	r, closeReporter := newReporter(cmd, cfg, &report.Writer{W: os.Stderr, Verbose: verbose}, &col)
	defer closeReporter()

	raw, present := p.Payload()
	eng := engine.New(p, raw, present, cfg, r)
	eng.Start(cfg.InitialMap)

	l, err := newLoader(cmd, args[0], cfg.CacheSize, cfg.Markable)
	if err != nil {
		return err
	}

	docs := map[string]*svgdoc.Document{}
	for ev := range l.LoadAll(cmd.Context(), pageSources(p)) {
		eng.Deliver(p, ev)
		if ev.Err == nil {
			docs[ev.MapType] = ev.Doc
		}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for mapType, doc := range docs {
		name := mapType + ".svg"
		b, err := doc.Bytes()
		if err != nil {
			return fmt.Errorf("serialize %s: %w", mapType, err)
		}
		if err := os.WriteFile(filepath.Join(outDir, name), b, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		p.SetSource(mapType, name)
	}

	out, err := os.Create(filepath.Join(outDir, "index.html"))
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	defer out.Close()
	if err := p.Render(out); err != nil {
		return fmt.Errorf("write page: %w", err)
	}

	marked := 0
	for _, m := range eng.MapTypes() {
		if pass, ok := col.LastPass(string(m)); ok {
			marked += pass.Marked
		}
	}
	fmt.Printf("Painted %d of %d maps (%d quests marked, %d warnings) into %s\n",
		len(docs), len(eng.MapTypes()), marked, len(col.Diagnostics), outDir)
	return nil
}
