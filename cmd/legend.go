package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/questmap/internal/progress"
	"github.com/abhisek/questmap/internal/tier"
	"github.com/abhisek/questmap/internal/ui/theme"
)

var legendCmd = &cobra.Command{
	Use:   "legend",
	Short: "Print the tier legend and map backgrounds of the active configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		cell := lipgloss.NewStyle().Width(14)
		head := cell.Foreground(theme.TextDim).Bold(true)

		fmt.Println(theme.Title.Render("Tiers"))
		fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top,
			head.Width(4).Render(""),
			head.Render("Tier"),
			head.Render("Attempts"),
			head.Render("Class"),
			head.Render("Fill"),
			head.Render("Stroke"),
		))
		for _, t := range tier.All() {
			tr := cfg.Palette.Treatment(t)
			fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top,
				cell.Width(4).Render(theme.TierSwatch(tr)),
				cell.Inherit(theme.TierStyle(tr)).Render(tr.Label),
				cell.Render(t.Range()),
				cell.Render(orDash(tr.Class)),
				cell.Render(orDash(tr.Fill)),
				cell.Render(orDash(tr.Stroke)),
			))
		}

		fmt.Println()
		fmt.Println(theme.Title.Render("Maps"))
		for _, m := range progress.KnownMapTypes() {
			pres, _ := cfg.Backgrounds.Lookup(m)
			marker := " "
			if m == cfg.InitialMap {
				marker = "▸"
			}
			fmt.Printf("%s %s %s %s\n", marker,
				cell.Render(m.DisplayName()),
				cell.Render(orDash(pres.Color)),
				theme.Hint.Render(orDash(pres.Image)))
		}
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
