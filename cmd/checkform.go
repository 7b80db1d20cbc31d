package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/questmap/internal/questform"
)

var checkFormCmd = &cobra.Command{
	Use:   "check-form <page.html>",
	Short: "Check that every question of a quest-run page is answered",
	Long: `Check the quest-run form of a page the way the page's submit handler does:
every radio question needs a pre-checked option or an --answer name=value.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetStringArray("answer")
		answers := make(map[string]string, len(raw))
		for _, a := range raw {
			name, value, ok := strings.Cut(a, "=")
			if !ok || name == "" {
				return fmt.Errorf("invalid --answer %q, want name=value", a)
			}
			answers[name] = value
		}

		p, err := loadPage(args[0])
		if err != nil {
			return err
		}
		if tmpl := p.Template(); !questform.Applies(tmpl) {
			fmt.Printf("Page template is %q; no quest form to check.\n", tmpl)
			return nil
		}
		form, ok := p.Form(questform.FormID)
		if !ok {
			return fmt.Errorf("page has no #%s form", questform.FormID)
		}

		groups := questform.Groups(form)
		err = questform.Validate(form, answers)
		var unanswered *questform.ErrUnanswered
		if errors.As(err, &unanswered) {
			fmt.Println(questform.Message)
			for _, g := range unanswered.Groups {
				fmt.Printf("  - %s\n", g)
			}
			return fmt.Errorf("%d of %d questions unanswered", len(unanswered.Groups), len(groups))
		}
		if err != nil {
			return err
		}
		fmt.Printf("All %d questions answered.\n", len(groups))
		return nil
	},
}

func init() {
	checkFormCmd.Flags().StringArrayP("answer", "a", nil, "Answer a question, as name=value (repeatable)")
}
