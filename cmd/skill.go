package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/unlock"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Browse the skill catalog",
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all skills (optionally filtered by domain)",
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, _ := cmd.Flags().GetString("domain")

		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		skills := svc.catalog.Skills(domain)
		if domain != "" && len(skills) == 0 {
			return fmt.Errorf("no skills found for domain %q (known: %s)",
				domain, strings.Join(svc.catalog.Domains(), ", "))
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-24s  %-32s  %-12s  %-12s  %s\n",
			"ID", "Title", "Domain", "Category", "Progress")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, s := range skills {
			title := s.Title
			if len(title) > 32 {
				title = title[:29] + "..."
			}
			done := svc.progress.Get(cmd.Context(), s.ID).CompletedSet()
			sum := unlock.Summarize(unlock.Resolve(catalog.FlattenSteps(s), done))
			fmt.Fprintf(out, "%-24s  %-32s  %-12s  %-12s  %d/%d\n",
				s.ID, title, s.Domain, s.Category.DisplayName(), sum.Completed, sum.Total)
		}

		fmt.Fprintf(out, "\n%d skills\n", len(skills))
		return nil
	},
}

func init() {
	skillListCmd.Flags().String("domain", "", "Filter by domain tag (e.g. tech)")

	skillCmd.AddCommand(skillListCmd)
}
