package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/rewards"
	"github.com/abhisek/skillpath/internal/unlock"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show XP totals and completion counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		ctx := cmd.Context()
		totals, err := svc.rewards.Totals(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		rank := rewards.RankForXP(totals.TotalXP)
		fmt.Fprintf(out, "XP:    %d (%d awards)\n", totals.TotalXP, totals.Awards)
		fmt.Fprintf(out, "Rank:  %s", rank.DisplayName())
		if next, ok := rewards.NextRank(rank); ok {
			fmt.Fprintf(out, " (%d XP to %s)", next.Threshold()-totals.TotalXP, next.DisplayName())
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out)

		skills := svc.catalog.Skills("")
		sort.SliceStable(skills, func(i, j int) bool {
			return totals.BySkill[skills[i].ID] > totals.BySkill[skills[j].ID]
		})

		var completed, total int
		for _, s := range skills {
			done := svc.progress.Get(ctx, s.ID).CompletedSet()
			sum := unlock.Summarize(unlock.Resolve(catalog.FlattenSteps(s), done))
			completed += sum.Completed
			total += sum.Total
			fmt.Fprintf(out, "%-32s  %3d/%-3d steps  %6d XP\n",
				s.Title, sum.Completed, sum.Total, totals.BySkill[s.ID])
		}
		fmt.Fprintf(out, "\n%d/%d steps completed across %d skills\n", completed, total, len(skills))
		return nil
	},
}
