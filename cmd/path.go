package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/unlock"
)

var pathCmd = &cobra.Command{
	Use:   "path <skill-id>",
	Short: "Print a skill's steps and their unlock status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		skill, err := svc.catalog.GetSkill(args[0])
		if err != nil {
			return err
		}
		done := svc.progress.Get(cmd.Context(), skill.ID).CompletedSet()
		steps := unlock.ResolvePath(skill, done)

		unitTitles := make(map[string]string, len(skill.Units))
		for _, u := range skill.Units {
			unitTitles[u.ID] = u.Title
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n\n", skill.Title, skill.ID)

		lastUnit := ""
		for i, st := range steps {
			if st.UnitID != lastUnit {
				lastUnit = st.UnitID
				fmt.Fprintf(out, "%s\n", strings.ToUpper(unitTitles[st.UnitID]))
			}
			fmt.Fprintf(out, "  %2d  %-12s  %-32s  %-10s  %4d XP\n",
				i+1, st.Step.ID, st.Step.Title, st.Status, st.Step.XPReward)
		}

		statuses := unlock.Resolve(svc.catalog.Steps(skill.ID), done)
		sum := unlock.Summarize(statuses)
		fmt.Fprintf(out, "\n%d completed, %d available, %d locked\n",
			sum.Completed, sum.Available, sum.Locked)
		return nil
	},
}
