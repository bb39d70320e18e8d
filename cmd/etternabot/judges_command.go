package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"etternabot/internal/etterna"
)

func newJudgesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "judges",
		Short:       "Print the timing windows of the built-in judges",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, 9)
			for _, judge := range etterna.Judges() {
				rows = append(rows, []string{
					judge.Name,
					window(judge, etterna.Marvelous),
					window(judge, etterna.Perfect),
					window(judge, etterna.Great),
					window(judge, etterna.Good),
					window(judge, etterna.Bad),
					window(judge, etterna.Miss),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Judge", "Marvelous", "Perfect", "Great", "Good", "Bad", "Miss"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}
}

func window(judge *etterna.Judge, judgement etterna.Judgement) string {
	ms := judge.Window(judgement) * 1000.0
	return strconv.FormatFloat(ms, 'f', 1, 64) + "ms"
}
