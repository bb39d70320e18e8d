package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"etternabot/internal/etterna"
	"etternabot/internal/replay"
	"etternabot/internal/scorecard"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var judgeNumber int

	cmd := &cobra.Command{
		Use:   "analyze <scorekey>",
		Short: "Fetch a score and print its card with replay analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scorekey := etterna.Scorekey(args[0])
			if !scorekey.Valid() {
				return fmt.Errorf("malformed scorekey %q", args[0])
			}

			var altJudge *etterna.Judge
			if judgeNumber != 0 {
				judge, ok := etterna.JudgeByNumber(judgeNumber)
				if !ok {
					return fmt.Errorf("no judge numbered %d", judgeNumber)
				}
				if judge != etterna.J4 {
					altJudge = judge
				}
			}

			fetcher, err := ctx.newFetcher()
			if err != nil {
				return err
			}
			score, err := fetcher.Score(cmd.Context(), scorekey)
			if err != nil {
				return err
			}

			input := scorecard.Input{Score: score, AlternateJudge: altJudge}
			if analysis, ok := replay.Analyze(score.Replay, score.Penalties, altJudge); ok {
				input.Analysis = analysis
			}
			card, err := scorecard.Build(input)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), card.Render())
			if score.Replay == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "\nNo replay recorded for this score; analysis sections omitted")
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&judgeNumber, "judge", "j", 0, "Also rescore under this judge (1-9)")
	return cmd
}
