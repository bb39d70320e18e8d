package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"etternabot/internal/identify"
)

func newIdentifyCommand(ctx *commandContext) *cobra.Command {
	var username string
	var limit int

	cmd := &cobra.Command{
		Use:   "identify <screenshot>",
		Short: "Identify which recent score a screenshot shows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return errors.New("--user is required")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = cfg.EO.RecentScoresLimit
			}

			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read screenshot: %w", err)
			}
			recognizer, err := ctx.newRecognizer()
			if err != nil {
				return err
			}
			fetcher, err := ctx.newFetcher()
			if err != nil {
				return err
			}

			readings, err := recognizer.ReadScreenshot(cmd.Context(), image)
			if err != nil {
				return err
			}
			scores, err := fetcher.RecentScores(cmd.Context(), username, limit)
			if err != nil {
				return err
			}
			candidates := make([]identify.Candidate, 0, len(scores))
			for _, score := range scores {
				candidates = append(candidates, score.Candidate())
			}

			out := cmd.OutOrStdout()
			best, ok := identify.BestMatch(readings, candidates, cfg.Matcher.Threshold)
			if !ok {
				fmt.Fprintf(out, "No confident match among %s's %d most recent scores\n", username, len(candidates))
				return nil
			}
			for _, score := range scores {
				if score.Scorekey != best.Scorekey {
					continue
				}
				fmt.Fprintf(out, "Identified: %s - %s (%s)\n", score.Song, score.Artist, score.Rate)
				fmt.Fprintf(out, "Scorekey:   %s\n", score.Scorekey)
				fmt.Fprintf(out, "Wifescore:  %.2f%%\n", score.Wifescore)
				break
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "EtternaOnline username whose recent scores to search")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "How many recent scores to consider")
	return cmd
}
