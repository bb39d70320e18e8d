package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"etternabot/internal/etterna"
	"etternabot/internal/identify"
)

func newRecognizeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "recognize <screenshot>",
		Short: "Run OCR over an evaluation screenshot and print the readings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read screenshot: %w", err)
			}
			recognizer, err := ctx.newRecognizer()
			if err != nil {
				return err
			}

			readings, err := recognizer.ReadScreenshot(cmd.Context(), image)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(readings))
			for i, reading := range readings {
				theme := ""
				if i < len(cfg.OCR.Themes) {
					theme = cfg.OCR.Themes[i]
				}
				rows = append(rows, readingRow(theme, reading))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Theme", "Song", "Artist", "Pack", "User", "Rate", "Wife", "MSD", "SSR", "Judgements", "Diff"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func readingRow(theme string, reading identify.Reading) []string {
	return []string{
		theme,
		orDash(reading.Song),
		orDash(reading.Artist),
		orDash(reading.Pack),
		orDash(reading.Username),
		formatRate(reading.Rate),
		formatFloat(reading.Wifescore),
		formatFloat(reading.MSD),
		formatFloat(reading.SSR),
		formatJudgements(reading.Judgements),
		formatDifficulty(reading.Difficulty),
	}
}

func orDash(value *string) string {
	if value == nil {
		return "-"
	}
	return *value
}

func formatRate(rate *etterna.Rate) string {
	if rate == nil {
		return "-"
	}
	return rate.String()
}

func formatFloat(value *float64) string {
	if value == nil {
		return "-"
	}
	return strconv.FormatFloat(*value, 'f', 2, 64)
}

func formatJudgements(counts *etterna.JudgementCounts) string {
	if counts == nil {
		return "-"
	}
	return fmt.Sprintf("%d/%d/%d/%d/%d/%d",
		counts.Marvelouses, counts.Perfects, counts.Greats,
		counts.Goods, counts.Bads, counts.Misses)
}

func formatDifficulty(difficulty *etterna.Difficulty) string {
	if difficulty == nil {
		return "-"
	}
	return difficulty.String()
}
