package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newRevealsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "reveals",
		Short: "List recently revealed scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			reveals, err := store.Reveals(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(reveals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No reveals recorded")
				return nil
			}
			rows := make([][]string, 0, len(reveals))
			for _, reveal := range reveals {
				rows = append(rows, []string{
					reveal.Scorekey.String(),
					strconv.FormatInt(reveal.MessageID, 10),
					strconv.FormatInt(reveal.UserID, 10),
					reveal.RevealedAt.Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Scorekey", "Message", "Confirmed By", "Revealed"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum number of reveals to list")
	return cmd
}
