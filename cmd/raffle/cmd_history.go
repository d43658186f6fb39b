package main

import (
	"github.com/spf13/cobra"

	"github.com/code-payments/raffle-client/pkg/journal"
)

func init() {
	var limit int
	var raffleNo uint64

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled submissions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var records []*journal.Record
			var err error

			if cmd.Flags().Changed("raffle") {
				records, err = store.GetAllByRaffle(cmd.Context(), raffleNo)
				if err == journal.ErrNotFound {
					err = nil
				}
				if len(records) > limit && limit > 0 {
					records = records[:limit]
				}
			} else {
				records, err = store.GetRecent(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}

			getPrinter().Records(records)
			return nil
		},
	}
	historyCmd.Flags().IntVar(&limit, "limit", 20, "Maximum records to list, 0 for all")
	historyCmd.Flags().Uint64Var(&raffleNo, "raffle", 0, "Only records of this raffle")
	rootCmd.AddCommand(historyCmd)
}
