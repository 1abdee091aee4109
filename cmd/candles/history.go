package main

import (
	"fmt"
	"time"

	"KrakenCandles/internal/report"

	"github.com/spf13/cobra"
)

var limitFlag int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently recorded snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		rec := openRecorder(cfg)
		defer rec.Close()

		snaps, err := rec.Recent(limitFlag)
		if err != nil {
			return err
		}
		fmt.Print(report.FormatHistory(snaps, time.Now()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "number of snapshots to show")
}
