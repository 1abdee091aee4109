package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"KrakenCandles/internal/collector"
	"KrakenCandles/internal/config"
	"KrakenCandles/internal/model"
	"KrakenCandles/internal/recorder"
	"KrakenCandles/internal/report"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	pairFlag     string
	startFlag    string
	endFlag      string
	intervalFlag int
	jsonFlag     bool
	recordFlag   bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch one OHLC report and print it",
	Example: `  candles fetch --pair XXBTZUSD --start 2021-08-29 --end 2021-08-29
  candles fetch -p XETHZUSD -s 2021-03-01 -e 2021-04-01 -i 1440 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		q := defaultQuery(cfg)
		if pairFlag != "" {
			q.Pair = pairFlag
		}
		if startFlag != "" {
			if q.Start, err = time.Parse(config.DateLayout, startFlag); err != nil {
				return fmt.Errorf("start must look like %s", config.DateLayout)
			}
		}
		if endFlag != "" {
			if q.End, err = time.Parse(config.DateLayout, endFlag); err != nil {
				return fmt.Errorf("end must look like %s", config.DateLayout)
			}
		}
		if intervalFlag != 0 {
			q.Interval = intervalFlag
		}

		fetcher := collector.NewKrakenFetcher(cfg.Kraken.BaseURL, cfg.KrakenTimeout(), cfg.Proxy)
		rep, err := collector.NewCollector(fetcher, nil).Collect(context.Background(), q)
		if err != nil {
			return err
		}

		if recordFlag {
			rec := openRecorder(cfg)
			defer rec.Close()
			if err := rec.RecordSnapshot(recorder.NewSnapshot(model.SourceCLI, rep)); err != nil {
				log.Warn().Err(err).Msg("record snapshot failed")
			}
		}

		if jsonFlag {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"query":   rep.Query,
				"candles": rep.Series.Candles(),
				"summary": rep.Summary,
			})
		}
		fmt.Print(report.FormatReport(rep))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVarP(&pairFlag, "pair", "p", "", "Kraken pair code. ex. XXBTZUSD")
	fetchCmd.Flags().StringVarP(&startFlag, "start", "s", "", "Date string of Start. (2021-03-01)")
	fetchCmd.Flags().StringVarP(&endFlag, "end", "e", "", "Date string of End, inclusive. (2021-04-01)")
	fetchCmd.Flags().IntVarP(&intervalFlag, "interval", "i", 0, "Candle width in minutes: 1 5 15 30 60 240 1440 10080 21600")
	fetchCmd.Flags().BoolVar(&jsonFlag, "json", false, "print JSON instead of a table")
	fetchCmd.Flags().BoolVar(&recordFlag, "record", false, "store a snapshot of the summary")
}
