package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"ChartPulse/internal/collector"
	"ChartPulse/internal/model"
	"ChartPulse/internal/recorder"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

type quoteOptions struct {
	rows   int
	format string
}

func newQuoteCmd(root *rootOptions) *cobra.Command {
	opts := &quoteOptions{}
	cmd := &cobra.Command{
		Use:   "quote [SYMBOL]",
		Short: "Fetch a symbol and print its indicators and summary cards",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "table" && opts.format != "json" {
				return fmt.Errorf("unknown format %q (table|json)", opts.format)
			}
			cfg, log, err := root.load()
			if err != nil {
				return err
			}
			symbol := cfg.DataSource.Symbol
			if len(args) == 1 {
				symbol = args[0]
			}

			fetcher, err := newGuardedFetcher(cfg, nil, log)
			if err != nil {
				return err
			}
			col := collector.NewCollector(fetcher, cfg.DataSource.HistoryDays, recorder.NewNoopRecorder(), nil, log)
			d, err := col.Collect(cmd.Context(), strings.ToUpper(symbol))
			if err != nil {
				return err
			}

			if opts.format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(d)
			}
			renderDashboard(cmd.OutOrStdout(), d, opts.rows)
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.rows, "rows", 10, "number of most recent rows to print (0 for all)")
	cmd.Flags().StringVar(&opts.format, "format", "table", "output format: table|json")
	return cmd
}

func cell(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

func renderDashboard(w io.Writer, d *model.Dashboard, rows int) {
	start := 0
	if rows > 0 && len(d.Bars) > rows {
		start = len(d.Bars) - rows
	}

	series := table.NewWriter()
	series.SetOutputMirror(w)
	series.SetStyle(table.StyleLight)
	series.SetTitle(fmt.Sprintf("%s daily (%s)", d.Symbol, d.Provider))
	series.AppendHeader(table.Row{"Date", "Close", "SMA", "RSI", "MACD", "Projection"})
	for i := start; i < len(d.Bars); i++ {
		series.AppendRow(table.Row{
			d.Bars[i].Date,
			fmt.Sprintf("%.2f", d.Bars[i].Close),
			cell(d.SMA[i].Value),
			cell(d.RSI[i].Value),
			cell(d.MACD[i].Value),
			cell(d.Projection[i].Value),
		})
	}
	series.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	series.Render()

	s := d.Summary
	cards := table.NewWriter()
	cards.SetOutputMirror(w)
	cards.SetStyle(table.StyleLight)
	cards.SetTitle("Summary")
	cards.AppendRows([]table.Row{
		{"Last close", fmt.Sprintf("%.2f (%+.2f%%)", s.LastClose, s.ChangePct)},
		{"Range", fmt.Sprintf("%.2f - %.2f", s.PeriodLow, s.PeriodHigh)},
		{"SMA", cell(s.SMA)},
		{"RSI", cell(s.RSI)},
		{"MACD", fmt.Sprintf("%.2f", s.MACD)},
		{"Projection", fmt.Sprintf("%.2f", s.Projection)},
	})
	if d.Outlook != nil {
		cards.AppendSeparator()
		cards.AppendRow(table.Row{"Outlook", fmt.Sprintf("%s (%+.3f)", d.Outlook.Label, d.Outlook.TotalScore)})
		if d.Outlook.WarningMsg != "" {
			cards.AppendRow(table.Row{"Warning", d.Outlook.WarningMsg})
		}
	}
	cards.Render()
}
