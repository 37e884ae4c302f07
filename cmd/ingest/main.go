// Command ingest is the one-shot results CLI. It runs a single poll cycle
// against the published exports and prints what the API would serve.
//
// Usage:
//
//	elecciones-ingest sources
//	elecciones-ingest fetch --json
//	elecciones-ingest hemicycle
//	elecciones-ingest turnout
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/elecciones-aragon/internal/config"
	"github.com/albapepper/elecciones-aragon/internal/locale"
	"github.com/albapepper/elecciones-aragon/internal/poller"
	"github.com/albapepper/elecciones-aragon/internal/results"
	"github.com/albapepper/elecciones-aragon/internal/sheets"
	"github.com/albapepper/elecciones-aragon/internal/views"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "elecciones-ingest",
		Short:        "Aragón election results CLI",
		SilenceUsage: true,
	}

	root.AddCommand(sourcesCmd())
	root.AddCommand(fetchCmd())
	root.AddCommand(hemicycleCmd())
	root.AddCommand(turnoutCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// sources command
// --------------------------------------------------------------------------

func sourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the configured spreadsheet exports",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, src := range cfg.Sources().All() {
				fmt.Fprintf(tw, "%s\t%s\n", src.Name, src.URL)
			}
			return tw.Flush()
		},
	}
}

// --------------------------------------------------------------------------
// fetch command
// --------------------------------------------------------------------------

func fetchCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Run one poll cycle and print the snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(func(cfg *config.Config, snap *results.Snapshot) error {
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), snap)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, snap.Summary())
				fmt.Fprintf(out, "Escrutado: %s%% (%s)\n\n", locale.FormatPercent(snap.Status.Counted, 0, 2), snap.Status.LastUpdate)

				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "PARTIDO\t2023\t2025\tCAMBIO\tBLOQUE")
				for _, p := range views.Displayed(snap.Seats) {
					fmt.Fprintf(tw, "%s\t%d\t%d\t%+d\t%s\n", p.Name, p.Seats2023, p.Seats2025, p.Change, p.Bloc)
				}
				fmt.Fprintln(tw)
				fmt.Fprintln(tw, "SIGLAS\tVOTO")
				for _, v := range snap.Votes {
					fmt.Fprintf(tw, "%s\t%s%%\n", v.Name, locale.FormatPercent(v.Percent, 1, 2))
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the snapshot as JSON")
	return cmd
}

// --------------------------------------------------------------------------
// hemicycle command
// --------------------------------------------------------------------------

func hemicycleCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "hemicycle",
		Short: "Print the chamber layout for the current results",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(func(cfg *config.Config, snap *results.Snapshot) error {
				layout := views.Hemicycle(snap.Seats, cfg.Hemicycle())
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), layout)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "PARTIDO\tESCAÑOS\tINICIO\tFIN")
				for _, s := range layout.Segments {
					fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\n", s.Party.Name, s.Party.Seats2025, s.StartAngle, s.EndAngle)
				}
				fmt.Fprintf(tw, "\nMayoría %d/%d en %.2f°, %d escaños asignados\n",
					layout.Majority, layout.TotalSeats, layout.MajorityLine.Angle, layout.AllocatedSeats)
				return tw.Flush()
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the layout as JSON")
	return cmd
}

// --------------------------------------------------------------------------
// turnout command
// --------------------------------------------------------------------------

func turnoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "turnout",
		Short: "Print the participation panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(func(cfg *config.Config, snap *results.Snapshot) error {
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "TERRITORIO\tPARTICIPACIÓN\t2023\tCENSO\tHORA")
				for _, row := range views.Participation(snap.Turnout) {
					fmt.Fprintf(tw, "%s\t%s%%\t%s%%\t%s\t%s\n",
						row.Territory, row.TurnoutLabel, row.Turnout2023Lbl, row.ElectorateLbl, row.Time)
				}
				return tw.Flush()
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runOnce loads config, runs a single poll cycle and hands the snapshot to fn.
func runOnce(fn func(cfg *config.Config, snap *results.Snapshot) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client := sheets.NewClient(&http.Client{Timeout: cfg.FetchTimeout}, nil, logger)
	p := poller.New(client, poller.Config{Sources: cfg.Sources(), Logger: logger})

	start := time.Now()
	snap, _ := p.Load(ctx, poller.TriggerManual)
	if snap == nil {
		return fmt.Errorf("load results: %s", p.Status().LastError)
	}
	logger.Info("Results loaded", "duration", time.Since(start).Round(time.Millisecond), "summary", snap.Summary())
	return fn(cfg, snap)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
