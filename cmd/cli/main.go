package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"pincheck/adapters/excel"
	"pincheck/adapters/sheets"
	"pincheck/app"
	"pincheck/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pincheck-cli",
		Short: "Serviceability checker CLI for one-off queries and sheet diagnostics",
	}

	rootCmd.AddCommand(
		newCheckCmd(),
		newFieldsCmd(),
		newCoverageCmd(),
		newSnapshotCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildChecker assembles the fetch-load-check stack from the environment,
// the same wiring the servers use.
func buildChecker() (*app.CheckerService, error) {
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "Loaded configuration from .env")
	}

	appConfig, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	fetcher := sheets.NewFetcher(sheets.Source{
		URL:      appConfig.Source.URL,
		SheetID:  appConfig.Source.SheetID,
		SheetGID: appConfig.Source.SheetGID,
	}, appConfig.Fetch.Timeout)

	return app.NewCheckerService(app.NewLoaderService(fetcher), appConfig.Cache.TTL), nil
}

func newCheckCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check [service] [pincode]",
		Short: "Check serviceability for one service and pincode",
		Long: `Check whether a service is available at a pincode.

Service is one of 4W_Tyre, 4W_Battery, 2W_Tyre, 2W_Battery; spaces and
hyphens work too, so "4w tyre" is accepted.

Example: pincheck-cli check 4W_Tyre 400001`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), args[0], args[1], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw result as JSON")

	return cmd
}

func runCheck(ctx context.Context, service, pincode string, asJSON bool) error {
	checker, err := buildChecker()
	if err != nil {
		return err
	}

	result, err := checker.Check(ctx, service, pincode)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(result)
	}

	if result.Serviceable {
		fmt.Printf("✅ %s is serviceable at %s\n", result.ServiceType.DisplayName(), result.Pincode)
	} else {
		fmt.Printf("❌ %s is not serviceable at %s\n", result.ServiceType.DisplayName(), result.Pincode)
	}
	if result.VendorFitment != nil {
		fmt.Printf("   Vendor fitment: %s\n", yesNo(*result.VendorFitment))
	}
	if result.Fee != nil {
		fmt.Printf("   Fee: ₹%.2f\n", *result.Fee)
	}
	if result.Serviceable && result.Only4WTyreAvailable {
		fmt.Println("   Note: only 4W Tyre service is available at this pincode")
	}
	if result.Remark != "" {
		fmt.Printf("   Remark: %s\n", result.Remark)
	}

	return nil
}

func newFieldsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "Fetch the sheet and show how its columns resolved",
		Long: `Fetch the serviceability sheet and print the resolved field map,
the synthetic columns, and the fetch attempt log. Use this when a sheet
revision stops resolving the way you expect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFields(cmd.Context())
		},
	}

	return cmd
}

func runFields(ctx context.Context) error {
	checker, err := buildChecker()
	if err != nil {
		return err
	}

	lt, err := checker.Table(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("📋 Loaded %d rows from %s (content %s)\n", lt.Table.Len(), lt.SourceURL, lt.ContentHash.Short())

	fmt.Println("\nResolved fields:")
	keys := make([]string, 0, len(lt.Resolution.Fields))
	for key := range lt.Resolution.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("  %-28s %s\n", key, lt.Resolution.Fields[key])
	}

	if len(lt.Resolution.Synthetic) > 0 {
		fmt.Println("\n⚠️  Synthetic columns (no header matched, defaulted to not serviceable):")
		for _, col := range lt.Resolution.Synthetic {
			fmt.Printf("  %s\n", col)
		}
	}

	fmt.Println("\nFetch attempts:")
	for i, attempt := range lt.Attempts {
		fmt.Printf("  %d. %-10s %s\n", i+1, attempt.Outcome, attempt.URL)
	}

	return nil
}

func newCoverageCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Fetch the sheet and summarize per-service coverage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCoverage(cmd.Context(), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw report as JSON")

	return cmd
}

func runCoverage(ctx context.Context, asJSON bool) error {
	checker, err := buildChecker()
	if err != nil {
		return err
	}

	lt, err := checker.Table(ctx)
	if err != nil {
		return err
	}

	report := app.NewCoverageService().Report(lt)
	if asJSON {
		return printJSON(report)
	}

	fmt.Printf("📊 Coverage over %d pincodes (%s)\n\n", report.TotalRows, report.SourceURL)
	for _, svc := range report.Services {
		marker := ""
		if svc.Synthetic {
			marker = " (synthetic)"
		}
		fmt.Printf("%-12s %4d serviceable  %6s  95%% interval %s to %s%s\n",
			svc.DisplayName, svc.YesCount,
			formatPct(svc.Fraction), formatPct(svc.ConfidenceLow), formatPct(svc.ConfidenceHigh),
			marker)
		if svc.Fees != nil {
			fmt.Printf("%-12s %d fees seen, ₹%.0f to ₹%.0f, median ₹%.0f\n",
				"", svc.Fees.Count, svc.Fees.Min, svc.Fees.Max, svc.Fees.Median)
		}
	}
	fmt.Printf("\n%d pincodes offer 4W Tyre as their only service\n", report.Only4WTyreCount)

	return nil
}

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot [output.xlsx]",
		Short: "Fetch the sheet and write it as an xlsx workbook",
		Long: `Fetch the serviceability sheet and write an xlsx workbook holding the
table, the resolved field map, and the fetch attempt log.

Example: pincheck-cli snapshot serviceability.xlsx`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "serviceability.xlsx"
			if len(args) == 1 {
				path = args[0]
			}
			return runSnapshot(cmd.Context(), path)
		},
	}

	return cmd
}

func runSnapshot(ctx context.Context, path string) error {
	checker, err := buildChecker()
	if err != nil {
		return err
	}

	lt, err := checker.Table(ctx)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	snap := excel.Snapshot{
		Table:       lt.Table,
		Resolution:  lt.Resolution,
		Attempts:    lt.Attempts,
		SourceURL:   lt.SourceURL,
		ContentHash: lt.ContentHash,
		LoadedAt:    lt.LoadedAt,
	}
	if err := excel.NewSnapshotWriter().Write(out, snap); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	fmt.Printf("💾 Wrote %d rows to %s\n", lt.Table.Len(), path)
	return nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatPct(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}
