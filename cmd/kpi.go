package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fnoldesk/internal/bootstrap"
	"fnoldesk/internal/bootstrap/logging"
	"fnoldesk/internal/domain/claims"
	"fnoldesk/internal/errs"
	"fnoldesk/internal/usecase/fnol"
)

var kpiCmd = &cobra.Command{
	Use:   "kpi",
	Short: "Print KPI metrics over all stored claims",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *fnol.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		format, _ := cmd.Flags().GetString("format")
		format = strings.ToLower(strings.TrimSpace(format))
		if format != "table" && format != "json" {
			return fmt.Errorf("unsupported --format %q, want table or json", format)
		}

		if err := app.InitSchema(ctx); err != nil {
			return errs.Wrap(err, "initialize schema")
		}
		kpis, err := svc.KPIMetrics(ctx)
		if err != nil {
			logging.Error(ctx, "compute kpi metrics failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "compute kpi metrics")
		}

		if format == "json" {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return errs.Wrap(encoder.Encode(kpis), "write kpi json")
		}
		return writeKPITable(cmd.OutOrStdout(), kpis)
	}),
}

func init() {
	rootCmd.AddCommand(kpiCmd)
	kpiCmd.Flags().String("format", "table", "Output format (table|json)")
}

func writeKPITable(out io.Writer, kpis claims.KPIMetrics) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "metric\tvalue"); err != nil {
		return errs.Wrap(err, "write kpi header")
	}
	rows := []struct {
		name  string
		value string
	}{
		{"total_claims", fmt.Sprintf("%d", kpis.TotalClaims)},
		{"open_claims", fmt.Sprintf("%d", kpis.OpenClaims)},
		{"closed_claims", fmt.Sprintf("%d", kpis.ClosedClaims)},
		{"escalated_claims", fmt.Sprintf("%d", kpis.EscalatedClaims)},
		{"avg_resolution_time", fmt.Sprintf("%.1fh", kpis.AvgResolutionTime)},
		{"auto_route_success_rate", fmt.Sprintf("%.1f%%", kpis.AutoRouteSuccessRate)},
		{"escalation_rate", fmt.Sprintf("%.1f%%", kpis.EscalationRate)},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", row.name, row.value); err != nil {
			return errs.Wrapf(err, "write kpi %s", row.name)
		}
	}
	return errs.Wrap(w.Flush(), "flush kpi output")
}
