package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fnoldesk/internal/bootstrap"
	"fnoldesk/internal/bootstrap/logging"
	"fnoldesk/internal/errs"
	"fnoldesk/internal/usecase/fnol"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed mock claims and UAT data when the store is empty",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *fnol.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		if err := app.InitSchema(ctx); err != nil {
			return errs.Wrap(err, "initialize schema")
		}
		counts, seeded, err := svc.Seed(ctx)
		if err != nil {
			logging.Error(ctx, "seed failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "seed")
		}

		state := "already seeded, nothing inserted"
		if seeded {
			state = "seeded"
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), state); err != nil {
			return errs.Wrap(err, "write seed output")
		}
		return writeCounts(cmd.OutOrStdout(), counts)
	}),
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func writeCounts(out io.Writer, counts fnol.CollectionCounts) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "collection\tcount"); err != nil {
		return errs.Wrap(err, "write counts header")
	}
	rows := []struct {
		name  string
		count int64
	}{
		{"claims", counts.Claims},
		{"test_scripts", counts.TestScripts},
		{"defects", counts.Defects},
		{"risks", counts.Risks},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", row.name, row.count); err != nil {
			return errs.Wrapf(err, "write %s count", row.name)
		}
	}
	return errs.Wrap(w.Flush(), "flush counts output")
}
