package cmd

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"fnoldesk/internal/bootstrap"
	"fnoldesk/internal/bootstrap/logging"
	"fnoldesk/internal/errs"
	"fnoldesk/internal/usecase/dashboard"
	"fnoldesk/internal/usecase/fnol"
)

var consoleDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Start the KPI, trend and defect dashboard",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *fnol.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		refreshInterval, _ := cmd.Flags().GetDuration("refresh-interval")
		if err := app.InitSchema(ctx); err != nil {
			return errs.Wrap(err, "initialize schema")
		}

		model := dashboard.NewModel(ctx, svc, dashboard.Options{
			RefreshInterval: refreshInterval,
		})
		program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := program.Run(); err != nil {
			return errs.Wrap(err, "run dashboard console")
		}
		return nil
	}),
}

func init() {
	consoleCmd.AddCommand(consoleDashboardCmd)
	consoleDashboardCmd.Flags().Duration("refresh-interval", 10*time.Second, "Auto refresh interval")
}
