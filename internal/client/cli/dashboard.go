package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/andiamoid/andiamo-admin/internal/client/guard"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the admin dashboard summary",
	Run: run(func(ctx context.Context, w io.Writer, app *App, args []string) int {
		return runDashboard(ctx, w, app)
	}),
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// runDashboard fetches and prints the batch counters and returns exit code
func runDashboard(ctx context.Context, w io.Writer, app *App) int {
	if err := guard.RequireAuth(app.Session.Snapshot(), "dashboard"); err != nil {
		fmt.Fprintf(w, "%v\n", err)
		return 1
	}

	summary, err := app.Client.DashboardSummary(ctx)
	if err != nil {
		return printAPIError(ctx, w, app, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(summary, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "%s %d\n", labelStyle.Render("Total batches: "), summary.TotalBatches)
	fmt.Fprintf(w, "%s %d\n", labelStyle.Render("Active batches:"), summary.ActiveBatches)
	fmt.Fprintf(w, "%s %d\n", labelStyle.Render("Closed batches:"), summary.ClosedBatches)
	return 0
}
