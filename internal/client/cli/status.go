package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session state",
	Run: run(func(ctx context.Context, w io.Writer, app *App, args []string) int {
		return runStatus(ctx, w, app)
	}),
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// runStatus prints the restored session state and returns exit code
func runStatus(ctx context.Context, w io.Writer, app *App) int {
	st := app.Session.Snapshot()

	if IsJSONOutput() {
		out := map[string]any{
			"status":        string(st.Status),
			"authenticated": st.IsAuthenticated(),
			"apiBaseURL":    app.Cfg.APIBaseURL,
			"authMode":      string(app.Cfg.AuthMode),
		}
		if st.User != nil {
			out["user"] = st.User
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Session:"), sessionBadge(st.IsAuthenticated()))
	if st.User != nil {
		fmt.Fprintf(w, "%s %s (%s)\n", labelStyle.Render("User:   "), st.User.Name, st.User.Email)
	}
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Backend:"), app.Cfg.APIBaseURL)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Auth:   "), string(app.Cfg.AuthMode))
	return 0
}
