package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	Run: run(func(ctx context.Context, w io.Writer, app *App, args []string) int {
		return runLogout(ctx, w, app)
	}),
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout executes the logout and returns exit code. Logging out while
// anonymous is not an error; the local store is cleared either way.
func runLogout(ctx context.Context, w io.Writer, app *App) int {
	wasAuthenticated := app.Session.Snapshot().IsAuthenticated()
	app.Session.Logout(ctx)

	if wasAuthenticated {
		fmt.Fprintln(w, "Logged out.")
	} else {
		fmt.Fprintln(w, "Not logged in.")
	}
	return 0
}
