package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/andiamoid/andiamo-admin/internal/client/guard"
	"github.com/andiamoid/andiamo-admin/internal/common"
	"github.com/spf13/cobra"
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the admin password",
	Run: run(func(ctx context.Context, w io.Writer, app *App, args []string) int {
		if err := guard.RequireAuth(app.Session.Snapshot(), "passwd"); err != nil {
			fmt.Fprintf(w, "%v\n", err)
			return 1
		}

		current, err := GetPassword("Current password", w)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		defer common.WipeByteArray(current)

		updated, err := GetPassword("New password", w)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		defer common.WipeByteArray(updated)

		confirm, err := GetPassword("Repeat new password", w)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		defer common.WipeByteArray(confirm)

		return runPasswd(ctx, w, app, string(current), string(updated), string(confirm))
	}),
}

func init() {
	rootCmd.AddCommand(passwdCmd)
}

// runPasswd executes the password change and returns exit code
func runPasswd(ctx context.Context, w io.Writer, app *App, current, updated, confirm string) int {
	if updated != confirm {
		fmt.Fprintln(w, "Passwords do not match.")
		return 1
	}

	if err := app.Client.ChangePassword(ctx, current, updated, confirm); err != nil {
		return printAPIError(ctx, w, app, err)
	}

	fmt.Fprintln(w, "Password changed.")
	return 0
}
