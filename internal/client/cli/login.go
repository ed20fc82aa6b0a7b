package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/andiamoid/andiamo-admin/internal/client/api"
	"github.com/andiamoid/andiamo-admin/internal/common"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the backend",
	Long: `Authenticate against the backend and persist the session locally.

The session carries over to later invocations until "logout", or until the
backend rejects the stored credential.`,
	Run: run(func(ctx context.Context, w io.Writer, app *App, args []string) int {
		reader := bufio.NewReader(os.Stdin)
		email, err := GetSimpleText(reader, "Email", w)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		password, err := GetPassword("Password", w)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		defer common.WipeByteArray(password)

		return runLogin(ctx, w, app, email, string(password))
	}),
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

// runLogin executes the login and returns exit code
func runLogin(ctx context.Context, w io.Writer, app *App, email, password string) int {
	if err := app.Session.Login(ctx, email, password); err != nil {
		var verr *api.ValidationError
		switch {
		case errors.Is(err, api.ErrUnauthorized):
			fmt.Fprintln(w, "Login failed: invalid credentials.")
			return 1
		case errors.As(err, &verr):
			fmt.Fprintf(w, "Login failed: %s\n", verr.Error())
			return 1
		default:
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	st := app.Session.Snapshot()
	fmt.Fprintf(w, "Logged in as %s (%s)\n", st.User.Name, st.User.Email)
	return 0
}
