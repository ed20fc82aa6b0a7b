package cli

import (
	"context"
	"fmt"
	"io"
)

// printAPIError reports a failed backend call and returns the exit code.
// An authorization failure tears down the stored session first, so the next
// invocation starts anonymous instead of retrying a dead credential.
func printAPIError(ctx context.Context, w io.Writer, app *App, err error) int {
	if app.Session.InvalidateIfUnauthorized(ctx, err) {
		fmt.Fprintln(w, "Session expired. Run \"login\" again.")
		return 1
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return 2
}
