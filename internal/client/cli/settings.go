package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/andiamoid/andiamo-admin/internal/client/api"
	"github.com/andiamoid/andiamo-admin/internal/client/guard"
	"github.com/spf13/cobra"
)

var (
	settingsWhatsApp string
	settingsMessage  string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect or change the default contact settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current contact settings",
	Run: run(func(ctx context.Context, w io.Writer, app *App, args []string) int {
		return runSettingsShow(ctx, w, app)
	}),
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the default WhatsApp number and CTA message",
	Run: run(func(ctx context.Context, w io.Writer, app *App, args []string) int {
		return runSettingsSet(ctx, w, app, settingsWhatsApp, settingsMessage)
	}),
}

func init() {
	settingsSetCmd.Flags().StringVar(&settingsWhatsApp, "whatsapp", "", "Default WhatsApp number (international format)")
	settingsSetCmd.Flags().StringVar(&settingsMessage, "message", "", "Default call-to-action message")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

// runSettingsShow fetches and prints the admin settings and returns exit code
func runSettingsShow(ctx context.Context, w io.Writer, app *App) int {
	if err := guard.RequireAuth(app.Session.Snapshot(), "settings show"); err != nil {
		fmt.Fprintf(w, "%v\n", err)
		return 1
	}

	s, err := app.Client.Settings(ctx)
	if err != nil {
		return printAPIError(ctx, w, app, err)
	}

	printSettings(w, s)
	return 0
}

// runSettingsSet updates the settings and returns exit code. Flags left
// empty keep the current backend value.
func runSettingsSet(ctx context.Context, w io.Writer, app *App, whatsapp, message string) int {
	if err := guard.RequireAuth(app.Session.Snapshot(), "settings set"); err != nil {
		fmt.Fprintf(w, "%v\n", err)
		return 1
	}
	if whatsapp == "" && message == "" {
		fmt.Fprintln(w, "Nothing to change: pass --whatsapp and/or --message.")
		return 1
	}

	current, err := app.Client.Settings(ctx)
	if err != nil {
		return printAPIError(ctx, w, app, err)
	}

	updated := *current
	if whatsapp != "" {
		updated.DefaultWhatsAppNumber = whatsapp
	}
	if message != "" {
		updated.DefaultCTAMessage = message
	}

	if err := app.Client.UpdateSettings(ctx, updated); err != nil {
		return printAPIError(ctx, w, app, err)
	}

	// Keep the in-process cache in step with what was just written.
	app.Session.FetchSettings(ctx)

	printSettings(w, &updated)
	return 0
}

func printSettings(w io.Writer, s *api.AdminSettings) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(s, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("WhatsApp:"), s.DefaultWhatsAppNumber)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Message: "), s.DefaultCTAMessage)
}
