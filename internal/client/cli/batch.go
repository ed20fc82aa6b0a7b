package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/andiamoid/andiamo-admin/internal/client/api"
	"github.com/andiamoid/andiamo-admin/internal/client/contact"
	"github.com/andiamoid/andiamo-admin/internal/client/guard"
	"github.com/spf13/cobra"
)

var (
	batchRegion string
	batchStatus string

	createName        string
	createDescription string
	createShort       string
	createRegion      string
	createDeparture   string
	createArrival     string
	createImages      []string
	createWhatsApp    string

	deleteYes bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "List and manage jastip batches",
}

var batchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List batches",
	Run: run(func(ctx context.Context, w io.Writer, app *App, args []string) int {
		return runBatchList(ctx, w, app, api.BatchFilter{Region: batchRegion, Status: batchStatus})
	}),
}

var batchShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one batch with its contact link",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, app *App, args []string) int {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Fprintf(w, "Invalid batch id %q\n", args[0])
			return 1
		}
		return runBatchShow(ctx, w, app, id)
	}),
}

var batchCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a batch",
	Run: run(func(ctx context.Context, w io.Writer, app *App, args []string) int {
		b := api.Batch{
			Name:             createName,
			Description:      createDescription,
			ShortDescription: createShort,
			Region:           createRegion,
			Status:           api.StatusActive,
			DepartureDate:    createDeparture,
			ArrivalDate:      createArrival,
			ImageURLs:        createImages,
			WhatsAppLink:     createWhatsApp,
		}
		return runBatchCreate(ctx, w, app, b)
	}),
}

var batchCloseCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Mark a batch closed",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, app *App, args []string) int {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Fprintf(w, "Invalid batch id %q\n", args[0])
			return 1
		}
		return runBatchClose(ctx, w, app, id)
	}),
}

var batchDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a batch",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, app *App, args []string) int {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Fprintf(w, "Invalid batch id %q\n", args[0])
			return 1
		}
		if !deleteYes {
			answer, err := GetSimpleText(bufio.NewReader(os.Stdin),
				fmt.Sprintf("Delete batch %d? This cannot be undone. [y/N]", id), w)
			if err != nil || !strings.EqualFold(answer, "y") {
				fmt.Fprintln(w, "Aborted.")
				return 1
			}
		}
		return runBatchDelete(ctx, w, app, id)
	}),
}

func init() {
	batchListCmd.Flags().StringVar(&batchRegion, "region", "", "Filter by region (e.g. indo-itali, itali-indo)")
	batchListCmd.Flags().StringVar(&batchStatus, "status", "", "Filter by status (active, closed)")

	batchCreateCmd.Flags().StringVar(&createName, "name", "", "Batch name")
	batchCreateCmd.Flags().StringVar(&createDescription, "description", "", "Full description")
	batchCreateCmd.Flags().StringVar(&createShort, "short", "", "Short description for the catalog card")
	batchCreateCmd.Flags().StringVar(&createRegion, "region", api.RegionIndoItali, "Region")
	batchCreateCmd.Flags().StringVar(&createDeparture, "departure", "", "Departure date (YYYY-MM-DD)")
	batchCreateCmd.Flags().StringVar(&createArrival, "arrival", "", "Arrival date (YYYY-MM-DD)")
	batchCreateCmd.Flags().StringSliceVar(&createImages, "image", nil, "Image URL (repeatable)")
	batchCreateCmd.Flags().StringVar(&createWhatsApp, "whatsapp-link", "", "Per-batch WhatsApp link override")
	_ = batchCreateCmd.MarkFlagRequired("name")

	batchDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")

	batchCmd.AddCommand(batchListCmd)
	batchCmd.AddCommand(batchShowCmd)
	batchCmd.AddCommand(batchCreateCmd)
	batchCmd.AddCommand(batchCloseCmd)
	batchCmd.AddCommand(batchDeleteCmd)
	rootCmd.AddCommand(batchCmd)
}

// runBatchList prints the (optionally filtered) batch catalog and returns
// exit code. The list endpoint is public; no session required.
func runBatchList(ctx context.Context, w io.Writer, app *App, filter api.BatchFilter) int {
	batches, err := app.Client.ListBatches(ctx, filter)
	if err != nil {
		return printAPIError(ctx, w, app, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(batches, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(batches) == 0 {
		fmt.Fprintln(w, "No batches.")
		return 0
	}
	for _, b := range batches {
		fmt.Fprintln(w, formatBatchLine(b))
	}
	return 0
}

// runBatchShow prints one batch in detail and returns exit code
func runBatchShow(ctx context.Context, w io.Writer, app *App, id int64) int {
	b, err := app.Client.GetBatch(ctx, id)
	if err != nil {
		return printAPIError(ctx, w, app, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(b, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatBatchDetail(*b, app.Session.Settings()))
	return 0
}

func runBatchCreate(ctx context.Context, w io.Writer, app *App, b api.Batch) int {
	if err := guard.RequireAuth(app.Session.Snapshot(), "batch create"); err != nil {
		fmt.Fprintf(w, "%v\n", err)
		return 1
	}

	created, err := app.Client.CreateBatch(ctx, b)
	if err != nil {
		return printAPIError(ctx, w, app, err)
	}

	fmt.Fprintf(w, "Created batch %d: %s\n", created.ID, created.Name)
	return 0
}

func runBatchClose(ctx context.Context, w io.Writer, app *App, id int64) int {
	if err := guard.RequireAuth(app.Session.Snapshot(), "batch close"); err != nil {
		fmt.Fprintf(w, "%v\n", err)
		return 1
	}

	b, err := app.Client.GetBatch(ctx, id)
	if err != nil {
		return printAPIError(ctx, w, app, err)
	}

	b.Status = api.StatusClosed
	updated, err := app.Client.UpdateBatch(ctx, id, *b)
	if err != nil {
		return printAPIError(ctx, w, app, err)
	}

	fmt.Fprintf(w, "Closed batch %d: %s\n", updated.ID, updated.Name)
	return 0
}

func runBatchDelete(ctx context.Context, w io.Writer, app *App, id int64) int {
	if err := guard.RequireAuth(app.Session.Snapshot(), "batch delete"); err != nil {
		fmt.Fprintf(w, "%v\n", err)
		return 1
	}

	if err := app.Client.DeleteBatch(ctx, id); err != nil {
		return printAPIError(ctx, w, app, err)
	}

	fmt.Fprintf(w, "Deleted batch %d\n", id)
	return 0
}

// formatBatchLine is the one-line catalog form: id, status badge, region,
// name, travel dates.
func formatBatchLine(b api.Batch) string {
	parts := []string{
		fmt.Sprintf("%4d", b.ID),
		batchBadge(b.Status),
		fmt.Sprintf("%-11s", b.Region),
		b.Name,
	}
	if b.DepartureDate != "" {
		dates := b.DepartureDate
		if b.ArrivalDate != "" {
			dates += " .. " + b.ArrivalDate
		}
		parts = append(parts, "("+dates+")")
	}
	return strings.Join(parts, "  ")
}

func formatBatchDetail(b api.Batch, settings *api.AdminSettings) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render(b.Name), batchBadge(b.Status))
	if b.Region != "" {
		fmt.Fprintf(&sb, "Region:    %s\n", b.Region)
	}
	if b.DepartureDate != "" {
		fmt.Fprintf(&sb, "Departure: %s\n", b.DepartureDate)
	}
	if b.ArrivalDate != "" {
		fmt.Fprintf(&sb, "Arrival:   %s\n", b.ArrivalDate)
	}
	if b.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", b.Description)
	}
	fmt.Fprintf(&sb, "\nContact:   %s", contact.Link(b, settings))
	return sb.String()
}
