package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"roomtrooper/internal/service"
	"roomtrooper/internal/tabular"
	"roomtrooper/internal/ui"
)

const defaultSheet = "room_data.csv"

func newExportCommand(app *appContext) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all rooms for the tenant to a sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			exporter := service.NewExporter(app.client, app.logger)
			rooms, err := exporter.Export(cmd.Context())
			if err != nil {
				return err
			}
			if err := tabular.Write(file, rooms); err != nil {
				return err
			}
			ui.RenderRooms(cmd.OutOrStdout(), rooms)
			fmt.Fprintf(cmd.OutOrStdout(), "room data written to %s\n", file)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", defaultSheet, "Output sheet (.csv or .xlsx)")
	return cmd
}

func newUpdateCommand(app *appContext) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Reconcile a sheet of rooms against the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := tabular.Read(file)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is empty, nothing to import\n", file)
				return nil
			}

			// Cache and resolver are scoped to this one batch.
			cache := service.NewSiteCache(app.logger)
			resolver := service.NewSiteResolver(app.client, cache, app.cfg.SiteID, app.logger)
			normalizer := service.NewRowNormalizer(app.cfg.TenantID, app.logger)
			driver := service.NewBatchDriver(normalizer, resolver, app.client, app.logger)

			report := driver.Run(cmd.Context(), rows)
			ui.RenderReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", defaultSheet, "Input sheet (.csv or .xlsx)")
	return cmd
}

func newCreateCommand(app *appContext) *cobra.Command {
	var (
		count    int
		baseName string
		start    int
		siteName string
		delay    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Bulk-create sequentially numbered rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache := service.NewSiteCache(app.logger)
			resolver := service.NewSiteResolver(app.client, cache, "", app.logger)
			creator := service.NewBulkCreator(resolver, app.client, app.cfg.TenantID, app.logger)

			if delay == 0 {
				delay = app.cfg.CreateDelay
			}
			report, err := creator.Run(cmd.Context(), service.BulkCreateParams{
				Count:    count,
				BaseName: baseName,
				Start:    start,
				SiteName: siteName,
				Delay:    delay,
			})
			if err != nil {
				return err
			}
			ui.RenderReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 10, "Number of rooms to create")
	cmd.Flags().StringVar(&baseName, "base-name", "Room", "Base room name; rooms are numbered from it")
	cmd.Flags().IntVar(&start, "start", 0, "First number to append")
	cmd.Flags().StringVar(&siteName, "site", "", "Site name to attach rooms to (created when absent)")
	cmd.Flags().DurationVar(&delay, "delay", 0, "Pause between create requests")
	return cmd
}
