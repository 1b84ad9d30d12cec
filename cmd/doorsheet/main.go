package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/flanksource/commons/logger"
	"github.com/flanksource/doorsheet"
	"github.com/flanksource/doorsheet/api"
	"github.com/flanksource/doorsheet/formatters"
	"github.com/flanksource/doorsheet/formatters/pdf"
	"github.com/flanksource/doorsheet/shutdown"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Build information (set by goreleaser)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "doorsheet",
		Short: "Generate laboratory door safety sheets",
		Long: `Doorsheet composes a one-page laboratory door sheet: a risk level template
overlaid with hazard pictograms, obligation and prohibition signs, the
research groups, room number and contact details.`,
		Example: `  doorsheet generate --hazard electrical --hazard laser_radiation --risk moderate --group "Quantum Optics"
  doorsheet batch rooms.yaml --out-dir sheets/
  doorsheet catalog list --json
  doorsheet serve --addr :8080`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			doorsheet.Flags.UseFlags()
		},
	}
	doorsheet.BindAllFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newBatchCommand())
	rootCmd.AddCommand(newCatalogCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newCacheCommand())
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

func newGenerateCommand() *cobra.Command {
	var req api.Request
	var requestFile, output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one door sheet",
		Long: `Generate one door sheet from flags or a YAML request file. Flags given on
the command line override the values of the request file.`,
		Example: `  doorsheet generate --hazard electrical --obligation wear_safety_glasses --room "B 1.23"
  doorsheet generate --request room.yaml -o room.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if requestFile != "" {
				base, err := loadRequest(requestFile)
				if err != nil {
					return err
				}
				req = mergeRequest(base, req, cmd)
			}

			g, err := doorsheet.Flags.NewGenerator()
			if err != nil {
				return err
			}
			defer g.Close()

			sheet, err := g.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			if output == "-" {
				_, err = os.Stdout.Write(sheet.Data)
				return err
			}
			if output == "" {
				output = sheet.Name
			}
			if err := os.WriteFile(output, sheet.Data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(os.Stderr, "Door sheet written to %s\n", output)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&requestFile, "request", "", "YAML file holding the request")
	flags.StringVarP(&output, "output", "o", "", "Output file, - for stdout (default: the suggested sheet name)")
	flags.StringSliceVar(&req.Hazards, "hazard", nil, "Hazard key, in display order (repeatable)")
	flags.StringSliceVar(&req.Obligations, "obligation", nil, "Obligation sign key (repeatable)")
	flags.StringSliceVar(&req.Prohibitions, "prohibition", nil, "Prohibition sign key (repeatable)")
	flags.StringVar(&req.Risk, "risk", "", "Risk level (default: the first configured risk)")
	flags.StringVar(&req.Department, "department", "", "Department name")
	flags.StringArrayVar(&req.ResearchGroups, "group", nil, "Research group name (repeatable)")
	flags.StringVar(&req.Room, "room", "", "Room number")
	flags.StringVar(&req.PI.Name, "pi-name", "", "Principal investigator")
	flags.StringVar(&req.PI.Phone, "pi-phone", "", "Principal investigator phone")
	flags.StringVar(&req.SafetyOfficer.Name, "safety-name", "", "Safety officer")
	flags.StringVar(&req.SafetyOfficer.Phone, "safety-phone", "", "Safety officer phone")
	flags.StringVar(&req.Emergency[0].Name, "emergency1-name", "", "First emergency contact")
	flags.StringVar(&req.Emergency[0].Phone, "emergency1-phone", "", "First emergency contact phone")
	flags.StringVar(&req.Emergency[1].Name, "emergency2-name", "", "Second emergency contact")
	flags.StringVar(&req.Emergency[1].Phone, "emergency2-phone", "", "Second emergency contact phone")
	flags.StringVar(&req.ActivityType, "activity-type", "", "Activity type")
	flags.StringVar(&req.ActivityClass, "activity-class", "", "Activity hazard class")
	return cmd
}

func loadRequest(path string) (api.Request, error) {
	var req api.Request
	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("failed to read request %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("failed to parse request %s: %w", path, err)
	}
	return req, nil
}

// mergeRequest overlays the flags the user set onto base
func mergeRequest(base, flags api.Request, cmd *cobra.Command) api.Request {
	changed := cmd.Flags().Changed
	set := func(name string, dst *string, v string) {
		if changed(name) {
			*dst = v
		}
	}
	if changed("hazard") {
		base.Hazards = flags.Hazards
	}
	if changed("obligation") {
		base.Obligations = flags.Obligations
	}
	if changed("prohibition") {
		base.Prohibitions = flags.Prohibitions
	}
	if changed("group") {
		base.ResearchGroups = flags.ResearchGroups
	}
	set("risk", &base.Risk, flags.Risk)
	set("department", &base.Department, flags.Department)
	set("room", &base.Room, flags.Room)
	set("pi-name", &base.PI.Name, flags.PI.Name)
	set("pi-phone", &base.PI.Phone, flags.PI.Phone)
	set("safety-name", &base.SafetyOfficer.Name, flags.SafetyOfficer.Name)
	set("safety-phone", &base.SafetyOfficer.Phone, flags.SafetyOfficer.Phone)
	set("emergency1-name", &base.Emergency[0].Name, flags.Emergency[0].Name)
	set("emergency1-phone", &base.Emergency[0].Phone, flags.Emergency[0].Phone)
	set("emergency2-name", &base.Emergency[1].Name, flags.Emergency[1].Name)
	set("emergency2-phone", &base.Emergency[1].Phone, flags.Emergency[1].Phone)
	set("activity-type", &base.ActivityType, flags.ActivityType)
	set("activity-class", &base.ActivityClass, flags.ActivityClass)
	return base
}

func newBatchCommand() *cobra.Command {
	var outDir string
	var concurrency int

	cmd := &cobra.Command{
		Use:   "batch <requests.yaml>",
		Short: "Generate door sheets for a list of requests",
		Long: `Generate one door sheet per entry of a YAML list of requests. Requests are
independent: a failing request is reported and the others are still written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := doorsheet.LoadBatch(args[0])
			if err != nil {
				return err
			}
			g, err := doorsheet.Flags.NewGenerator()
			if err != nil {
				return err
			}
			defer g.Close()

			results := g.Batch(cmd.Context(), reqs, concurrency)
			written, err := doorsheet.WriteBatch(outDir, results)
			if err != nil {
				return err
			}

			var failed []error
			for _, r := range results {
				if r.Err != nil {
					failed = append(failed, fmt.Errorf("request %d: %w", r.Index, r.Err))
				}
			}
			logger.Infof("wrote %d of %d door sheets to %s", len(written), len(reqs), outDir)
			return errors.Join(failed...)
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", ".", "Directory to write the sheets to")
	cmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "Maximum sheets rendered in parallel")
	return cmd
}

func newCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the hazard, sign and risk catalog",
	}
	cmd.AddCommand(newCatalogListCommand())
	cmd.AddCommand(newCatalogSheetCommand())
	return cmd
}

func newCatalogListCommand() *cobra.Command {
	var options formatters.FormatOptions

	cmd := &cobra.Command{
		Use:   "list [kind...]",
		Short: "List the selectable catalog entries",
		Long:  `List hazards, obligation and prohibition signs and risk levels. Pass kinds (hazard, obligation, prohibition, risk) to restrict the listing.`,
		Example: `  doorsheet catalog list
  doorsheet catalog list hazard --csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := options.ResolveFormat(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("no-color") {
				options.DetectColor()
			}
			cat, err := doorsheet.Flags.Catalog()
			if err != nil {
				return err
			}
			out, err := formatters.Format(formatters.Entries(cat, args...), options)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
	formatters.BindPFlags(cmd.Flags(), &options)
	return cmd
}

func newCatalogSheetCommand() *cobra.Command {
	var output, title string
	var debug bool

	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Render the catalog as a PDF reference sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := doorsheet.Flags.Catalog()
			if err != nil {
				return err
			}
			data, err := pdf.CatalogSheet(cat, pdf.NewAssets(), pdf.WithTitle(title), pdf.WithDebug(debug))
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(os.Stderr, "Catalog sheet written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "catalog.pdf", "Output file")
	cmd.Flags().StringVar(&title, "title", "Laboratory Door Sheet Catalog", "Sheet title")
	cmd.Flags().BoolVar(&debug, "debug-grid", false, "Draw the maroto grid")
	return cmd
}

func newServeCommand() *cobra.Command {
	var addr string
	var preload bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve door sheets over HTTP",
		Long: `Serve POST /generate, which returns a door sheet for the submitted form, and
GET /catalog, which lists the selectable entries as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := doorsheet.Flags.NewGenerator()
			if err != nil {
				return err
			}
			if preload {
				if err := g.Preload(); err != nil {
					g.Close()
					return err
				}
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           doorsheet.NewHandler(g),
				ReadHeaderTimeout: 10 * time.Second,
			}
			shutdown.AddHookWithPriority("http server", shutdown.PriorityIngress, func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					logger.Warnf("http server shutdown: %v", err)
				}
			})
			shutdown.AddHookWithPriority("sheet cache", shutdown.PriorityDatabase, func() {
				if err := g.Close(); err != nil {
					logger.Warnf("failed to close sheet cache: %v", err)
				}
			})

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			errs := make(chan error, 1)
			go func() {
				logger.Infof("listening on %s", addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errs <- err
				}
				cancel()
			}()

			shutdown.WaitForSignal(ctx)
			select {
			case err := <-errs:
				return err
			default:
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().BoolVar(&preload, "preload", true, "Load every icon and template at startup")
	return cmd
}

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the rendered sheet cache",
	}
	open := func() (*doorsheet.SheetCache, error) {
		// the TTL only matters for writes; any non-zero value opens the database
		return doorsheet.NewSheetCache(doorsheet.CacheConfig{TTL: time.Hour, DBPath: doorsheet.Flags.CacheDB})
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show the number and size of cached sheets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := open()
			if err != nil {
				return err
			}
			defer cache.Close()
			entries, size, err := cache.Stats()
			if err != nil {
				return err
			}
			fmt.Printf("%d sheets, %d bytes\n", entries, size)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := open()
			if err != nil {
				return err
			}
			defer cache.Close()
			return cache.Clear()
		},
	})
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(getVersionInfo())
		},
	}
}

func getVersionInfo() string {
	return fmt.Sprintf("doorsheet %s (commit: %s, built: %s, go: %s)",
		version, commit, date, runtime.Version())
}
